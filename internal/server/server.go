package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LazizjanAsatov/Catra/internal/config"
	"github.com/LazizjanAsatov/Catra/internal/handler"
	"github.com/LazizjanAsatov/Catra/internal/provider"
	"github.com/LazizjanAsatov/Catra/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

// New builds the Gemini provider when a key is configured and wires the
// HTTP server. A missing key is logged and left for /api/analyze to report.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	var p provider.Provider
	if cfg.HasCredentials() {
		gemini, err := provider.NewGeminiProvider(ctx, &cfg.Gemini, log)
		if err != nil {
			return nil, err
		}
		p = gemini
	} else {
		log.Warn("GEMINI_API_KEY is not set. The /api/analyze endpoint will fail until you provide a key.")
	}

	svc := service.NewAnalysisService(p, cfg, log)
	router := NewRouter(cfg, svc, log)

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        router,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.Gemini.Model))

	return server, nil
}

// NewRouter registers the routes and middleware on a fresh gin engine.
func NewRouter(cfg *config.Config, svc service.AnalysisService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Unhandled error", zap.Any("error", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	router.Use(cors.New(corsConfig(cfg.App.CORSAllowOrigins)))

	h := handler.NewHandler(svc, cfg.App.ServiceName, log)

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/analyze", h.Analyze)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
