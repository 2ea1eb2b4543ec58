package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultMaxUploadSize = 8 * 1024 * 1024 // 8MB

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	App    AppConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type AppConfig struct {
	ServiceName      string
	MaxUploadSize    int64
	CORSAllowOrigins []string
}

type LogConfig struct {
	Level string
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 90*time.Second)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_TIMEOUT", 60*time.Second)
	v.SetDefault("APP_SERVICE_NAME", "catra-backend")
	v.SetDefault("APP_MAX_UPLOAD_SIZE", DefaultMaxUploadSize)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         strings.TrimSpace(v.GetString("SERVER_HOST")),
			Port:         strings.TrimSpace(v.GetString("PORT")),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Gemini: GeminiConfig{
			APIKey:  strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
			Model:   strings.TrimSpace(v.GetString("GEMINI_MODEL")),
			Timeout: v.GetDuration("GEMINI_TIMEOUT"),
		},
		App: AppConfig{
			ServiceName:      v.GetString("APP_SERVICE_NAME"),
			MaxUploadSize:    v.GetInt64("APP_MAX_UPLOAD_SIZE"),
			CORSAllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}
	if cfg.App.MaxUploadSize <= 0 {
		cfg.App.MaxUploadSize = DefaultMaxUploadSize
	}
	if len(cfg.App.CORSAllowOrigins) == 0 {
		cfg.App.CORSAllowOrigins = []string{"*"}
	}

	return cfg, nil
}

// HasCredentials reports whether the Gemini client can be built.
func (c *Config) HasCredentials() bool {
	return c.Gemini.APIKey != ""
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
