package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/LazizjanAsatov/Catra/internal/config"
	"github.com/LazizjanAsatov/Catra/internal/domain"
	"github.com/LazizjanAsatov/Catra/internal/provider"
)

const (
	MsgMisconfigured = "Server misconfiguration: missing Gemini API key."
	MsgUnparseable   = "Unable to parse Gemini response into JSON."
	MsgUnexpected    = "Unexpected server error while analyzing product."
)

type AnalysisService interface {
	// Analyze runs one product photo through the model and returns the
	// structured payload. Every failure is a *domain.Error.
	Analyze(ctx context.Context, img *domain.UploadedImage) (*domain.AnalysisPayload, error)
	Model() string
	MaxUploadSize() int64
}

type analysisService struct {
	provider provider.Provider
	cfg      *config.Config
	log      *zap.Logger
}

// NewAnalysisService wires the pipeline. A nil provider means no credential
// was configured; Analyze then fails with ServerMisconfigured after upload
// validation.
func NewAnalysisService(p provider.Provider, cfg *config.Config, log *zap.Logger) AnalysisService {
	return &analysisService{
		provider: p,
		cfg:      cfg,
		log:      log,
	}
}

func (s *analysisService) Model() string {
	return s.cfg.Gemini.Model
}

func (s *analysisService) MaxUploadSize() int64 {
	return s.cfg.App.MaxUploadSize
}

func (s *analysisService) Analyze(ctx context.Context, img *domain.UploadedImage) (payload *domain.AnalysisPayload, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Analysis panicked", zap.Any("panic", r))
			payload = nil
			err = domain.NewError(domain.KindUnexpected, MsgUnexpected, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := ValidateUpload(img, s.cfg.App.MaxUploadSize); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, domain.NewError(domain.KindServerMisconfigured, MsgMisconfigured, nil)
	}

	start := time.Now()
	resp, err := s.provider.GenerateContent(ctx, img.Data, img.ContentType, BuildPrompt(), s.cfg.Gemini.Model)
	if err != nil {
		if domain.KindOf(err) == domain.KindUnexpected {
			err = domain.NewError(domain.KindProviderUnavailable, "Gemini request failed", err)
		}
		return nil, err
	}

	text, err := ExtractText(resp)
	if err != nil {
		s.log.Warn("Empty model response",
			zap.String("model", s.cfg.Gemini.Model),
			zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	payload = ParseStructuredJSON(text)
	if payload == nil {
		s.log.Warn("Model response is not JSON",
			zap.Int("text_length", len(text)))
		return nil, &domain.Error{Kind: domain.KindUnparseableResponse, Message: MsgUnparseable, Raw: text}
	}

	if IsNonFood(payload) {
		s.log.Info("Non-food item detected", zap.String("filename", img.Filename))
		return nil, domain.NewError(domain.KindNonFoodDetected, MsgNonFood, nil)
	}

	s.log.Info("Product analyzed",
		zap.String("filename", img.Filename),
		zap.String("content_type", img.ContentType),
		zap.Int64("size", img.Size),
		zap.Duration("elapsed", time.Since(start)))

	return payload, nil
}
