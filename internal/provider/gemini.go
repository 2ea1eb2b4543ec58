package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/LazizjanAsatov/Catra/internal/config"
	"github.com/LazizjanAsatov/Catra/internal/domain"
)

// Provider sends an image and an instruction to a generative model.
type Provider interface {
	GenerateContent(ctx context.Context, image []byte, mimeType, prompt, model string) (*domain.ModelResponse, error)
}

type geminiProvider struct {
	client  *genai.Client
	timeout time.Duration
	log     *zap.Logger
}

// NewGeminiProvider returns a Provider backed by the Gemini API. The key
// must be non-empty.
func NewGeminiProvider(ctx context.Context, cfg *config.GeminiConfig, log *zap.Logger) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewError(domain.KindServerMisconfigured, "missing Gemini API key", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Info("Gemini client created",
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout))

	return &geminiProvider{
		client:  client,
		timeout: cfg.Timeout,
		log:     log,
	}, nil
}

func (p *geminiProvider) GenerateContent(ctx context.Context, image []byte, mimeType, prompt, model string) (*domain.ModelResponse, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
			{Text: prompt},
		},
	}}

	start := time.Now()
	resp, err := p.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		p.log.Error("Gemini request failed",
			zap.String("model", model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, domain.NewError(domain.KindProviderUnavailable, "Gemini request failed", err)
	}

	out := toModelResponse(resp)
	p.log.Debug("Gemini request completed",
		zap.String("model", model),
		zap.Int("candidates", len(out.Candidates)),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

func toModelResponse(resp *genai.GenerateContentResponse) *domain.ModelResponse {
	out := &domain.ModelResponse{}
	if resp == nil {
		return out
	}
	for _, candidate := range resp.Candidates {
		var c domain.Candidate
		if candidate != nil && candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part == nil {
					c.Parts = append(c.Parts, domain.Part{})
					continue
				}
				c.Parts = append(c.Parts, domain.Part{Text: part.Text})
			}
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out
}
