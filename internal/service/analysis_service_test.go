package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/LazizjanAsatov/Catra/internal/config"
	"github.com/LazizjanAsatov/Catra/internal/domain"
	"github.com/LazizjanAsatov/Catra/internal/provider"
)

type fakeProvider struct {
	resp  *domain.ModelResponse
	err   error
	panic bool

	calls    int
	mimeType string
	prompt   string
	model    string
}

func (f *fakeProvider) GenerateContent(_ context.Context, _ []byte, mimeType, prompt, model string) (*domain.ModelResponse, error) {
	f.calls++
	f.mimeType, f.prompt, f.model = mimeType, prompt, model
	if f.panic {
		panic("provider exploded")
	}
	return f.resp, f.err
}

func textResponse(texts ...string) *domain.ModelResponse {
	parts := make([]domain.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, domain.Part{Text: text})
	}
	return &domain.ModelResponse{Candidates: []domain.Candidate{{Parts: parts}}}
}

func testConfig() *config.Config {
	return &config.Config{
		Gemini: config.GeminiConfig{APIKey: "test-key", Model: "gemini-test"},
		App:    config.AppConfig{ServiceName: "catra-backend", MaxUploadSize: config.DefaultMaxUploadSize},
	}
}

func jpeg() *domain.UploadedImage {
	return &domain.UploadedImage{Filename: "milk.jpg", ContentType: "image/jpeg", Size: 4, Data: []byte{0xff, 0xd8, 0xff, 0xe0}}
}

func newTestService(p provider.Provider) AnalysisService {
	return NewAnalysisService(p, testConfig(), zap.NewNop())
}

func TestAnalyzeReturnsPayload(t *testing.T) {
	fake := &fakeProvider{resp: textResponse(`Result: {"product_name":"Oat Milk","nutrition":{"calories":"45"}}`)}
	svc := newTestService(fake)

	got, err := svc.Analyze(context.Background(), jpeg())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if want := `{"product_name":"Oat Milk","nutrition":{"calories":"45"}}`; string(got.Raw()) != want {
		t.Fatalf("unexpected payload: got=%s want=%s", got.Raw(), want)
	}
	if fake.calls != 1 || fake.mimeType != "image/jpeg" || fake.model != "gemini-test" || fake.prompt != BuildPrompt() {
		t.Fatalf("unexpected provider call: %+v", fake)
	}
}

func TestAnalyzeFailures(t *testing.T) {
	cases := []struct {
		name     string
		provider provider.Provider
		img      *domain.UploadedImage
		want     error
		calls    int
	}{
		{name: "missing file", provider: &fakeProvider{}, img: nil, want: domain.ErrMissingFile},
		{name: "wrong type", provider: &fakeProvider{}, img: &domain.UploadedImage{ContentType: "text/plain", Size: 1}, want: domain.ErrInvalidUploadType},
		{name: "no credential", provider: nil, img: jpeg(), want: domain.ErrServerMisconfigured},
		{name: "provider error", provider: &fakeProvider{err: errors.New("quota exceeded")}, img: jpeg(), want: domain.ErrProviderUnavailable, calls: 1},
		{name: "empty text", provider: &fakeProvider{resp: textResponse("   ")}, img: jpeg(), want: domain.ErrEmptyResponse, calls: 1},
		{name: "not json", provider: &fakeProvider{resp: textResponse("I cannot read this label")}, img: jpeg(), want: domain.ErrUnparseableResponse, calls: 1},
		{name: "non-food", provider: &fakeProvider{resp: textResponse(`{"product_name":"unknown","nutrition":{}}`)}, img: jpeg(), want: domain.ErrNonFoodDetected, calls: 1},
		{name: "panic", provider: &fakeProvider{panic: true}, img: jpeg(), want: domain.ErrUnexpected, calls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(tc.provider)
			got, err := svc.Analyze(context.Background(), tc.img)
			if got != nil {
				t.Fatalf("expected no payload, got %s", got.Raw())
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if fake, ok := tc.provider.(*fakeProvider); ok && fake.calls != tc.calls {
				t.Fatalf("unexpected provider calls: got=%d want=%d", fake.calls, tc.calls)
			}
		})
	}
}

func TestAnalyzeUnparseableKeepsRawText(t *testing.T) {
	svc := newTestService(&fakeProvider{resp: textResponse("{bad json")})

	_, err := svc.Analyze(context.Background(), jpeg())
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if de.Kind != domain.KindUnparseableResponse || de.Raw != "{bad json" {
		t.Fatalf("unexpected error: %+v", de)
	}
}

func TestAnalyzeAccessors(t *testing.T) {
	svc := newTestService(nil)
	if svc.Model() != "gemini-test" || svc.MaxUploadSize() != config.DefaultMaxUploadSize {
		t.Fatalf("unexpected accessors: model=%s max=%d", svc.Model(), svc.MaxUploadSize())
	}
}
