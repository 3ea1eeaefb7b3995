package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/ZaguanLabs/gotlas"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider using the Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	APIKey      string  // Gemini API key
	Model       string  // default "gemini-2.0-flash"
	Temperature float32 // default 0.3
	BaseURL     string  // custom endpoint (optional)
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, &gotlas.ProviderError{Message: "creating Gemini client", Cause: err}
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &GeminiProvider{client: client, model: model, temperature: temperature}, nil
}

func (p *GeminiProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return translate(ctx, p, req)
}

func (p *GeminiProvider) TranslateImage(ctx context.Context, req ImageTranslateRequest) (*gotlas.ImageTranslation, error) {
	return translateImage(ctx, p, req)
}

func (p *GeminiProvider) ExtractText(ctx context.Context, img gotlas.Image) (string, error) {
	return extractText(ctx, p, img)
}

func (p *GeminiProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	return detectLanguage(ctx, p, text)
}

func (p *GeminiProvider) GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error) {
	return generateExamples(ctx, p, req)
}

func (p *GeminiProvider) AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]gotlas.VocabularyItem, error) {
	return analyzeArticle(ctx, p, req)
}

func (p *GeminiProvider) generate(ctx context.Context, g generation) (string, error) {
	contents := genai.Text(g.prompt)
	if g.image != nil {
		parts := []*genai.Part{
			genai.NewPartFromText(g.prompt),
			genai.NewPartFromBytes(g.image.Data, g.image.MIMEType),
		}
		contents = []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(p.temperature),
	}
	if g.json {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", &gotlas.ProviderError{
			Message:   "Gemini API call failed (" + g.op + ")",
			Cause:     err,
			Retryable: isRetryableGeminiError(err),
		}
	}

	text := resp.Text()
	if text == "" {
		return "", &gotlas.ProviderError{
			Message:   "no response from Gemini",
			Retryable: true,
		}
	}
	return text, nil
}

func isRetryableGeminiError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return isRetryableError(err)
}

var _ AIProvider = (*GeminiProvider)(nil)
