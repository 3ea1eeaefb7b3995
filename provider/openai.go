package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/ZaguanLabs/gotlas"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements AIProvider using an OpenAI-compatible chat API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // default "gpt-4o-mini"; must accept images for image operations
	Temperature float32 // default 0.3
	BaseURL     string  // custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return translate(ctx, p, req)
}

func (p *OpenAIProvider) TranslateImage(ctx context.Context, req ImageTranslateRequest) (*gotlas.ImageTranslation, error) {
	return translateImage(ctx, p, req)
}

func (p *OpenAIProvider) ExtractText(ctx context.Context, img gotlas.Image) (string, error) {
	return extractText(ctx, p, img)
}

func (p *OpenAIProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	return detectLanguage(ctx, p, text)
}

func (p *OpenAIProvider) GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error) {
	return generateExamples(ctx, p, req)
}

func (p *OpenAIProvider) AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]gotlas.VocabularyItem, error) {
	return analyzeArticle(ctx, p, req)
}

func (p *OpenAIProvider) generate(ctx context.Context, g generation) (string, error) {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if g.image != nil {
		msg.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: g.prompt},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL(*g.image),
					Detail: openai.ImageURLDetailAuto,
				},
			},
		}
	} else {
		msg.Content = g.prompt
	}

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    []openai.ChatCompletionMessage{msg},
		Temperature: p.temperature,
	}
	if g.json {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &gotlas.ProviderError{
			Message:   "OpenAI API call failed (" + g.op + ")",
			Cause:     err,
			Retryable: isRetryableOpenAIError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &gotlas.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func dataURL(img gotlas.Image) string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	return isRetryableError(err)
}

var _ AIProvider = (*OpenAIProvider)(nil)
