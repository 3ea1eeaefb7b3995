// Package provider implements gotlas.AIProvider on top of hosted language
// models. OpenAIProvider talks to any OpenAI-compatible chat API;
// GeminiProvider talks to Google's Gemini API. Both share the same prompts
// and response parsing.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/gotlas"
)

// Aliases to the main package types for convenience.
type (
	AIProvider            = gotlas.AIProvider
	TranslateRequest      = gotlas.TranslateRequest
	ImageTranslateRequest = gotlas.ImageTranslateRequest
	ExampleRequest        = gotlas.ExampleRequest
	ArticleRequest        = gotlas.ArticleRequest
)

// Names accepted by New.
const (
	NameOpenAI = "openai"
	NameGemini = "gemini"
	NameMock   = "mock"
)

// Config selects and configures a provider.
type Config struct {
	Name        string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

// New creates the provider named by cfg.Name.
func New(ctx context.Context, cfg Config) (AIProvider, error) {
	switch strings.ToLower(cfg.Name) {
	case "", NameOpenAI:
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
		}), nil
	case NameGemini:
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
		})
	case NameMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}
}

// generation is a single model call.
type generation struct {
	op     string
	prompt string
	image  *gotlas.Image
	json   bool
}

// generator performs one model call and returns the raw text reply.
type generator interface {
	generate(ctx context.Context, g generation) (string, error)
}

func translate(ctx context.Context, gen generator, req TranslateRequest) (string, error) {
	out, err := gen.generate(ctx, generation{op: "translate", prompt: buildTranslatePrompt(req)})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func translateImage(ctx context.Context, gen generator, req ImageTranslateRequest) (*gotlas.ImageTranslation, error) {
	img := req.Image
	out, err := gen.generate(ctx, generation{op: "translate_image", prompt: buildImagePrompt(req), image: &img})
	if err != nil {
		return nil, err
	}
	return parseImageTranslation(out), nil
}

func extractText(ctx context.Context, gen generator, img gotlas.Image) (string, error) {
	return gen.generate(ctx, generation{op: "extract_text", prompt: extractTextPrompt, image: &img})
}

func detectLanguage(ctx context.Context, gen generator, text string) (string, error) {
	out, err := gen.generate(ctx, generation{op: "detect_language", prompt: buildDetectPrompt(text)})
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.Trim(strings.TrimSpace(out), `"'.`)), nil
}

func generateExamples(ctx context.Context, gen generator, req ExampleRequest) ([]string, error) {
	out, err := gen.generate(ctx, generation{op: "generate_examples", prompt: buildExamplesPrompt(req), json: true})
	if err != nil {
		return nil, err
	}
	examples, err := parseExamples(out)
	if err != nil {
		return nil, err
	}
	return freshExamples(examples, req.Existing, gotlas.MaxExampleSentences), nil
}

func analyzeArticle(ctx context.Context, gen generator, req ArticleRequest) ([]gotlas.VocabularyItem, error) {
	out, err := gen.generate(ctx, generation{op: "analyze_article", prompt: buildArticlePrompt(req), json: true})
	if err != nil {
		return nil, err
	}
	return parseVocabularyItems(out)
}

// freshExamples drops blanks and sentences already known, then caps the list.
func freshExamples(examples, existing []string, limit int) []string {
	seen := make(map[string]bool, len(existing)+len(examples))
	for _, e := range existing {
		seen[strings.ToLower(strings.TrimSpace(e))] = true
	}

	out := []string{}
	for _, e := range examples {
		e = strings.TrimSpace(e)
		key := strings.ToLower(e)
		if e == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
		"unavailable",
		"503",
		"502",
		"500",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
