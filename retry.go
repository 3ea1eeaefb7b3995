package gotlas

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // attempts after the first one
	BaseDelay  time.Duration // delay before the first retry, doubled each time
	MaxDelay   time.Duration // upper bound for a single delay
}

// DefaultRetryConfig returns the defaults used when retries are enabled.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// backoff returns the delay before retry number attempt (zero based).
func (c RetryConfig) backoff(attempt int) time.Duration {
	delay := c.BaseDelay * time.Duration(1<<attempt)
	if delay > c.MaxDelay || delay <= 0 {
		delay = c.MaxDelay
	}
	return delay
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry runs fn, retrying retryable errors with exponential backoff.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	return withRetry(ctx, cfg, nil, "", fn)
}

func withRetry[T any](ctx context.Context, cfg RetryConfig, log logrus.FieldLogger, op string, fn RetryFunc[T]) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == cfg.MaxRetries {
			break
		}

		delay := cfg.backoff(attempt)
		if log != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"op":      op,
				"attempt": attempt + 1,
				"delay":   delay,
			}).Warn("retrying provider call")
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether err is a ProviderError marked retryable.
// Context errors are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// RetryableProvider wraps an AIProvider with retry logic.
type RetryableProvider struct {
	provider AIProvider
	config   RetryConfig
	log      logrus.FieldLogger
}

// NewRetryableProvider creates a provider that retries retryable failures.
func NewRetryableProvider(provider AIProvider, cfg RetryConfig, log logrus.FieldLogger) *RetryableProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RetryableProvider{provider: provider, config: cfg, log: log}
}

func (p *RetryableProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return withRetry(ctx, p.config, p.log, "translate", func() (string, error) {
		return p.provider.Translate(ctx, req)
	})
}

func (p *RetryableProvider) TranslateImage(ctx context.Context, req ImageTranslateRequest) (*ImageTranslation, error) {
	return withRetry(ctx, p.config, p.log, "translate_image", func() (*ImageTranslation, error) {
		return p.provider.TranslateImage(ctx, req)
	})
}

func (p *RetryableProvider) ExtractText(ctx context.Context, img Image) (string, error) {
	return withRetry(ctx, p.config, p.log, "extract_text", func() (string, error) {
		return p.provider.ExtractText(ctx, img)
	})
}

func (p *RetryableProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	return withRetry(ctx, p.config, p.log, "detect_language", func() (string, error) {
		return p.provider.DetectLanguage(ctx, text)
	})
}

func (p *RetryableProvider) GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error) {
	return withRetry(ctx, p.config, p.log, "generate_examples", func() ([]string, error) {
		return p.provider.GenerateExamples(ctx, req)
	})
}

func (p *RetryableProvider) AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]VocabularyItem, error) {
	return withRetry(ctx, p.config, p.log, "analyze_article", func() ([]VocabularyItem, error) {
		return p.provider.AnalyzeArticle(ctx, req)
	})
}

var _ AIProvider = (*RetryableProvider)(nil)
