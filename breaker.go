package gotlas

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerConfig configures the circuit breaker around a provider.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32        // consecutive failures that open the circuit
	OpenTimeout      time.Duration // how long the circuit stays open
	HalfOpenRequests uint32        // probes allowed while half-open
}

// DefaultBreakerConfig returns the defaults used when the breaker is enabled.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "ai-provider",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 1,
	}
}

// CircuitBreakerProvider stops calling a provider after repeated failures.
// While the circuit is open calls fail fast with a retryable ProviderError.
type CircuitBreakerProvider struct {
	provider AIProvider
	cb       *gobreaker.CircuitBreaker
}

// NewCircuitBreakerProvider wraps provider with a circuit breaker.
func NewCircuitBreakerProvider(provider AIProvider, cfg BreakerConfig, log logrus.FieldLogger) *CircuitBreakerProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations say nothing about provider health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}

	return &CircuitBreakerProvider{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// State returns the current breaker state.
func (p *CircuitBreakerProvider) State() gobreaker.State {
	return p.cb.State()
}

func guarded[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T
	out, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, &ProviderError{Message: "provider unavailable", Cause: err, Retryable: true}
		}
		return zero, err
	}
	return out.(T), nil
}

func (p *CircuitBreakerProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return guarded(p.cb, func() (string, error) {
		return p.provider.Translate(ctx, req)
	})
}

func (p *CircuitBreakerProvider) TranslateImage(ctx context.Context, req ImageTranslateRequest) (*ImageTranslation, error) {
	return guarded(p.cb, func() (*ImageTranslation, error) {
		return p.provider.TranslateImage(ctx, req)
	})
}

func (p *CircuitBreakerProvider) ExtractText(ctx context.Context, img Image) (string, error) {
	return guarded(p.cb, func() (string, error) {
		return p.provider.ExtractText(ctx, img)
	})
}

func (p *CircuitBreakerProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	return guarded(p.cb, func() (string, error) {
		return p.provider.DetectLanguage(ctx, text)
	})
}

func (p *CircuitBreakerProvider) GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error) {
	return guarded(p.cb, func() ([]string, error) {
		return p.provider.GenerateExamples(ctx, req)
	})
}

func (p *CircuitBreakerProvider) AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]VocabularyItem, error) {
	return guarded(p.cb, func() ([]VocabularyItem, error) {
		return p.provider.AnalyzeArticle(ctx, req)
	})
}

var _ AIProvider = (*CircuitBreakerProvider)(nil)
