package gotlas

import (
	"context"
	"sync"
	"time"
)

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int // sustained rate, 60 if unset
	BurstSize         int // bucket size, RequestsPerMinute if unset
}

// RateLimiter is a token bucket shared by all calls through a provider.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
}

// NewRateLimiter creates a limiter that starts with a full bucket.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return newRateLimiter(cfg, time.Now)
}

func newRateLimiter(cfg RateLimitConfig, now func() time.Time) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60
	}
	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm
	}

	return &RateLimiter{
		tokens:     burst,
		maxTokens:  burst,
		refillRate: rpm / 60.0,
		lastRefill: now(),
		now:        now,
	}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait, ok := r.reserve()
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// TryAcquire takes a token if one is available.
func (r *RateLimiter) TryAcquire() bool {
	_, ok := r.reserve()
	return ok
}

// reserve takes a token, or reports how long until the next one.
func (r *RateLimiter) reserve() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()
	if r.tokens >= 1 {
		r.tokens--
		return 0, true
	}
	missing := 1 - r.tokens
	return time.Duration(missing / r.refillRate * float64(time.Second)), false
}

// refill must be called with the lock held.
func (r *RateLimiter) refill() {
	now := r.now()
	elapsed := now.Sub(r.lastRefill).Seconds()
	r.lastRefill = now

	r.tokens += elapsed * r.refillRate
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
}

// Available returns the current number of tokens.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return r.tokens
}

// RateLimitedProvider wraps an AIProvider with a shared token bucket.
type RateLimitedProvider struct {
	provider AIProvider
	limiter  *RateLimiter
}

// NewRateLimitedProvider creates a rate-limited provider.
func NewRateLimitedProvider(provider AIProvider, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  NewRateLimiter(cfg),
	}
}

// Limiter returns the underlying rate limiter.
func (p *RateLimitedProvider) Limiter() *RateLimiter {
	return p.limiter
}

func rateLimited[T any](ctx context.Context, l *RateLimiter, fn func() (T, error)) (T, error) {
	if err := l.Wait(ctx); err != nil {
		var zero T
		return zero, &ProviderError{Message: "rate limit wait cancelled", Cause: err}
	}
	return fn()
}

func (p *RateLimitedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return rateLimited(ctx, p.limiter, func() (string, error) {
		return p.provider.Translate(ctx, req)
	})
}

func (p *RateLimitedProvider) TranslateImage(ctx context.Context, req ImageTranslateRequest) (*ImageTranslation, error) {
	return rateLimited(ctx, p.limiter, func() (*ImageTranslation, error) {
		return p.provider.TranslateImage(ctx, req)
	})
}

func (p *RateLimitedProvider) ExtractText(ctx context.Context, img Image) (string, error) {
	return rateLimited(ctx, p.limiter, func() (string, error) {
		return p.provider.ExtractText(ctx, img)
	})
}

func (p *RateLimitedProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	return rateLimited(ctx, p.limiter, func() (string, error) {
		return p.provider.DetectLanguage(ctx, text)
	})
}

func (p *RateLimitedProvider) GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error) {
	return rateLimited(ctx, p.limiter, func() ([]string, error) {
		return p.provider.GenerateExamples(ctx, req)
	})
}

func (p *RateLimitedProvider) AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]VocabularyItem, error) {
	return rateLimited(ctx, p.limiter, func() ([]VocabularyItem, error) {
		return p.provider.AnalyzeArticle(ctx, req)
	})
}

var _ AIProvider = (*RateLimitedProvider)(nil)
