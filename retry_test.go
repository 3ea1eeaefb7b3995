package gotlas

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(n int) RetryConfig {
	return RetryConfig{MaxRetries: n, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestWithRetry(t *testing.T) {
	retryable := &ProviderError{Message: "rate limited", Retryable: true}
	permanent := &ProviderError{Message: "invalid API key"}

	tests := []struct {
		name      string
		retries   int
		failures  []error
		wantCalls int
		wantErr   error
	}{
		{"first try", 3, nil, 1, nil},
		{"recovers", 3, []error{retryable, retryable}, 3, nil},
		{"permanent", 3, []error{permanent}, 1, permanent},
		{"exhausted", 2, []error{retryable, retryable, retryable, retryable}, 3, retryable},
		{"plain error", 3, []error{errBoom}, 1, errBoom},
		{"no retries", 0, []error{retryable}, 1, retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got, err := WithRetry(context.Background(), fastRetry(tt.retries), func() (string, error) {
				calls++
				if calls <= len(tt.failures) {
					return "", tt.failures[calls-1]
				}
				return "ok", nil
			})

			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != "ok" {
				t.Errorf("expected ok, got %q, %v", got, err)
			}
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(ctx, cfg, func() (string, error) {
		return "", &ProviderError{Message: "rate limited", Retryable: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetryConfigBackoff(t *testing.T) {
	cfg := RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second}
	for attempt, w := range want {
		if got := cfg.backoff(attempt); got != w {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, w)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"retryable provider error", &ProviderError{Retryable: true}, true},
		{"non-retryable provider error", &ProviderError{Retryable: false}, false},
		{"wrapped retryable", &TranslationError{Message: MsgTranslationFailed, Cause: &ProviderError{Retryable: true}}, true},
		{"generic error", errors.New("some error"), false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries != 3 || cfg.BaseDelay != time.Second || cfg.MaxDelay != 30*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

// flakyProvider fails the first failCount translate and detect calls.
type flakyProvider struct {
	*fakeProvider
	failCount int
	attempts  int
}

func (p *flakyProvider) fail() error {
	p.attempts++
	if p.attempts <= p.failCount {
		return &ProviderError{Message: "temporary failure", Retryable: true}
	}
	return nil
}

func (p *flakyProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if err := p.fail(); err != nil {
		return "", err
	}
	return p.fakeProvider.Translate(ctx, req)
}

func (p *flakyProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	if err := p.fail(); err != nil {
		return "", err
	}
	return p.fakeProvider.DetectLanguage(ctx, text)
}

func TestRetryableProvider(t *testing.T) {
	inner := &flakyProvider{fakeProvider: newFakeProvider(), failCount: 2}
	p := NewRetryableProvider(inner, fastRetry(3), quietLogger())

	got, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "es"})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if got != "Hola" {
		t.Errorf("expected Hola, got %q", got)
	}
	if inner.attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", inner.attempts)
	}
}

func TestRetryableProvider_GivesUp(t *testing.T) {
	inner := &flakyProvider{fakeProvider: newFakeProvider(), failCount: 10}
	p := NewRetryableProvider(inner, fastRetry(1), quietLogger())

	_, err := p.DetectLanguage(context.Background(), "Bonjour")

	if !IsRetryable(err) {
		t.Errorf("expected last provider error, got %v", err)
	}
	if inner.attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", inner.attempts)
	}
}

func TestRetryableProvider_PassesThrough(t *testing.T) {
	inner := newFakeProvider()
	inner.examples = []string{"uno"}
	inner.items = []VocabularyItem{{Word: "w"}}
	inner.image = &ImageTranslation{OriginalText: "a", TranslatedText: "b"}
	inner.extracted = "text"
	p := NewRetryableProvider(inner, fastRetry(2), nil)
	ctx := context.Background()

	if ex, err := p.GenerateExamples(ctx, ExampleRequest{Text: "x"}); err != nil || len(ex) != 1 {
		t.Errorf("GenerateExamples = %v, %v", ex, err)
	}
	if items, err := p.AnalyzeArticle(ctx, ArticleRequest{Text: "x"}); err != nil || len(items) != 1 {
		t.Errorf("AnalyzeArticle = %v, %v", items, err)
	}
	if res, err := p.TranslateImage(ctx, ImageTranslateRequest{}); err != nil || res.TranslatedText != "b" {
		t.Errorf("TranslateImage = %v, %v", res, err)
	}
	if text, err := p.ExtractText(ctx, Image{}); err != nil || text != "text" {
		t.Errorf("ExtractText = %q, %v", text, err)
	}
}
