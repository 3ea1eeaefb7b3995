package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaguanLabs/gotlas"
	"github.com/ZaguanLabs/gotlas/article"
	"github.com/ZaguanLabs/gotlas/provider"
	"github.com/ZaguanLabs/gotlas/speech"
	"github.com/ZaguanLabs/gotlas/storage"
	"github.com/sirupsen/logrus"
)

// sourceAuto asks the translator to detect the source language.
const sourceAuto = "auto"

// App holds the dependencies shared by all commands. Fields left nil are
// built from Settings on first use; tests set them directly.
type App struct {
	Flags *Flags
	Log   *logrus.Logger
	In    io.Reader

	Provider gotlas.AIProvider
	Store    storage.Store
	Fetcher  *article.Fetcher

	settings *Settings
	history  *gotlas.HistoryStore
	vocab    *gotlas.VocabularyStore
}

// NewApp creates an App that reads from stdin and logs to stderr.
func NewApp(flags *Flags) *App {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return &App{Flags: flags, Log: log, In: os.Stdin}
}

// Settings returns the configuration, loading it on first use.
func (a *App) Settings() Settings {
	if a.settings == nil {
		s := LoadSettings()
		a.settings = &s
	}
	return *a.settings
}

// setup reloads settings and configures logging once flags and config are
// parsed.
func (a *App) setup() error {
	s := LoadSettings()
	a.settings = &s
	return ConfigureLogger(a.Log, s.LogLevel, s.LogFormat)
}

// AIProvider returns the provider wrapped with the configured rate limit,
// circuit breaker and retry policy.
func (a *App) AIProvider(ctx context.Context) (gotlas.AIProvider, error) {
	if a.Provider != nil {
		return a.Provider, nil
	}

	s := a.Settings()
	if s.Provider.APIKey == "" && !strings.EqualFold(s.Provider.Name, provider.NameMock) {
		return nil, fmt.Errorf("API key required (--api-key, GOTLAS_PROVIDER_API_KEY or the provider's own environment variable)")
	}

	p, err := provider.New(ctx, s.Provider)
	if err != nil {
		return nil, err
	}

	if s.RequestsPerMinute > 0 {
		p = gotlas.NewRateLimitedProvider(p, gotlas.RateLimitConfig{RequestsPerMinute: s.RequestsPerMinute})
	}
	if s.Breaker {
		p = gotlas.NewCircuitBreakerProvider(p, gotlas.DefaultBreakerConfig(), a.Log)
	}
	if s.MaxRetries > 0 {
		cfg := gotlas.DefaultRetryConfig()
		cfg.MaxRetries = s.MaxRetries
		p = gotlas.NewRetryableProvider(p, cfg, a.Log)
	}

	a.Provider = p
	return p, nil
}

// Stores returns the history and vocabulary backed by the configured storage.
func (a *App) Stores() (*gotlas.HistoryStore, *gotlas.VocabularyStore, error) {
	if a.history != nil {
		return a.history, a.vocab, nil
	}

	if a.Store == nil {
		store, err := storage.Open(a.Settings().Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("opening storage: %w", err)
		}
		a.Store = store
	}

	a.history = gotlas.NewHistoryStore(a.Store, gotlas.WithStoreLogger(a.Log))
	a.vocab = gotlas.NewVocabularyStore(a.Store, gotlas.WithStoreLogger(a.Log))
	return a.history, a.vocab, nil
}

// Translator creates a translation session using the configured languages
// and tone. The returned flag reports whether the source is "auto".
func (a *App) Translator(ctx context.Context) (*gotlas.Translator, bool, error) {
	p, err := a.AIProvider(ctx)
	if err != nil {
		return nil, false, err
	}
	history, vocab, err := a.Stores()
	if err != nil {
		return nil, false, err
	}

	tr := gotlas.NewTranslator(p, history, vocab, gotlas.WithLogger(a.Log))

	s := a.Settings()
	auto := strings.EqualFold(s.Source, sourceAuto)
	source := gotlas.DefaultLanguage
	if !auto {
		if source, err = normalize(s.Source); err != nil {
			return nil, false, err
		}
	}
	target, err := normalize(s.Target)
	if err != nil {
		return nil, false, err
	}
	if err := tr.SetLanguages(source, target); err != nil {
		return nil, false, err
	}
	if s.Tone != "" {
		if err := tr.SetTone(s.Tone); err != nil {
			return nil, false, err
		}
	}
	return tr, auto, nil
}

// Detector returns a language detector over the configured provider.
func (a *App) Detector(ctx context.Context) (*gotlas.LanguageDetector, error) {
	p, err := a.AIProvider(ctx)
	if err != nil {
		return nil, err
	}
	return gotlas.NewLanguageDetector(p, a.Log), nil
}

// ArticleFetcher returns the article fetcher.
func (a *App) ArticleFetcher() *article.Fetcher {
	if a.Fetcher == nil {
		a.Fetcher = article.NewFetcher(article.WithLogger(a.Log))
	}
	return a.Fetcher
}

// Synthesizer returns a text-to-speech client.
func (a *App) Synthesizer() *speech.Synthesizer {
	return speech.NewSynthesizer(a.Settings().Speech, a.Log)
}

// Transcriber returns a speech-to-text client.
func (a *App) Transcriber() *speech.Transcriber {
	return speech.NewTranscriber(a.Settings().Speech, a.Log)
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// normalize maps user input onto a registry language code.
func normalize(lang string) (string, error) {
	code := gotlas.NormalizeLanguage(lang)
	if code == "" {
		return "", &gotlas.ValidationError{Field: "language", Message: gotlas.MsgUnsupportedLanguage + ": " + lang}
	}
	return code, nil
}
