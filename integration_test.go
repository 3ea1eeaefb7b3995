package gotlas_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/gotlas"
	"github.com/ZaguanLabs/gotlas/provider"
	"github.com/ZaguanLabs/gotlas/storage"
	"github.com/sirupsen/logrus"
)

// Integration tests using all real components

func quiet() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTranslator(p gotlas.AIProvider, store gotlas.SnapshotStore) *gotlas.Translator {
	log := quiet()
	return gotlas.NewTranslator(p,
		gotlas.NewHistoryStore(store, gotlas.WithStoreLogger(log)),
		gotlas.NewVocabularyStore(store, gotlas.WithStoreLogger(log)),
		gotlas.WithLogger(log),
	)
}

func TestIntegration_BasicTranslation(t *testing.T) {
	p := provider.NewMockProvider()
	tr := newTranslator(p, storage.NewMemoryStore())
	defer tr.Close()

	tr.SetInput("Hello")
	result, err := tr.Translate(context.Background())
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.TranslatedText != "Hola" {
		t.Errorf("Expected 'Hola', got: %s", result.TranslatedText)
	}
	if !result.Recorded {
		t.Error("Expected result to be recorded in history")
	}
	if tr.History().Len() != 1 {
		t.Errorf("Expected 1 history entry, got %d", tr.History().Len())
	}
}

func TestIntegration_ConversationContext(t *testing.T) {
	p := provider.NewMockProvider()
	tr := newTranslator(p, storage.NewMemoryStore())
	defer tr.Close()
	ctx := context.Background()

	tr.SetInput("Hello")
	if _, err := tr.Translate(ctx); err != nil {
		t.Fatal(err)
	}
	tr.SetInput("Good morning")
	if _, err := tr.Translate(ctx); err != nil {
		t.Fatal(err)
	}

	got := p.LastRequest.Context
	if !strings.HasPrefix(got, "Previous translations for en to es (neutral tone):") {
		t.Errorf("Unexpected context header: %q", got)
	}
	if !strings.Contains(got, "Original: \"Hello\"\nTranslation: \"Hola\"") {
		t.Errorf("Expected previous pair in context, got: %q", got)
	}
}

func TestIntegration_FileStorePersistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	tr := newTranslator(provider.NewMockProvider(), store)
	tr.SetInput("Hello World")
	if _, err := tr.Translate(ctx); err != nil {
		t.Fatal(err)
	}
	if _, added, err := tr.SaveTranslation("greeting"); err != nil || !added {
		t.Fatalf("SaveTranslation = %v, %v", added, err)
	}
	tr.Close()

	// A second process sees the same data.
	reopened, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	history := gotlas.NewHistoryStore(reopened)
	vocab := gotlas.NewVocabularyStore(reopened)

	if history.Len() != 1 || history.Entries()[0].TranslatedText != "Hola Mundo" {
		t.Errorf("Expected persisted history, got %+v", history.Entries())
	}
	entry, ok := vocab.Find("hello world", "en", "es")
	if !ok {
		t.Fatal("Expected saved vocabulary entry after reload")
	}
	if entry.Notes != "greeting" {
		t.Errorf("Expected notes 'greeting', got %q", entry.Notes)
	}
	if entry.Difficulty != gotlas.DifficultyMedium {
		t.Errorf("Expected medium difficulty, got %s", entry.Difficulty)
	}
}

func TestIntegration_ExportImportAcrossBackends(t *testing.T) {
	src := gotlas.NewVocabularyStore(storage.NewMemoryStore())
	src.Add(gotlas.VocabularyDraft{SourceLanguage: "en", TargetLanguage: "es", OriginalText: "cat", TranslatedText: "gato", Tone: gotlas.ToneNeutral})
	src.Add(gotlas.VocabularyDraft{SourceLanguage: "en", TargetLanguage: "fr", OriginalText: "dog", TranslatedText: "chien", Tone: gotlas.ToneCasual})

	var buf bytes.Buffer
	if err := gotlas.ExportVocabulary(&buf, src.Entries(), map[string]string{"app": "gotlas"}); err != nil {
		t.Fatalf("ExportVocabulary failed: %v", err)
	}

	db, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "gotlas.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer db.Close()

	dst := gotlas.NewVocabularyStore(db)
	dst.Add(gotlas.VocabularyDraft{SourceLanguage: "en", TargetLanguage: "es", OriginalText: "cat", TranslatedText: "felino"})

	export, err := gotlas.ImportVocabulary(&buf)
	if err != nil {
		t.Fatalf("ImportVocabulary failed: %v", err)
	}
	diff := dst.Import(export.Entries)

	if len(diff.Added) != 1 || diff.Added[0].OriginalText != "dog" {
		t.Errorf("Expected dog to be added, got %+v", diff.Added)
	}
	if len(diff.Conflicts) != 1 {
		t.Errorf("Expected 1 conflict, got %d", len(diff.Conflicts))
	}
	if e, _ := dst.Find("cat", "en", "es"); e.TranslatedText != "felino" {
		t.Errorf("Existing entry must win a conflict, got %q", e.TranslatedText)
	}
	if gotlas.NewVocabularyStore(db).Len() != 2 {
		t.Error("Expected imported entries to be persisted")
	}
}

func TestIntegration_ArticleToVocabulary(t *testing.T) {
	p := provider.NewMockProvider()
	p.Items = []gotlas.VocabularyItem{
		{Word: "harbour", Translation: "puerto", Explanation: "where ships dock"},
		{Word: "tide", Translation: "marea"},
	}
	tr := newTranslator(p, storage.NewMemoryStore())
	defer tr.Close()

	tr.SetInput("The tide came into the harbour early this morning.")
	items, err := tr.AnalyzeArticle(context.Background(), gotlas.LevelIntermediate)
	if err != nil {
		t.Fatalf("AnalyzeArticle failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	if added := tr.SaveArticleItems(items); added != 2 {
		t.Errorf("Expected 2 new entries, got %d", added)
	}
	if added := tr.SaveArticleItems(items); added != 0 {
		t.Errorf("Expected saving twice to add nothing, got %d", added)
	}
	if !tr.Vocabulary().IsSaved("harbour", "en", "es") {
		t.Error("Expected harbour to be saved")
	}
}

// flakyMock fails the first n translations with a retryable error.
type flakyMock struct {
	*provider.MockProvider
	n int
}

func (m *flakyMock) Translate(ctx context.Context, req gotlas.TranslateRequest) (string, error) {
	if m.n > 0 {
		m.n--
		return "", &gotlas.ProviderError{Message: "503 unavailable", Retryable: true}
	}
	return m.MockProvider.Translate(ctx, req)
}

func TestIntegration_DecoratedProvider(t *testing.T) {
	log := quiet()
	inner := &flakyMock{MockProvider: provider.NewMockProvider(), n: 2}

	var p gotlas.AIProvider = gotlas.NewRateLimitedProvider(inner, gotlas.RateLimitConfig{RequestsPerMinute: 600})
	p = gotlas.NewCircuitBreakerProvider(p, gotlas.DefaultBreakerConfig(), log)
	p = gotlas.NewRetryableProvider(p, gotlas.RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	}, log)

	tr := newTranslator(p, storage.NewMemoryStore())
	defer tr.Close()

	tr.SetInput("World")
	result, err := tr.Translate(context.Background())
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if result.TranslatedText != "Mundo" {
		t.Errorf("Expected 'Mundo', got %q", result.TranslatedText)
	}
}

func TestIntegration_ProviderFailure(t *testing.T) {
	p := provider.NewMockProvider()
	p.Err = &gotlas.ProviderError{Message: "invalid API key"}
	tr := newTranslator(p, storage.NewMemoryStore())
	defer tr.Close()

	tr.SetInput("Hello")
	_, err := tr.Translate(context.Background())
	if err == nil {
		t.Fatal("Expected error")
	}
	if msg := gotlas.UserMessage(err, ""); msg != gotlas.MsgTranslationFailed {
		t.Errorf("Expected %q, got %q", gotlas.MsgTranslationFailed, msg)
	}
	if tr.History().Len() != 0 {
		t.Error("Failed translations must not be recorded")
	}
}
