package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ZaguanLabs/gotlas"
)

// MockProvider is an offline AIProvider for tests and demos. Unknown text
// is returned in brackets and language detection guesses from a few marker
// words.
type MockProvider struct {
	mu sync.Mutex

	Translations map[string]string // source text to translation
	Examples     []string
	Items        []gotlas.VocabularyItem
	Err          error // returned by every call when set

	CallCount   int
	LastRequest *TranslateRequest
}

// NewMockProvider creates a mock provider with a few default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":        "Hola",
			"World":        "Mundo",
			"Hello World":  "Hola Mundo",
			"Good morning": "Buenos días",
		},
	}
}

func (m *MockProvider) record() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++
	return m.Err
}

// Translate returns the scripted translation.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if err := m.record(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRequest = &req
	if tr, ok := m.Translations[req.Text]; ok {
		return tr, nil
	}
	return fmt.Sprintf("[%s]", req.Text), nil
}

// TranslateImage returns a placeholder translation of the image name.
func (m *MockProvider) TranslateImage(ctx context.Context, req ImageTranslateRequest) (*gotlas.ImageTranslation, error) {
	if err := m.record(); err != nil {
		return nil, err
	}
	return &gotlas.ImageTranslation{
		OriginalText:   req.Image.Name,
		TranslatedText: fmt.Sprintf("[%s]", req.Image.Name),
	}, nil
}

// ExtractText returns the image name.
func (m *MockProvider) ExtractText(ctx context.Context, img gotlas.Image) (string, error) {
	if err := m.record(); err != nil {
		return "", err
	}
	return img.Name, nil
}

var mockMarkers = map[string][]string{
	"es": {"hola", "gracias", "¿", "¡"},
	"fr": {"bonjour", "merci", "salut"},
	"de": {"hallo", "danke", "guten"},
	"it": {"ciao", "grazie"},
	"pt": {"obrigado", "olá"},
}

// DetectLanguage guesses from marker words and defaults to English.
func (m *MockProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	if err := m.record(); err != nil {
		return "", err
	}
	lower := strings.ToLower(text)
	for _, code := range []string{"es", "fr", "de", "it", "pt"} {
		for _, marker := range mockMarkers[code] {
			if strings.Contains(lower, marker) {
				return code, nil
			}
		}
	}
	return gotlas.DefaultLanguage, nil
}

// GenerateExamples returns the scripted examples not already known.
func (m *MockProvider) GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error) {
	if err := m.record(); err != nil {
		return nil, err
	}
	examples := m.Examples
	if examples == nil {
		examples = []string{
			fmt.Sprintf("%s (1)", req.Text),
			fmt.Sprintf("%s (2)", req.Text),
			fmt.Sprintf("%s (3)", req.Text),
		}
	}
	return freshExamples(examples, req.Existing, gotlas.MaxExampleSentences), nil
}

// AnalyzeArticle returns the scripted items.
func (m *MockProvider) AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]gotlas.VocabularyItem, error) {
	if err := m.record(); err != nil {
		return nil, err
	}
	return m.Items, nil
}

// Reset clears the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

var _ AIProvider = (*MockProvider)(nil)
