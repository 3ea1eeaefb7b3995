package gotlas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// mapStore is an in-memory SnapshotStore with optional failure injection.
type mapStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string][]byte)}
}

func (s *mapStore) Load(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	d, ok := s.data[key]
	return d, ok, nil
}

func (s *mapStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *mapStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *mapStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

var errBoom = errors.New("boom")

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// seqIDs returns an IDGenerator producing id-1, id-2, ...
func seqIDs() IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testStoreOptions(clock *testClock) []StoreOption {
	return []StoreOption{
		WithClock(clock.Now),
		WithIDGenerator(seqIDs()),
		WithStoreLogger(quietLogger()),
	}
}

// fakeProvider is a scriptable AIProvider.
type fakeProvider struct {
	mu sync.Mutex

	translations map[string]string
	translateErr error
	image        *ImageTranslation
	imageErr     error
	extracted    string
	extractErr   error
	language     string
	detectErr    error
	examples     []string
	examplesErr  error
	items        []VocabularyItem
	articleErr   error

	translateCalls int
	detectCalls    int
	lastTranslate  TranslateRequest
	lastImage      ImageTranslateRequest
	lastExamples   ExampleRequest
	lastArticle    ArticleRequest
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		translations: map[string]string{
			"Hello":       "Hola",
			"Hello World": "Hola Mundo",
		},
		language: "en",
	}
}

func (f *fakeProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translateCalls++
	f.lastTranslate = req
	if f.translateErr != nil {
		return "", f.translateErr
	}
	if tr, ok := f.translations[req.Text]; ok {
		return tr, nil
	}
	return "[" + req.Text + "]", nil
}

func (f *fakeProvider) TranslateImage(ctx context.Context, req ImageTranslateRequest) (*ImageTranslation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastImage = req
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return f.image, nil
}

func (f *fakeProvider) ExtractText(ctx context.Context, img Image) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.extracted, f.extractErr
}

func (f *fakeProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detectCalls++
	return f.language, f.detectErr
}

func (f *fakeProvider) GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastExamples = req
	return f.examples, f.examplesErr
}

func (f *fakeProvider) AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]VocabularyItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastArticle = req
	return f.items, f.articleErr
}

func (f *fakeProvider) calls() (translate, detect int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translateCalls, f.detectCalls
}

var _ AIProvider = (*fakeProvider)(nil)
