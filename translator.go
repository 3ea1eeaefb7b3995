package gotlas

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const (
	// SlangDebounceDelay is the quiet period before slang analysis runs on typed input.
	SlangDebounceDelay = 500 * time.Millisecond
	// DetectDebounceDelay is the quiet period before automatic language detection.
	DetectDebounceDelay = 1000 * time.Millisecond

	minSlangRunes  = 3 // slang analysis needs more than two characters
	minDetectRunes = 4 // detection needs more than three characters

	contextSimilar = "Similar translation found"
	contextImage   = "Image translation"
)

// Translator is a single translation session. It owns the current input,
// language pair, tone and mode, and composes history, vocabulary and slang
// detection around calls to an AIProvider.
//
// A Translator is safe for concurrent use, but it does not serialise
// translations: callers that must not overlap requests should check
// IsTranslating.
type Translator struct {
	provider AIProvider
	history  *HistoryStore
	vocab    *VocabularyStore
	slang    *SlangDetector
	detector *LanguageDetector
	log      logrus.FieldLogger

	autoDetect        bool
	autoSlang         bool
	backgroundTimeout time.Duration
	slangDebounce     *Debouncer
	detectDebounce    *Debouncer
	onSlang           func(SlangDetectionResult)
	onDetect          func(code string)

	mu          sync.Mutex
	source      string
	target      string
	tone        Tone
	mode        InputMode
	input       string
	image       *Image
	slangResult *SlangDetectionResult
	last        *Result
	lastAdded   string
	translating int
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithLanguages sets the initial source and target languages.
func WithLanguages(source, target string) TranslatorOption {
	return func(t *Translator) {
		t.source = source
		t.target = target
	}
}

// WithTone sets the initial tone.
func WithTone(tone Tone) TranslatorOption {
	return func(t *Translator) {
		t.tone = tone
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) TranslatorOption {
	return func(t *Translator) {
		t.log = log
	}
}

// WithSlangDetector replaces the default slang detector.
func WithSlangDetector(d *SlangDetector) TranslatorOption {
	return func(t *Translator) {
		t.slang = d
	}
}

// WithAutoDetect enables debounced language detection on SetInput.
func WithAutoDetect(enabled bool) TranslatorOption {
	return func(t *Translator) {
		t.autoDetect = enabled
	}
}

// WithSlangAnalysis enables debounced slang analysis on SetInput.
func WithSlangAnalysis(enabled bool) TranslatorOption {
	return func(t *Translator) {
		t.autoSlang = enabled
	}
}

// WithDebounceDelays overrides the slang and detection quiet periods.
func WithDebounceDelays(slang, detect time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.slangDebounce = NewDebouncer(slang)
		t.detectDebounce = NewDebouncer(detect)
	}
}

// WithBackgroundTimeout bounds provider calls made by debounced detection.
func WithBackgroundTimeout(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.backgroundTimeout = d
	}
}

// OnSlangResult registers a callback for completed background slang analysis.
func OnSlangResult(fn func(SlangDetectionResult)) TranslatorOption {
	return func(t *Translator) {
		t.onSlang = fn
	}
}

// OnLanguageDetected registers a callback invoked when background detection
// switches the source language.
func OnLanguageDetected(fn func(code string)) TranslatorOption {
	return func(t *Translator) {
		t.onDetect = fn
	}
}

// NewTranslator creates a translation session. Nil stores are replaced with
// in-memory ones.
func NewTranslator(provider AIProvider, history *HistoryStore, vocab *VocabularyStore, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider:          provider,
		history:           history,
		vocab:             vocab,
		log:               logrus.StandardLogger(),
		backgroundTimeout: 30 * time.Second,
		slangDebounce:     NewDebouncer(SlangDebounceDelay),
		detectDebounce:    NewDebouncer(DetectDebounceDelay),
		source:            DefaultLanguage,
		target:            "es",
		tone:              ToneNeutral,
		mode:              ModeText,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.history == nil {
		t.history = NewHistoryStore(nil)
	}
	if t.vocab == nil {
		t.vocab = NewVocabularyStore(nil)
	}
	if t.slang == nil {
		t.slang = NewSlangDetector()
	}
	t.detector = NewLanguageDetector(provider, t.log)

	return t
}

// Session is a read-only snapshot of the translator state.
type Session struct {
	SourceLanguage string
	TargetLanguage string
	Tone           Tone
	Mode           InputMode
	Input          string
	Image          *Image
	Slang          *SlangDetectionResult
	Last           *Result
	Translating    bool
}

// State returns a snapshot of the session.
func (t *Translator) State() Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Session{
		SourceLanguage: t.source,
		TargetLanguage: t.target,
		Tone:           t.tone,
		Mode:           t.mode,
		Input:          t.input,
		Image:          t.image,
		Translating:    t.translating > 0,
	}
	if t.slangResult != nil {
		r := *t.slangResult
		s.Slang = &r
	}
	if t.last != nil {
		r := *t.last
		s.Last = &r
	}
	return s
}

// IsTranslating reports whether a provider call is in flight.
func (t *Translator) IsTranslating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.translating > 0
}

// History returns the conversation history store.
func (t *Translator) History() *HistoryStore {
	return t.history
}

// Vocabulary returns the vocabulary store.
func (t *Translator) Vocabulary() *VocabularyStore {
	return t.vocab
}

// SetInput replaces the input text, resets history dedup and schedules the
// background passes.
func (t *Translator) SetInput(text string) {
	t.mu.Lock()
	t.input = text
	t.lastAdded = ""
	t.slangResult = nil
	t.mu.Unlock()

	t.scheduleSlang()
	t.scheduleDetect()
}

// SetLanguages sets the source and target languages.
func (t *Translator) SetLanguages(source, target string) error {
	if !IsSupported(source) {
		return &ValidationError{Field: "source", Message: MsgUnsupportedLanguage + ": " + source}
	}
	if !IsSupported(target) {
		return &ValidationError{Field: "target", Message: MsgUnsupportedLanguage + ": " + target}
	}

	t.mu.Lock()
	t.source = source
	t.target = target
	t.slangResult = nil
	t.mu.Unlock()

	t.scheduleSlang()
	return nil
}

// SwapLanguages exchanges source and target. If a translation is showing it
// becomes the new input.
func (t *Translator) SwapLanguages() {
	t.mu.Lock()
	t.source, t.target = t.target, t.source
	t.slangResult = nil
	if t.last != nil && t.last.TranslatedText != "" {
		t.input = t.last.TranslatedText
		t.last = nil
		t.lastAdded = ""
	}
	t.mu.Unlock()

	t.scheduleSlang()
}

// SetTone sets the tone.
func (t *Translator) SetTone(tone Tone) error {
	if !IsValidTone(tone) {
		return &ValidationError{Field: "tone", Message: "Unsupported tone: " + string(tone)}
	}

	t.mu.Lock()
	t.tone = tone
	t.mu.Unlock()
	return nil
}

// SetMode switches the input mode. Leaving text mode clears the slang
// result; entering text mode discards any selected image.
func (t *Translator) SetMode(mode InputMode) {
	t.mu.Lock()
	t.mode = mode
	t.slangResult = nil
	if mode == ModeText {
		t.image = nil
	}
	t.mu.Unlock()

	t.scheduleSlang()
}

// ValidateImage checks that img is an image no larger than MaxImageSize.
func ValidateImage(img Image) error {
	if !strings.HasPrefix(img.MIMEType, "image/") {
		return &ValidationError{Field: "image", Message: MsgInvalidImage}
	}
	if len(img.Data) > MaxImageSize {
		return &ValidationError{Field: "image", Message: MsgImageTooLarge}
	}
	return nil
}

// SetImage validates img, extracts its text and selects it for translation.
// The extracted text becomes the input. On failure the previous image is kept.
func (t *Translator) SetImage(ctx context.Context, img Image) (string, error) {
	if err := ValidateImage(img); err != nil {
		return "", err
	}

	text, err := t.provider.ExtractText(ctx, img)
	if err != nil {
		t.log.WithError(err).WithField("image", img.Name).Error("text extraction failed")
		return "", &TranslationError{Message: MsgImageProcessingFailed, Cause: err}
	}

	t.mu.Lock()
	t.image = &img
	t.input = text
	t.lastAdded = ""
	t.mu.Unlock()

	return text, nil
}

// ClearImage discards the selected image.
func (t *Translator) ClearImage() {
	t.mu.Lock()
	t.image = nil
	t.mu.Unlock()
}

// Translate translates the current input (or image, in image mode) and
// records the result in history.
//
// Text translations are recorded once per (input, languages, tone); asking
// again without changing the input returns a fresh translation without a
// second history entry. Image translations are always recorded.
func (t *Translator) Translate(ctx context.Context) (*Result, error) {
	t.mu.Lock()
	mode, input, img := t.mode, t.input, t.image
	source, target, tone := t.source, t.target, t.tone
	slang := t.slangResult
	t.mu.Unlock()

	if mode == ModeImage {
		if img == nil {
			return nil, &ValidationError{Field: "image", Message: MsgNoImage}
		}
		return t.translateImage(ctx, *img, source, target, tone)
	}

	if strings.TrimSpace(input) == "" {
		return nil, &ValidationError{Field: "text", Message: MsgEmptyText}
	}
	return t.translateText(ctx, input, source, target, tone, slang)
}

func (t *Translator) translateText(ctx context.Context, input, source, target string, tone Tone, slang *SlangDetectionResult) (*Result, error) {
	defer t.begin()()

	prompt := t.history.ContextFor(source, target, tone)
	if slang != nil && slang.HasSlang && slang.Context != "" {
		if prompt != "" {
			prompt += "\n\n"
		}
		prompt += slang.Context
	}

	translated, err := t.provider.Translate(ctx, TranslateRequest{
		Text:       input,
		SourceLang: source,
		TargetLang: target,
		Tone:       tone,
		Context:    prompt,
	})
	if err != nil {
		t.log.WithError(err).WithFields(logrus.Fields{
			"source": source,
			"target": target,
		}).Error("translation failed")
		return nil, &TranslationError{Message: MsgTranslationFailed, Cause: err}
	}

	result := &Result{
		OriginalText:   input,
		TranslatedText: translated,
		SourceLanguage: source,
		TargetLanguage: target,
		Tone:           tone,
		Mode:           ModeText,
	}

	if strings.TrimSpace(translated) != "" {
		key := TranslationKey(input, source, target, tone)

		t.mu.Lock()
		record := t.lastAdded != key
		if record {
			t.lastAdded = key
		}
		t.mu.Unlock()

		if record {
			note := ""
			if len(t.history.Similar(input, source, target, tone)) > 0 {
				note = contextSimilar
			}
			t.history.Add(ConversationDraft{
				SourceLanguage: source,
				TargetLanguage: target,
				OriginalText:   input,
				TranslatedText: translated,
				Tone:           tone,
				Context:        note,
			})
			result.Recorded = true
		}
	}

	t.setLast(result)
	return result, nil
}

func (t *Translator) translateImage(ctx context.Context, img Image, source, target string, tone Tone) (*Result, error) {
	defer t.begin()()

	res, err := t.provider.TranslateImage(ctx, ImageTranslateRequest{
		Image:      img,
		SourceLang: source,
		TargetLang: target,
		Tone:       tone,
		Context:    t.history.ContextFor(source, target, tone),
	})
	if err != nil {
		t.log.WithError(err).WithField("image", img.Name).Error("image translation failed")
		return nil, &TranslationError{Message: MsgImageProcessingFailed, Cause: err}
	}

	t.history.Add(ConversationDraft{
		SourceLanguage: source,
		TargetLanguage: target,
		OriginalText:   res.OriginalText,
		TranslatedText: res.TranslatedText,
		Tone:           tone,
		Context:        contextImage,
	})

	result := &Result{
		OriginalText:   res.OriginalText,
		TranslatedText: res.TranslatedText,
		SourceLanguage: source,
		TargetLanguage: target,
		Tone:           tone,
		Mode:           ModeImage,
		Recorded:       true,
	}
	t.setLast(result)
	return result, nil
}

// DetectLanguage detects the language of the current input and switches the
// source language if it differs. Blank input leaves the source unchanged.
func (t *Translator) DetectLanguage(ctx context.Context) string {
	t.mu.Lock()
	input, source := t.input, t.source
	t.mu.Unlock()

	if strings.TrimSpace(input) == "" {
		return source
	}

	code := t.detector.Detect(ctx, input)
	t.applyDetected(code)
	return code
}

// AnalyzeSlang runs slang analysis on the current input immediately.
func (t *Translator) AnalyzeSlang() SlangDetectionResult {
	t.mu.Lock()
	input, source := t.input, t.source
	t.mu.Unlock()

	result := t.slang.Analyze(input, source)

	t.mu.Lock()
	t.slangResult = &result
	t.mu.Unlock()
	return result
}

// GenerateExamples asks the provider for example sentences using the current
// input in the target language. The result is not persisted.
func (t *Translator) GenerateExamples(ctx context.Context) ([]string, error) {
	t.mu.Lock()
	input, target, tone, last := t.input, t.target, t.tone, t.last
	t.mu.Unlock()

	if strings.TrimSpace(input) == "" || last == nil || strings.TrimSpace(last.TranslatedText) == "" {
		return nil, &ValidationError{Field: "text", Message: MsgNothingToSave}
	}

	examples, err := t.provider.GenerateExamples(ctx, ExampleRequest{
		Text:     input,
		Language: target,
		Tone:     tone,
	})
	if err != nil {
		t.log.WithError(err).Error("example generation failed")
		return nil, &TranslationError{Message: MsgExampleGenerationFailed, Cause: err}
	}
	return examples, nil
}

// SaveTranslation saves the current translation to the vocabulary notebook.
// added is false if the pair was already saved.
func (t *Translator) SaveTranslation(notes string) (entry VocabularyEntry, added bool, err error) {
	t.mu.Lock()
	last := t.last
	t.mu.Unlock()

	if last == nil || strings.TrimSpace(last.TranslatedText) == "" {
		return VocabularyEntry{}, false, &ValidationError{Field: "translation", Message: MsgNothingToSave}
	}

	entry, added = t.vocab.Add(VocabularyDraft{
		SourceLanguage: last.SourceLanguage,
		TargetLanguage: last.TargetLanguage,
		OriginalText:   last.OriginalText,
		TranslatedText: last.TranslatedText,
		Tone:           last.Tone,
		Notes:          notes,
	})
	return entry, added, nil
}

// SavedEntryID returns the id of the vocabulary entry matching the current
// translation, or "" if it has not been saved.
func (t *Translator) SavedEntryID() string {
	t.mu.Lock()
	last := t.last
	t.mu.Unlock()

	if last == nil || last.TranslatedText == "" || last.OriginalText == "" {
		return ""
	}

	for _, e := range t.vocab.ByLanguage(last.SourceLanguage, last.TargetLanguage) {
		if strings.EqualFold(e.OriginalText, last.OriginalText) && strings.EqualFold(e.TranslatedText, last.TranslatedText) {
			return e.ID
		}
	}
	return ""
}

// UseHistoryEntry restores input, tone and languages from a history entry.
func (t *Translator) UseHistoryEntry(id string) error {
	entry, ok := t.history.Get(id)
	if !ok {
		return &ValidationError{Field: "id", Message: "history entry not found"}
	}

	t.mu.Lock()
	t.input = entry.OriginalText
	t.tone = entry.Tone
	t.source = entry.SourceLanguage
	t.target = entry.TargetLanguage
	t.lastAdded = ""
	t.mu.Unlock()

	t.scheduleSlang()
	return nil
}

// AnalyzeArticle mines the current input for vocabulary. Text beyond
// MaxArticleLength runes is not sent.
func (t *Translator) AnalyzeArticle(ctx context.Context, level ArticleLevel) ([]VocabularyItem, error) {
	t.mu.Lock()
	input, source, target, tone := t.input, t.source, t.target, t.tone
	t.mu.Unlock()

	if strings.TrimSpace(input) == "" {
		return nil, &ValidationError{Field: "article", Message: MsgEmptyArticle}
	}

	defer t.begin()()

	items, err := t.provider.AnalyzeArticle(ctx, ArticleRequest{
		Text:       TruncateRunes(input, MaxArticleLength),
		SourceLang: source,
		TargetLang: target,
		Level:      level,
		Tone:       tone,
	})
	if err != nil {
		t.log.WithError(err).Error("article analysis failed")
		return nil, &TranslationError{Message: MsgArticleAnalysisFailed, Cause: err}
	}
	return items, nil
}

// SaveArticleItems adds mined items to the vocabulary and returns how many were new.
func (t *Translator) SaveArticleItems(items []VocabularyItem) int {
	t.mu.Lock()
	source, target, tone := t.source, t.target, t.tone
	t.mu.Unlock()

	added := 0
	for _, item := range items {
		if _, ok := t.vocab.Add(item.Draft(source, target, tone)); ok {
			added++
		}
	}
	return added
}

// Close cancels pending background work.
func (t *Translator) Close() {
	t.slangDebounce.Cancel()
	t.detectDebounce.Cancel()
}

// begin marks a provider call in flight and returns the func that ends it.
func (t *Translator) begin() func() {
	t.mu.Lock()
	t.translating++
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		t.translating--
		t.mu.Unlock()
	}
}

func (t *Translator) setLast(r *Result) {
	t.mu.Lock()
	t.last = r
	t.mu.Unlock()
}

func (t *Translator) applyDetected(code string) {
	t.mu.Lock()
	changed := code != t.source
	if changed {
		t.source = code
	}
	cb := t.onDetect
	t.mu.Unlock()

	if changed {
		t.log.WithField("language", code).Debug("source language switched by detection")
		t.scheduleSlang()
		if cb != nil {
			cb(code)
		}
	}
}

func (t *Translator) scheduleSlang() {
	if !t.autoSlang {
		return
	}

	t.mu.Lock()
	input, mode := t.input, t.mode
	if strings.TrimSpace(input) == "" || mode != ModeText {
		t.slangResult = nil
		t.mu.Unlock()
		t.slangDebounce.Cancel()
		return
	}
	t.mu.Unlock()

	t.slangDebounce.Trigger(t.runSlang)
}

func (t *Translator) runSlang(gen uint64) {
	t.mu.Lock()
	input, source := t.input, t.source
	t.mu.Unlock()

	if utf8.RuneCountInString(strings.TrimSpace(input)) < minSlangRunes {
		return
	}

	result := t.slang.Analyze(input, source)

	t.mu.Lock()
	if !t.slangDebounce.Current(gen) {
		t.mu.Unlock()
		return
	}
	t.slangResult = &result
	cb := t.onSlang
	t.mu.Unlock()

	if cb != nil {
		cb(result)
	}
}

func (t *Translator) scheduleDetect() {
	if !t.autoDetect {
		return
	}

	t.mu.Lock()
	blank := strings.TrimSpace(t.input) == ""
	t.mu.Unlock()

	if blank {
		t.detectDebounce.Cancel()
		return
	}
	t.detectDebounce.Trigger(t.runDetect)
}

func (t *Translator) runDetect(gen uint64) {
	t.mu.Lock()
	input := t.input
	t.mu.Unlock()

	if utf8.RuneCountInString(strings.TrimSpace(input)) < minDetectRunes {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.backgroundTimeout)
	defer cancel()

	code := t.detector.Detect(ctx, input)
	if !t.detectDebounce.Current(gen) {
		t.log.WithField("language", code).Debug("discarding stale detection result")
		return
	}
	t.applyDetected(code)
}

// TruncateRunes returns s cut to at most n runes.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
