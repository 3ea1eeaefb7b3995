package gotlas

// Tone controls the register the provider is asked to translate into.
type Tone string

const (
	// ToneNeutral requests a standard translation.
	ToneNeutral Tone = "neutral"
	// ToneFormal requests professional and respectful language.
	ToneFormal Tone = "formal"
	// ToneCasual requests friendly and informal language.
	ToneCasual Tone = "casual"
	// ToneTechnical requests precise and specialized language.
	ToneTechnical Tone = "technical"
)

// Difficulty is the learning difficulty of a vocabulary entry.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// InputMode selects what the translator reads from.
type InputMode string

const (
	ModeText    InputMode = "text"
	ModeImage   InputMode = "image"
	ModeArticle InputMode = "article"
)

// ArticleLevel is the learner level used when mining vocabulary from an article.
type ArticleLevel string

const (
	LevelBeginner     ArticleLevel = "beginner"
	LevelIntermediate ArticleLevel = "intermediate"
	LevelAdvanced     ArticleLevel = "advanced"
)

// ConversationEntry is one completed translation in the history.
// Timestamps are Unix epoch milliseconds.
type ConversationEntry struct {
	ID             string `json:"id"`
	Timestamp      int64  `json:"timestamp"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	Tone           Tone   `json:"tone"`
	Context        string `json:"context,omitempty"`
}

// ConversationDraft holds the caller-supplied fields of a ConversationEntry.
type ConversationDraft struct {
	SourceLanguage string
	TargetLanguage string
	OriginalText   string
	TranslatedText string
	Tone           Tone
	Context        string
}

// VocabularyEntry is a saved translation pair with review metadata.
type VocabularyEntry struct {
	ID               string     `json:"id"`
	Timestamp        int64      `json:"timestamp"`
	SourceLanguage   string     `json:"sourceLanguage"`
	TargetLanguage   string     `json:"targetLanguage"`
	OriginalText     string     `json:"originalText"`
	TranslatedText   string     `json:"translatedText"`
	Tone             Tone       `json:"tone"`
	Context          string     `json:"context,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	ExampleSentences []string   `json:"exampleSentences,omitempty"`
	LastReviewed     *int64     `json:"lastReviewed,omitempty"`
	ReviewCount      int        `json:"reviewCount"`
	Difficulty       Difficulty `json:"difficulty"`
}

// VocabularyDraft holds the caller-supplied fields of a VocabularyEntry.
type VocabularyDraft struct {
	SourceLanguage   string
	TargetLanguage   string
	OriginalText     string
	TranslatedText   string
	Tone             Tone
	Context          string
	Notes            string
	ExampleSentences []string
}

// VocabularyUpdate is a partial update. Nil fields are left untouched.
type VocabularyUpdate struct {
	TranslatedText   *string
	Notes            *string
	ExampleSentences []string
	Difficulty       *Difficulty
	LastReviewed     *int64
	ReviewCount      *int
}

// SlangDetectionResult describes slang and idioms found in a piece of text.
type SlangDetectionResult struct {
	HasSlang    bool     `json:"hasSlang"`
	SlangTerms  []string `json:"slangTerms"`
	Suggestions []string `json:"suggestions"`
	Context     string   `json:"context"`
}

// Image is an in-memory image payload.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// ImageTranslation is the result of translating the text found in an image.
type ImageTranslation struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
}

// VocabularyItem is a word or phrase mined from an article.
type VocabularyItem struct {
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Explanation   string `json:"explanation"`
	ExampleSource string `json:"exampleSource"`
	ExampleTarget string `json:"exampleTarget"`
}

// Draft converts an article vocabulary item into a vocabulary draft.
func (v VocabularyItem) Draft(source, target string, tone Tone) VocabularyDraft {
	notes := v.Explanation
	if v.ExampleSource != "" {
		notes += "\n\nExample: " + v.ExampleSource
	}
	var examples []string
	if v.ExampleTarget != "" {
		examples = []string{v.ExampleTarget}
	}
	return VocabularyDraft{
		SourceLanguage:   source,
		TargetLanguage:   target,
		OriginalText:     v.Word,
		TranslatedText:   v.Translation,
		Tone:             tone,
		Notes:            notes,
		ExampleSentences: examples,
	}
}

// Result is the outcome of a successful Translator.Translate call.
type Result struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
	Tone           Tone
	Mode           InputMode
	Recorded       bool // Whether the result was appended to history
}

const (
	// MaxHistorySize bounds the conversation history.
	MaxHistorySize = 100
	// MaxVocabularySize bounds the vocabulary notebook.
	MaxVocabularySize = 500
	// MaxExampleSentences bounds a single example generation call.
	MaxExampleSentences = 3
	// MaxImageSize is the largest image accepted for translation.
	MaxImageSize = 10 * 1024 * 1024
	// MaxArticleLength is the number of runes of article text sent for analysis.
	MaxArticleLength = 8000

	// HistoryKey is the snapshot key of the conversation history.
	HistoryKey = "ai-translator-conversation-history"
	// VocabularyKey is the snapshot key of the vocabulary notebook.
	VocabularyKey = "ai-translator-vocabulary"
)
