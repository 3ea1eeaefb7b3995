package gotlas

import "context"

// TranslateRequest contains the parameters for a text translation.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
	Tone       Tone
	Context    string // Conversation and slang context prepended to the prompt
}

// ImageTranslateRequest contains the parameters for an image translation.
type ImageTranslateRequest struct {
	Image      Image
	SourceLang string
	TargetLang string
	Tone       Tone
	Context    string
}

// ExampleRequest asks for example sentences using Text in Language.
type ExampleRequest struct {
	Text     string
	Language string
	Existing []string // Sentences the result must not repeat
	Tone     Tone
}

// ArticleRequest asks for learnable vocabulary in an article.
type ArticleRequest struct {
	Text       string
	SourceLang string
	TargetLang string
	Level      ArticleLevel
	Tone       Tone
}

// TextTranslator translates plain text.
type TextTranslator interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// ImageTranslator extracts and translates the text in an image.
type ImageTranslator interface {
	TranslateImage(ctx context.Context, req ImageTranslateRequest) (*ImageTranslation, error)
}

// TextExtractor extracts the text in an image without translating it.
type TextExtractor interface {
	ExtractText(ctx context.Context, img Image) (string, error)
}

// LanguageIdentifier returns the registry code of the language text is written in.
type LanguageIdentifier interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// ExampleGenerator produces up to MaxExampleSentences new example sentences.
type ExampleGenerator interface {
	GenerateExamples(ctx context.Context, req ExampleRequest) ([]string, error)
}

// ArticleAnalyzer mines an article for vocabulary worth learning.
type ArticleAnalyzer interface {
	AnalyzeArticle(ctx context.Context, req ArticleRequest) ([]VocabularyItem, error)
}

// AIProvider is the interface for generative AI backends.
type AIProvider interface {
	TextTranslator
	ImageTranslator
	TextExtractor
	LanguageIdentifier
	ExampleGenerator
	ArticleAnalyzer
}
