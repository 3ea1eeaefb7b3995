package gotlas

import (
	"errors"
	"fmt"
)

// User-facing failure messages. Provider and storage details never reach the user.
const (
	MsgTranslationFailed       = "Translation failed. Please try again."
	MsgLanguageDetectionFailed = "Language detection failed. Please try again."
	MsgImageProcessingFailed   = "Failed to process image. Please try again."
	MsgExampleGenerationFailed = "Failed to generate example sentences. Please try again."
	MsgSpeechRecognitionFailed = "Speech recognition failed. Please try again."
	MsgSpeechNoSpeech          = "No speech detected. Please try speaking again."
	MsgSpeechMicrophoneDenied  = "Microphone access denied. Please allow microphone access."
	MsgSpeechSynthesisFailed   = "Speech synthesis failed. Please try again."
	MsgArticleFetchFailed      = "Failed to fetch article from URL. Please check the URL and try again."
	MsgArticleAnalysisFailed   = "Failed to analyze article. Please try again."
	MsgEmptyText               = "Please enter text to translate"
	MsgEmptyArticle            = "Please enter article text to analyze"
	MsgInvalidImage            = "Please select a valid image file"
	MsgImageTooLarge           = "Image file size must be less than 10MB"
	MsgNoImage                 = "Please select an image to translate"
	MsgNothingToSave           = "Nothing to save yet. Translate something first"
	MsgUnsupportedLanguage     = "Unsupported language"
)

// TranslationError is returned to callers of the orchestrator. Message is
// always one of the fixed user-facing strings.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates an AI provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// StoreError indicates a snapshot persistence failure.
type StoreError struct {
	Op    string // "load", "save" or "delete"
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("store error: %s %s", e.Op, e.Key)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates invalid input that was rejected before any provider call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserMessage returns the message that should be shown to a user for err.
// Unknown errors map to fallback.
func UserMessage(err error, fallback string) string {
	var te *TranslationError
	if errors.As(err, &te) {
		return te.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}
