package gotlas

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces unique entry ids.
type IDGenerator func() string

// NewID returns a random UUID v4 string.
func NewID() string {
	return uuid.NewString()
}

// VocabularyKeyFor returns the dedup key of a vocabulary pair. Original text
// compares case-insensitively; languages compare exactly.
func VocabularyKeyFor(originalText, sourceLang, targetLang string) string {
	return strings.ToLower(originalText) + ":" + sourceLang + ":" + targetLang
}

// TranslationKey identifies a text submission for history dedup.
func TranslationKey(text, sourceLang, targetLang string, tone Tone) string {
	return text + "-" + sourceLang + "-" + targetLang + "-" + string(tone)
}
