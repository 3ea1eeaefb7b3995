package gotlas

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var specialChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// longWordRunes is the length above which a word counts as long.
const longWordRunes = 8

// ClassifyDifficulty estimates how hard a phrase is to learn.
//
// A single plain ASCII word of at most 8 characters is easy. Up to three
// words with no long word is medium. Everything else is hard. Any non-ASCII
// letter counts as a special character, so single words in non-Latin
// scripts are never easy.
func ClassifyDifficulty(text string) Difficulty {
	words := strings.Fields(text)
	count := len(words)
	if count == 0 {
		// Blank text counts as a single empty token.
		count = 1
	}
	hasSpecial := specialChars.MatchString(text)

	hasLong := false
	for _, w := range words {
		if utf8.RuneCountInString(w) > longWordRunes {
			hasLong = true
			break
		}
	}

	switch {
	case count == 1 && !hasSpecial && !hasLong:
		return DifficultyEasy
	case count <= 3 && !hasLong:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
