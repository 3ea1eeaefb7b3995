package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/gotlas"
)

// parseImageTranslation splits an "ORIGINAL: ... TRANSLATION: ..." reply.
// A missing marker makes that half the whole reply.
func parseImageTranslation(reply string) *gotlas.ImageTranslation {
	original, translated := reply, reply

	o := strings.Index(reply, "ORIGINAL:")
	t := strings.Index(reply, "TRANSLATION:")

	if o >= 0 {
		end := len(reply)
		if t > o {
			end = t
		}
		original = strings.TrimSpace(reply[o+len("ORIGINAL:") : end])
	}
	if t >= 0 {
		translated = strings.TrimSpace(reply[t+len("TRANSLATION:"):])
	}

	return &gotlas.ImageTranslation{OriginalText: original, TranslatedText: translated}
}

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseExamples accepts {"examples": [...]}, any object holding an array,
// a bare array, or failing all of those one sentence per line.
func parseExamples(reply string) ([]string, error) {
	content := stripCodeFence(reply)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if arr, ok := obj["examples"].([]interface{}); ok {
			return toStringSlice(arr), nil
		}
		for _, v := range obj {
			if arr, ok := v.([]interface{}); ok {
				return toStringSlice(arr), nil
			}
		}
		return nil, &gotlas.ProviderError{Message: "invalid examples response: no array found"}
	}

	var arr []interface{}
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		return toStringSlice(arr), nil
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•0123456789.)"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, &gotlas.ProviderError{Message: "empty examples response"}
	}
	return lines, nil
}

func toStringSlice(arr []interface{}) []string {
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			result = append(result, s)
		} else if v != nil {
			result = append(result, fmt.Sprintf("%v", v))
		}
	}
	return result
}

// vocabularyItem is the reply shape for one mined item. Some models answer
// with snake_case keys, so both spellings are read.
type vocabularyItem struct {
	Word           string `json:"word"`
	Phrase         string `json:"phrase"`
	Translation    string `json:"translation"`
	Explanation    string `json:"explanation"`
	ExampleSource  string `json:"exampleSource"`
	ExampleTarget  string `json:"exampleTarget"`
	ExampleSource2 string `json:"example_source"`
	ExampleTarget2 string `json:"example_target"`
}

func (v vocabularyItem) item() gotlas.VocabularyItem {
	word := v.Word
	if word == "" {
		word = v.Phrase
	}
	src, tgt := v.ExampleSource, v.ExampleTarget
	if src == "" {
		src = v.ExampleSource2
	}
	if tgt == "" {
		tgt = v.ExampleTarget2
	}
	return gotlas.VocabularyItem{
		Word:          strings.TrimSpace(word),
		Translation:   strings.TrimSpace(v.Translation),
		Explanation:   strings.TrimSpace(v.Explanation),
		ExampleSource: strings.TrimSpace(src),
		ExampleTarget: strings.TrimSpace(tgt),
	}
}

// parseVocabularyItems accepts {"items": [...]}, any object holding an
// array of items, or a bare array. Items without a word or translation are
// dropped.
func parseVocabularyItems(reply string) ([]gotlas.VocabularyItem, error) {
	content := []byte(stripCodeFence(reply))

	var raw []vocabularyItem
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(content, &obj); err == nil {
		found := false
		if msg, ok := obj["items"]; ok {
			found = json.Unmarshal(msg, &raw) == nil
		}
		if !found {
			for _, msg := range obj {
				if json.Unmarshal(msg, &raw) == nil {
					found = true
					break
				}
			}
		}
		if !found {
			return nil, &gotlas.ProviderError{Message: "invalid article analysis response: no items found"}
		}
	} else if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &gotlas.ProviderError{Message: "invalid article analysis response", Cause: err}
	}

	items := make([]gotlas.VocabularyItem, 0, len(raw))
	for _, r := range raw {
		item := r.item()
		if item.Word == "" || item.Translation == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
