package gotlas

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ExportVersion is the envelope version written by ExportVocabulary.
const ExportVersion = "1.0"

// VocabularyExport is the JSON envelope for vocabulary export/import.
type VocabularyExport struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []VocabularyEntry `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportVocabulary writes entries as an indented JSON envelope.
func ExportVocabulary(w io.Writer, entries []VocabularyEntry, metadata map[string]string) error {
	if entries == nil {
		entries = []VocabularyEntry{}
	}
	export := VocabularyExport{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ImportVocabulary reads an envelope written by ExportVocabulary. A bare
// JSON array of entries, as kept in the vocabulary snapshot, is accepted too.
// Entries missing text or languages are skipped.
func ImportVocabulary(r io.Reader) (*VocabularyExport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var export VocabularyExport
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &export.Entries); err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
	} else if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	valid := export.Entries[:0]
	for _, e := range export.Entries {
		if strings.TrimSpace(e.OriginalText) == "" || e.SourceLanguage == "" || e.TargetLanguage == "" {
			continue
		}
		valid = append(valid, e)
	}
	export.Entries = valid
	return &export, nil
}

// WriteVocabularyCSV writes saved entries as CSV, one row per entry.
func WriteVocabularyCSV(w io.Writer, entries []VocabularyEntry) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{
		"Original", "Translation", "Source Language", "Target Language",
		"Tone", "Difficulty", "Notes", "Examples", "Review Count", "Saved At",
	}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.OriginalText,
			e.TranslatedText,
			GetLanguageName(e.SourceLanguage),
			GetLanguageName(e.TargetLanguage),
			string(e.Tone),
			string(e.Difficulty),
			e.Notes,
			strings.Join(e.ExampleSentences, " | "),
			strconv.Itoa(e.ReviewCount),
			time.UnixMilli(e.Timestamp).UTC().Format(time.RFC3339),
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// WriteVocabularyItemsCSV writes vocabulary mined from an article as CSV.
func WriteVocabularyItemsCSV(w io.Writer, items []VocabularyItem) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"Word/Phrase", "Translation", "Explanation", "Example (Source)", "Example (Target)"}}
	for _, item := range items {
		rows = append(rows, []string{item.Word, item.Translation, item.Explanation, item.ExampleSource, item.ExampleTarget})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
