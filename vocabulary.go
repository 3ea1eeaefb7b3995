package gotlas

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

// ReviewInterval is how long after a review an entry becomes due again.
const ReviewInterval = 24 * time.Hour

// VocabularyStore is a bounded, newest-first notebook of saved translations.
// Entries are unique by (lower(originalText), sourceLanguage, targetLanguage).
type VocabularyStore struct {
	mu      sync.RWMutex
	entries []VocabularyEntry
	store   SnapshotStore
	cfg     storeConfig
}

// NewVocabularyStore creates a vocabulary store and loads any existing snapshot.
// A nil store keeps the notebook in memory only.
func NewVocabularyStore(store SnapshotStore, opts ...StoreOption) *VocabularyStore {
	cfg := newStoreConfig(VocabularyKey, MaxVocabularySize, opts)
	return &VocabularyStore{
		entries: loadSnapshot[VocabularyEntry](store, cfg),
		store:   store,
		cfg:     cfg,
	}
}

// Add saves a new entry. If an entry with the same dedup key exists the
// store is left unchanged and Add returns the existing entry and false.
func (v *VocabularyStore) Add(draft VocabularyDraft) (VocabularyEntry, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := VocabularyKeyFor(draft.OriginalText, draft.SourceLanguage, draft.TargetLanguage)
	for _, e := range v.entries {
		if VocabularyKeyFor(e.OriginalText, e.SourceLanguage, e.TargetLanguage) == key {
			return cloneEntry(e), false
		}
	}

	entry := VocabularyEntry{
		ID:               v.cfg.newID(),
		Timestamp:        v.cfg.nowMillis(),
		SourceLanguage:   draft.SourceLanguage,
		TargetLanguage:   draft.TargetLanguage,
		OriginalText:     draft.OriginalText,
		TranslatedText:   draft.TranslatedText,
		Tone:             draft.Tone,
		Context:          draft.Context,
		Notes:            draft.Notes,
		ExampleSentences: slices.Clone(draft.ExampleSentences),
		ReviewCount:      0,
		Difficulty:       ClassifyDifficulty(draft.OriginalText),
	}

	entries := make([]VocabularyEntry, 0, len(v.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, v.entries...)
	if len(entries) > v.cfg.capacity {
		entries = entries[:v.cfg.capacity]
	}
	v.entries = entries
	saveSnapshot(v.store, v.cfg, v.entries)

	return cloneEntry(entry), true
}

// Remove deletes the entry with the given id. Unknown ids are ignored.
func (v *VocabularyStore) Remove(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, e := range v.entries {
		if e.ID == id {
			v.entries = append(v.entries[:i:i], v.entries[i+1:]...)
			saveSnapshot(v.store, v.cfg, v.entries)
			return
		}
	}
}

// Update merges the non-nil fields of u into the entry with the given id.
// Returns false if no such entry exists.
func (v *VocabularyStore) Update(id string, u VocabularyUpdate) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexOf(id)
	if i < 0 {
		return false
	}

	e := &v.entries[i]
	if u.TranslatedText != nil {
		e.TranslatedText = *u.TranslatedText
	}
	if u.Notes != nil {
		e.Notes = *u.Notes
	}
	if u.ExampleSentences != nil {
		e.ExampleSentences = slices.Clone(u.ExampleSentences)
	}
	if u.Difficulty != nil {
		e.Difficulty = *u.Difficulty
	}
	if u.LastReviewed != nil {
		ts := *u.LastReviewed
		e.LastReviewed = &ts
	}
	if u.ReviewCount != nil {
		e.ReviewCount = *u.ReviewCount
	}

	saveSnapshot(v.store, v.cfg, v.entries)
	return true
}

// MarkReviewed stamps the entry as reviewed now and bumps its review count.
func (v *VocabularyStore) MarkReviewed(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexOf(id)
	if i < 0 {
		return false
	}

	now := v.cfg.nowMillis()
	v.entries[i].LastReviewed = &now
	v.entries[i].ReviewCount++

	saveSnapshot(v.store, v.cfg, v.entries)
	return true
}

// Clear empties the notebook and deletes its snapshot.
func (v *VocabularyStore) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.entries = []VocabularyEntry{}
	deleteSnapshot(v.store, v.cfg)
}

// GenerateExamples asks gen for more example sentences for the entry and
// appends them to the ones already stored. On failure the entry is left
// unchanged.
func (v *VocabularyStore) GenerateExamples(ctx context.Context, gen ExampleGenerator, id string) ([]string, error) {
	entry, ok := v.Get(id)
	if !ok {
		return nil, &ValidationError{Field: "id", Message: "vocabulary entry not found"}
	}

	existing := entry.ExampleSentences
	generated, err := gen.GenerateExamples(ctx, ExampleRequest{
		Text:     entry.TranslatedText,
		Language: entry.TargetLanguage,
		Existing: existing,
		Tone:     entry.Tone,
	})
	if err != nil {
		v.cfg.log.WithError(err).WithField("id", id).Error("failed to generate example sentences")
		return nil, &TranslationError{Message: MsgExampleGenerationFailed, Cause: err}
	}

	all := make([]string, 0, len(existing)+len(generated))
	all = append(all, existing...)
	all = append(all, generated...)
	v.Update(id, VocabularyUpdate{ExampleSentences: all})

	return all, nil
}

// Get returns the entry with the given id.
func (v *VocabularyStore) Get(id string) (VocabularyEntry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if i := v.indexOf(id); i >= 0 {
		return cloneEntry(v.entries[i]), true
	}
	return VocabularyEntry{}, false
}

// Find looks up an entry by its dedup key.
func (v *VocabularyStore) Find(originalText, source, target string) (VocabularyEntry, bool) {
	key := VocabularyKeyFor(originalText, source, target)

	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, e := range v.entries {
		if VocabularyKeyFor(e.OriginalText, e.SourceLanguage, e.TargetLanguage) == key {
			return cloneEntry(e), true
		}
	}
	return VocabularyEntry{}, false
}

// Entries returns a copy of the notebook, newest first.
func (v *VocabularyStore) Entries() []VocabularyEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]VocabularyEntry, len(v.entries))
	for i, e := range v.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Len returns the number of entries.
func (v *VocabularyStore) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

// ByLanguage returns the entries for a language pair.
func (v *VocabularyStore) ByLanguage(source, target string) []VocabularyEntry {
	return v.filter(func(e VocabularyEntry) bool {
		return e.SourceLanguage == source && e.TargetLanguage == target
	})
}

// ByDifficulty returns the entries with the given difficulty.
func (v *VocabularyStore) ByDifficulty(d Difficulty) []VocabularyEntry {
	return v.filter(func(e VocabularyEntry) bool {
		return e.Difficulty == d
	})
}

// DueForReview returns entries never reviewed or last reviewed more than
// ReviewInterval ago, least reviewed first and oldest first within a tie.
func (v *VocabularyStore) DueForReview() []VocabularyEntry {
	now := v.cfg.nowMillis()
	interval := ReviewInterval.Milliseconds()

	due := v.filter(func(e VocabularyEntry) bool {
		return e.LastReviewed == nil || *e.LastReviewed == 0 || now-*e.LastReviewed > interval
	})

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].ReviewCount != due[j].ReviewCount {
			return due[i].ReviewCount < due[j].ReviewCount
		}
		return due[i].Timestamp < due[j].Timestamp
	})
	return due
}

// Import merges entries from another notebook. Entries whose dedup key is
// already present are skipped; the rest are appended in order until the
// store is full. Added entries get a fresh id when theirs is blank or
// already taken.
func (v *VocabularyStore) Import(incoming []VocabularyEntry) *VocabularyDiff {
	v.mu.Lock()
	defer v.mu.Unlock()

	diff := DiffVocabulary(v.entries, incoming)
	room := v.cfg.capacity - len(v.entries)
	added := diff.Added
	if room < len(added) {
		if room < 0 {
			room = 0
		}
		diff.Dropped = append(diff.Dropped, added[room:]...)
		added = added[:room]
		diff.Added = added
	}
	if len(added) == 0 {
		return diff
	}

	ids := make(map[string]bool, len(v.entries)+len(added))
	for _, e := range v.entries {
		ids[e.ID] = true
	}

	for i, e := range added {
		if e.ID == "" || ids[e.ID] {
			e.ID = v.cfg.newID()
		}
		ids[e.ID] = true
		if !e.Difficulty.Valid() {
			e.Difficulty = ClassifyDifficulty(e.OriginalText)
		}
		added[i] = e
		v.entries = append(v.entries, cloneEntry(e))
	}
	saveSnapshot(v.store, v.cfg, v.entries)
	return diff
}

// cloneEntry copies e so that callers never share its slices with the store.
func cloneEntry(e VocabularyEntry) VocabularyEntry {
	e.ExampleSentences = slices.Clone(e.ExampleSentences)
	if e.LastReviewed != nil {
		ts := *e.LastReviewed
		e.LastReviewed = &ts
	}
	return e
}

func (v *VocabularyStore) indexOf(id string) int {
	for i, e := range v.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (v *VocabularyStore) filter(keep func(VocabularyEntry) bool) []VocabularyEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []VocabularyEntry
	for _, e := range v.entries {
		if keep(e) {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// IsSaved reports whether a translation is already in the notebook.
func (v *VocabularyStore) IsSaved(originalText, source, target string) bool {
	_, ok := v.Find(originalText, source, target)
	return ok
}
