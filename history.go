package gotlas

import (
	"fmt"
	"strings"
	"sync"
)

// contextWindow is the number of recent entries quoted in a translation context.
const contextWindow = 5

// HistoryStore is a bounded, newest-first log of completed translations.
// Every mutation is written through to the SnapshotStore.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []ConversationEntry
	store   SnapshotStore
	cfg     storeConfig
}

// NewHistoryStore creates a history store and loads any existing snapshot.
// A nil store keeps history in memory only.
func NewHistoryStore(store SnapshotStore, opts ...StoreOption) *HistoryStore {
	cfg := newStoreConfig(HistoryKey, MaxHistorySize, opts)
	return &HistoryStore{
		entries: loadSnapshot[ConversationEntry](store, cfg),
		store:   store,
		cfg:     cfg,
	}
}

// Add records a translation at the front of the history, evicting the
// oldest entries beyond capacity.
func (h *HistoryStore) Add(draft ConversationDraft) ConversationEntry {
	entry := ConversationEntry{
		ID:             h.cfg.newID(),
		Timestamp:      h.cfg.nowMillis(),
		SourceLanguage: draft.SourceLanguage,
		TargetLanguage: draft.TargetLanguage,
		OriginalText:   draft.OriginalText,
		TranslatedText: draft.TranslatedText,
		Tone:           draft.Tone,
		Context:        draft.Context,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]ConversationEntry, 0, len(h.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, h.entries...)
	if len(entries) > h.cfg.capacity {
		entries = entries[:h.cfg.capacity]
	}
	h.entries = entries
	saveSnapshot(h.store, h.cfg, h.entries)

	return entry
}

// Remove deletes the entry with the given id. Unknown ids are ignored.
func (h *HistoryStore) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, e := range h.entries {
		if e.ID == id {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			saveSnapshot(h.store, h.cfg, h.entries)
			return
		}
	}
}

// Clear empties the history and deletes its snapshot.
func (h *HistoryStore) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []ConversationEntry{}
	deleteSnapshot(h.store, h.cfg)
}

// Entries returns a copy of the history, newest first.
func (h *HistoryStore) Entries() []ConversationEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]ConversationEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *HistoryStore) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Get returns the entry with the given id.
func (h *HistoryStore) Get(id string) (ConversationEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return ConversationEntry{}, false
}

// ContextFor renders up to five of the newest translations with the same
// language pair and tone as a prompt prefix. Returns "" if there are none.
func (h *HistoryStore) ContextFor(source, target string, tone Tone) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var pairs []string
	for _, e := range h.entries {
		if e.SourceLanguage != source || e.TargetLanguage != target || e.Tone != tone {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("Original: \"%s\"\nTranslation: \"%s\"", e.OriginalText, e.TranslatedText))
		if len(pairs) == contextWindow {
			break
		}
	}

	if len(pairs) == 0 {
		return ""
	}

	return fmt.Sprintf("Previous translations for %s to %s (%s tone):\n%s", source, target, tone, strings.Join(pairs, "\n\n"))
}

// Similar returns entries with the same language pair and tone whose original
// text contains, or is contained in, text (case-insensitive). Store order is kept.
func (h *HistoryStore) Similar(text, source, target string, tone Tone) []ConversationEntry {
	query := strings.ToLower(strings.TrimSpace(text))

	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []ConversationEntry
	for _, e := range h.entries {
		if e.SourceLanguage != source || e.TargetLanguage != target || e.Tone != tone {
			continue
		}
		original := strings.ToLower(e.OriginalText)
		if strings.Contains(original, query) || strings.Contains(query, original) {
			out = append(out, e)
		}
	}
	return out
}
