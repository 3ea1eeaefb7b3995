package gotlas

// VocabularyDiff describes how an incoming notebook relates to an existing one.
type VocabularyDiff struct {
	// Added contains entries whose dedup key is not in the existing notebook.
	Added []VocabularyEntry

	// Unchanged contains incoming entries identical in translation to an existing entry.
	Unchanged []VocabularyEntry

	// Conflicts contains incoming entries whose dedup key exists with a different translation.
	// The existing entry always wins.
	Conflicts []ConflictingEntry

	// Dropped contains entries that were new but did not fit within capacity.
	Dropped []VocabularyEntry
}

// ConflictingEntry pairs an existing entry with an incoming one sharing its dedup key.
type ConflictingEntry struct {
	Existing VocabularyEntry
	Incoming VocabularyEntry
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Unchanged int
	Conflicts int
	Dropped   int
}

// Stats returns summary statistics for the diff.
func (d *VocabularyDiff) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Unchanged: len(d.Unchanged),
		Conflicts: len(d.Conflicts),
		Dropped:   len(d.Dropped),
	}
}

// HasChanges returns true if merging would add anything.
func (d *VocabularyDiff) HasChanges() bool {
	return len(d.Added) > 0
}

// DiffVocabulary compares an incoming notebook against the existing one by
// dedup key. Incoming order is preserved, and repeated keys within incoming
// count once.
func DiffVocabulary(existing, incoming []VocabularyEntry) *VocabularyDiff {
	result := &VocabularyDiff{}

	byKey := make(map[string]VocabularyEntry, len(existing))
	for _, e := range existing {
		byKey[VocabularyKeyFor(e.OriginalText, e.SourceLanguage, e.TargetLanguage)] = e
	}

	seen := make(map[string]bool, len(incoming))
	for _, in := range incoming {
		key := VocabularyKeyFor(in.OriginalText, in.SourceLanguage, in.TargetLanguage)
		if seen[key] {
			continue
		}
		seen[key] = true

		old, exists := byKey[key]
		switch {
		case !exists:
			result.Added = append(result.Added, in)
		case old.TranslatedText == in.TranslatedText:
			result.Unchanged = append(result.Unchanged, in)
		default:
			result.Conflicts = append(result.Conflicts, ConflictingEntry{Existing: old, Incoming: in})
		}
	}

	return result
}
