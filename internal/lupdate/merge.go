package lupdate

import (
	"github.com/snapcore/go-linguist"
)

// MergeOptions control how extracted messages are merged into an
// existing catalog.
type MergeOptions struct {
	// NoObsolete drops messages that are no longer extracted instead
	// of keeping them as vanished.
	NoObsolete bool
	// NoLocation drops all source locations.
	NoLocation bool
}

// MergeStats summarizes a merge.
type MergeStats struct {
	Kept     int
	New      int
	Vanished int
	Dropped  int
}

type mergeKey struct {
	context, source, comment string
}

func keyOf(e *linguist.Entry) mergeKey {
	return mergeKey{e.Context, e.Source, e.Comment}
}

func hasTranslation(e *linguist.Entry) bool {
	for _, t := range e.Translations {
		if t != "" {
			return true
		}
	}
	return false
}

// Merge updates existing with freshly extracted messages. Translations
// of messages still present are kept; their locations and extracted
// comments are replaced. Messages no longer present become vanished,
// or are dropped when they were never translated. Vanished messages
// that reappear become unfinished, and new messages are appended
// untranslated. A message whose numerus flag changed
// loses its translation.
//
// existing may be nil, in which case the result holds the extracted
// messages only.
func Merge(existing *linguist.File, extracted []linguist.Entry, opts MergeOptions) (*linguist.File, MergeStats) {
	var stats MergeStats
	result := &linguist.File{}
	if existing != nil {
		result.Version = existing.Version
		result.Language = existing.Language
		result.SourceLanguage = existing.SourceLanguage
	}

	fresh := make(map[mergeKey]*linguist.Entry, len(extracted))
	for i := range extracted {
		fresh[keyOf(&extracted[i])] = &extracted[i]
	}
	merged := map[mergeKey]bool{}

	if existing != nil {
		// a vanished duplicate of an active message stays vanished
		active := map[mergeKey]bool{}
		for i := range existing.Entries {
			if existing.Entries[i].Status != linguist.Vanished {
				active[keyOf(&existing.Entries[i])] = true
			}
		}
		for _, old := range existing.Entries {
			key := keyOf(&old)
			e, ok := fresh[key]
			if !ok || merged[key] || (old.Status == linguist.Vanished && active[key]) {
				// an obsolete message is only worth keeping for its
				// translation
				if opts.NoObsolete || !hasTranslation(&old) {
					stats.Dropped++
					continue
				}
				old.Status = linguist.Vanished
				stats.Vanished++
				result.Entries = append(result.Entries, old)
				continue
			}
			merged[key] = true
			stats.Kept++

			entry := old
			entry.Locations = e.Locations
			entry.ExtraComment = e.ExtraComment
			if entry.Status == linguist.Vanished {
				entry.Status = linguist.Unfinished
			}
			if entry.Numerus != e.Numerus {
				entry.Numerus = e.Numerus
				entry.Translations = nil
				entry.Status = linguist.Unfinished
			}
			result.Entries = append(result.Entries, entry)
		}
	}

	for i := range extracted {
		e := extracted[i]
		if merged[keyOf(&e)] {
			continue
		}
		merged[keyOf(&e)] = true
		stats.New++
		e.Status = linguist.Unfinished
		e.Translations = nil
		result.Entries = append(result.Entries, e)
	}

	if opts.NoLocation {
		for i := range result.Entries {
			result.Entries[i].Locations = nil
		}
	}
	return result, stats
}
