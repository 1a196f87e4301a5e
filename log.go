package linguist

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	// Logger is the logger used by package linguist. It discards
	// everything until replaced.
	Logger = zerolog.Nop()

	// missingOnce deduplicates missing translation logs. The key is
	// language, context, source and comment joined by NUL.
	missingOnce sync.Map
)

func logMissingOnce(language, context, source, comment string) {
	id := language + "\x00" + context + "\x00" + source + "\x00" + comment
	if _, loaded := missingOnce.LoadOrStore(id, struct{}{}); !loaded {
		Logger.Warn().
			Str("language", language).
			Str("context", context).
			Str("source", source).
			Str("comment", comment).
			Msg("missing translation")
	}
}
