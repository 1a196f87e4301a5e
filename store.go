package linguist

import (
	"fmt"
	"sort"

	"github.com/snapcore/go-linguist/pluralforms"
)

type entryKey struct {
	context string
	source  string
	comment string
}

type sourceKey struct {
	context string
	source  string
}

// Store is an immutable set of messages in one language. It is safe
// for concurrent use; nothing is modified after NewStore returns.
type Store struct {
	version        string
	language       string
	sourceLanguage string

	rule    pluralforms.Rule
	hasRule bool

	unfinished    UnfinishedPolicy
	strictMissing bool

	entries  []Entry
	index    map[entryKey]int
	bySource map[sourceKey][]int
	vanished []int
}

// NewStore validates entries and indexes them for lookup.
func NewStore(language string, entries []Entry, opts ...Option) (*Store, error) {
	return newStore(&File{Language: language, Entries: entries}, newOptions(opts))
}

func newStore(f *File, o options) (*Store, error) {
	s := &Store{
		version:        f.Version,
		language:       f.Language,
		sourceLanguage: f.SourceLanguage,
		unfinished:     o.unfinished,
		strictMissing:  o.strictMissing,
		entries:        make([]Entry, 0, len(f.Entries)),
		index:          make(map[entryKey]int, len(f.Entries)),
		bySource:       make(map[sourceKey][]int, len(f.Entries)),
	}
	if o.language != "" {
		s.language = o.language
	}
	if o.rules != nil && s.language != "" {
		s.rule, s.hasRule = o.rules.Lookup(s.language)
	}

	for i := range f.Entries {
		e := f.Entries[i].clone()
		schemaError := func(format string, args ...interface{}) error {
			err := &SchemaError{Context: e.Context, Source: e.Source, Reason: fmt.Sprintf(format, args...)}
			if i < len(f.lines) {
				err.Line = f.lines[i]
			}
			return err
		}

		if e.Context == "" {
			return nil, schemaError("missing context name")
		}
		if e.Source == "" {
			return nil, schemaError("missing source text")
		}
		for _, loc := range e.Locations {
			if loc.File == "" {
				return nil, schemaError("location without a file name")
			}
		}
		if e.Numerus {
			if !s.hasRule {
				return nil, schemaError("no plural rule known for language %q", s.language)
			}
			if len(e.Translations) == 0 && e.Status != Current {
				// untranslated numerus messages may omit their forms
				e.Translations = make([]string, s.rule.Forms)
			}
			if len(e.Translations) != s.rule.Forms {
				return nil, schemaError("has %d plural forms, language %q expects %d", len(e.Translations), s.language, s.rule.Forms)
			}
		} else {
			switch len(e.Translations) {
			case 0:
				e.Translations = []string{""}
			case 1:
			default:
				return nil, schemaError("has %d translations but is not a numerus message", len(e.Translations))
			}
		}

		idx := len(s.entries)
		s.entries = append(s.entries, e)
		if e.Status == Vanished {
			s.vanished = append(s.vanished, idx)
			continue
		}
		key := entryKey{e.Context, e.Source, e.Comment}
		if _, ok := s.index[key]; ok {
			if e.Comment != "" {
				return nil, schemaError("duplicate message with comment %q", e.Comment)
			}
			return nil, schemaError("duplicate message")
		}
		s.index[key] = idx
		skey := sourceKey{e.Context, e.Source}
		s.bySource[skey] = append(s.bySource[skey], idx)
	}
	return s, nil
}

// Language returns the locale identifier of the catalog.
func (s *Store) Language() string {
	return s.language
}

// Rule returns the plural rule of the catalog language.
func (s *Store) Rule() (pluralforms.Rule, bool) {
	return s.rule, s.hasRule
}

// Len returns the number of messages, vanished ones included.
func (s *Store) Len() int {
	return len(s.entries)
}

// Find returns a copy of the current or unfinished message with the
// given key.
func (s *Store) Find(context, source, comment string) (Entry, bool) {
	idx, ok := s.index[entryKey{context, source, comment}]
	if !ok {
		return Entry{}, false
	}
	return s.entries[idx].clone(), true
}

// Candidates returns copies of the current and unfinished messages of
// a context with the given source text, whatever their comment.
func (s *Store) Candidates(context, source string) []Entry {
	idxs := s.bySource[sourceKey{context, source}]
	if len(idxs) == 0 {
		return nil
	}
	result := make([]Entry, len(idxs))
	for i, idx := range idxs {
		result[i] = s.entries[idx].clone()
	}
	return result
}

// Entries returns copies of all messages in catalog order.
func (s *Store) Entries() []Entry {
	result := make([]Entry, len(s.entries))
	for i := range s.entries {
		result[i] = s.entries[i].clone()
	}
	return result
}

// Vanished returns copies of the vanished messages.
func (s *Store) Vanished() []Entry {
	result := make([]Entry, len(s.vanished))
	for i, idx := range s.vanished {
		result[i] = s.entries[idx].clone()
	}
	return result
}

// File returns the document form of the store, suitable for WriteTS.
func (s *Store) File() *File {
	return &File{
		Version:        s.version,
		Language:       s.language,
		SourceLanguage: s.sourceLanguage,
		Entries:        s.Entries(),
	}
}

// Stats summarizes a store.
type Stats struct {
	Contexts   int
	Current    int
	Unfinished int
	Vanished   int
	Numerus    int
}

// Stats counts messages by status.
func (s *Store) Stats() Stats {
	var st Stats
	contexts := map[string]bool{}
	for i := range s.entries {
		e := &s.entries[i]
		contexts[e.Context] = true
		switch e.Status {
		case Current:
			st.Current++
		case Unfinished:
			st.Unfinished++
		case Vanished:
			st.Vanished++
		}
		if e.Numerus {
			st.Numerus++
		}
	}
	st.Contexts = len(contexts)
	return st
}

// Query is a lookup request. Count is only meaningful when HasCount is
// set; Comment is the disambiguation comment, empty when none applies.
type Query struct {
	Context  string
	Source   string
	Comment  string
	Count    uint32
	HasCount bool
}

// find returns the message serving q, or nil when q falls back to its
// source text.
func (s *Store) find(q Query) (*Entry, error) {
	idx, ok := s.index[entryKey{q.Context, q.Source, q.Comment}]
	if !ok && q.Comment != "" {
		// The comment only disambiguates; retry without it as long as
		// the choice is unique.
		idxs := s.bySource[sourceKey{q.Context, q.Source}]
		switch len(idxs) {
		case 0:
		case 1:
			idx, ok = idxs[0], true
		default:
			comments := make([]string, len(idxs))
			for i, idx := range idxs {
				comments[i] = s.entries[idx].Comment
			}
			sort.Strings(comments)
			return nil, &AmbiguousLookupError{
				Context:  q.Context,
				Source:   q.Source,
				Comment:  q.Comment,
				Comments: comments,
			}
		}
	}
	if !ok {
		return nil, nil
	}
	e := &s.entries[idx]
	if e.Status == Vanished || (e.Status == Unfinished && s.unfinished == HideUnfinished) || !e.translated() {
		return nil, nil
	}
	return e, nil
}

func (s *Store) selectForm(e *Entry, q Query) (string, error) {
	if !e.Numerus {
		return e.Translations[0], nil
	}
	if !q.HasCount {
		return "", &MissingCountError{Context: e.Context, Source: e.Source}
	}
	return SelectForm(e, s.rule, q.Count)
}

// Resolve returns the translation serving q. Messages that are missing,
// vanished, hidden by the unfinished policy or untranslated resolve to
// q.Source. On error the source text is returned along with the error.
func (s *Store) Resolve(q Query) (string, error) {
	return NewCatalog(s).Resolve(q)
}
