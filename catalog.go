package linguist

import (
	"strconv"
	"strings"
)

// Catalog of translations for a list of locales.
//
// Stores are consulted in order; the first one holding a usable
// translation wins. An empty Catalog resolves every message to its
// source text.
type Catalog struct {
	stores []*Store
	strict bool
}

// NewCatalog chains stores, most preferred first. Nil stores are
// skipped.
func NewCatalog(stores ...*Store) Catalog {
	c := Catalog{}
	for _, s := range stores {
		if s == nil {
			continue
		}
		c.stores = append(c.stores, s)
		c.strict = c.strict || s.strictMissing
	}
	return c
}

// Languages returns the languages of the chained stores in lookup
// order.
func (c Catalog) Languages() []string {
	langs := make([]string, len(c.stores))
	for i, s := range c.stores {
		langs[i] = s.language
	}
	return langs
}

// Resolve returns the translation serving q, or q.Source when no store
// has one. Errors are local to the lookup; the source text is returned
// along with them.
func (c Catalog) Resolve(q Query) (string, error) {
	for _, s := range c.stores {
		e, err := s.find(q)
		if err != nil {
			return q.Source, err
		}
		if e == nil {
			continue
		}
		msgstr, err := s.selectForm(e, q)
		if err != nil {
			return q.Source, err
		}
		if msgstr == "" {
			// an untranslated plural form
			continue
		}
		return msgstr, nil
	}
	if c.strict {
		var lang string
		if len(c.stores) > 0 {
			lang = c.stores[0].language
		}
		logMissingOnce(lang, q.Context, q.Source, q.Comment)
	}
	return q.Source, nil
}

func (c Catalog) tr(q Query) string {
	msgstr, err := c.Resolve(q)
	if err != nil {
		Logger.Warn().
			Err(err).
			Str("context", q.Context).
			Str("source", q.Source).
			Msg("cannot resolve translation")
	}
	return msgstr
}

// Tr translates source within context.
func (c Catalog) Tr(context, source string) string {
	return c.tr(Query{Context: context, Source: source})
}

// TrN translates a numerus message for count n.
func (c Catalog) TrN(context, source string, n uint32) string {
	return c.tr(Query{Context: context, Source: source, Count: n, HasCount: true})
}

// TrC translates source within context, disambiguated by comment.
func (c Catalog) TrC(context, source, comment string) string {
	return c.tr(Query{Context: context, Source: source, Comment: comment})
}

// TrCN translates a disambiguated numerus message for count n.
func (c Catalog) TrCN(context, source, comment string, n uint32) string {
	return c.tr(Query{Context: context, Source: source, Comment: comment, Count: n, HasCount: true})
}

// ExpandCount replaces every %n in s with n, as Qt does for numerus
// messages once they have been resolved.
func ExpandCount(s string, n uint32) string {
	return strings.ReplaceAll(s, "%n", strconv.FormatUint(uint64(n), 10))
}
