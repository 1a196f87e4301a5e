package linguist

import (
	"github.com/snapcore/go-linguist/pluralforms"
)

// SelectForm picks the plural form of e for count n under rule.
func SelectForm(e *Entry, rule pluralforms.Rule, n uint32) (string, error) {
	if len(e.Translations) != rule.Forms {
		return "", &FormIndexError{
			Context:  e.Context,
			Source:   e.Source,
			Forms:    len(e.Translations),
			Expected: rule.Forms,
		}
	}
	idx, err := rule.Select(n)
	if err != nil {
		return "", &FormIndexError{
			Context:  e.Context,
			Source:   e.Source,
			Forms:    len(e.Translations),
			Expected: rule.Forms,
			Err:      err,
		}
	}
	return e.Translations[idx], nil
}
