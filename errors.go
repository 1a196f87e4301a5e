package linguist

import (
	"fmt"
	"strings"
)

// ParseError is returned when a catalog is not well-formed markup.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cannot parse catalog: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("cannot parse catalog: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError is returned when a catalog is well-formed but one of its
// messages is invalid: a required field is missing, the number of
// plural forms does not match the catalog language, or a key is
// duplicated.
type SchemaError struct {
	Line    int
	Context string
	Source  string
	Reason  string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("invalid catalog")
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Context != "" || e.Source != "" {
		fmt.Fprintf(&b, ": message %q in context %q", e.Source, e.Context)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// AmbiguousLookupError is returned when a lookup with a disambiguation
// comment matches nothing exactly and several messages share the
// context and source text.
type AmbiguousLookupError struct {
	Context  string
	Source   string
	Comment  string
	Comments []string
}

func (e *AmbiguousLookupError) Error() string {
	return fmt.Sprintf("ambiguous lookup of %q in context %q: comment %q matches none of %q",
		e.Source, e.Context, e.Comment, e.Comments)
}

// MissingCountError is returned when a numerus message is resolved
// without a count.
type MissingCountError struct {
	Context string
	Source  string
}

func (e *MissingCountError) Error() string {
	return fmt.Sprintf("message %q in context %q has plural forms but no count was given", e.Source, e.Context)
}

// FormIndexError is returned when the plural forms of a message do not
// agree with the plural rule of its catalog.
type FormIndexError struct {
	Context  string
	Source   string
	Forms    int
	Expected int
	Err      error
}

func (e *FormIndexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("message %q in context %q: %v", e.Source, e.Context, e.Err)
	}
	return fmt.Sprintf("message %q in context %q has %d plural forms, language expects %d",
		e.Source, e.Context, e.Forms, e.Expected)
}

func (e *FormIndexError) Unwrap() error { return e.Err }
