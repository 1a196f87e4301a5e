package linguist

import "fmt"

// Status of a catalog message.
type Status int

const (
	// Current messages carry a finished translation.
	Current Status = iota
	// Unfinished messages carry a provisional translation. Whether it is
	// served is decided by the UnfinishedPolicy of the catalog.
	Unfinished
	// Vanished messages no longer exist in the application sources.
	// They are kept for merging but never resolved.
	Vanished
)

func (s Status) String() string {
	switch s {
	case Current:
		return "current"
	case Unfinished:
		return "unfinished"
	case Vanished:
		return "vanished"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Location records where a message appears in the application
// sources. It is informational and never part of a lookup key.
type Location struct {
	File string
	Line int
}

// Entry is a single message of a catalog.
type Entry struct {
	Context string
	Source  string
	// Comment disambiguates identical source texts within a context.
	Comment string

	// Informational annotations for translators.
	ExtraComment      string
	TranslatorComment string

	// Translations holds a single form for ordinary messages and one
	// form per plural category of the catalog language for numerus
	// messages.
	Translations []string
	Numerus      bool
	Status       Status

	Locations []Location
}

func (e *Entry) clone() Entry {
	c := *e
	c.Translations = append([]string(nil), e.Translations...)
	c.Locations = append([]Location(nil), e.Locations...)
	return c
}

// translated reports whether at least one form is non-empty.
func (e *Entry) translated() bool {
	for _, t := range e.Translations {
		if t != "" {
			return true
		}
	}
	return false
}

// File is a decoded catalog document.
type File struct {
	Version        string
	Language       string
	SourceLanguage string
	Entries        []Entry

	// source line of each entry, parallel to Entries when decoded
	lines []int
}
