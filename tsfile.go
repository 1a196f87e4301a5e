package linguist

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// textBuilder accumulates the text of a message element. Control
// characters arrive as <byte value="x1b"/> elements, and length
// variants replace the plain text, the first variant being preferred.
type textBuilder struct {
	buf      strings.Builder
	variants []string
}

func byteValue(start xml.StartElement) (rune, error) {
	for _, attr := range start.Attr {
		if attr.Name.Local != "value" {
			continue
		}
		v := attr.Value
		base := 10
		if strings.HasPrefix(v, "x") {
			v, base = v[1:], 16
		}
		n, err := strconv.ParseUint(v, base, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid byte value %q", attr.Value)
		}
		return rune(n), nil
	}
	return 0, fmt.Errorf("byte element without a value")
}

func (b *textBuilder) handle(d *xml.Decoder, tok xml.Token) (bool, error) {
	switch t := tok.(type) {
	case xml.CharData:
		b.buf.Write(t)
		return true, nil
	case xml.StartElement:
		switch t.Name.Local {
		case "byte":
			r, err := byteValue(t)
			if err != nil {
				return true, err
			}
			b.buf.WriteRune(r)
			return true, d.Skip()
		case "lengthvariant":
			var v tsText
			if err := d.DecodeElement(&v, &t); err != nil {
				return true, err
			}
			b.variants = append(b.variants, string(v))
			return true, nil
		}
	}
	return false, nil
}

func (b *textBuilder) String() string {
	if len(b.variants) > 0 {
		return b.variants[0]
	}
	return b.buf.String()
}

type tsText string

func (t *tsText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b textBuilder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.EndElement); ok {
			*t = tsText(b.String())
			return nil
		}
		handled, err := b.handle(d, tok)
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok && !handled {
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

type tsTranslation struct {
	Type  string
	Text  string
	Forms []string
}

func (t *tsTranslation) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "type" {
			t.Type = attr.Value
		}
	}
	var b textBuilder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.EndElement:
			t.Text = b.String()
			return nil
		case xml.StartElement:
			if tok.Name.Local == "numerusform" {
				var form tsText
				if err := d.DecodeElement(&form, &tok); err != nil {
					return err
				}
				t.Forms = append(t.Forms, string(form))
				continue
			}
		}
		handled, err := b.handle(d, tok)
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok && !handled {
			if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

type tsLocation struct {
	Filename string `xml:"filename,attr"`
	Line     string `xml:"line,attr"`
}

type tsMessage struct {
	line int

	Numerus           string         `xml:"numerus,attr"`
	Locations         []tsLocation   `xml:"location"`
	Source            *tsText        `xml:"source"`
	Comment           *tsText        `xml:"comment"`
	ExtraComment      *tsText        `xml:"extracomment"`
	TranslatorComment *tsText        `xml:"translatorcomment"`
	Translation       *tsTranslation `xml:"translation"`
}

func (m *tsMessage) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m.line, _ = d.InputPos()
	type plain tsMessage
	return d.DecodeElement((*plain)(m), &start)
}

type tsContext struct {
	line int

	Name     *tsText     `xml:"name"`
	Messages []tsMessage `xml:"message"`
}

func (c *tsContext) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	c.line, _ = d.InputPos()
	type plain tsContext
	return d.DecodeElement((*plain)(c), &start)
}

type tsDocument struct {
	XMLName        xml.Name    `xml:"TS"`
	Version        string      `xml:"version,attr"`
	Language       string      `xml:"language,attr"`
	SourceLanguage string      `xml:"sourcelanguage,attr"`
	Contexts       []tsContext `xml:"context"`
}

func tsStatus(translationType string) (Status, bool) {
	switch translationType {
	case "":
		return Current, true
	case "unfinished":
		return Unfinished, true
	case "vanished", "obsolete":
		return Vanished, true
	}
	return 0, false
}

func textOf(t *tsText) string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// locationReader resolves Qt's location shorthand: a missing filename
// repeats the previous file and a signed line is relative to the last
// line seen in that file.
type locationReader struct {
	file  string
	lines map[string]int
}

func (lr *locationReader) read(loc tsLocation) (Location, error) {
	if loc.Filename != "" {
		lr.file = loc.Filename
	}
	l := Location{File: lr.file}
	if loc.Line == "" {
		return l, nil
	}
	n, err := strconv.Atoi(loc.Line)
	if err != nil {
		return l, fmt.Errorf("invalid location line %q", loc.Line)
	}
	if loc.Line[0] == '+' || loc.Line[0] == '-' {
		n += lr.lines[lr.file]
	}
	lr.lines[lr.file] = n
	l.Line = n
	return l, nil
}

// DecodeTS reads a Qt Linguist document without validating it against
// a plural rule.
func DecodeTS(r io.Reader) (*File, error) {
	d := xml.NewDecoder(r)
	var doc tsDocument
	if err := d.Decode(&doc); err != nil {
		perr := &ParseError{Err: err}
		if serr, ok := err.(*xml.SyntaxError); ok {
			perr.Line = serr.Line
		} else {
			perr.Line, _ = d.InputPos()
		}
		return nil, perr
	}

	f := &File{
		Version:        doc.Version,
		Language:       doc.Language,
		SourceLanguage: doc.SourceLanguage,
	}
	lr := locationReader{lines: map[string]int{}}
	for _, ctx := range doc.Contexts {
		name := textOf(ctx.Name)
		if name == "" {
			return nil, &SchemaError{Line: ctx.line, Reason: "context without a name"}
		}
		for _, m := range ctx.Messages {
			e := Entry{
				Context:           name,
				Source:            textOf(m.Source),
				Comment:           textOf(m.Comment),
				ExtraComment:      textOf(m.ExtraComment),
				TranslatorComment: textOf(m.TranslatorComment),
				Numerus:           m.Numerus == "yes",
			}
			schemaError := func(reason string) error {
				return &SchemaError{Line: m.line, Context: e.Context, Source: e.Source, Reason: reason}
			}
			if e.Source == "" {
				return nil, schemaError("missing source text")
			}
			for _, loc := range m.Locations {
				l, err := lr.read(loc)
				if err != nil {
					return nil, schemaError(err.Error())
				}
				e.Locations = append(e.Locations, l)
			}
			if t := m.Translation; t != nil {
				status, ok := tsStatus(t.Type)
				if !ok {
					return nil, schemaError(fmt.Sprintf("unknown translation type %q", t.Type))
				}
				e.Status = status
				switch {
				case !e.Numerus:
					e.Translations = []string{t.Text}
				case len(t.Forms) > 0:
					e.Translations = t.Forms
				case strings.TrimSpace(t.Text) != "":
					e.Translations = []string{t.Text}
				}
			} else {
				// lupdate always writes a translation; a message
				// without one has never been translated.
				e.Status = Unfinished
			}
			f.Entries = append(f.Entries, e)
			f.lines = append(f.lines, m.line)
		}
	}
	return f, nil
}

// ParseTS parses a Qt Linguist document into a Store. Loading is all
// or nothing: malformed markup yields a *ParseError and an invalid
// message a *SchemaError.
func ParseTS(r io.Reader, opts ...Option) (*Store, error) {
	f, err := DecodeTS(r)
	if err != nil {
		return nil, err
	}
	return newStore(f, newOptions(opts))
}

// LoadFile parses the Qt Linguist document at path.
func LoadFile(path string, opts ...Option) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := openMapping(file)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	store, err := ParseTS(bytes.NewReader(m.data), opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}
	return store, nil
}
