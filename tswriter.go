package linguist

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

const tsTemplateData = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="{{ or .Version "2.1" }}"
{{- if .Language }} language="{{ esc .Language }}"{{ end }}
{{- if .SourceLanguage }} sourcelanguage="{{ esc .SourceLanguage }}"{{ end }}>
{{- range .Contexts }}
<context>
    <name>{{ esc .Name }}</name>
{{- range .Messages }}
    <message{{ if .Numerus }} numerus="yes"{{ end }}>
{{- range .Locations }}
        <location{{ if .File }} filename="{{ esc .File }}"{{ end }}{{ if .Line }} line="{{ .Line }}"{{ end }}/>
{{- end }}
        <source>{{ esc .Source }}</source>
{{- if .Comment }}
        <comment>{{ esc .Comment }}</comment>
{{- end }}
{{- if .ExtraComment }}
        <extracomment>{{ esc .ExtraComment }}</extracomment>
{{- end }}
{{- if .TranslatorComment }}
        <translatorcomment>{{ esc .TranslatorComment }}</translatorcomment>
{{- end }}
{{- if .Numerus }}
        <translation{{ typeAttr .Status }}>
{{- range .Translations }}
            <numerusform>{{ esc . }}</numerusform>
{{- end }}
        </translation>
{{- else }}
        <translation{{ typeAttr .Status }}>{{ esc (index .Translations 0) }}</translation>
{{- end }}
    </message>
{{- end }}
</context>
{{- end }}
</TS>
`

var tsTemplate = template.Must(template.New("ts").Funcs(template.FuncMap{
	"esc":      escapeTS,
	"typeAttr": typeAttr,
}).Parse(tsTemplateData))

// escapeTS escapes text for a Qt Linguist document. Control characters
// other than tab and newline cannot appear in XML 1.0 and are written
// as <byte/> elements.
func escapeTS(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == '\'':
			b.WriteString("&apos;")
		case r < 0x20 && r != '\n' && r != '\t':
			fmt.Fprintf(&b, `<byte value="x%x"/>`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func typeAttr(s Status) string {
	switch s {
	case Unfinished:
		return ` type="unfinished"`
	case Vanished:
		return ` type="vanished"`
	}
	return ""
}

type tsContextData struct {
	Name     string
	Messages []Entry
}

// WriteTS writes f as a Qt Linguist document. Messages are grouped by
// context in order of first appearance. A location without a file name
// is written without one, so readers take it to be in the file of the
// previous location.
func WriteTS(w io.Writer, f *File) error {
	var contexts []*tsContextData
	byName := map[string]*tsContextData{}
	for _, e := range f.Entries {
		if !e.Numerus && len(e.Translations) == 0 {
			e.Translations = []string{""}
		}
		ctx, ok := byName[e.Context]
		if !ok {
			ctx = &tsContextData{Name: e.Context}
			byName[e.Context] = ctx
			contexts = append(contexts, ctx)
		}
		ctx.Messages = append(ctx.Messages, e)
	}

	return tsTemplate.Execute(w, struct {
		*File
		Contexts []*tsContextData
	}{
		File:     f,
		Contexts: contexts,
	})
}
