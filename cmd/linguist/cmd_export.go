package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snapcore/go-linguist"
)

type cmdExport struct {
	global *globalOptions

	Format string `short:"f" long:"format" default:"ts" choice:"ts" choice:"yaml" choice:"json" description:"output format"`
	Output string `short:"o" long:"output" value-name:"FILE" description:"write to FILE instead of standard output"`
}

type exportLocation struct {
	File string `yaml:"file" json:"file"`
	Line int    `yaml:"line,omitempty" json:"line,omitempty"`
}

type exportMessage struct {
	Context           string           `yaml:"context" json:"context"`
	Source            string           `yaml:"source" json:"source"`
	Comment           string           `yaml:"comment,omitempty" json:"comment,omitempty"`
	ExtraComment      string           `yaml:"extracomment,omitempty" json:"extracomment,omitempty"`
	TranslatorComment string           `yaml:"translatorcomment,omitempty" json:"translatorcomment,omitempty"`
	Numerus           bool             `yaml:"numerus,omitempty" json:"numerus,omitempty"`
	Status            string           `yaml:"status" json:"status"`
	Translations      []string         `yaml:"translations" json:"translations"`
	Locations         []exportLocation `yaml:"locations,omitempty" json:"locations,omitempty"`
}

type exportDocument struct {
	Version        string          `yaml:"version,omitempty" json:"version,omitempty"`
	Language       string          `yaml:"language" json:"language"`
	SourceLanguage string          `yaml:"sourcelanguage,omitempty" json:"sourcelanguage,omitempty"`
	Messages       []exportMessage `yaml:"messages" json:"messages"`
}

func newExportDocument(f *linguist.File) *exportDocument {
	doc := &exportDocument{
		Version:        f.Version,
		Language:       f.Language,
		SourceLanguage: f.SourceLanguage,
		Messages:       make([]exportMessage, 0, len(f.Entries)),
	}
	for _, e := range f.Entries {
		msg := exportMessage{
			Context:           e.Context,
			Source:            e.Source,
			Comment:           e.Comment,
			ExtraComment:      e.ExtraComment,
			TranslatorComment: e.TranslatorComment,
			Numerus:           e.Numerus,
			Status:            e.Status.String(),
			Translations:      e.Translations,
		}
		for _, loc := range e.Locations {
			msg.Locations = append(msg.Locations, exportLocation{File: loc.File, Line: loc.Line})
		}
		doc.Messages = append(doc.Messages, msg)
	}
	return doc
}

func writeExport(w io.Writer, format string, f *linguist.File) error {
	switch format {
	case "ts":
		return linguist.WriteTS(w, f)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newExportDocument(f)); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newExportDocument(f))
	}
	return fmt.Errorf("unknown export format %q", format)
}

func (x *cmdExport) Execute(args []string) error {
	store, err := x.global.load()
	if err != nil {
		return err
	}
	if x.Output == "" {
		return writeExport(Stdout, x.Format, store.File())
	}
	out, err := os.Create(x.Output)
	if err != nil {
		return err
	}
	if err := writeExport(out, x.Format, store.File()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
