package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/snapcore/go-linguist"
)

var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var errNoCatalog = errors.New("no catalog given, use --catalog or set LINGUIST_CATALOG")

type globalOptions struct {
	Catalog        string `short:"C" long:"catalog" env:"LINGUIST_CATALOG" value-name:"FILE" description:"Qt Linguist catalog to operate on"`
	Language       string `short:"l" long:"language" value-name:"LANG" description:"override the language declared by the catalog"`
	HideUnfinished bool   `long:"hide-unfinished" description:"resolve unfinished messages to their source text"`
	Verbose        bool   `short:"v" long:"verbose" description:"log debug messages"`
}

func (g *globalOptions) setupLogging() {
	level := zerolog.InfoLevel
	if g.Verbose {
		level = zerolog.DebugLevel
	}
	linguist.Logger = zerolog.New(zerolog.ConsoleWriter{Out: Stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func (g *globalOptions) catalogOptions() []linguist.Option {
	var opts []linguist.Option
	if g.Language != "" {
		opts = append(opts, linguist.WithLanguage(g.Language))
	}
	if g.HideUnfinished {
		opts = append(opts, linguist.WithUnfinished(linguist.HideUnfinished))
	}
	return opts
}

func (g *globalOptions) load() (*linguist.Store, error) {
	g.setupLogging()
	if g.Catalog == "" {
		return nil, errNoCatalog
	}
	return linguist.LoadFile(g.Catalog, g.catalogOptions()...)
}

func newParser() *flags.Parser {
	opts := &globalOptions{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Inspect Qt Linguist catalogs"

	for _, cmd := range []struct {
		name, short, long string
		data              interface{}
	}{
		{"lookup", "Resolve a message", "Resolve a message as an application would and print the result.", &cmdLookup{global: opts}},
		{"stats", "Count messages", "Count the messages of the catalog by status.", &cmdStats{global: opts}},
		{"check", "Validate the catalog", "Load the catalog and report the first error found.", &cmdCheck{global: opts}},
		{"export", "Convert the catalog", "Write the catalog as Qt Linguist, YAML or JSON.", &cmdExport{global: opts}},
		{"watch", "Follow catalog changes", "Reload the catalog whenever it changes, until interrupted.", &cmdWatch{global: opts}},
	} {
		if _, err := parser.AddCommand(cmd.name, cmd.short, cmd.long, cmd.data); err != nil {
			panic(err)
		}
	}
	return parser
}

func run(args []string) error {
	parser := newParser()
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(Stdout, flagsErr.Message)
			return nil
		}
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
