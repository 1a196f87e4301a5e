package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/snapcore/go-linguist"
	"github.com/snapcore/go-linguist/internal/lupdate"
)

type options struct {
	FilesFrom string `short:"f" long:"files-from" value-name:"FILE" description:"get list of input files from FILE"`

	Directories []string `short:"D" long:"directory" value-name:"DIRECTORY" description:"add DIRECTORY to list for input files search"`

	Output string `short:"o" long:"output" value-name:"FILE" description:"merge into the catalog FILE, creating it if needed; write to standard output otherwise"`

	CommentTags []string `short:"c" long:"add-comments" optional:"true" optional-value:"" value-name:"TAG" description:"place comment blocks starting with TAG preceding keyword lines in output file"`

	Keywords []string `short:"k" long:"keyword" optional:"true" optional-value:"" value-name:"WORD" description:"look for WORD as an additional translation function"`

	Context string `long:"default-context" value-name:"CONTEXT" description:"context of messages whose keyword has no context argument (default: package name)"`

	Language string `short:"l" long:"language" value-name:"LANG" description:"language of a new catalog"`

	NoObsolete bool `long:"no-obsolete" description:"drop messages no longer found in the sources"`

	NoLocation bool `long:"no-location" description:"do not write source locations"`

	SortOutput bool `short:"s" long:"sort-output" description:"generate sorted output"`

	Verbose bool `short:"v" long:"verbose" description:"log progress"`
}

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// readCatalog returns the catalog at path, or nil when there is none
// yet.
func readCatalog(path string) (*linguist.File, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return linguist.DecodeTS(bytes.NewReader(content))
}

func main() {
	// parse args
	var opts options
	args, err := flags.ParseArgs(&opts, os.Args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)

	var files []string
	if opts.FilesFrom != "" {
		content, err := os.ReadFile(opts.FilesFrom)
		if err != nil {
			log.Fatal().Err(err).Str("file", opts.FilesFrom).Msg("cannot read file list")
		}
		content = bytes.TrimSpace(content)
		files = strings.Split(string(content), "\n")
	} else {
		files = args[1:]
	}

	extractor := lupdate.Extractor{
		Directories:    opts.Directories,
		CommentTags:    opts.CommentTags,
		SortOutput:     opts.SortOutput,
		NoLocation:     opts.NoLocation,
		DefaultContext: opts.Context,
	}
	log.Debug().Strs("keywords", opts.Keywords).Msg("keywords")
	addDefaultKeywords := true
	for _, spec := range opts.Keywords {
		if spec == "" {
			// a bare "-k" option disables the default keywords
			addDefaultKeywords = false
			continue
		}
		kw, err := lupdate.ParseKeyword(spec)
		if err != nil {
			log.Fatal().Err(err).Str("keyword", spec).Msg("cannot parse keyword")
		}
		extractor.Keywords = append(extractor.Keywords, kw)
	}
	if addDefaultKeywords {
		extractor.AddDefaultKeywords()
	}

	for _, filename := range files {
		if err := extractor.ParseFile(filename); err != nil {
			log.Fatal().Err(err).Str("file", filename).Msg("cannot parse file")
		}
	}

	if opts.Output == "" {
		if err := extractor.Write(os.Stdout, opts.Language); err != nil {
			log.Fatal().Err(err).Msg("failed to write catalog")
		}
		return
	}

	existing, err := readCatalog(opts.Output)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Output).Msg("cannot read catalog")
	}
	merged, stats := lupdate.Merge(existing, extractor.Entries(), lupdate.MergeOptions{
		NoObsolete: opts.NoObsolete,
		NoLocation: opts.NoLocation,
	})
	if merged.Language == "" {
		merged.Language = opts.Language
	}
	log.Info().
		Int("kept", stats.Kept).
		Int("new", stats.New).
		Int("vanished", stats.Vanished).
		Int("dropped", stats.Dropped).
		Str("file", opts.Output).
		Msg("merged catalog")

	out, err := os.Create(opts.Output)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Output).Msg("failed to create catalog")
	}
	if err := linguist.WriteTS(out, merged); err != nil {
		log.Fatal().Err(err).Msg("failed to write catalog")
	}
	if err := out.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to write catalog")
	}
}
