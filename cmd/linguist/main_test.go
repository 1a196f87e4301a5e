package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	. "gopkg.in/check.v1"

	"github.com/snapcore/go-linguist"
)

func Test(t *testing.T) {
	TestingT(t)
}

const italian = "../../testdata/wsjtx_it.ts"

var _ = Suite(&linguistSuite{})

type linguistSuite struct {
	stdout, stderr bytes.Buffer
}

func (s *linguistSuite) SetUpTest(c *C) {
	s.stdout.Reset()
	s.stderr.Reset()
	Stdout = &s.stdout
	Stderr = &s.stderr
	os.Unsetenv("LINGUIST_CATALOG")
}

func (s *linguistSuite) TearDownTest(c *C) {
	Stdout = os.Stdout
	Stderr = os.Stderr
	linguist.Logger = zerolog.Nop()
}

func (s *linguistSuite) TestLookup(c *C) {
	err := run([]string{"--catalog", italian, "lookup", "-c", "MainWindow", "-s", "CQ only"})
	c.Assert(err, IsNil)
	c.Check(s.stdout.String(), Equals, "Solo CQ\n")
}

func (s *linguistSuite) TestLookupNumerus(c *C) {
	err := run([]string{"--catalog", italian, "lookup", "-c", "AbstractLogWindow::impl",
		"-s", "Are you sure you want to delete the %n selected QSO(s) from the log?", "-n", "3", "--expand"})
	c.Assert(err, IsNil)
	c.Check(s.stdout.String(), Equals, "Sei sicuro di voler cancellare i 3 selezionati QSO dal log?\n")

	s.stdout.Reset()
	err = run([]string{"--catalog", italian, "lookup", "-c", "AbstractLogWindow::impl",
		"-s", "Are you sure you want to delete the %n selected QSO(s) from the log?"})
	var merr *linguist.MissingCountError
	c.Check(errors.As(err, &merr), Equals, true)
	c.Check(s.stdout.String(), Equals, "")
}

func (s *linguistSuite) TestLookupFromEnvironment(c *C) {
	os.Setenv("LINGUIST_CATALOG", italian)
	err := run([]string{"--hide-unfinished", "lookup", "-c", "MainWindow", "-s", "Log QSO"})
	c.Assert(err, IsNil)
	c.Check(s.stdout.String(), Equals, "Log QSO\n")
}

func (s *linguistSuite) TestLookupRequiresCatalog(c *C) {
	err := run([]string{"lookup", "-c", "MainWindow", "-s", "CQ only"})
	c.Check(err, Equals, errNoCatalog)
}

func (s *linguistSuite) TestStats(c *C) {
	err := run([]string{"--catalog", italian, "stats"})
	c.Assert(err, IsNil)
	c.Check(s.stdout.String(), Matches, `(?s)language: +it_IT\n.*current: +7\nunfinished: +3\nvanished: +1\nnumerus: +2\n`)
}

func (s *linguistSuite) TestCheck(c *C) {
	err := run([]string{"--catalog", italian, "check"})
	c.Assert(err, IsNil)
	c.Check(s.stdout.String(), Equals, italian+": 11 messages, ok\n")

	err = run([]string{"--catalog", "../../testdata/wsjtx_de.ts", "check"})
	var perr *linguist.ParseError
	c.Check(errors.As(err, &perr), Equals, true)
}

func (s *linguistSuite) TestExportTS(c *C) {
	out := filepath.Join(c.MkDir(), "out.ts")
	err := run([]string{"--catalog", italian, "export", "-o", out})
	c.Assert(err, IsNil)

	original, err := linguist.LoadFile(italian)
	c.Assert(err, IsNil)
	exported, err := linguist.LoadFile(out)
	c.Assert(err, IsNil)
	c.Check(exported.Entries(), DeepEquals, original.Entries())
}

func (s *linguistSuite) TestExportYAML(c *C) {
	err := run([]string{"--catalog", italian, "export", "--format", "yaml"})
	c.Assert(err, IsNil)
	c.Check(s.stdout.String(), Matches, `(?s).*language: it_IT\nmessages:\n.*status: vanished\n.*`)
}

func (s *linguistSuite) TestExportJSON(c *C) {
	err := run([]string{"--catalog", italian, "export", "--format", "json"})
	c.Assert(err, IsNil)

	var doc exportDocument
	c.Assert(json.Unmarshal(s.stdout.Bytes(), &doc), IsNil)
	c.Check(doc.Language, Equals, "it_IT")
	c.Assert(doc.Messages, HasLen, 11)
	c.Check(doc.Messages[0].Numerus, Equals, true)
	c.Check(doc.Messages[0].Translations, HasLen, 2)
	c.Check(doc.Messages[1].Locations, DeepEquals, []exportLocation{{File: "../widgets/AbstractLogWindow.cpp", Line: 65}})
}

func (s *linguistSuite) TestExportBadFormat(c *C) {
	err := run([]string{"--catalog", italian, "export", "--format", "po"})
	var flagsErr *flags.Error
	c.Assert(errors.As(err, &flagsErr), Equals, true)
	c.Check(flagsErr.Type, Equals, flags.ErrInvalidChoice)
}

func (s *linguistSuite) TestHelp(c *C) {
	err := run([]string{"--help"})
	c.Assert(err, IsNil)
	c.Check(s.stdout.String(), Matches, `(?s)Usage:.*lookup.*`)
}
