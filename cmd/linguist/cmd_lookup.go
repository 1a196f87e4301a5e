package main

import (
	"fmt"

	"github.com/snapcore/go-linguist"
)

type cmdLookup struct {
	global *globalOptions

	Context string  `short:"c" long:"context" required:"true" value-name:"CONTEXT" description:"message context"`
	Source  string  `short:"s" long:"source" required:"true" value-name:"TEXT" description:"source text"`
	Comment string  `short:"m" long:"comment" value-name:"COMMENT" description:"disambiguation comment"`
	Count   *uint32 `short:"n" long:"count" value-name:"N" description:"count of a numerus message"`
	Expand  bool    `short:"x" long:"expand" description:"replace %n with the count"`
}

func (x *cmdLookup) Execute(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	store, err := x.global.load()
	if err != nil {
		return err
	}
	q := linguist.Query{Context: x.Context, Source: x.Source, Comment: x.Comment}
	if x.Count != nil {
		q.Count, q.HasCount = *x.Count, true
	}
	s, err := store.Resolve(q)
	if err != nil {
		return err
	}
	if x.Expand && q.HasCount {
		s = linguist.ExpandCount(s, q.Count)
	}
	fmt.Fprintln(Stdout, s)
	return nil
}
