package main

import (
	"fmt"
	"text/tabwriter"
)

type cmdStats struct {
	global *globalOptions
}

func (x *cmdStats) Execute(args []string) error {
	store, err := x.global.load()
	if err != nil {
		return err
	}
	st := store.Stats()
	rule := "unknown"
	if r, ok := store.Rule(); ok {
		rule = r.String()
	}

	w := tabwriter.NewWriter(Stdout, 0, 8, 1, ' ', 0)
	fmt.Fprintf(w, "language:\t%s\n", store.Language())
	fmt.Fprintf(w, "plural rule:\t%s\n", rule)
	fmt.Fprintf(w, "contexts:\t%d\n", st.Contexts)
	fmt.Fprintf(w, "current:\t%d\n", st.Current)
	fmt.Fprintf(w, "unfinished:\t%d\n", st.Unfinished)
	fmt.Fprintf(w, "vanished:\t%d\n", st.Vanished)
	fmt.Fprintf(w, "numerus:\t%d\n", st.Numerus)
	return w.Flush()
}
