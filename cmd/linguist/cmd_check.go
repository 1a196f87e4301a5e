package main

import (
	"fmt"
)

type cmdCheck struct {
	global *globalOptions
}

func (x *cmdCheck) Execute(args []string) error {
	store, err := x.global.load()
	if err != nil {
		return err
	}
	fmt.Fprintf(Stdout, "%s: %d messages, ok\n", x.global.Catalog, store.Len())
	return nil
}
