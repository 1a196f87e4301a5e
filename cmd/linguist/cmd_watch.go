package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/snapcore/go-linguist"
)

type cmdWatch struct {
	global *globalOptions
}

// watchLocale keys the single catalog being watched.
const watchLocale = "default"

func (x *cmdWatch) Execute(args []string) error {
	store, err := x.global.load()
	if err != nil {
		return err
	}
	path := x.global.Catalog
	linguist.Logger.Info().Str("catalog", path).Int("messages", store.Len()).Msg("watching catalog")

	translations := linguist.NewTranslations(filepath.Dir(path), "", func(string, string, string) string {
		return path
	}, x.global.catalogOptions()...)
	translations.Use(watchLocale)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return translations.Watch(ctx)
}
