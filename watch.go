package linguist

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors often save by writing several events in a row; changes are
// collected for this long before a catalog is reloaded.
var watchDelay = 50 * time.Millisecond

// Watch reloads catalogs whose files change, until ctx is done. Only
// the locales loaded so far (including those whose catalog was
// missing) are watched, so call it after Preload or Use.
func (t Translations) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	locales := map[string]string{}
	dirs := map[string]bool{}
	t.mu.Lock()
	for locale, path := range t.paths {
		path = filepath.Clean(path)
		locales[path] = locale
		dirs[filepath.Dir(path)] = true
	}
	t.mu.Unlock()

	for dir := range dirs {
		// Watch directories rather than files: saving through a
		// rename replaces the file and would end a file watch.
		if err := w.Add(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				Logger.Debug().Str("dir", dir).Msg("catalog directory does not exist")
				continue
			}
			return err
		}
	}

	timers := map[string]*time.Timer{}
	defer func() {
		for _, timer := range timers {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			locale, ok := locales[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			if timer := timers[locale]; timer != nil {
				timer.Stop()
			}
			timers[locale] = time.AfterFunc(watchDelay, func() {
				t.Reload(locale)
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			Logger.Error().Err(err).Msg("watching catalogs")
		}
	}
}
