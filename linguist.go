// Package linguist resolves user interface strings from Qt Linguist
// (.ts) catalogs in pure Go, with plural forms for any language.
package linguist

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Translations holds the catalogs of the locales your app supports.
// Use NewTranslations to create an instance.
type Translations struct {
	// The mutex guarding the catalog cache must not be copied, so the
	// value type embeds a pointer to the shared state.
	*translations
}

type selection struct {
	languages []string
	catalog   Catalog
}

type translations struct {
	mu    sync.Mutex
	cache map[string]*Store
	paths map[string]string

	root     string
	domain   string
	resolver PathResolver
	opts     []Option
	strict   bool

	active atomic.Pointer[selection]
}

// PathResolver resolves the path of the catalog of a locale.
type PathResolver func(root string, locale string, domain string) string

// DefaultResolver resolves paths in Qt's naming convention:
// <root>/<domain>_<locale>.ts
func DefaultResolver(root string, locale string, domain string) string {
	return filepath.Join(root, fmt.Sprintf("%s_%s.ts", domain, locale))
}

// NewTranslations is the main entry point. root is the directory of
// your catalogs, domain the catalog name prefix and resolver a function
// mapping a locale to a path. If resolver is nil, DefaultResolver is
// used. opts apply to every catalog loaded.
func NewTranslations(root string, domain string, resolver PathResolver, opts ...Option) Translations {
	if resolver == nil {
		resolver = DefaultResolver
	}
	return Translations{&translations{
		cache:    map[string]*Store{},
		paths:    map[string]string{},
		root:     root,
		domain:   domain,
		resolver: resolver,
		opts:     opts,
		strict:   newOptions(opts).strictMissing,
	}}
}

// Preload a list of locales (if they're available). This is useful if you want
// to limit IO to a specific time in your app, for example startup. Subsequent
// calls to Preload or Locale using a locale given here will not do any IO.
func (t Translations) Preload(locales ...string) {
	for _, locale := range locales {
		t.load(locale)
	}
}

func (t Translations) load(locale string) *Store {
	t.mu.Lock()
	defer t.mu.Unlock()

	if store, ok := t.cache[locale]; ok {
		return store
	}

	// A catalog that cannot be loaded is remembered as missing: its
	// lookups fall back to the source text.
	t.cache[locale] = nil
	path := t.resolver(t.root, locale, t.domain)
	t.paths[locale] = path
	store, err := LoadFile(path, t.opts...)
	if err != nil {
		logLoadError(locale, path, err)
		return nil
	}
	t.cache[locale] = store
	return store
}

func logLoadError(locale, path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		Logger.Debug().Str("locale", locale).Str("path", path).Msg("no catalog")
		return
	}
	Logger.Warn().Err(err).Str("locale", locale).Str("path", path).Msg("cannot load catalog")
}

// Locale returns the catalog translations for a list of locales.
//
// If translations are not found in the first locale, each
// subsequent one is consulted until a match is found.  If no match is
// found, the original strings are returned.
func (t Translations) Locale(languages ...string) Catalog {
	var stores []*Store
	for _, lang := range normalizeLanguages(languages) {
		if store := t.load(lang); store != nil {
			stores = append(stores, store)
		}
	}
	c := NewCatalog(stores...)
	c.strict = t.strict
	return c
}

// UserLocale returns the catalog translations for the user's Locale.
func (t Translations) UserLocale() Catalog {
	return t.Locale(UserLanguages()...)
}

// Use makes the catalog of languages the active one. Readers of Active
// observe either the previous catalog or the new one, never a mix.
func (t Translations) Use(languages ...string) Catalog {
	sel := &selection{
		languages: append([]string(nil), languages...),
		catalog:   t.Locale(languages...),
	}
	t.active.Store(sel)
	return sel.catalog
}

// Active returns the catalog selected by the last call to Use. Before
// any call it resolves every message to its source text.
func (t Translations) Active() Catalog {
	if sel := t.active.Load(); sel != nil {
		return sel.catalog
	}
	return Catalog{strict: t.strict}
}

// Reload reads the catalog of locale again and swaps it in. When the
// catalog cannot be loaded the previous one stays in use and the error
// is returned.
func (t Translations) Reload(locale string) error {
	path := t.resolver(t.root, locale, t.domain)
	store, err := LoadFile(path, t.opts...)
	if err != nil {
		logLoadError(locale, path, err)
		return err
	}

	t.mu.Lock()
	t.cache[locale] = store
	t.paths[locale] = path
	t.mu.Unlock()

	Logger.Info().Str("locale", locale).Str("path", path).Msg("catalog reloaded")

	for {
		sel := t.active.Load()
		if sel == nil {
			return nil
		}
		next := &selection{languages: sel.languages, catalog: t.Locale(sel.languages...)}
		if t.active.CompareAndSwap(sel, next) {
			return nil
		}
	}
}

// Tr translates source within context using the active catalog.
func (t Translations) Tr(context, source string) string {
	return t.Active().Tr(context, source)
}

// TrN translates a numerus message using the active catalog.
func (t Translations) TrN(context, source string, n uint32) string {
	return t.Active().TrN(context, source, n)
}

// TrC translates a disambiguated message using the active catalog.
func (t Translations) TrC(context, source, comment string) string {
	return t.Active().TrC(context, source, comment)
}

// TrCN translates a disambiguated numerus message using the active
// catalog.
func (t Translations) TrCN(context, source, comment string, n uint32) string {
	return t.Active().TrCN(context, source, comment, n)
}
