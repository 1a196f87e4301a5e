package linguist

import (
	"github.com/snapcore/go-linguist/pluralforms"
)

// UnfinishedPolicy decides whether provisional translations are served.
type UnfinishedPolicy int

const (
	// ShowUnfinished serves unfinished translations like current ones.
	ShowUnfinished UnfinishedPolicy = iota
	// HideUnfinished resolves unfinished messages to their source text.
	HideUnfinished
)

type options struct {
	rules         *pluralforms.Registry
	unfinished    UnfinishedPolicy
	language      string
	strictMissing bool
}

// Option configures how catalogs are loaded and resolved.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{rules: pluralforms.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPluralRules selects the registry used to find the plural rule of
// a catalog language.
func WithPluralRules(rules *pluralforms.Registry) Option {
	return func(o *options) {
		o.rules = rules
	}
}

// WithUnfinished sets the policy for unfinished translations.
func WithUnfinished(policy UnfinishedPolicy) Option {
	return func(o *options) {
		o.unfinished = policy
	}
}

// WithLanguage overrides the language declared by the catalog.
func WithLanguage(language string) Option {
	return func(o *options) {
		o.language = language
	}
}

// WithStrictMissing logs, once per message, every lookup that falls
// back to the source text.
func WithStrictMissing() Option {
	return func(o *options) {
		o.strictMissing = true
	}
}
