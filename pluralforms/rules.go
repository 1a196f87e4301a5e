package pluralforms

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Rule is the plural strategy of a locale: how many forms a numerus
// message carries and which form a count selects.
type Rule struct {
	Forms int
	Expr  Expression
}

// NewRule compiles a plural expression for a locale with the given
// number of forms.
func NewRule(forms int, expr string) (Rule, error) {
	if forms < 1 {
		return Rule{}, fmt.Errorf("invalid number of plural forms: %d", forms)
	}
	e, err := Compile(expr)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Forms: forms, Expr: e}, nil
}

// ParseRule parses a gettext style Plural-Forms header value such as
// "nplurals=2; plural=(n != 1);".
func ParseRule(header string) (Rule, error) {
	var forms int
	var expr string
	for _, field := range strings.Split(header, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return Rule{}, fmt.Errorf("malformed plural forms field %q", field)
		}
		switch strings.TrimSpace(kv[0]) {
		case "nplurals":
			n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
			if err != nil {
				return Rule{}, fmt.Errorf("malformed nplurals: %v", err)
			}
			forms = n
		case "plural":
			expr = kv[1]
		}
	}
	if expr == "" {
		return Rule{}, fmt.Errorf("plural forms header %q has no plural expression", header)
	}
	return NewRule(forms, expr)
}

// Select returns the form index for n. The index is guaranteed to be
// within [0, Forms).
func (r Rule) Select(n uint32) (int, error) {
	if r.Expr == nil {
		if r.Forms == 1 {
			return 0, nil
		}
		return 0, fmt.Errorf("plural rule with %d forms has no expression", r.Forms)
	}
	idx := r.Expr.Eval(n)
	if idx < 0 || idx >= r.Forms {
		return 0, fmt.Errorf("plural expression %s selected form %d for n=%d, rule has %d forms", r.Expr, idx, n, r.Forms)
	}
	return idx, nil
}

func (r Rule) String() string {
	if r.Expr == nil {
		return fmt.Sprintf("nplurals=%d; plural=0;", r.Forms)
	}
	return fmt.Sprintf("nplurals=%d; plural=%s;", r.Forms, r.Expr)
}

// Registry maps locale identifiers to plural rules. Lookups accept Qt
// (it_IT), POSIX (it_IT.UTF-8@euro) and BCP 47 (it-IT) identifiers and
// fall back from the full tag to its base language.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]Rule{}}
}

// Register adds or replaces the rule for a locale.
func (r *Registry) Register(locale string, rule Rule) {
	key := canonicalLocale(locale)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[key] = rule
}

// Lookup finds the rule for a locale.
func (r *Registry) Lookup(locale string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, key := range localeCandidates(locale) {
		if rule, ok := r.rules[key]; ok {
			return rule, true
		}
	}
	return Rule{}, false
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewRegistry()
	for k, v := range r.rules {
		clone.rules[k] = v
	}
	return clone
}

// stripPosix removes the codeset and modifier from a POSIX locale name.
func stripPosix(locale string) string {
	if idx := strings.IndexAny(locale, ".@"); idx >= 0 {
		locale = locale[:idx]
	}
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func canonicalLocale(locale string) string {
	locale = stripPosix(locale)
	if tag, err := language.Parse(locale); err == nil {
		return tag.String()
	}
	return strings.ToLower(locale)
}

func localeCandidates(locale string) []string {
	locale = stripPosix(locale)
	tag, err := language.Parse(locale)
	if err != nil {
		base := strings.ToLower(locale)
		if idx := strings.IndexByte(base, '-'); idx >= 0 {
			return []string{base, base[:idx]}
		}
		return []string{base}
	}
	candidates := []string{tag.String()}
	if base, conf := tag.Base(); conf != language.No && base.String() != tag.String() {
		candidates = append(candidates, base.String())
	}
	return candidates
}

var builtinRules = []struct {
	forms   int
	expr    string
	locales []string
}{
	{1, "0", []string{"ja", "zh", "ko", "vi", "th", "id", "ms", "lo", "km", "my", "bo", "dz"}},
	{2, "n != 1", []string{
		"en", "de", "nl", "sv", "da", "no", "nb", "nn", "fi", "et", "it", "es", "ca",
		"gl", "eu", "el", "hu", "bg", "af", "sq", "az", "fy", "fo", "he", "hi", "bn",
		"gu", "kn", "ml", "mr", "ne", "pa", "ta", "te", "ur", "ps", "sw", "tr", "ka",
		"eo", "ast", "kk", "ky", "mn", "pt",
	}},
	{2, "n > 1", []string{"fr", "pt-BR", "oc", "fil", "ln", "ti", "wa"}},
	{2, "n%10 != 1 || n%100 == 11", []string{"is"}},
	{2, "n==1 || n%10==1 ? 0 : 1", []string{"mk"}},
	{3, "n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2", []string{"ru", "uk", "be", "sr", "hr", "bs"}},
	{3, "n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2", []string{"pl"}},
	{3, "(n==1) ? 0 : (n>=2 && n<=4) ? 1 : 2", []string{"cs", "sk"}},
	{3, "n%10==1 && n%100!=11 ? 0 : n%10>=2 && (n%100<10 || n%100>=20) ? 1 : 2", []string{"lt"}},
	{3, "n%10==1 && n%100!=11 ? 0 : n != 0 ? 1 : 2", []string{"lv"}},
	{3, "n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2", []string{"ro"}},
	{4, "n%100==1 ? 0 : n%100==2 ? 1 : n%100==3 || n%100==4 ? 2 : 3", []string{"sl"}},
	{4, "(n==1) ? 0 : (n==2) ? 1 : (n != 8 && n != 11) ? 2 : 3", []string{"cy"}},
	{4, "n==1 ? 0 : n==0 || (n%100>1 && n%100<11) ? 1 : (n%100>10 && n%100<20) ? 2 : 3", []string{"mt"}},
	{5, "n==1 ? 0 : n==2 ? 1 : (n>2 && n<7) ? 2 : (n>6 && n<11) ? 3 : 4", []string{"ga"}},
	{6, "n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5", []string{"ar"}},
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtinRules {
		rule := Rule{Forms: b.forms, Expr: MustCompile(b.expr)}
		for _, locale := range b.locales {
			r.Register(locale, rule)
		}
	}
	return r
}

// Default returns the process wide registry holding the built-in
// rules. Rules registered on it are visible to every catalog loaded
// afterwards.
func Default() *Registry {
	return defaultRegistry
}
