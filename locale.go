package linguist

import (
	"os"
	"strings"
)

var osGetenv = os.Getenv

// UserLanguages returns the user's preferred languages from the
// environment, most preferred first.
func UserLanguages() []string {
	if language := osGetenv("LANGUAGE"); language != "" {
		var langs []string
		for _, lang := range strings.Split(language, ":") {
			if lang != "" {
				langs = append(langs, lang)
			}
		}
		return langs
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang := osGetenv(name); lang != "" {
			return []string{lang}
		}
	}
	return nil
}

// normalizeCodeset lower cases a codeset and strips punctuation, so
// ".UTF-8" becomes ".utf8". Purely numeric codesets are ISO ones.
func normalizeCodeset(codeset string) string {
	var b strings.Builder
	digits := true
	for _, r := range strings.ToLower(strings.TrimPrefix(codeset, ".")) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			digits = false
			b.WriteRune(r)
		}
	}
	if digits {
		return ".iso" + b.String()
	}
	return "." + b.String()
}

// expandLocale lists the variants of a POSIX locale name from most to
// least specific, e.g. en_AU.UTF-8 expands to en_AU.UTF-8, en_AU.utf8,
// en_AU, en.UTF-8, en.utf8 and en.
func expandLocale(locale string) []string {
	var modifier, codeset, territory string
	if idx := strings.IndexByte(locale, '@'); idx >= 0 {
		locale, modifier = locale[:idx], locale[idx:]
	}
	if idx := strings.IndexByte(locale, '.'); idx >= 0 {
		locale, codeset = locale[:idx], locale[idx:]
	}
	if idx := strings.IndexByte(locale, '_'); idx >= 0 {
		locale, territory = locale[:idx], locale[idx:]
	}

	modifiers := []string{""}
	if modifier != "" {
		modifiers = []string{modifier, ""}
	}
	territories := []string{""}
	if territory != "" {
		territories = []string{territory, ""}
	}
	codesets := []string{""}
	if codeset != "" {
		codesets = []string{codeset}
		if normalized := normalizeCodeset(codeset); normalized != codeset {
			codesets = append(codesets, normalized)
		}
		codesets = append(codesets, "")
	}

	var result []string
	for _, m := range modifiers {
		for _, t := range territories {
			for _, c := range codesets {
				result = append(result, locale+t+c+m)
			}
		}
	}
	return result
}

// normalizeLanguages expands and deduplicates a preference list. The
// "C" and "POSIX" locales mean untranslated, so nothing after them is
// considered.
func normalizeLanguages(languages []string) []string {
	var result []string
	seen := map[string]bool{}
	for _, lang := range languages {
		if lang == "C" || lang == "POSIX" || strings.HasPrefix(lang, "C.") {
			break
		}
		for _, l := range expandLocale(lang) {
			if !seen[l] {
				seen[l] = true
				result = append(result, l)
			}
		}
	}
	return result
}
