package resolver

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameForms holds the case variants of a dependency name used to build candidates.
type nameForms struct {
	verbatim string
	upper    string
	lower    string
	title    string
}

func formsOf(name string) nameForms {
	return nameForms{
		verbatim: name,
		upper:    cases.Upper(language.Und).String(name),
		lower:    cases.Lower(language.Und).String(name),
		title:    titleCase(name),
	}
}

// titleCase upper-cases the first letter and lower-cases the remainder.
// Unlike cases.Title it does not treat '-' or '_' as word boundaries.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// ProbeCandidates returns the heuristic probe names for a dependency, in the order they are tried.
// Duplicate forms (e.g. when the name is already lower case) appear once, at their first position.
func ProbeCandidates(name string) []string {
	f := formsOf(name)
	return dedupe([]string{
		f.verbatim,
		f.verbatim + "Config",
		f.verbatim + "Targets",
		f.upper,
		f.lower,
		f.title,
		f.upper + "Config",
		f.title + "Config",
	})
}

// TargetCandidates returns the heuristic target names for a dependency, in the order they are tried.
// The first element is the low-confidence fallback used when no candidate exists.
func TargetCandidates(name string) []string {
	f := formsOf(name)
	return dedupe([]string{
		namespaced(f.verbatim),
		namespaced(f.lower),
		namespaced(f.title),
		namespaced(f.upper),
		f.verbatim,
		f.lower,
		f.title,
		f.upper,
	})
}

func namespaced(s string) string {
	return s + "::" + s
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
