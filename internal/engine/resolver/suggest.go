package resolver

import (
	"cmp"
	"slices"
	"strings"
)

// maxSuggestions caps the "did you mean" list attached to a not-found warning.
const maxSuggestions = 3

// Suggest returns up to limit known names close to name, nearest first.
// A name qualifies when its edit distance is at most a third of the longer name, and at least 2.
func Suggest(name string, known []string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	needle := strings.ToLower(name)
	var matches []scored
	for _, k := range known {
		if k == name {
			continue
		}
		d := levenshtein(needle, strings.ToLower(k))
		if d <= max(2, max(len(needle), len(k))/3) {
			matches = append(matches, scored{name: k, dist: d})
		}
	}

	slices.SortFunc(matches, func(a, b scored) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(limit, len(matches)))
	for i := 0; i < len(matches) && i < limit; i++ {
		out = append(out, matches[i].name)
	}
	return out
}

// levenshtein computes the edit distance between two strings, byte-wise.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}
