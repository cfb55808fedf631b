// Package wildcard implements the `*term*` search filters used by list endpoints.
package wildcard

import "strings"

// All is the match-everything filter.
const All = "*"

// Wrap turns free text into a filter: "" becomes All, anything else `*term*`.
func Wrap(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return All
	}
	return All + term + All
}

// Filter is a parsed, case-insensitive substring filter.
type Filter struct {
	needle string
}

// Parse strips asterisks and lowercases the remaining term.
// A filter that is empty after stripping matches everything.
func Parse(raw string) Filter {
	return Filter{needle: strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, All, "")))}
}

// MatchAll reports whether the filter accepts every value.
func (f Filter) MatchAll() bool {
	return f.needle == ""
}

// Term returns the normalized search term.
func (f Filter) Term() string {
	return f.needle
}

// Match reports whether any of the values contains the term.
func (f Filter) Match(values ...string) bool {
	if f.MatchAll() {
		return true
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), f.needle) {
			return true
		}
	}
	return false
}

// SQLPattern renders the filter as a LIKE pattern, escaping LIKE metacharacters.
func (f Filter) SQLPattern() string {
	if f.MatchAll() {
		return "%"
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(f.needle)
	return "%" + escaped + "%"
}
