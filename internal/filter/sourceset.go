// Package filter holds the record-level gates applied before consensus
// selection: source-set expressions, E-value thresholds and the valid
// sequence ID list.
package filter

import (
	"regexp"
	"sort"
	"strings"
)

// Set is a set of strings that can also represent the complement of an
// enumerated set against the universe of all values, so "everything
// except HMMPanther and Gene3D" needs no enumeration of sources.
type Set struct {
	complement bool
	members    map[string]bool
}

// NewSet returns a plain set holding the given members.
func NewSet(members ...string) Set {
	s := Set{members: make(map[string]bool)}
	for _, m := range members {
		s.members[m] = true
	}
	return s
}

// Universal returns the set containing every possible value.
func Universal() Set {
	return Set{complement: true, members: make(map[string]bool)}
}

// Contains reports whether the value is in the set.
func (s Set) Contains(value string) bool {
	if s.complement {
		return !s.members[value]
	}
	return s.members[value]
}

// Add inserts the value.
func (s Set) Add(value string) {
	if s.complement {
		delete(s.members, value)
		return
	}
	s.members[value] = true
}

// Remove deletes the value.
func (s Set) Remove(value string) {
	if s.complement {
		s.members[value] = true
		return
	}
	delete(s.members, value)
}

// IsUniversal reports whether the set contains every possible value.
func (s Set) IsUniversal() bool {
	return s.complement && len(s.members) == 0
}

// String renders the set in the expression syntax accepted by
// ParseSourceSet.
func (s Set) String() string {
	keys := make([]string, 0, len(s.members))
	for k := range s.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if s.complement {
		if len(keys) == 0 {
			return "ALL"
		}
		return "ALL-" + strings.Join(keys, "-")
	}
	if len(keys) == 0 {
		return ""
	}
	return strings.Join(keys, "+")
}

// sourceTerm matches one signed term of a source-set expression.
var sourceTerm = regexp.MustCompile(`([-+])?\s*([^-+]+)`)

// ParseSourceSet evaluates a source-set expression: a sequence of
// [+|-]token terms where a bare or +-prefixed token adds the source,
// a --prefixed token removes it, and the reserved token ALL denotes
// the universal set. "ALL-HMMPanther-Gene3D" is every source except
// those two. Unknown tokens are literal source names that simply match
// nothing, never an error.
func ParseSourceSet(expr string) Set {
	result := NewSet()
	for _, match := range sourceTerm.FindAllStringSubmatch(expr, -1) {
		sign, token := match[1], strings.TrimSpace(match[2])
		if token == "" {
			continue
		}
		if token == "ALL" {
			if sign == "-" {
				result = NewSet()
			} else {
				result = Universal()
			}
			continue
		}
		if sign == "-" {
			result.Remove(token)
		} else {
			result.Add(token)
		}
	}
	return result
}

// ParseStages evaluates the ordered list of stage expressions.
func ParseStages(exprs []string) []Set {
	stages := make([]Set, len(exprs))
	for i, expr := range exprs {
		stages[i] = ParseSourceSet(expr)
	}
	return stages
}
