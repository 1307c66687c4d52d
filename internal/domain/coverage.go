package domain

import (
	"regexp"
	"strings"

	m "docsight.dev/pkg/docsight/internal/model"
)

// Evaluator tests symbol names against a documentation corpus.
type Evaluator interface {
	// IsDocumented reports whether name occurs in corpus as a
	// case-sensitive whole-word match. The name is escaped before
	// matching, so path separators and colons are searched literally.
	// A qualified name also counts as documented when prose mentions
	// just the bare token after its last colon. An empty corpus is
	// never matched against.
	IsDocumented(name, corpus string) bool

	// ComputeCoverage deduplicates names into a set and returns the
	// (documented, total) tally over that set. An empty set yields
	// (0, 0), which callers must report as fully covered.
	ComputeCoverage(names []string, corpus string) m.Tally
}

type wordMatchEvaluator struct{}

// NewEvaluator constructs the word-boundary matching Evaluator.
func NewEvaluator() Evaluator {
	return &wordMatchEvaluator{}
}

// IsDocumented checks the full qualified form first, then the bare
// trailing token for colon-qualified names.
func (e *wordMatchEvaluator) IsDocumented(name, corpus string) bool {
	if corpus == "" {
		return false
	}

	if matchWord(name, corpus) {
		return true
	}

	if idx := strings.LastIndex(name, ":"); idx >= 0 && idx+1 < len(name) {
		return matchWord(name[idx+1:], corpus)
	}

	return false
}

// ComputeCoverage counts documented names over the deduplicated set, so
// input duplicates never inflate the total.
func (e *wordMatchEvaluator) ComputeCoverage(names []string, corpus string) m.Tally {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	if len(set) == 0 {
		return m.Tally{}
	}

	documented := 0

	for name := range set {
		if e.IsDocumented(name, corpus) {
			documented++
		}
	}

	return m.Tally{Documented: documented, Total: len(set)}
}

// matchWord performs a word-boundary-delimited search for the literal
// name. QuoteMeta guarantees the pattern compiles for any input.
func matchWord(name, corpus string) bool {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)

	return pattern.MatchString(corpus)
}
