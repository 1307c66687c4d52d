// Package domain implements the documentation coverage engine: symbol
// extraction, coverage evaluation, and the workflows that tie the
// filesystem adapters and UI together.
package domain

import (
	"regexp"

	m "docsight.dev/pkg/docsight/internal/model"
)

// The extractor is deliberately not a parser. It pattern-matches likely
// declaration sites in raw text, so it can both miss real declarations
// and produce false positives; the coverage semantics are defined
// relative to exactly these patterns. The identifier alphabet (ASCII
// letter or underscore first, then word characters) is a fixed
// assumption, not a configuration surface.

// globalPattern matches variable-style declarations at the start of a
// line. No leading indentation is tolerated: indented and nested
// declarations are intentionally excluded.
var globalPattern = regexp.MustCompile(`(?m)^(?:const|let|var)\s+([A-Za-z_]\w*)`)

// functionPatterns are five independent declaration shapes, each
// scanned across the whole text. Known blind spots per shape:
//  1. `function name(`: misses generators and computed names.
//  2. `name = function`: misses chained assignments.
//  3. `name = async (`: arrow shorthand; does not match the parameter list.
//  4. `name = (...) =>`: the parameter list must not contain `)`.
//  5. `name: (...) =>` / `name: async (...) =>`: object-literal methods;
//     same parameter-list restriction as shape 4.
var functionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bfunction\s+([A-Za-z_]\w*)\s*\(`),
	regexp.MustCompile(`\b([A-Za-z_]\w*)\s*=\s*function\b`),
	regexp.MustCompile(`\b([A-Za-z_]\w*)\s*=\s*async\s*\(`),
	regexp.MustCompile(`\b([A-Za-z_]\w*)\s*=\s*\([^)]*\)\s*=>`),
	regexp.MustCompile(`\b([A-Za-z_]\w*)\s*:\s*(?:async\s*)?\([^)]*\)\s*=>`),
}

// Extractor derives candidate symbol names from raw source text.
type Extractor interface {
	// Extract returns the bare names of top-level bindings and
	// function-like declarations found in text. Extraction never fails;
	// text the patterns cannot make sense of simply yields no matches.
	Extract(text string) m.SymbolSet
}

type regexExtractor struct{}

// NewExtractor constructs the pattern-matching Extractor.
func NewExtractor() Extractor {
	return &regexExtractor{}
}

// Extract applies the globals rule and all five function patterns and
// unions the hits into sets, so a name matched by several patterns
// appears once.
func (e *regexExtractor) Extract(text string) m.SymbolSet {
	symbols := m.NewSymbolSet()

	for _, match := range globalPattern.FindAllStringSubmatch(text, -1) {
		symbols.Globals[match[1]] = struct{}{}
	}

	for _, pattern := range functionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			symbols.Functions[match[1]] = struct{}{}
		}
	}

	return symbols
}
