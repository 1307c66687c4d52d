// Package model defines the data structures for documentation coverage auditing.
package model

// Path represents a file system path.
type Path string

// SymbolSet holds the bare names extracted from a single source file,
// split into top-level bindings and function-like declarations. The two
// sets may share members when different extraction rules match the same
// name; that overlap is kept as-is.
type SymbolSet struct {
	Globals   map[string]struct{}
	Functions map[string]struct{}
}

// NewSymbolSet returns an empty SymbolSet with both sets allocated.
func NewSymbolSet() SymbolSet {
	return SymbolSet{
		Globals:   make(map[string]struct{}),
		Functions: make(map[string]struct{}),
	}
}

// QualifiedName scopes a bare name to its owning file's relative path.
// The same bare name in two files yields two distinct qualified names.
func QualifiedName(relPath Path, bareName string) string {
	return string(relPath) + ":" + bareName
}

// FileSymbols summarizes how many symbols were extracted from one file.
type FileSymbols struct {
	Path      Path
	Globals   int
	Functions int
}
