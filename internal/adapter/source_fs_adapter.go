// Package adapter contains filesystem and persistence adapters for the docsight CLI.
package adapter

import (
	"os"
	"path/filepath"
	"strings"

	m "docsight.dev/pkg/docsight/internal/model"
)

// sourceExtensions is the fixed set of recognized source file extensions.
var sourceExtensions = map[string]struct{}{
	".js":  {},
	".jsx": {},
	".ts":  {},
	".tsx": {},
}

// ignoredDirs is the fixed set of directory base names whose subtrees
// are never visited. Pruning happens before descending, so dependency
// directories of arbitrary size cost nothing.
var ignoredDirs = map[string]struct{}{
	".git":         {},
	"dist":         {},
	"node_modules": {},
	"build":        {},
}

// SourceWalkFunc receives each enumerated source file path. Returning an
// error stops the walk and propagates it to the caller.
type SourceWalkFunc func(path m.Path) error

// SourceFSAdapter abstracts the filesystem operations the domain layer
// relies on when scanning user projects. It hides direct `os` access so
// the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// WalkSources traverses root depth-first and invokes fn for every
	// file whose extension is in the recognized source set, pruning
	// ignored directories. A missing root is a quiet empty traversal.
	WalkSources(root m.Path, fn SourceWalkFunc) error

	// ReadFileText loads a file and returns its contents as text.
	// Invalid UTF-8 sequences are replaced with U+FFFD rather than
	// surfacing a decode error; I/O faults still propagate.
	ReadFileText(path m.Path) (string, error)

	// RelPath returns the relative path from base to target, always
	// forward-slash separated so it is stable as an identity key.
	RelPath(base, target m.Path) (m.Path, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter implementation.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// WalkSources iterates over recognized source files under root.
func (a *LocalSourceFSAdapter) WalkSources(root m.Path, fn SourceWalkFunc) error {
	rootStr := string(root)

	if _, err := os.Stat(rootStr); err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if _, ignored := ignoredDirs[filepath.Base(path)]; ignored && path != rootStr {
				return filepath.SkipDir
			}

			return nil
		}

		if _, ok := sourceExtensions[filepath.Ext(path)]; !ok {
			return nil
		}

		return fn(m.Path(path))
	})
}

// ReadFileText loads file contents, substituting replacement characters
// for any byte sequences that are not valid UTF-8.
func (a *LocalSourceFSAdapter) ReadFileText(path m.Path) (string, error) {
	raw, err := os.ReadFile(string(path))
	if err != nil {
		return "", err
	}

	return strings.ToValidUTF8(string(raw), "�"), nil
}

// RelPath returns the forward-slash relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(filepath.ToSlash(rel)), nil
}
