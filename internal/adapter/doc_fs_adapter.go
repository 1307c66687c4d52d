package adapter

import (
	"os"
	"path/filepath"
	"strings"

	m "docsight.dev/pkg/docsight/internal/model"
)

// markdownExtension is the single recognized documentation extension.
const markdownExtension = ".md"

// DocFSAdapter loads the documentation corpus the coverage evaluator
// searches against.
type DocFSAdapter interface {
	// LoadCorpus reads every markdown file under root recursively and
	// joins their contents with newlines. A missing root yields the
	// empty corpus with no error; every query against an empty corpus
	// reports "undocumented". File order is irrelevant since the corpus
	// is only used for substring search.
	LoadCorpus(root m.Path) (string, error)
}

// LocalDocFSAdapter is the os-backed DocFSAdapter implementation.
type LocalDocFSAdapter struct{}

// NewLocalDocFSAdapter constructs a LocalDocFSAdapter.
func NewLocalDocFSAdapter() *LocalDocFSAdapter {
	return &LocalDocFSAdapter{}
}

// LoadCorpus aggregates all markdown documents under root into one blob.
func (a *LocalDocFSAdapter) LoadCorpus(root m.Path) (string, error) {
	rootStr := string(root)

	if _, err := os.Stat(rootStr); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	var parts []string

	err := filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != markdownExtension {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		parts = append(parts, strings.ToValidUTF8(string(content), "�"))

		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(parts, "\n"), nil
}
