// Package controller provides output controllers for displaying
// documentation coverage results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "docsight.dev/pkg/docsight/internal/model"
)

// UI defines the interface for presenting audit results.
// Implementations can use different output methods (plain text, TUI).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)

	// DisplaySymbolCounts renders the per-file symbol counts produced
	// by the list workflow.
	DisplaySymbolCounts(ctx context.Context, files []m.FileSymbols) error

	// DisplayReport renders the per-file coverage table and the overall
	// summary line. failUnder colors the summary against the threshold.
	DisplayReport(ctx context.Context, report m.Report, failUnder float64) error

	// BrowseReport presents a saved report for reading; interactive
	// implementations open a scrollable browser.
	BrowseReport(ctx context.Context, report m.Report) error
}

// NewUI selects the UI implementation: interactive terminals get the
// TUI, everything else the plain printer.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
