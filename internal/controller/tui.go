package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "docsight.dev/pkg/docsight/internal/model"
)

// TUI implements UI with an interactive report browser for terminals.
// Table and summary rendering is shared with SimpleUI; only BrowseReport
// differs when the report does not fit on one screen.
type TUI struct {
	cmd    *cobra.Command
	simple *SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd, simple: NewSimpleUI(cmd)}
}

// Start initializes the UI.
func (t *TUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (t *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplaySymbolCounts prints the symbol count table.
func (t *TUI) DisplaySymbolCounts(ctx context.Context, files []m.FileSymbols) error {
	return t.simple.DisplaySymbolCounts(ctx, files)
}

// DisplayReport prints the coverage table and summary.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report, failUnder float64) error {
	return t.simple.DisplayReport(ctx, report, failUnder)
}

// BrowseReport opens a scrollable view of the report. Short reports are
// printed directly without entering the alternate screen.
func (t *TUI) BrowseReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderCoverageTable(report) + "\n" + renderSummary(report, 0)
	width, height := t.terminalSize()

	if strings.Count(content, "\n")+browserChromeLines < height {
		return t.simple.BrowseReport(ctx, report)
	}

	browser := newReportBrowser(report.CodeRoot, content, width, height)

	program := tea.NewProgram(browser, tea.WithOutput(t.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("report browser: %w", err)
	}

	return nil
}

func (t *TUI) terminalSize() (int, int) {
	if f, ok := t.cmd.OutOrStdout().(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			return width, height
		}
	}

	return defaultBrowserWidth, defaultBrowserHeight
}

const (
	defaultBrowserWidth  = 80
	defaultBrowserHeight = 24

	// browserChromeLines is the title line plus the key-hint footer.
	browserChromeLines = 2
)

// reportBrowser is the Bubble Tea model behind BrowseReport.
type reportBrowser struct {
	title    string
	content  string
	viewport viewport.Model
	quitting bool
}

func newReportBrowser(codeRoot, content string, width, height int) reportBrowser {
	vp := viewport.New(width, max(height-browserChromeLines, 1))
	vp.SetContent(content)

	return reportBrowser{
		title:    titleStyle.Render(fmt.Sprintf("docsight report: %s", codeRoot)),
		content:  content,
		viewport: vp,
	}
}

// Init implements tea.Model.
func (b reportBrowser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b reportBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.viewport.Width = msg.Width
		b.viewport.Height = max(msg.Height-browserChromeLines, 1)
		b.viewport.SetContent(b.content)

		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			b.quitting = true
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	b.viewport, cmd = b.viewport.Update(msg)

	return b, cmd
}

// View implements tea.Model.
func (b reportBrowser) View() string {
	if b.quitting {
		return ""
	}

	return b.title + "\n" + b.viewport.View() + "\n" + "↑/↓ scroll · q quit"
}
