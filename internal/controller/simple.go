package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "docsight.dev/pkg/docsight/internal/model"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// SimpleUI implements UI using the cobra command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplaySymbolCounts prints the per-file symbol count table.
func (s *SimpleUI) DisplaySymbolCounts(ctx context.Context, files []m.FileSymbols) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSymbolCountTable(files))

	return nil
}

// DisplayReport prints the coverage table and the summary block.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report, failUnder float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s\n%s", renderCoverageTable(report), renderSummary(report, failUnder))

	return nil
}

// BrowseReport prints the report; SimpleUI has no interactive mode.
func (s *SimpleUI) BrowseReport(ctx context.Context, report m.Report) error {
	return s.DisplayReport(ctx, report, 0)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderSymbolCountTable(files []m.FileSymbols) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Path", "Globals", "Functions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	totalGlobals := 0
	totalFunctions := 0

	for _, file := range files {
		table.Append([]string{
			string(file.Path),
			fmt.Sprintf("%d", file.Globals),
			fmt.Sprintf("%d", file.Functions),
		})

		totalGlobals += file.Globals
		totalFunctions += file.Functions
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		fmt.Sprintf("%d", totalGlobals),
		fmt.Sprintf("%d", totalFunctions),
	})

	table.Render()

	return buffer.String()
}

func renderCoverageTable(report m.Report) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Path", "Module", "Globals", "Functions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, file := range report.Files {
		moduleMark := "✗"
		if file.ModuleDocumented {
			moduleMark = "✓"
		}

		table.Append([]string{
			file.Path,
			moduleMark,
			formatTally(file.Globals),
			formatTally(file.Functions),
		})
	}

	tallies := report.CategoryTallies()
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		formatTally(tallies[m.CategoryModules]),
		formatTally(tallies[m.CategoryGlobals]),
		formatTally(tallies[m.CategoryFunctions]),
	})

	table.Render()

	return buffer.String()
}

func renderSummary(report m.Report, failUnder float64) string {
	tallies := report.CategoryTallies()
	overall := report.Overall()

	overallLine := fmt.Sprintf("Overall:    %.1f%%", overall)
	if failUnder > 0 && overall < failUnder {
		overallLine = failStyle.Render(overallLine + fmt.Sprintf(" (below %.1f%% threshold)", failUnder))
	} else {
		overallLine = passStyle.Render(overallLine)
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n",
		titleStyle.Render("Documentation coverage"),
		summaryLine("Modules:", tallies[m.CategoryModules]),
		summaryLine("Globals:", tallies[m.CategoryGlobals]),
		summaryLine("Functions:", tallies[m.CategoryFunctions]),
		overallLine,
	)
}

func summaryLine(label string, tally m.Tally) string {
	return fmt.Sprintf("%-11s %d/%d documented (%.1f%%)", label, tally.Documented, tally.Total, tally.Percent())
}

func formatTally(tally m.Tally) string {
	return fmt.Sprintf("%d/%d", tally.Documented, tally.Total)
}
