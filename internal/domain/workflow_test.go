package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsight.dev/pkg/docsight/internal/adapter"
	m "docsight.dev/pkg/docsight/internal/model"
)

// captureUI records what the workflow asked to display.
type captureUI struct {
	reports []m.Report
	files   [][]m.FileSymbols
	browsed []m.Report
}

func (c *captureUI) Start(ctx context.Context) error { return ctx.Err() }
func (c *captureUI) Close(_ context.Context)         {}

func (c *captureUI) DisplaySymbolCounts(_ context.Context, files []m.FileSymbols) error {
	c.files = append(c.files, files)
	return nil
}

func (c *captureUI) DisplayReport(_ context.Context, report m.Report, _ float64) error {
	c.reports = append(c.reports, report)
	return nil
}

func (c *captureUI) BrowseReport(_ context.Context, report m.Report) error {
	c.browsed = append(c.browsed, report)
	return nil
}

func newTestWorkflow(ui *captureUI) Workflow {
	return NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalDocFSAdapter(),
		adapter.NewReportStore(),
		ui,
		NewExtractor(),
		NewEvaluator(),
	)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func buildFixtureRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "app.js"), "const exposed = 1\nfunction helper() {}\n")
	writeFile(t, filepath.Join(root, "src", "util.ts"), "const hidden = 2\n")
	writeFile(t, filepath.Join(root, "docs", "api", "app.md"), "src/app.js:helper and src/app.js are documented\n")

	return root
}

func TestWorkflowAudit_ComputesTalliesAndSavesReport(t *testing.T) {
	root := buildFixtureRepo(t)
	reportsDir := filepath.Join(t.TempDir(), "reports")
	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Audit(context.Background(), AuditArgs{
		Paths:   []m.Path{m.Path(root)},
		DocRoot: "docs",
		Reports: m.Path(reportsDir),
	})
	require.NoError(t, err)
	require.Len(t, ui.reports, 1)

	report := ui.reports[0]
	require.Len(t, report.Files, 2)

	tallies := report.CategoryTallies()
	// app.js is mentioned verbatim; util.ts is not.
	assert.Equal(t, m.Tally{Documented: 1, Total: 2}, tallies[m.CategoryModules])
	// Neither "exposed" nor "hidden" appears in the docs.
	assert.Equal(t, m.Tally{Documented: 0, Total: 2}, tallies[m.CategoryGlobals])
	// helper is documented as src/app.js:helper.
	assert.Equal(t, m.Tally{Documented: 1, Total: 1}, tallies[m.CategoryFunctions])

	// (1+0+1) / (2+2+1)
	assert.InDelta(t, 40.0, report.Overall(), 0.01)

	saved := adapter.NewReportStore()
	persisted, err := saved.LoadReport(m.Path(reportsDir))
	require.NoError(t, err)
	assert.Equal(t, report.Files, persisted.Files)
}

func TestWorkflowAudit_EmptyRootIsFullyCovered(t *testing.T) {
	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Audit(context.Background(), AuditArgs{
		Paths:   []m.Path{m.Path(t.TempDir())},
		DocRoot: "docs",
	})
	require.NoError(t, err)
	require.Len(t, ui.reports, 1)

	report := ui.reports[0]
	assert.Empty(t, report.Files)
	assert.Equal(t, 100.0, report.Overall())
}

func TestWorkflowAudit_MissingCodeRootIsQuiet(t *testing.T) {
	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Audit(context.Background(), AuditArgs{
		Paths:   []m.Path{m.Path(filepath.Join(t.TempDir(), "does-not-exist"))},
		DocRoot: "docs",
	})
	require.NoError(t, err)
	require.Len(t, ui.reports, 1)
	assert.Equal(t, 100.0, ui.reports[0].Overall())
}

func TestWorkflowAudit_MissingDocRootLeavesEverythingUndocumented(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.js"), "const exposed = 1\nfunction helper() {}\n")

	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Audit(context.Background(), AuditArgs{
		Paths:   []m.Path{m.Path(root)},
		DocRoot: "docs",
	})
	require.NoError(t, err)

	tallies := ui.reports[0].CategoryTallies()
	assert.Equal(t, m.Tally{Documented: 0, Total: 1}, tallies[m.CategoryModules])
	assert.Equal(t, m.Tally{Documented: 0, Total: 1}, tallies[m.CategoryGlobals])
	assert.Equal(t, m.Tally{Documented: 0, Total: 1}, tallies[m.CategoryFunctions])
}

func TestWorkflowAudit_IgnoredDirectoriesArePruned(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.js"), "function visible() {}\n")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.js"), "function invisible() {}\n")
	writeFile(t, filepath.Join(root, "dist", "bundle.js"), "function bundled() {}\n")

	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Audit(context.Background(), AuditArgs{
		Paths:   []m.Path{m.Path(root)},
		DocRoot: "docs",
	})
	require.NoError(t, err)

	report := ui.reports[0]
	require.Len(t, report.Files, 1)
	assert.Equal(t, "app.js", report.Files[0].Path)
}

func TestWorkflowAudit_ExcludeFiltersByRelativePath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.js"), "function kept() {}\n")
	writeFile(t, filepath.Join(root, "app.test.js"), "function dropped() {}\n")

	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Audit(context.Background(), AuditArgs{
		Paths:   []m.Path{m.Path(root)},
		DocRoot: "docs",
		Exclude: []string{`\.test\.js$`},
	})
	require.NoError(t, err)

	report := ui.reports[0]
	require.Len(t, report.Files, 1)
	assert.Equal(t, "app.js", report.Files[0].Path)
}

func TestWorkflowAudit_FailUnderGate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.js"), "function undocumentedThing() {}\n")

	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Audit(context.Background(), AuditArgs{
		Paths:     []m.Path{m.Path(root)},
		DocRoot:   "docs",
		FailUnder: 90,
	})
	require.ErrorIs(t, err, ErrCoverageBelowThreshold)
}

func TestWorkflowList_CountsSymbolsPerFile(t *testing.T) {
	root := buildFixtureRepo(t)
	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.List(context.Background(), ListArgs{Paths: []m.Path{m.Path(root)}})
	require.NoError(t, err)
	require.Len(t, ui.files, 1)

	files := ui.files[0]
	require.Len(t, files, 2)
	assert.Equal(t, m.Path("src/app.js"), files[0].Path)
	assert.Equal(t, 1, files[0].Globals)
	assert.Equal(t, 1, files[0].Functions)
	assert.Equal(t, m.Path("src/util.ts"), files[1].Path)
	assert.Equal(t, 1, files[1].Globals)
	assert.Equal(t, 0, files[1].Functions)
}

func TestWorkflowShardAndMerge_ReproducesFullRun(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.js", "b.js", "c.js", "d.js"} {
		writeFile(t, filepath.Join(root, name), "function fn_"+name[:1]+"() {}\n")
	}
	writeFile(t, filepath.Join(root, "docs", "api.md"), "fn_a fn_c are covered\n")

	reportsDir := filepath.Join(t.TempDir(), "reports")

	// Full run for the expected tallies.
	fullUI := &captureUI{}
	fullW := newTestWorkflow(fullUI)
	require.NoError(t, fullW.Audit(context.Background(), AuditArgs{
		Paths:   []m.Path{m.Path(root)},
		DocRoot: "docs",
	}))
	expected := fullUI.reports[0]

	// Two sharded runs writing under shard_0/ and shard_1/.
	for shard := 0; shard < 2; shard++ {
		ui := &captureUI{}
		w := newTestWorkflow(ui)
		require.NoError(t, w.Audit(context.Background(), AuditArgs{
			Paths:      []m.Path{m.Path(root)},
			DocRoot:    "docs",
			Reports:    m.Path(reportsDir),
			ShardIndex: shard,
			ShardCount: 2,
		}))
	}

	mergeUI := &captureUI{}
	mergeW := newTestWorkflow(mergeUI)
	require.NoError(t, mergeW.Merge(context.Background(), MergeArgs{Reports: m.Path(reportsDir)}))
	require.Len(t, mergeUI.reports, 1)

	merged := mergeUI.reports[0]
	assert.Equal(t, expected.Files, merged.Files)
	assert.Equal(t, expected.CategoryTallies(), merged.CategoryTallies())

	// The merged report is persisted at the top of the reports dir.
	persisted, err := adapter.NewReportStore().LoadReport(m.Path(reportsDir))
	require.NoError(t, err)
	assert.Equal(t, merged.Files, persisted.Files)
}

func TestWorkflowView_LoadsSavedReport(t *testing.T) {
	reportsDir := t.TempDir()
	store := adapter.NewReportStore()
	require.NoError(t, store.SaveReport(m.Path(reportsDir), m.Report{
		CodeRoot: "repo",
		Files:    []m.FileCoverage{{Path: "app.js", ModuleDocumented: true}},
	}))

	ui := &captureUI{}
	w := newTestWorkflow(ui)

	require.NoError(t, w.View(context.Background(), ViewArgs{Reports: m.Path(reportsDir)}))
	require.Len(t, ui.browsed, 1)
	assert.Equal(t, "app.js", ui.browsed[0].Files[0].Path)
}

func TestWorkflowMerge_NoShardsIsAnError(t *testing.T) {
	ui := &captureUI{}
	w := newTestWorkflow(ui)

	err := w.Merge(context.Background(), MergeArgs{Reports: m.Path(t.TempDir())})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shard reports")
}

func TestResolveDocRoot(t *testing.T) {
	assert.Equal(t, m.Path(filepath.Join("repo", "docs")), resolveDocRoot("repo", "docs"))

	abs := filepath.Join(string(filepath.Separator), "srv", "docs")
	assert.Equal(t, m.Path(abs), resolveDocRoot("repo", m.Path(abs)))
}

func TestShardOf_IsStableAndInRange(t *testing.T) {
	first := shardOf("src/app.js", 3)
	second := shardOf("src/app.js", 3)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 3)
}
