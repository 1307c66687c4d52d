package domain

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"docsight.dev/pkg/docsight/internal/adapter"
	"docsight.dev/pkg/docsight/internal/controller"
	m "docsight.dev/pkg/docsight/internal/model"
	"docsight.dev/pkg/docsight/pkg"
)

// ErrCoverageBelowThreshold is returned by Audit when the overall
// percentage falls below the configured fail-under gate.
var ErrCoverageBelowThreshold = errors.New("documentation coverage below threshold")

// AuditArgs holds the parameters for a full coverage audit.
type AuditArgs struct {
	Paths      []m.Path
	DocRoot    m.Path
	Exclude    []string
	Reports    m.Path
	FailUnder  float64
	ShardIndex int
	ShardCount int
}

// ListArgs holds the parameters for the symbol-count listing.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
}

// ViewArgs holds the parameters for viewing a saved report.
type ViewArgs struct {
	Reports m.Path
}

// MergeArgs holds the parameters for merging shard reports.
type MergeArgs struct {
	Reports m.Path
}

// Workflow exposes the docsight operations the commands invoke.
type Workflow interface {
	Audit(ctx context.Context, args AuditArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.DocFSAdapter
	adapter.ReportStore
	controller.UI
	Extractor
	Evaluator
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	docAdapter adapter.DocFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	extractor Extractor,
	evaluator Evaluator,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		DocFSAdapter:    docAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Extractor:       extractor,
		Evaluator:       evaluator,
	}
}

// Audit runs the full coverage computation, displays and saves the
// report, and applies the fail-under gate.
func (w *workflow) Audit(ctx context.Context, args AuditArgs) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Close(ctx)

	report, err := w.buildReport(args)
	if err != nil {
		slog.Error("audit failed", "error", err)
		return fmt.Errorf("audit: %w", err)
	}

	if err := w.DisplayReport(ctx, report, args.FailUnder); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if args.Reports != "" {
		dir := args.Reports
		if args.ShardCount > 1 {
			dir = m.Path(filepath.Join(string(dir), fmt.Sprintf("shard_%d", args.ShardIndex)))
		}

		if err := w.SaveReport(dir, report); err != nil {
			slog.Error("failed to save report", "dir", dir, "error", err)
			return err
		}
	}

	if overall := report.Overall(); args.FailUnder > 0 && overall < args.FailUnder {
		return fmt.Errorf("%w: %.1f%% < %.1f%%", ErrCoverageBelowThreshold, overall, args.FailUnder)
	}

	return nil
}

// List enumerates source files and displays per-file symbol counts.
// No documentation corpus is consulted.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Close(ctx)

	exclude, err := compileExcludes(args.Exclude)
	if err != nil {
		return err
	}

	var files []m.FileSymbols

	for _, root := range defaultPaths(args.Paths) {
		walkErr := w.WalkSources(root, func(path m.Path) error {
			rel, err := w.RelPath(root, path)
			if err != nil {
				return err
			}

			if matchesAny(exclude, string(rel)) {
				return nil
			}

			text, err := w.ReadFileText(path)
			if err != nil {
				return err
			}

			symbols := w.Extract(text)
			files = append(files, m.FileSymbols{
				Path:      rel,
				Globals:   len(symbols.Globals),
				Functions: len(symbols.Functions),
			})

			return nil
		})
		if walkErr != nil {
			slog.Error("listing failed", "root", root, "error", walkErr)
			return fmt.Errorf("list: %w", walkErr)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return w.DisplaySymbolCounts(ctx, files)
}

// View loads the saved report and hands it to the UI for browsing.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Close(ctx)

	report, err := w.LoadReport(args.Reports)
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}

	return w.BrowseReport(ctx, report)
}

// Merge combines shard_* report directories into a single report. Shards
// partition files disjointly, so merging is concatenation of per-file
// records with tallies recomputed from the merged set.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Close(ctx)

	shards, err := w.ShardDirs(args.Reports)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	if len(shards) == 0 {
		return fmt.Errorf("merge: no shard reports found under %s", args.Reports)
	}

	reports := make([]m.Report, len(shards))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, dir := range shards {
		i, dir := i, dir
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			report, err := w.LoadReport(dir)
			if err != nil {
				return err
			}

			reports[i] = report

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("merge: load shard reports: %w", err)
	}

	merged := mergeReports(reports)

	if err := w.SaveReport(args.Reports, merged); err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	return w.DisplayReport(ctx, merged, 0)
}

// buildReport is the sequential audit core: enumerate, extract, qualify,
// and evaluate against the corpus. Per-file records are spooled to disk
// so large trees do not have to live in memory during the walk.
func (w *workflow) buildReport(args AuditArgs) (m.Report, error) {
	paths := defaultPaths(args.Paths)

	exclude, err := compileExcludes(args.Exclude)
	if err != nil {
		return m.Report{}, err
	}

	shardCount := args.ShardCount
	if shardCount < 1 {
		shardCount = 1
	}

	docRoot := resolveDocRoot(paths[0], args.DocRoot)

	corpus, err := w.LoadCorpus(docRoot)
	if err != nil {
		return m.Report{}, fmt.Errorf("load docs: %w", err)
	}

	slog.Debug("loaded documentation corpus", "doc_root", docRoot, "bytes", len(corpus))

	spool, err := pkg.NewSpool[m.FileCoverage]()
	if err != nil {
		return m.Report{}, err
	}

	defer func() { _ = spool.Close() }()

	for _, root := range paths {
		walkErr := w.WalkSources(root, func(path m.Path) error {
			rel, err := w.RelPath(root, path)
			if err != nil {
				return err
			}

			if matchesAny(exclude, string(rel)) {
				return nil
			}

			if shardCount > 1 && shardOf(rel, shardCount) != args.ShardIndex {
				return nil
			}

			text, err := w.ReadFileText(path)
			if err != nil {
				return err
			}

			symbols := w.Extract(text)
			record := m.FileCoverage{
				Path:             string(rel),
				ModuleDocumented: w.IsDocumented(string(rel), corpus),
				Globals:          w.ComputeCoverage(qualifyNames(rel, symbols.Globals), corpus),
				Functions:        w.ComputeCoverage(qualifyNames(rel, symbols.Functions), corpus),
			}

			slog.Debug("scanned source file",
				"path", rel,
				"globals", record.Globals.Total,
				"functions", record.Functions.Total,
			)

			return spool.Append(record)
		})
		if walkErr != nil {
			return m.Report{}, walkErr
		}
	}

	report := m.Report{
		CodeRoot:    string(paths[0]),
		DocRoot:     string(docRoot),
		GeneratedAt: time.Now().UTC(),
		ShardIndex:  args.ShardIndex,
		ShardCount:  shardCount,
	}

	if err := spool.Range(func(_ uint64, record m.FileCoverage) error {
		report.Files = append(report.Files, record)
		return nil
	}); err != nil {
		return m.Report{}, err
	}

	sort.Slice(report.Files, func(i, j int) bool { return report.Files[i].Path < report.Files[j].Path })

	return report, nil
}

// qualifyNames scopes every bare name in the set to its file.
func qualifyNames(rel m.Path, bareNames map[string]struct{}) []string {
	qualified := make([]string, 0, len(bareNames))
	for name := range bareNames {
		qualified = append(qualified, m.QualifiedName(rel, name))
	}

	return qualified
}

// mergeReports concatenates per-file records, dropping duplicate paths
// so an accidentally re-run shard cannot double-count a file.
func mergeReports(reports []m.Report) m.Report {
	merged := m.Report{
		CodeRoot:    reports[0].CodeRoot,
		DocRoot:     reports[0].DocRoot,
		GeneratedAt: time.Now().UTC(),
		ShardIndex:  0,
		ShardCount:  1,
	}

	seen := make(map[string]struct{})

	for _, report := range reports {
		for _, file := range report.Files {
			if _, dup := seen[file.Path]; dup {
				continue
			}

			seen[file.Path] = struct{}{}
			merged.Files = append(merged.Files, file)
		}
	}

	sort.Slice(merged.Files, func(i, j int) bool { return merged.Files[i].Path < merged.Files[j].Path })

	return merged
}

func defaultPaths(paths []m.Path) []m.Path {
	if len(paths) == 0 {
		return []m.Path{"."}
	}

	return paths
}

// resolveDocRoot interprets the doc root relative to the code root
// unless it is absolute.
func resolveDocRoot(codeRoot, docRoot m.Path) m.Path {
	if filepath.IsAbs(string(docRoot)) {
		return docRoot
	}

	return m.Path(filepath.Join(string(codeRoot), string(docRoot)))
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// shardOf assigns a file to a shard by hashing its relative path, so the
// assignment is stable across runs and machines.
func shardOf(rel m.Path, shardCount int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(rel))

	return int(h.Sum32() % uint32(shardCount))
}
