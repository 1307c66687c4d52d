package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	m "docsight.dev/pkg/docsight/internal/model"
)

func sampleReport() m.Report {
	return m.Report{
		CodeRoot:    "repo",
		DocRoot:     "repo/docs",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		ShardIndex:  0,
		ShardCount:  1,
		Files: []m.FileCoverage{
			{
				Path:             "src/app.js",
				ModuleDocumented: true,
				Globals:          m.Tally{Documented: 1, Total: 2},
				Functions:        m.Tally{Documented: 3, Total: 4},
			},
		},
	}
}

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewReportStore()
	dir := filepath.Join(t.TempDir(), "reports")

	if err := store.SaveReport(m.Path(dir), sampleReport()); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	loaded, err := store.LoadReport(m.Path(dir))
	if err != nil {
		t.Fatalf("LoadReport() error = %v", err)
	}

	want := sampleReport()
	if loaded.CodeRoot != want.CodeRoot || loaded.DocRoot != want.DocRoot {
		t.Fatalf("LoadReport() roots = %q/%q, want %q/%q", loaded.CodeRoot, loaded.DocRoot, want.CodeRoot, want.DocRoot)
	}

	if len(loaded.Files) != 1 || loaded.Files[0] != want.Files[0] {
		t.Fatalf("LoadReport() files = %+v, want %+v", loaded.Files, want.Files)
	}

	if !loaded.GeneratedAt.Equal(want.GeneratedAt) {
		t.Fatalf("LoadReport() generated at = %v, want %v", loaded.GeneratedAt, want.GeneratedAt)
	}
}

func TestYAMLReportStore_LoadMissingReport(t *testing.T) {
	store := NewReportStore()

	_, err := store.LoadReport(m.Path(t.TempDir()))
	if err == nil {
		t.Fatal("LoadReport() expected an error for a missing report")
	}
}

func TestYAMLReportStore_ShardDirs(t *testing.T) {
	store := NewReportStore()
	dir := t.TempDir()

	for _, name := range []string{"shard_1", "shard_0", "other", "shard_2"} {
		if err := os.MkdirAll(filepath.Join(dir, name), 0o750); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
	}

	writeTestFile(t, filepath.Join(dir, "shard_3"), "a file, not a dir")

	shards, err := store.ShardDirs(m.Path(dir))
	if err != nil {
		t.Fatalf("ShardDirs() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "shard_0"),
		filepath.Join(dir, "shard_1"),
		filepath.Join(dir, "shard_2"),
	}

	if len(shards) != len(want) {
		t.Fatalf("ShardDirs() = %v, want %v", shards, want)
	}

	for i, shard := range shards {
		if string(shard) != want[i] {
			t.Fatalf("ShardDirs()[%d] = %q, want %q", i, shard, want[i])
		}
	}
}
