package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "docsight.dev/pkg/docsight/internal/model"
)

// reportFileName is the report file written inside a reports directory.
const reportFileName = "report.yaml"

// shardDirPrefix names the per-shard subdirectories of a reports directory.
const shardDirPrefix = "shard_"

// ReportStore persists audit reports between invocations so `view` and
// `merge` can work on previous runs.
type ReportStore interface {
	// SaveReport writes the report under dir, creating it if needed.
	SaveReport(dir m.Path, report m.Report) error

	// LoadReport reads the report stored under dir.
	LoadReport(dir m.Path) (m.Report, error)

	// ShardDirs lists shard_* subdirectories of dir in index order.
	ShardDirs(dir m.Path) ([]m.Path, error)
}

// YAMLReportStore stores reports as YAML files on the local filesystem.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes report.yaml under dir.
func (s *YAMLReportStore) SaveReport(dir m.Path, report m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), reportFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// LoadReport reads report.yaml under dir.
func (s *YAMLReportStore) LoadReport(dir m.Path) (m.Report, error) {
	target := filepath.Join(string(dir), reportFileName)

	data, err := os.ReadFile(target)
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", target, err)
	}

	return report, nil
}

// ShardDirs lists shard subdirectories of dir sorted by name.
func (s *YAMLReportStore) ShardDirs(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("list reports dir: %w", err)
	}

	var shards []m.Path

	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), shardDirPrefix) {
			shards = append(shards, m.Path(filepath.Join(string(dir), entry.Name())))
		}
	}

	sort.Slice(shards, func(i, j int) bool { return shards[i] < shards[j] })

	return shards, nil
}
