// Package store persists sealed reports as an append-only dated file tree:
// one markdown report and one JSON snapshot per run under
// data/YYYY/MM/DD. The JSON tree is the durable batch history everything
// else is rebuilt from.
package store

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"trendscope/internal/model"
)

type Store struct {
	dataDir string
}

func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Save writes the markdown report and its sibling JSON snapshot, creating
// the dated directory as needed. Both files share a base name derived from
// the run's time of day.
func (s *Store) Save(report model.Report, markdown string, now time.Time) (string, string, error) {
	dir := filepath.Join(s.dataDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating report directory: %w", err)
	}

	base := "github-trending-" + now.Format("1504")
	mdPath := filepath.Join(dir, base+".md")
	jsonPath := filepath.Join(dir, base+".json")

	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return "", "", fmt.Errorf("writing markdown report: %w", err)
	}

	snapshot, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(jsonPath, snapshot, 0o644); err != nil {
		return "", "", fmt.Errorf("writing snapshot: %w", err)
	}

	slog.Info("report persisted", "markdown", mdPath, "snapshot", jsonPath)
	return mdPath, jsonPath, nil
}

// LoadAll reads every snapshot in the history, newest date first. A snapshot
// that fails to decode is skipped with a warning; a missing data directory
// is an empty history, not an error.
func (s *Store) LoadAll() ([]model.Report, error) {
	var reports []model.Report

	err := filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable snapshot", "path", path, "error", err)
			return nil
		}

		var report model.Report
		if err := json.Unmarshal(data, &report); err != nil {
			slog.Warn("skipping undecodable snapshot", "path", path, "error", err)
			return nil
		}

		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading report history: %w", err)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date > reports[j].Date
	})

	return reports, nil
}

// Prune deletes report files older than the retention window and returns how
// many were removed. Deletion failures are logged and skipped.
func (s *Store) Prune(retentionDays int) int {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted := 0

	filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			slog.Error("failed to delete expired file", "path", path, "error", err)
			return nil
		}
		deleted++
		return nil
	})

	if deleted > 0 {
		slog.Info("retention prune complete", "deleted", deleted, "retention_days", retentionDays)
	}
	return deleted
}
