// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

const (
	rawDir     = "raw"
	reportsDir = "reports"
)

// LoadRaw reads every raw source file under corpusDir/raw/. Files may be
// JSON or YAML, each holding a list of raw records; files are read in name
// order so repeated runs see the same sequence.
func (s *Store) LoadRaw() ([]types.RawRecord, error) {
	dir := filepath.Join(s.corpusDir, rawDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading raw directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".json", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var raws []types.RawRecord
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading raw file %s: %w", path, err)
		}

		var batch []types.RawRecord
		if strings.HasSuffix(name, ".json") {
			err = json.Unmarshal(data, &batch)
		} else {
			err = yaml.Unmarshal(data, &batch)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing raw file %s: %w", path, err)
		}

		// Default the provenance source to the file it came from.
		for i := range batch {
			if batch[i].Source == "" {
				batch[i].Source = strings.TrimSuffix(name, filepath.Ext(name))
			}
		}
		raws = append(raws, batch...)
	}
	return raws, nil
}

// WriteReport persists a run report as YAML under corpusDir/reports/.
func (s *Store) WriteReport(report *types.RunReport) (string, error) {
	dir := filepath.Join(s.corpusDir, reportsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	name := fmt.Sprintf("run-%s-%s.yaml", report.StartedAt.Format("20060102-150405"), report.RunID[:8])
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}

// LatestReport loads the most recent run report, or nil when none exists.
func (s *Store) LatestReport() (*types.RunReport, error) {
	dir := filepath.Join(s.corpusDir, reportsDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading reports directory: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest, latestMod = entry.Name(), info.ModTime()
		}
	}
	if latest == "" {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, latest))
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", latest, err)
	}
	var report types.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", latest, err)
	}
	return &report, nil
}
