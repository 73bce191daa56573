package data

import (
	"os"
	"path/filepath"
	"strings"
)

// DatasetInfo describes one world-state file available to the API.
type DatasetInfo struct {
	ID    string `json:"id"`
	File  string `json:"file"`
	Steps int    `json:"steps"`
	Years bool   `json:"has_years"`
}

// ListDatasets scans a directory for world-state CSV files. Files that fail to
// parse are skipped.
func ListDatasets(dir string) ([]DatasetInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	datasets := []DatasetInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		world, err := LoadWorldCSV(path)
		if err != nil {
			continue
		}
		datasets = append(datasets, DatasetInfo{
			ID:    strings.TrimSuffix(entry.Name(), ".csv"),
			File:  path,
			Steps: world.Steps(),
			Years: world.HasYears(),
		})
	}
	return datasets, nil
}
