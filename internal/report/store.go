package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/driftguard/driftguard/pkg/types"
)

// Store persists finished reports to the output directory. Reports are
// written atomically (temp file + rename): downstream automation treats
// report presence as a completion signal, so a partial report must never
// become visible at the canonical path.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the structured form of the report and returns its path
func (s *Store) Save(r *types.DriftReport) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("drift-%s-%s.json", r.Environment, r.Timestamp.UTC().Format("20060102T150405Z"))
	path := filepath.Join(s.dir, name)

	data, err := Render(r, FormatStructured)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp report file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to publish report: %w", err)
	}

	return path, nil
}

// LoadStructured reads back a previously stored structured report, used by
// the offline remediation command.
func LoadStructured(path string) (*types.DriftReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	var r types.DriftReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("report %s is not a valid drift report: %w", path, err)
	}
	return &r, nil
}
