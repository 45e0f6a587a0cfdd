// Package storage persists solve results as JSON under a data directory,
// one subdirectory per run, so earlier solves can be listed and exported.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/trapmodes/internal/axial"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunRecord is the persisted form of one solve.
type RunRecord struct {
	ID          string    `json:"id"`
	Model       string    `json:"model"`
	Timestamp   time.Time `json:"timestamp"`
	Ions        int       `json:"ions"`
	MassAMU     float64   `json:"mass_amu"`
	Unit        string    `json:"unit"`
	R0          float64   `json:"r0_m"`
	Positions   []float64 `json:"positions"`
	Frequencies []float64 `json:"frequencies_hz"`
	Eigenvalues []float64 `json:"eigenvalues"`
}

func (s *Store) Save(model string, ions int, massAMU float64, unit string, res *axial.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	rec := RunRecord{
		ID:          runID,
		Model:       model,
		Timestamp:   time.Now(),
		Ions:        ions,
		MassAMU:     massAMU,
		Unit:        unit,
		R0:          res.R0,
		Positions:   res.Positions,
		Frequencies: res.Spectrum.Frequencies,
		Eigenvalues: res.Spectrum.Eigenvalues,
	}

	f, err := os.Create(filepath.Join(runDir, "run.json"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) Load(runID string) (*RunRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "run.json"))
	if err != nil {
		return nil, err
	}
	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all saved runs, newest first.
func (s *Store) List() ([]RunRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunRecord
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		rec, err := s.Load(e.Name())
		if err != nil {
			continue // skip unreadable runs
		}
		runs = append(runs, *rec)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}
