package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/shmviz/internal/export"
	"github.com/san-kum/shmviz/internal/shm"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var ErrInvalidRunID = errors.New("invalid run id")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// runDir resolves runID to its directory. IDs must name a single entry
// directly under the base directory.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." ||
		!filepath.IsLocal(runID) || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

type RunMetadata struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Params    export.ParamsData `json:"params"`
	Samples   int               `json:"samples"`
	Step      float64           `json:"step"`
	Note      string            `json:"note,omitempty"`
}

// Save writes the trajectory into a new run directory and returns its id.
func (s *Store) Save(tr shm.Trajectory, note string) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("shm_%s_%s", now.Format("20060102T150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Params:    export.ParamsDataOf(tr.Params),
		Samples:   tr.Len(),
		Step:      shm.SampleStep,
		Note:      note,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, tr); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns all readable runs, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads a run's series and attaches the stored params.
func (s *Store) LoadTrajectory(runID string) (shm.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return shm.Trajectory{}, err
	}

	dir, err := s.runDir(runID)
	if err != nil {
		return shm.Trajectory{}, err
	}
	file, err := os.Open(filepath.Join(dir, seriesFile))
	if err != nil {
		return shm.Trajectory{}, err
	}
	defer file.Close()

	tr, err := export.ReadCSV(file)
	if err != nil {
		return shm.Trajectory{}, fmt.Errorf("run %s: %w", runID, err)
	}
	tr.Params = meta.Params.Params()
	return tr, nil
}
