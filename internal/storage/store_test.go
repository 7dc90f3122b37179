package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/shmviz/internal/shm"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p := shm.Params{Amplitude: 2, AngularFrequency: 3, Phase: 0.5}
	tr := shm.Sample(p)

	runID, err := st.Save(tr, "baseline")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Params.Params() != p {
		t.Errorf("expected params %+v, got %+v", p, meta.Params.Params())
	}
	if meta.Samples != shm.SampleCount {
		t.Errorf("expected %d samples, got %d", shm.SampleCount, meta.Samples)
	}
	if meta.Note != "baseline" {
		t.Errorf("expected note 'baseline', got %q", meta.Note)
	}

	loaded, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if loaded.Len() != shm.SampleCount {
		t.Fatalf("expected %d samples, got %d", shm.SampleCount, loaded.Len())
	}
	if loaded.Params != p {
		t.Errorf("expected params %+v, got %+v", p, loaded.Params)
	}
	if loaded.Acceleration[321] != tr.Acceleration[321] {
		t.Errorf("acceleration differs: %v vs %v", loaded.Acceleration[321], tr.Acceleration[321])
	}
}

func TestStoreSave_NonFiniteParams(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(shm.Sample(shm.Params{Amplitude: math.Inf(-1), AngularFrequency: 1}), "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !math.IsInf(tr.Params.Amplitude, -1) {
		t.Errorf("expected -Inf amplitude, got %v", tr.Params.Amplitude)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(shm.Sample(shm.DefaultParams()), ""); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(shm.Sample(shm.DefaultParams()), "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, seriesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreLoad_Unknown(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, err := st.LoadTrajectory("missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestStoreLoad_RejectsEscapingIDs(t *testing.T) {
	root := t.TempDir()
	st := New(filepath.Join(root, "runs"))
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	// A readable metadata file outside the store must stay unreachable.
	if err := os.WriteFile(filepath.Join(root, "metadata.json"), []byte(`{"id":"outside"}`), 0644); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"", ".", "..", "../", "../runs", "a/b", `a\b`, "/etc", filepath.Join(root, "x")} {
		if _, err := st.Load(id); !errors.Is(err, ErrInvalidRunID) {
			t.Errorf("Load(%q): expected ErrInvalidRunID, got %v", id, err)
		}
		if _, err := st.LoadTrajectory(id); !errors.Is(err, ErrInvalidRunID) {
			t.Errorf("LoadTrajectory(%q): expected ErrInvalidRunID, got %v", id, err)
		}
	}
}

func TestStoreLoad_AcceptsSavedID(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save(shm.Sample(shm.DefaultParams()), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(id); err != nil {
		t.Errorf("expected saved id %q to load, got %v", id, err)
	}
	if _, err := st.LoadTrajectory(id); err != nil {
		t.Errorf("expected saved trajectory %q to load, got %v", id, err)
	}
}
