package highscore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLoadMissingFileIsZero(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"))

	score, err := s.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	s := NewStore(path)

	for _, want := range []int{0, 150, 987654} {
		if err := s.Save(want); err != nil {
			t.Fatalf("Save(%d): %v", want, err)
		}
		got, err := NewStore(path).Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != want {
			t.Errorf("round trip = %d, want %d", got, want)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "987654" {
		t.Errorf("file should hold a bare JSON integer, got %q", data)
	}
}

func TestSaveRejectsNegative(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "highscore.json"))

	if err := s.Save(-1); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("Save(-1) error = %v, want ErrNegativeScore", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	if err := os.WriteFile(path, []byte("not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("garbage file error = %v, want ErrCorrupt", err)
	}

	if err := os.WriteFile(path, []byte("-5"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative file value error = %v, want ErrNegativeScore", err)
	}
}

func TestRecordKeepsMaximum(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "highscore.json"))
	if err := s.Save(100); err != nil {
		t.Fatal(err)
	}

	got, err := s.Record(50)
	if err != nil || got != 100 {
		t.Errorf("Record(50) = %d, %v; want 100", got, err)
	}
	got, err = s.Record(150)
	if err != nil || got != 150 {
		t.Errorf("Record(150) = %d, %v; want 150", got, err)
	}
	if loaded, _ := s.Load(); loaded != 150 {
		t.Errorf("persisted = %d, want 150", loaded)
	}
}

func TestRecordReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)

	got, err := s.Record(150)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Record error = %v, want ErrCorrupt", err)
	}
	if got != 150 {
		t.Errorf("Record(150) kept %d, want 150", got)
	}
	loaded, err := s.Load()
	if err != nil || loaded != 150 {
		t.Errorf("Load after repair = %d, %v; want 150", loaded, err)
	}
}

func TestRecordConcurrent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "highscore.json"))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := s.Record(score * 10); err != nil {
				t.Errorf("Record: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got, _ := s.Load(); got != 200 {
		t.Errorf("concurrent records left %d, want 200", got)
	}
}

func TestDefaultPath(t *testing.T) {
	if NewStore("").Path() != DefaultPath {
		t.Error("empty path should fall back to the default")
	}
}
