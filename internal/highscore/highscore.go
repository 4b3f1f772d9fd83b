// Package highscore persists the best score as a single JSON integer.
package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is the file used when no path is configured.
const DefaultPath = "highscore.json"

// ErrNegativeScore is returned when saving a score below zero.
var ErrNegativeScore = errors.New("high score must not be negative")

// ErrCorrupt is returned when the file exists but does not hold a valid score.
var ErrCorrupt = errors.New("corrupt high score file")

// Store reads and writes the high score file. A Store may be shared by
// concurrent sessions.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted score. A missing file yields 0.
func (s *Store) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}

	var score int
	if err := json.Unmarshal(data, &score); err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrCorrupt, s.path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("%w %s: %w", ErrCorrupt, s.path, ErrNegativeScore)
	}
	return score, nil
}

// Save overwrites the persisted score.
func (s *Store) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(score)
}

// save writes to a temporary file in the same directory and renames it
// over the target so readers never see a partial value.
func (s *Store) save(score int) error {
	if score < 0 {
		return ErrNegativeScore
	}
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

// Record saves score unless the file already holds a higher one, and
// returns the value left on disk. An equal score is rewritten so a
// missing file is created. A corrupt file counts as 0 and is replaced;
// the decode error is still returned, wrapping ErrCorrupt, next to the
// saved score.
func (s *Store) Record(score int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return 0, err
	}
	corrupt := err
	if score < current {
		return current, nil
	}
	if err := s.save(score); err != nil {
		return current, err
	}
	return score, corrupt
}
