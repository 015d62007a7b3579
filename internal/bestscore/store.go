// Package bestscore keeps personal-best grading scores in a small JSON file.
// The grader never touches it; callers pass the previous best in and store
// the result.
package bestscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spigell/resume-lens/internal/grading"
)

// DefaultKey identifies the local user when no other key is configured.
const DefaultKey = "resume_challenge_best_score"

// Store is a file-backed key/score map. It is safe for concurrent use within
// one process.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the best score stored under key, or 0 when none is recorded.
func (s *Store) Get(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.load()
	if err != nil {
		return 0, err
	}
	return scores[key], nil
}

// Record compares score with the stored best for key and persists it when it
// is higher. It returns the best score after the comparison.
func (s *Store) Record(key string, score int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.load()
	if err != nil {
		return 0, false, err
	}

	best, improved := grading.CompareBest(scores[key], score)
	if !improved {
		return best, false, nil
	}

	scores[key] = best
	if err := s.save(scores); err != nil {
		return 0, false, err
	}
	return best, true, nil
}

func (s *Store) load() (map[string]int, error) {
	scores := map[string]int{}

	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return scores, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open best score file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return scores, nil
	}

	if err := json.NewDecoder(file).Decode(&scores); err != nil {
		return nil, fmt.Errorf("decode best score file %s: %w", s.path, err)
	}
	return scores, nil
}

func (s *Store) save(scores map[string]int) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create best score dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write best score file: %w", err)
	}
	return nil
}
