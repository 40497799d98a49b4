package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HighScoreStore persists the single high-score integer. It is the only
// state that survives process restarts.
type HighScoreStore struct {
	path string
}

// NewHighScoreStore resolves the storage path. An empty override lands in
// the platform's user config directory.
func NewHighScoreStore(override string) *HighScoreStore {
	if override != "" {
		return &HighScoreStore{path: override}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("no user config dir, high score will not persist: %v", err)
		return &HighScoreStore{}
	}
	return &HighScoreStore{path: filepath.Join(dir, "lumara", "highscore")}
}

// Load reads the stored high score. Any failure reads as zero; a missing
// file is the normal first-run case.
func (s *HighScoreStore) Load() int {
	if s.path == "" {
		return 0
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("high score read failed: %v", err)
		}
		return 0
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("high score file corrupt, resetting")
		return 0
	}
	return v
}

// Save writes the high score
func (s *HighScoreStore) Save(score int) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("high score dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("high score write: %w", err)
	}
	return nil
}
