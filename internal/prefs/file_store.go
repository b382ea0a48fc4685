package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// fileState is the on-disk layout of a FileStore
type fileState struct {
	Values    map[string]string `json:"values"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

// FileStore keeps preferences in a JSON file
type FileStore struct {
	stateFile string
	state     *fileState
	mu        sync.Mutex
	logger    *zap.Logger
}

// NewFileStore creates a new file store
func NewFileStore(stateFile string, logger *zap.Logger) *FileStore {
	return &FileStore{
		stateFile: stateFile,
		logger:    logger,
	}
}

// Load loads the preferences from file
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			s.state = &fileState{Values: make(map[string]string)}
			return nil
		}
		return fmt.Errorf("failed to read preferences file: %w", err)
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse preferences file: %w", err)
	}
	if state.Values == nil {
		state.Values = make(map[string]string)
	}

	s.state = &state
	s.logger.Debug("Preferences loaded",
		zap.String("file", s.stateFile),
		zap.Int("keys", len(state.Values)))

	return nil
}

// save writes the preferences to file; s.mu must be held
func (s *FileStore) save() error {
	s.state.UpdatedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if dir := filepath.Dir(s.stateFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences dir: %w", err)
		}
	}

	if err := os.WriteFile(s.stateFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}

	s.logger.Info("Preferences saved", zap.String("file", s.stateFile))

	return nil
}

// Get returns the value of key
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return "", false, nil
	}
	value, ok := s.state.Values[key]
	return value, ok, nil
}

// Set stores value under key and writes the file
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		s.state = &fileState{Values: make(map[string]string)}
	}
	s.state.Values[key] = value

	return s.save()
}

// Close is a no-op; every Set is already on disk
func (s *FileStore) Close() error {
	return nil
}
