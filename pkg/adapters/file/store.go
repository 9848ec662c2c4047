// Package file provides a filesystem-backed ModelStore. Each model is a
// JSON document in a configured directory, written atomically so a crash
// mid-write never leaves a truncated snapshot behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/autostate/autostate/pkg/domain"
)

// Store implements ports.ModelStore on the local filesystem.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath. If basePath is empty it
// defaults to ".autostate/models".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".autostate", "models")
	}
	return &Store{BasePath: basePath}
}

// Put persists the model snapshot as <id>.json, atomically.
// It writes to a temporary file first, syncs via fsync, and then renames
// it to the destination.
func (s *Store) Put(ctx context.Context, model domain.Model) error {
	if model.ID == "" {
		return fmt.Errorf("model id cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure model directory: %w", err)
	}

	destPath := s.path(model.ID)

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	// The temp file lives in the same directory so the rename stays on
	// one filesystem (required for atomicity).
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+model.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if the destination exists; remove it
	// first and accept the tiny replacement window.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing model file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

// Get reads the model snapshot for id.
func (s *Store) Get(ctx context.Context, id string) (domain.Model, error) {
	if id == "" {
		return domain.Model{}, fmt.Errorf("model id cannot be empty")
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Model{}, domain.ErrModelNotFound
		}
		return domain.Model{}, fmt.Errorf("failed to read model file: %w", err)
	}

	var model domain.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return domain.Model{}, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	return model, nil
}

// List returns the ids of every stored model.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Delete removes the model file. Deleting an unknown id returns
// domain.ErrModelNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("model id cannot be empty")
	}

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return domain.ErrModelNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.BasePath, id+".json")
}
