// Package project persists workflow documents as JSON files in a data
// directory, one file per workflow.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wesen/weave/internal/wire"
	"github.com/wesen/weave/pkg/flowgraph"
)

// ErrNotFound is returned when a workflow file does not exist.
var ErrNotFound = errors.New("workflow not found")

const fileExt = ".weave.json"

// Store reads and writes workflows under a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// Open creates the data directory if needed and returns a store over it.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the store's data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// Save writes the workflow atomically: the payload lands in a temp file
// first and is renamed into place, so a crash mid-write never leaves a
// truncated workflow behind.
func (s *Store) Save(id string, g *flowgraph.Graph) error {
	if err := validID(id); err != nil {
		return err
	}
	data, err := wire.Marshal(id, g)
	if err != nil {
		return fmt.Errorf("encode workflow %s: %w", id, err)
	}
	tmp, err := os.CreateTemp(s.dir, id+".tmp-*")
	if err != nil {
		return fmt.Errorf("save workflow %s: %w", id, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save workflow %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save workflow %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save workflow %s: %w", id, err)
	}
	s.logger.Info("Saved workflow",
		zap.String("workflow", id),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("connections", g.ConnectionCount()))
	return nil
}

// Load reads a workflow by id.
func (s *Store) Load(id string) (*flowgraph.Graph, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load workflow %s: %w", id, err)
	}
	_, g, err := wire.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("load workflow %s: %w", id, err)
	}
	s.logger.Debug("Loaded workflow",
		zap.String("workflow", id),
		zap.Int("nodes", g.NodeCount()))
	return g, nil
}

// List returns the ids of all stored workflows, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a stored workflow. Deleting a workflow that does not
// exist returns ErrNotFound.
func (s *Store) Delete(id string) error {
	if err := validID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete workflow %s: %w", id, err)
	}
	s.logger.Info("Deleted workflow", zap.String("workflow", id))
	return nil
}

// validID rejects ids that would escape the data directory or collide
// with temp files.
func validID(id string) error {
	if id == "" {
		return errors.New("empty workflow id")
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("invalid workflow id %q", id)
	}
	return nil
}
