package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store suitable for testing and
// development.
type MemoryStore struct {
	mu        sync.RWMutex
	runs      map[uuid.UUID]Run
	runOrder  []uuid.UUID
	artifacts map[uuid.UUID][]Artifact
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:      make(map[uuid.UUID]Run),
		artifacts: make(map[uuid.UUID][]Artifact),
	}
}

// SaveRun stores or updates a run.
func (s *MemoryStore) SaveRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; !exists {
		s.runOrder = append(s.runOrder, run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

// GetRun returns a run by id.
func (s *MemoryStore) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return Run{}, fmt.Errorf("run %s not found", id)
	}
	return run, nil
}

// ListRuns returns every run in insertion order.
func (s *MemoryStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]Run, 0, len(s.runOrder))
	for _, id := range s.runOrder {
		runs = append(runs, s.runs[id])
	}
	return runs, nil
}

// SaveArtifacts appends artifacts to their runs.
func (s *MemoryStore) SaveArtifacts(ctx context.Context, artifacts []Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, artifact := range artifacts {
		s.artifacts[artifact.RunID] = append(s.artifacts[artifact.RunID], artifact)
	}
	return nil
}

// ListArtifactsByRun returns a run's artifacts in enumeration order.
func (s *MemoryStore) ListArtifactsByRun(ctx context.Context, runID uuid.UUID) ([]Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artifacts := make([]Artifact, len(s.artifacts[runID]))
	copy(artifacts, s.artifacts[runID])
	sort.SliceStable(artifacts, func(i, j int) bool {
		return artifacts[i].Position < artifacts[j].Position
	})
	return artifacts, nil
}
