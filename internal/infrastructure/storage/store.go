// Package storage persists synthesis runs and their artifacts.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is the stored record of one synthesis run.
type Run struct {
	ID          uuid.UUID
	OutputType  string
	MaxDepth    int
	NGenerated  int
	NSuccessful int
	Runtime     time.Duration
	CreatedAt   time.Time
}

// Artifact is the stored record of one rendered program.
type Artifact struct {
	ID         uuid.UUID
	RunID      uuid.UUID
	Name       string
	Source     string
	Hash       string
	Successful bool
	Position   int
	CreatedAt  time.Time
}

// RunRepository defines the interface for run operations.
type RunRepository interface {
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id uuid.UUID) (Run, error)
	ListRuns(ctx context.Context) ([]Run, error)
}

// ArtifactRepository defines the interface for artifact operations.
type ArtifactRepository interface {
	SaveArtifacts(ctx context.Context, artifacts []Artifact) error
	ListArtifactsByRun(ctx context.Context, runID uuid.UUID) ([]Artifact, error)
}

// Store combines all repositories.
type Store interface {
	RunRepository
	ArtifactRepository
}
