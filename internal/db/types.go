package db

import (
	"time"

	"github.com/google/uuid"
)

// Run status values. Final statuses are written by the caller through CompleteRun.
const (
	RunStatusRunning = "running"
)

// ArtifactReport is the artifact step name of a run report.
const ArtifactReport = "report"

// CategoryReporting is the artifact category of a run report.
const CategoryReporting = "reporting"

// DefaultListLimit bounds ListRuns when no limit is given.
const DefaultListLimit = 20

// Run represents a pipeline run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	DocumentPath string     `json:"document_path"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// RunStep represents the recorded outcome of one stage of a run
type RunStep struct {
	ID         uuid.UUID `json:"id"`
	RunID      uuid.UUID `json:"run_id"`
	Step       string    `json:"step"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Message    *string   `json:"message,omitempty"`
	DurationMs int       `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
