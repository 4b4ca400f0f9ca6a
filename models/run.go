package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ResolveRun summarizes one batch resolution pass. Runs are not persisted;
// the ID only ties the log lines of one pass together.
type ResolveRun struct {
	ID         uuid.UUID  `json:"id"`
	Source     string     `json:"source"` // "keyword:<kw>", "map", or "ids"
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Status     RunStatus  `json:"status"`
	RoomsFound int        `json:"rooms_found"`
}
