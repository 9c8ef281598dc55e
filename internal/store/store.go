package store

import (
	"context"

	"github.com/inostartas/grant-cli/internal/model"
)

// SessionFilter specifies criteria for listing sessions.
type SessionFilter struct {
	Status model.SessionStatus `json:"status,omitempty"`
	Limit  int                 `json:"limit,omitempty"`
	Offset int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for extraction sessions and
// validation reports. Finalized records and per-prompt completeness reports
// are the two artifacts that must survive a process exit.
type Store interface {
	// Sessions
	CreateSession(ctx context.Context, idea string) (*model.Session, error)
	UpdateSession(ctx context.Context, sess *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]model.Session, error)

	// Validation reports
	SaveValidation(ctx context.Context, sessionID string, summary *model.ValidationSummary) error
	GetValidation(ctx context.Context, sessionID string) (*model.ValidationSummary, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
