// Package remote talks to the hosted record store ("prep vault"). Every
// operation is scoped to an owner identity; the server enforces row-level
// ownership, the client never sees rows it does not own.
package remote

import (
	"context"

	"github.com/adityarawat/prepometer/internal/models"
)

// Gateway is the record store reachable while signed in. Implementations
// return plain errors; callers treat every failure as non-fatal and keep
// the optimistic local state.
type Gateway interface {
	// Checklist items
	SelectChecklist(ctx context.Context, ownerID string) ([]models.ChecklistItem, error)
	InsertChecklist(ctx context.Context, ownerID string, item models.ChecklistItem) (int64, error)
	UpdateChecklist(ctx context.Context, ownerID string, item models.ChecklistItem) error
	DeleteChecklist(ctx context.Context, ownerID string, serverID int64) error

	// Daily logs
	SelectDailyLog(ctx context.Context, ownerID string) ([]models.DailyLogEntry, error)
	InsertDailyLog(ctx context.Context, ownerID string, entry models.DailyLogEntry) (int64, error)

	Close() error
}
