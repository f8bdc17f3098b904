package storage

import "github.com/adityarawat/prepometer/internal/models"

// Provider persists the two local collections. Loads never fail: missing or
// malformed state degrades to the default seed (checklist) or an empty slice
// (daily log), mirroring how the app has always treated its local storage.
// Saves rewrite the whole collection; the data is small and writes are
// human-paced.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Checklist
	LoadChecklist() []models.ChecklistItem
	SaveChecklist(items []models.ChecklistItem) error

	// Daily log
	LoadDailyLog() []models.DailyLogEntry
	SaveDailyLog(entries []models.DailyLogEntry) error

	// Utils
	GetPath() string
}
