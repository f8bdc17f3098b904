package models

import "fmt"

// DailyLogEntry records one study session. More than one entry per date is
// allowed; the log is append-only from the user's point of view.
type DailyLogEntry struct {
	ID         RecordID `json:"id,omitempty"`
	Date       string   `json:"date"` // YYYY-MM-DD format
	Hours      float64  `json:"hours"`
	MathsQ     int      `json:"maths_q"`
	ReasoningQ int      `json:"reasoning_q"`
	Mock       *float64 `json:"mock,omitempty"` // percentage in [0,100], absent if no mock taken
	Notes      string   `json:"notes,omitempty"`
}

// Validate checks the entry's metric invariants.
func (e DailyLogEntry) Validate() error {
	if e.Date == "" {
		return fmt.Errorf("date is required")
	}
	if e.Hours < 0 {
		return fmt.Errorf("hours must be non-negative")
	}
	if e.MathsQ < 0 || e.ReasoningQ < 0 {
		return fmt.Errorf("question counts must be non-negative")
	}
	if e.Mock != nil && (*e.Mock < 0 || *e.Mock > 100) {
		return fmt.Errorf("mock score must be between 0 and 100")
	}
	return nil
}
