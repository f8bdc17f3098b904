package models

import "strings"

// Subject is one of the fixed AFCAT exam subjects.
type Subject string

const (
	SubjectEnglish   Subject = "English"
	SubjectMaths     Subject = "Maths"
	SubjectReasoning Subject = "Reasoning"
	SubjectGK        Subject = "GK"
)

// Subjects lists all subjects in display order.
var Subjects = []Subject{SubjectEnglish, SubjectMaths, SubjectReasoning, SubjectGK}

// ParseSubject matches a subject name case-insensitively.
func ParseSubject(s string) (Subject, bool) {
	for _, sub := range Subjects {
		if strings.EqualFold(string(sub), s) {
			return sub, true
		}
	}
	return "", false
}

// Status values for checklist items. Remote rows and older local seeds carry
// differing casings, so comparisons must go through IsDone rather than
// string equality.
const (
	StatusNotStarted = "Not started"
	StatusInProgress = "In progress"
	StatusDone       = "Done"
)

// ChecklistItem is a single study topic to tick off.
type ChecklistItem struct {
	ID      RecordID `json:"id"`
	Subject Subject  `json:"subject"`
	Topic   string   `json:"topic"`
	Status  string   `json:"status"`
	Notes   string   `json:"notes,omitempty"`
}

// IsDone reports whether the item's status counts as completed. Matching is
// case-insensitive and prefix-tolerant so "Done", "done" and "DONE (revised)"
// all count.
func (c ChecklistItem) IsDone() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.Status)), "done")
}
