// Package progress derives per-subject completion percentages from the
// checklist. It is pure and does no I/O.
package progress

import (
	"math"

	"github.com/adityarawat/prepometer/internal/models"
)

// Report maps each subject to its completion percentage in [0,100].
type Report map[models.Subject]int

// Compute returns the completion percentage per subject:
// round(100 * done / total), 0 for subjects with no items. "Done" matching
// is case-insensitive and prefix-tolerant (see models.ChecklistItem.IsDone)
// because statuses arrive from both the local seed and the remote store
// with differing casing.
func Compute(items []models.ChecklistItem) Report {
	report := make(Report, len(models.Subjects))
	for _, subject := range models.Subjects {
		var total, done int
		for _, item := range items {
			if item.Subject != subject {
				continue
			}
			total++
			if item.IsDone() {
				done++
			}
		}
		if total == 0 {
			report[subject] = 0
			continue
		}
		report[subject] = int(math.Round(100 * float64(done) / float64(total)))
	}
	return report
}

// DoneCount returns how many items of the subject are completed.
func DoneCount(items []models.ChecklistItem, subject models.Subject) int {
	var done int
	for _, item := range items {
		if item.Subject == subject && item.IsDone() {
			done++
		}
	}
	return done
}
