package progress

import (
	"testing"

	"github.com/adityarawat/prepometer/internal/models"
)

func item(subject models.Subject, status string) models.ChecklistItem {
	return models.ChecklistItem{Subject: subject, Topic: "t", Status: status}
}

func TestCompute_EmptyChecklist(t *testing.T) {
	report := Compute(nil)
	for _, subject := range models.Subjects {
		if report[subject] != 0 {
			t.Errorf("%s: expected 0%% for empty checklist, got %d", subject, report[subject])
		}
	}
}

func TestCompute_Percentages(t *testing.T) {
	items := []models.ChecklistItem{
		item(models.SubjectMaths, "Done"),
		item(models.SubjectMaths, "Done"),
		item(models.SubjectMaths, "Not started"),
		item(models.SubjectEnglish, "In progress"),
	}

	report := Compute(items)
	if report[models.SubjectMaths] != 67 {
		t.Errorf("Maths: expected 67 (round of 2/3), got %d", report[models.SubjectMaths])
	}
	if report[models.SubjectEnglish] != 0 {
		t.Errorf("English: expected 0, got %d", report[models.SubjectEnglish])
	}
	if report[models.SubjectGK] != 0 {
		t.Errorf("GK with no items: expected 0, got %d", report[models.SubjectGK])
	}
}

func TestCompute_BoundsAndHundred(t *testing.T) {
	// 100 iff every item of the subject has a done-prefixed status, any case
	items := []models.ChecklistItem{
		item(models.SubjectReasoning, "done"),
		item(models.SubjectReasoning, "DONE - revised"),
	}
	report := Compute(items)
	for subject, pct := range report {
		if pct < 0 || pct > 100 {
			t.Errorf("%s: percentage out of bounds: %d", subject, pct)
		}
	}
	if report[models.SubjectReasoning] != 100 {
		t.Errorf("Reasoning: expected 100, got %d", report[models.SubjectReasoning])
	}

	// One non-done item keeps it below 100
	items = append(items, item(models.SubjectReasoning, "In progress"))
	report = Compute(items)
	if report[models.SubjectReasoning] == 100 {
		t.Error("Reasoning: should not be 100 with an unfinished item")
	}
}

func TestCompute_PrefixMatchingEdgeCases(t *testing.T) {
	items := []models.ChecklistItem{
		item(models.SubjectGK, "done"),
		item(models.SubjectGK, "In progress"),
	}
	report := Compute(items)
	if report[models.SubjectGK] != 50 {
		t.Errorf("GK: expected 50, got %d", report[models.SubjectGK])
	}
}

func TestDoneCount(t *testing.T) {
	items := []models.ChecklistItem{
		item(models.SubjectMaths, "Done"),
		item(models.SubjectMaths, "Not started"),
		item(models.SubjectEnglish, "Done"),
	}
	if got := DoneCount(items, models.SubjectMaths); got != 1 {
		t.Errorf("expected 1 done Maths item, got %d", got)
	}
}
