package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adityarawat/prepometer/internal/models"
)

func sampleChecklist() []models.ChecklistItem {
	return []models.ChecklistItem{
		{ID: models.PersistedID(1), Subject: models.SubjectMaths, Topic: "Percentages", Status: "Done"},
		{ID: models.PersistedID(2), Subject: models.SubjectMaths, Topic: "Ratio & Proportion", Status: "Not started"},
		{ID: models.PersistedID(3), Subject: models.SubjectEnglish, Topic: "Tenses", Status: "done - revised", Notes: "weak, revisit"},
	}
}

func TestExcelFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	if got := ExcelFilename(now); got != "afcat_prep_2026-08-30.xlsx" {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestWorkbook_Sheets(t *testing.T) {
	mock := 72.5
	entries := []models.DailyLogEntry{
		{Date: "2026-08-29", Hours: 2, MathsQ: 10, ReasoningQ: 5},
		{Date: "2026-08-30", Hours: 4, MathsQ: 20, ReasoningQ: 15, Mock: &mock},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteExcel(path, sampleChecklist(), entries); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, name := range []string{"DailyLogs", "Checklist", "Summary"} {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			t.Errorf("missing sheet %s", name)
		}
	}

	rows, err := f.GetRows("DailyLogs")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 log rows, got %d", len(rows))
	}
	if rows[1][0] != "2026-08-29" {
		t.Errorf("unexpected first log row %v", rows[1])
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if got := cell(summary, "Total Days Logged"); got != "2" {
		t.Errorf("Total Days Logged = %q, want 2", got)
	}
	if got := cell(summary, "Average Hours Studied"); got != "3" {
		t.Errorf("Average Hours Studied = %q, want 3", got)
	}
	if got := cell(summary, "Average Mock %"); got != "72.5" {
		t.Errorf("Average Mock %% = %q, want 72.5", got)
	}
	if got := cell(summary, "Maths Topics Done"); got != "1" {
		t.Errorf("Maths Topics Done = %q, want 1", got)
	}
	if got := cell(summary, "English Topics Done"); got != "1" {
		t.Errorf("English Topics Done = %q, want 1", got)
	}
}

func TestWorkbook_EmptyLogStillHasSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteExcel(path, sampleChecklist(), nil); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if got := cell(summary, "Total Days Logged"); got != "0" {
		t.Errorf("Total Days Logged = %q, want 0", got)
	}
}

func cell(rows [][]string, metric string) string {
	for _, row := range rows {
		if len(row) >= 2 && row[0] == metric {
			return row[1]
		}
	}
	return ""
}

func TestWriteChecklistCSV_QuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChecklistCSV(&buf, sampleChecklist()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Subject,Topic,Status,Notes" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(out, `"weak, revisit"`) {
		t.Errorf("comma-bearing field should be quoted, not rewritten: %q", out)
	}
	if !strings.Contains(out, "Ratio & Proportion") {
		t.Errorf("topic text should survive untouched: %q", out)
	}
}
