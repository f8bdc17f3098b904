// Package export writes study data to spreadsheet formats for review
// outside the app, typically Google Sheets or Excel.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adityarawat/prepometer/internal/constants"
	"github.com/adityarawat/prepometer/internal/models"
	"github.com/adityarawat/prepometer/internal/progress"
)

const (
	sheetDailyLogs = "DailyLogs"
	sheetChecklist = "Checklist"
	sheetSummary   = "Summary"
)

// ExcelFilename returns the conventional workbook name for the given day,
// e.g. afcat_prep_2026-08-30.xlsx.
func ExcelFilename(now time.Time) string {
	return fmt.Sprintf("afcat_prep_%s.xlsx", now.Format(constants.DateFormat))
}

// Workbook builds an in-memory XLSX with three sheets: DailyLogs,
// Checklist, and a Summary of computed metrics. The caller owns the
// returned file and should Close it.
func Workbook(items []models.ChecklistItem, entries []models.DailyLogEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), sheetDailyLogs); err != nil {
		return nil, err
	}
	if err := writeDailyLogs(f, entries); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetChecklist); err != nil {
		return nil, err
	}
	if err := writeChecklist(f, items); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, err
	}
	if err := writeSummary(f, items, entries); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteExcel builds the workbook and saves it to path.
func WriteExcel(path string, items []models.ChecklistItem, entries []models.DailyLogEntry) error {
	f, err := Workbook(items, entries)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeDailyLogs(f *excelize.File, entries []models.DailyLogEntry) error {
	header := []interface{}{"Date", "Hours Studied", "Maths Qs Solved", "Reasoning Qs Solved", "Mock %"}
	if err := f.SetSheetRow(sheetDailyLogs, "A1", &header); err != nil {
		return err
	}
	for i, e := range entries {
		row := []interface{}{e.Date, e.Hours, e.MathsQ, e.ReasoningQ, nil}
		if e.Mock != nil {
			row[4] = *e.Mock
		}
		if err := f.SetSheetRow(sheetDailyLogs, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeChecklist(f *excelize.File, items []models.ChecklistItem) error {
	header := []interface{}{"Subject", "Topic", "Status", "Notes"}
	if err := f.SetSheetRow(sheetChecklist, "A1", &header); err != nil {
		return err
	}
	for i, item := range items {
		row := []interface{}{string(item.Subject), item.Topic, item.Status, item.Notes}
		if err := f.SetSheetRow(sheetChecklist, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, items []models.ChecklistItem, entries []models.DailyLogEntry) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Days Logged", len(entries)},
		{"Average Hours Studied", averageHours(entries)},
		{"Average Mock %", averageMock(entries)},
	}
	for _, subject := range models.Subjects {
		rows = append(rows, []interface{}{
			fmt.Sprintf("%s Topics Done", subject),
			progress.DoneCount(items, subject),
		})
	}
	for i := range rows {
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func averageHours(entries []models.DailyLogEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total / float64(len(entries))
}

// averageMock averages only the entries that recorded a mock score.
func averageMock(entries []models.DailyLogEntry) float64 {
	var total float64
	var n int
	for _, e := range entries {
		if e.Mock != nil {
			total += *e.Mock
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// WriteChecklistCSV writes the checklist as CSV. Fields containing commas
// or quotes are quoted rather than mangled.
func WriteChecklistCSV(w io.Writer, items []models.ChecklistItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Subject", "Topic", "Status", "Notes"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := cw.Write([]string{string(item.Subject), item.Topic, item.Status, item.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
