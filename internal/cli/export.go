package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/adityarawat/prepometer/internal/export"
)

type ExportExcelCmd struct {
	Output string `short:"o" help:"Output path. Defaults to afcat_prep_<date>.xlsx." type:"path"`
}

func (c *ExportExcelCmd) Run(ctx *Context) error {
	path := c.Output
	if path == "" {
		path = export.ExcelFilename(time.Now())
	}

	items := ctx.Reconciler.Checklist()
	entries := ctx.Reconciler.DailyLog()
	if err := export.WriteExcel(path, items, entries); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Printf("Exported %d topics and %d log entries to %s\n", len(items), len(entries), path)
	return nil
}

type ExportCsvCmd struct {
	Output string `short:"o" help:"Output path." type:"path" default:"afcat_checklist.csv"`
}

func (c *ExportCsvCmd) Run(ctx *Context) error {
	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	items := ctx.Reconciler.Checklist()
	if err := export.WriteChecklistCSV(f, items); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	fmt.Printf("Exported %d topics to %s\n", len(items), c.Output)
	return nil
}
