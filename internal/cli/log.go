package cli

import (
	"fmt"
	"time"

	"github.com/adityarawat/prepometer/internal/constants"
	"github.com/adityarawat/prepometer/internal/models"
)

type LogAddCmd struct {
	Hours      float64  `short:"H" help:"Hours studied." required:""`
	Date       string   `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	MathsQ     int      `name:"maths" short:"m" help:"Maths questions solved."`
	ReasoningQ int      `name:"reasoning" short:"r" help:"Reasoning questions solved."`
	Mock       *float64 `help:"Mock test percentage, if one was taken."`
	Notes      string   `short:"n" help:"Free-form notes."`
}

func (c *LogAddCmd) Validate() error {
	if c.Date != "" {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", c.Date)
		}
	}
	return nil
}

func (c *LogAddCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}

	entry, err := ctx.Reconciler.AddLogEntry(models.DailyLogEntry{
		Date:       date,
		Hours:      c.Hours,
		MathsQ:     c.MathsQ,
		ReasoningQ: c.ReasoningQ,
		Mock:       c.Mock,
		Notes:      c.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s: %.1fh", entry.Date, entry.Hours)
	if entry.Mock != nil {
		fmt.Printf(", mock %.0f%%", *entry.Mock)
	}
	fmt.Println()
	return nil
}

type LogListCmd struct {
	Last int `short:"l" help:"Show only the most recent N entries."`
}

func (c *LogListCmd) Run(ctx *Context) error {
	entries := ctx.Reconciler.DailyLog()
	if len(entries) == 0 {
		fmt.Println("No study days logged yet")
		return nil
	}

	start := 0
	if c.Last > 0 && len(entries) > c.Last {
		start = len(entries) - c.Last
	}

	for _, e := range entries[start:] {
		fmt.Printf("%s  %5.1fh  maths %3d  reasoning %3d", e.Date, e.Hours, e.MathsQ, e.ReasoningQ)
		if e.Mock != nil {
			fmt.Printf("  mock %5.1f%%", *e.Mock)
		}
		if e.Notes != "" {
			fmt.Printf("  %s", e.Notes)
		}
		fmt.Println()
	}
	return nil
}
