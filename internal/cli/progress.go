package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adityarawat/prepometer/internal/models"
	"github.com/adityarawat/prepometer/internal/progress"
)

const barWidth = 30

var (
	subjectStyle = lipgloss.NewStyle().Bold(true).Width(10)
	barFillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barRestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *Context) error {
	items := ctx.Reconciler.Checklist()
	report := progress.Compute(items)

	for _, subject := range models.Subjects {
		pct := report[subject]
		total := 0
		for _, item := range items {
			if item.Subject == subject {
				total++
			}
		}
		fmt.Printf("%s %s %3d%%  (%d/%d topics)\n",
			subjectStyle.Render(string(subject)),
			renderBar(pct),
			pct,
			progress.DoneCount(items, subject),
			total)
	}

	entries := ctx.Reconciler.DailyLog()
	fmt.Printf("\nDays logged: %d\n", len(entries))
	return nil
}

func renderBar(pct int) string {
	filled := pct * barWidth / 100
	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barRestStyle.Render(strings.Repeat("░", barWidth-filled))
}
