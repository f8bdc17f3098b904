package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adityarawat/prepometer/internal/models"
	"github.com/adityarawat/prepometer/internal/progress"
)

const barWidth = 24

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateLogForm && m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateChecklist:
		content = m.viewChecklist()
	case StateProgress:
		content = m.viewProgress()
	case StateLog:
		content = m.viewLog()
	}

	sections := []string{m.viewTabs(), content}
	if m.statusMsg != "" {
		sections = append(sections, statusStyle.Render(m.statusMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	titles := []string{"Checklist", "Progress", "Log"}
	state := m.state
	if state == StateLogForm {
		state = m.previousState
	}

	var tabs []string
	for i, title := range titles {
		if state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewChecklist() string {
	items := m.rec.Checklist()
	if len(items) == 0 {
		return docStyle.Render("No topics. Add some with 'prepometer topic add'.")
	}

	var b strings.Builder
	var lastSubject models.Subject
	for i, item := range items {
		if item.Subject != lastSubject {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(subjectStyle.Render(string(item.Subject)))
			b.WriteString("\n")
			lastSubject = item.Subject
		}

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		mark := "[ ]"
		if item.IsDone() {
			mark = doneStyle.Render("[x]")
		} else if item.Status == models.StatusInProgress {
			mark = "[~]"
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, item.Topic))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewProgress() string {
	items := m.rec.Checklist()
	report := progress.Compute(items)

	var b strings.Builder
	for _, subject := range models.Subjects {
		pct := report[subject]
		filled := pct * barWidth / 100
		bar := barFillStyle.Render(strings.Repeat("█", filled)) +
			barRestStyle.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(fmt.Sprintf("%-10s %s %3d%%\n", subject, bar, pct))
	}

	b.WriteString(fmt.Sprintf("\nDays logged: %d\n", len(m.rec.DailyLog())))
	return docStyle.Render(b.String())
}

func (m Model) viewLog() string {
	entries := m.rec.DailyLog()
	if len(entries) == 0 {
		return docStyle.Render("No study days logged yet. Press 'a' to log one.")
	}

	// most recent last, show the tail
	start := 0
	if len(entries) > 15 {
		start = len(entries) - 15
	}

	var b strings.Builder
	for _, e := range entries[start:] {
		b.WriteString(fmt.Sprintf("%s  %5.1fh  maths %3d  reasoning %3d", e.Date, e.Hours, e.MathsQ, e.ReasoningQ))
		if e.Mock != nil {
			b.WriteString(fmt.Sprintf("  mock %5.1f%%", *e.Mock))
		}
		b.WriteString("\n")
	}
	return docStyle.Render(b.String())
}
