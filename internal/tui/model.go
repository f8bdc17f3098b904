// Package tui is the interactive dashboard: a tabbed view over the
// checklist, per-subject progress, and the daily study log. All mutations
// go through the reconciler, so signed-in sessions push the same way the
// CLI does.
package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/adityarawat/prepometer/internal/constants"
	"github.com/adityarawat/prepometer/internal/models"
	"github.com/adityarawat/prepometer/internal/sync"
)

type SessionState int

const (
	StateChecklist SessionState = iota
	StateProgress
	StateLog
	StateLogForm
)

const tabCount = 3

// logFormModel holds the quick-entry form fields as strings; they are
// parsed when the form completes.
type logFormModel struct {
	Date      string
	Hours     string
	MathsQ    string
	Reasoning string
	Mock      string
	Notes     string
}

type Model struct {
	rec *sync.Reconciler

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	cursor        int
	form          *huh.Form
	logForm       *logFormModel
	statusMsg     string
	quitting      bool
	width         int
	height        int
}

func NewModel(rec *sync.Reconciler) Model {
	return Model{
		rec:   rec,
		state: StateChecklist,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) openLogForm() tea.Cmd {
	m.logForm = &logFormModel{
		Date: time.Now().Format(constants.DateFormat),
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Value(&m.logForm.Date),
			huh.NewInput().Title("Hours studied").Value(&m.logForm.Hours),
			huh.NewInput().Title("Maths questions").Value(&m.logForm.MathsQ),
			huh.NewInput().Title("Reasoning questions").Value(&m.logForm.Reasoning),
			huh.NewInput().Title("Mock % (blank if none)").Value(&m.logForm.Mock),
			huh.NewInput().Title("Notes").Value(&m.logForm.Notes),
		),
	)
	m.previousState = m.state
	m.state = StateLogForm
	return m.form.Init()
}

func (m *Model) submitLogForm() {
	entry, err := m.logForm.toEntry()
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	if _, err := m.rec.AddLogEntry(entry); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = fmt.Sprintf("Logged %s", entry.Date)
}

func (f *logFormModel) toEntry() (models.DailyLogEntry, error) {
	var entry models.DailyLogEntry

	if _, err := time.Parse(constants.DateFormat, f.Date); err != nil {
		return entry, fmt.Errorf("invalid date %q", f.Date)
	}
	entry.Date = f.Date

	hours, err := strconv.ParseFloat(f.Hours, 64)
	if err != nil {
		return entry, fmt.Errorf("invalid hours %q", f.Hours)
	}
	entry.Hours = hours

	if f.MathsQ != "" {
		if entry.MathsQ, err = strconv.Atoi(f.MathsQ); err != nil {
			return entry, fmt.Errorf("invalid maths count %q", f.MathsQ)
		}
	}
	if f.Reasoning != "" {
		if entry.ReasoningQ, err = strconv.Atoi(f.Reasoning); err != nil {
			return entry, fmt.Errorf("invalid reasoning count %q", f.Reasoning)
		}
	}
	if f.Mock != "" {
		mock, err := strconv.ParseFloat(f.Mock, 64)
		if err != nil {
			return entry, fmt.Errorf("invalid mock score %q", f.Mock)
		}
		entry.Mock = &mock
	}
	entry.Notes = f.Notes
	return entry, nil
}

// cycleStatus advances the selected topic through the three statuses.
func (m *Model) cycleStatus() {
	items := m.rec.Checklist()
	if m.cursor >= len(items) {
		return
	}
	item := items[m.cursor]

	next := models.StatusInProgress
	switch {
	case item.IsDone():
		next = models.StatusNotStarted
	case item.Status == models.StatusInProgress:
		next = models.StatusDone
	}

	if _, err := m.rec.UpdateItem(item.ID, func(it *models.ChecklistItem) {
		it.Status = next
	}); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = fmt.Sprintf("%s: %s", item.Topic, next)
}

func (m *Model) deleteSelected() {
	items := m.rec.Checklist()
	if m.cursor >= len(items) {
		return
	}
	item := items[m.cursor]
	if err := m.rec.DeleteItem(item.ID); err != nil {
		m.statusMsg = err.Error()
		return
	}
	if m.cursor > 0 {
		m.cursor--
	}
	m.statusMsg = fmt.Sprintf("Deleted %s", item.Topic)
}
