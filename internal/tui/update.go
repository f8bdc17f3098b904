package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.state == StateLogForm {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.statusMsg = ""
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.statusMsg = ""
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			if m.state == StateChecklist && m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.state == StateChecklist && m.cursor < len(m.rec.Checklist())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Cycle):
			if m.state == StateChecklist {
				m.cycleStatus()
			}
		case key.Matches(msg, m.keys.Delete):
			if m.state == StateChecklist {
				m.deleteSelected()
			}
		case key.Matches(msg, m.keys.Add):
			return m, m.openLogForm()
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitLogForm()
		m.form = nil
		m.state = m.previousState
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.state = m.previousState
		return m, nil
	}

	return m, cmd
}
