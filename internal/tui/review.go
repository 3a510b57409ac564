// Package tui provides the full-screen review interface for walking the
// queue of applications awaiting an eligibility decision.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csc-gandhinagar/stipend-flow/internal/cli"
	"github.com/csc-gandhinagar/stipend-flow/internal/columns"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444")).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			Width(14)

	helpStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			MarginTop(1)

	decidedApprove = cli.SuccessStyle.Render("Approved")
	decidedReject  = cli.ErrorStyle.Render("Rejected")
)

// reviewPhase tracks whether we are browsing the queue or typing a remark.
type reviewPhase int

const (
	phaseBrowse reviewPhase = iota
	phaseRemark
)

// Model is the bubbletea model for the review queue.
type Model struct {
	remark    textinput.Model
	decisions map[int]cli.Decision
	queue     []model.Applicant
	cursor    int
	phase     reviewPhase
	pending   model.Status
	quitting  bool
}

// New builds a review model over the applicants currently in Review.
func New(queue []model.Applicant) Model {
	remark := textinput.New()
	remark.Placeholder = "optional remark"
	remark.CharLimit = 120

	return Model{
		queue:     queue,
		decisions: make(map[int]cli.Decision),
		remark:    remark,
	}
}

// Decisions returns the reviewer actions taken during the session.
func (m Model) Decisions() []cli.Decision {
	out := make([]cli.Decision, 0, len(m.decisions))
	for _, a := range m.queue {
		if d, ok := m.decisions[a.ID]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.phase == phaseRemark {
		return m.updateRemark(keyMsg)
	}
	return m.updateBrowse(keyMsg)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "s":
		if m.cursor < len(m.queue)-1 {
			m.cursor++
		}
	case "a":
		return m.beginRemark(model.StatusApproved)
	case "r":
		return m.beginRemark(model.StatusRejected)
	case "u":
		delete(m.decisions, m.queue[m.cursor].ID)
	}
	return m, nil
}

func (m Model) beginRemark(status model.Status) (tea.Model, tea.Cmd) {
	m.phase = phaseRemark
	m.pending = status
	m.remark.SetValue("")
	return m, m.remark.Focus()
}

func (m Model) updateRemark(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a := &m.queue[m.cursor]
		m.decisions[a.ID] = cli.Decision{
			ID:     a.ID,
			Status: m.pending,
			Remark: strings.TrimSpace(m.remark.Value()),
		}
		m.phase = phaseBrowse
		m.remark.Blur()
		if m.cursor < len(m.queue)-1 {
			m.cursor++
		}
		return m, nil
	case "esc":
		m.phase = phaseBrowse
		m.remark.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.remark, cmd = m.remark.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || len(m.queue) == 0 {
		return ""
	}

	a := &m.queue[m.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Application Review — %d of %d", m.cursor+1, len(m.queue))))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.renderApplicant(a)))
	b.WriteString("\n")

	if m.phase == phaseRemark {
		verb := decidedApprove
		if m.pending == model.StatusRejected {
			verb = decidedReject
		}
		b.WriteString(fmt.Sprintf("%s — %s\n", verb, m.remark.View()))
		b.WriteString(helpStyle.Render("enter confirm • esc cancel"))
		return b.String()
	}

	b.WriteString(helpStyle.Render("a approve • r reject • u undo • j/k move • q quit"))
	return b.String()
}

func (m Model) renderApplicant(a *model.Applicant) string {
	keys := columns.Keys(a.Fields)

	nameKey := columns.FindFunc(keys, func(lower string) bool {
		return strings.Contains(lower, "name") && !strings.Contains(lower, "username")
	})
	birthKey := columns.Find(keys, "birth place")
	mobileKey := columns.Find(keys, "mobile")

	rows := []struct{ label, value string }{
		{"ID", fmt.Sprintf("%d", a.ID)},
		{"Name", a.Get(nameKey)},
		{"Roll No", columns.RollOf(a.Fields)},
		{"Mobile", a.Get(mobileKey)},
		{"Birth Place", a.Get(birthKey)},
	}

	var b strings.Builder
	for _, r := range rows {
		value := r.value
		if value == "" {
			value = "N/A"
		}
		b.WriteString(labelStyle.Render(r.label) + value + "\n")
	}

	status := string(a.Status)
	if d, ok := m.decisions[a.ID]; ok {
		status = string(d.Status)
		if d.Remark != "" {
			status += " (" + d.Remark + ")"
		}
	}
	b.WriteString(labelStyle.Render("Decision") + cli.StatusStyle(status).Render(status))
	return b.String()
}

// Run starts the review TUI and returns the decisions the reviewer made.
func Run(queue []model.Applicant) ([]cli.Decision, error) {
	p := tea.NewProgram(New(queue), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("review interface failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Decisions(), nil
}
