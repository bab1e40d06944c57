package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/services"
	"tempo/internal/theme"
)

type uiState int

const (
	stateDashboard uiState = iota
	stateAddingActivity
	stateLoggingHabit
)

// activityRow is one line of the flattened activity tree
type activityRow struct {
	Depth   int
	ID      uint
	IsHabit bool
	Name    string
}

// Model is the dashboard: the activity tree on one side, the active timers
// above it, refreshed once per second
type Model struct {
	activities    *services.ActivityService
	activityForm  *ActivityForm
	cursor        int
	engine        *services.Engine
	err           error
	habitForm     *HabitForm
	habits        *services.HabitService
	height        int
	keys          KeyMap
	reports       *services.ReportService
	rows          []activityRow
	state         uiState
	statuses      []services.TaskStatus
	width         int
}

// NewModel creates the dashboard model
func NewModel(activities *services.ActivityService, engine *services.Engine, habits *services.HabitService, reports *services.ReportService) *Model {
	return &Model{
		activities: activities,
		engine:     engine,
		habits:     habits,
		keys:       NewKeyMap(),
		reports:    reports,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadActivitiesCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) loadActivitiesCmd() tea.Cmd {
	return func() tea.Msg {
		tree, err := m.activities.Hierarchy(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return activitiesLoadedMsg{tree: tree}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.statuses = m.engine.Tick()
		return m, tickCmd()

	case activitiesLoadedMsg:
		m.rows = flattenTree(msg.tree)
		if m.cursor >= len(m.rows) {
			m.cursor = max(0, len(m.rows)-1)
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	switch m.state {
	case stateAddingActivity:
		return m.updateActivityForm(msg)
	case stateLoggingHabit:
		return m.updateHabitForm(msg)
	}
	return m.updateDashboard(msg)
}

func (m *Model) updateActivityForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.activityForm.Update(msg)
	if m.activityForm.Completed {
		result := m.activityForm.Result()
		if result.Error != nil {
			m.err = result.Error
		}
		m.activityForm = nil
		m.state = stateDashboard
		return m, m.loadActivitiesCmd()
	}
	return m, cmd
}

func (m *Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.habitForm.Update(msg)
	if m.habitForm.Completed {
		result := m.habitForm.Result()
		if result.Error != nil {
			m.err = result.Error
		}
		m.habitForm = nil
		m.state = stateDashboard
		return m, nil
	}
	return m, cmd
}

func (m *Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	ctx := context.Background()
	m.err = nil

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.endAllSessions(ctx)
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.StartWork):
		if row, ok := m.selected(); ok {
			m.err = m.engine.Start(ctx, row.ID, domain.ModeWork)
			m.statuses = m.engine.Tick()
		}

	case key.Matches(keyMsg, m.keys.Countdown):
		if row, ok := m.selected(); ok {
			m.err = m.engine.Start(ctx, row.ID, domain.ModeCountdown)
			m.statuses = m.engine.Tick()
		}

	case key.Matches(keyMsg, m.keys.Pause):
		if row, ok := m.selected(); ok {
			if status, active := m.engine.Task(row.ID); active {
				if status.State == domain.StateTracking {
					m.err = m.engine.Pause(ctx, row.ID)
				} else {
					m.err = m.engine.Resume(ctx, row.ID)
				}
				m.statuses = m.engine.Tick()
			}
		}

	case key.Matches(keyMsg, m.keys.End):
		if row, ok := m.selected(); ok {
			if _, active := m.engine.Task(row.ID); active {
				m.err = m.engine.End(ctx, row.ID, true)
				m.statuses = m.engine.Tick()
			}
		}

	case key.Matches(keyMsg, m.keys.Discard):
		if row, ok := m.selected(); ok {
			if _, active := m.engine.Task(row.ID); active {
				m.err = m.engine.End(ctx, row.ID, false)
				m.statuses = m.engine.Tick()
			}
		}

	case key.Matches(keyMsg, m.keys.AddActivity):
		m.activityForm = NewActivityForm(m.activities, nil, "")
		m.state = stateAddingActivity
		return m, m.activityForm.Init()

	case key.Matches(keyMsg, m.keys.AddChild):
		if row, ok := m.selected(); ok {
			parentID := row.ID
			m.activityForm = NewActivityForm(m.activities, &parentID, row.Name)
			m.state = stateAddingActivity
			return m, m.activityForm.Init()
		}

	case key.Matches(keyMsg, m.keys.LogHabit):
		if row, ok := m.selected(); ok && row.IsHabit {
			m.habitForm = NewHabitForm(m.habits, row.ID, row.Name)
			m.state = stateLoggingHabit
			return m, m.habitForm.Init()
		}
	}

	return m, nil
}

// endAllSessions persists every active session before quitting so no
// tracked time is lost on exit
func (m *Model) endAllSessions(ctx context.Context) {
	for _, status := range m.engine.Tick() {
		if err := m.engine.End(ctx, status.ActivityID, true); err != nil {
			logging.Logger.Error("Failed to end session on quit",
				"activity_id", status.ActivityID, "error", err)
		}
	}
}

func (m *Model) selected() (activityRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return activityRow{}, false
	}
	return m.rows[m.cursor], true
}

func flattenTree(tree []*domain.ActivityNode) []activityRow {
	var rows []activityRow
	var walk func(node *domain.ActivityNode, depth int)
	walk = func(node *domain.ActivityNode, depth int) {
		rows = append(rows, activityRow{
			Depth:   depth,
			ID:      node.ID,
			IsHabit: node.Habit != nil,
			Name:    node.Name,
		})
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range tree {
		walk(root, 0)
	}
	return rows
}

func (m *Model) View() string {
	switch m.state {
	case stateAddingActivity:
		if m.activityForm != nil {
			return m.activityForm.View()
		}
	case stateLoggingHabit:
		if m.habitForm != nil {
			return m.habitForm.View()
		}
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("tempo"))
	b.WriteString("\n")

	b.WriteString(m.renderTimers())
	b.WriteString(m.renderTree())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderTimers() string {
	if len(m.statuses) == 0 {
		return theme.MutedStyle.Render("No active timers") + "\n\n"
	}

	var b strings.Builder
	for _, status := range m.statuses {
		var line string
		switch {
		case status.Mode == domain.ModeCountdown:
			line = fmt.Sprintf("%s  %s remaining", status.ActivityName, FormatCountdown(status.Remaining))
		case status.State == domain.StatePaused:
			line = fmt.Sprintf("%s  %s (on break %s)", status.ActivityName,
				FormatClock(status.TotalWork), FormatClock(status.CurrentInterval))
		default:
			line = fmt.Sprintf("%s  %s", status.ActivityName, FormatClock(status.TotalWork))
		}

		style := theme.TrackingStyle
		if status.Overrun {
			style = theme.OverrunStyle
		} else if status.State == domain.StatePaused {
			style = theme.PausedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderTree() string {
	if len(m.rows) == 0 {
		return theme.MutedStyle.Render("No activities yet, press 'a' to add one") + "\n"
	}

	var b strings.Builder
	for i, row := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = theme.CursorStyle.Render("> ")
		}

		name := row.Name
		if row.IsHabit {
			name += " ◦"
		}
		line := strings.Repeat("  ", row.Depth) + name

		if _, active := m.engine.Task(row.ID); active {
			line = theme.TrackingStyle.Render(line)
		} else if i == m.cursor {
			line = theme.NormalStyle.Render(line)
		} else {
			line = theme.SubtleStyle.Render(line)
		}

		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

func (m *Model) renderHelp() string {
	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		parts = append(parts, fmt.Sprintf("%s %s", binding.Help().Key, binding.Help().Desc))
	}
	return theme.HelpStyle.Render(strings.Join(parts, " • "))
}
