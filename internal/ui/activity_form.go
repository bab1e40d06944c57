package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"tempo/internal/logging"
	"tempo/internal/services"
)

// ActivityFormResult contains the result of the add-activity operation
type ActivityFormResult struct {
	ActivityID uint
	Cancelled  bool
	Error      error
	Name       string
}

// ActivityForm is a Bubble Tea component for creating activities
type ActivityForm struct {
	Completed  bool
	activities *services.ActivityService
	form       *huh.Form
	parentID   *uint
	parentName string
	result     ActivityFormResult
}

// NewActivityForm creates a form that adds an activity, optionally under a
// parent
func NewActivityForm(activities *services.ActivityService, parentID *uint, parentName string) *ActivityForm {
	af := &ActivityForm{
		activities: activities,
		parentID:   parentID,
		parentName: parentName,
	}

	description := "Top-level activity"
	if parentID != nil {
		description = fmt.Sprintf("Child of: %s", parentName)
	}

	af.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity name").
				Description(description).
				Value(&af.result.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("activity name required")
					}
					return nil
				}),
		),
	)

	return af
}

func (af *ActivityForm) Init() tea.Cmd {
	return af.form.Init()
}

func (af *ActivityForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			af.result.Cancelled = true
			af.Completed = true
			return af, nil
		}
	}

	form, cmd := af.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		af.form = f
	}

	if af.form.State == huh.StateCompleted {
		af.Completed = true
		id, err := af.activities.Add(context.Background(), af.result.Name, af.parentID)
		if err != nil {
			logging.Logger.Error("Failed to add activity", "error", err)
			af.result.Error = err
		} else {
			af.result.ActivityID = id
		}
		return af, nil
	}

	return af, cmd
}

func (af *ActivityForm) View() string {
	if af.form != nil {
		return af.form.View()
	}
	return ""
}

// Result returns the form result
func (af *ActivityForm) Result() ActivityFormResult {
	return af.result
}
