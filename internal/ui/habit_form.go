package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/services"
)

// HabitFormResult contains the result of a habit log operation
type HabitFormResult struct {
	Cancelled bool
	Error     error
	NewTotal  float64
}

// HabitForm is a Bubble Tea component for logging a habit completion
// instance for today
type HabitForm struct {
	Completed    bool
	activityID   uint
	activityName string
	habits       *services.HabitService
	form         *huh.Form
	rawValue     string
	result       HabitFormResult
}

// NewHabitForm creates a form that logs a habit value for today
func NewHabitForm(habits *services.HabitService, activityID uint, activityName string) *HabitForm {
	hf := &HabitForm{
		activityID:   activityID,
		activityName: activityName,
		habits:       habits,
		rawValue:     "1",
	}

	hf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit value").
				Description(fmt.Sprintf("Logging for: %s", activityName)).
				Value(&hf.rawValue).
				Validate(func(s string) error {
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return fmt.Errorf("enter a number")
					}
					return nil
				}),
		),
	)

	return hf
}

func (hf *HabitForm) Init() tea.Cmd {
	return hf.form.Init()
}

func (hf *HabitForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			hf.result.Cancelled = true
			hf.Completed = true
			return hf, nil
		}
	}

	form, cmd := hf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		hf.form = f
	}

	if hf.form.State == huh.StateCompleted {
		hf.Completed = true
		value, _ := strconv.ParseFloat(hf.rawValue, 64)
		date := time.Now().UTC().Format(domain.DateLayout)
		total, err := hf.habits.LogInstance(context.Background(), hf.activityID, date, value)
		if err != nil {
			logging.Logger.Error("Failed to log habit", "error", err)
			hf.result.Error = err
		} else {
			hf.result.NewTotal = total
		}
		return hf, nil
	}

	return hf, cmd
}

func (hf *HabitForm) View() string {
	if hf.form != nil {
		return hf.form.View()
	}
	return ""
}

// Result returns the form result
func (hf *HabitForm) Result() HabitFormResult {
	return hf.result
}
