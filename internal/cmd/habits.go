package cmd

// HabitsCmd manages habits and completion logs
type HabitsCmd struct {
	Clear   HabitsClearCmd   `cmd:"clear" help:"Clear a habit value for a date"`
	List    HabitsListCmd    `cmd:"list" help:"List all habits" default:"1"`
	Log     HabitsLogCmd     `cmd:"log" help:"Log a habit completion instance"`
	Month   HabitsMonthCmd   `cmd:"month" help:"Show a habit's values for a calendar month"`
	Reorder HabitsReorderCmd `cmd:"reorder" help:"Set the display order of habits"`
	Set     HabitsSetCmd     `cmd:"set" help:"Enable, update, or disable habit tracking on an activity"`
}
