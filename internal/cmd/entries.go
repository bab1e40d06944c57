package cmd

// EntriesCmd manages recorded time entries
type EntriesCmd struct {
	Del  EntriesDelCmd  `cmd:"del" help:"Delete a time entry"`
	Edit EntriesEditCmd `cmd:"edit" help:"Edit a time entry"`
	List EntriesListCmd `cmd:"list" help:"List time entries for an activity" default:"1"`
}
