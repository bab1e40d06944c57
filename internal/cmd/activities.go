package cmd

// ActivitiesCmd manages the activity tree
type ActivitiesCmd struct {
	Add    ActivitiesAddCmd    `cmd:"add" help:"Add a new activity"`
	Del    ActivitiesDelCmd    `cmd:"del" help:"Delete an activity and its whole subtree"`
	List   ActivitiesListCmd   `cmd:"list" help:"List the activity tree" default:"1"`
	Rename ActivitiesRenameCmd `cmd:"rename" help:"Rename an activity"`
}
