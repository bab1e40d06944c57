package cmd

// ReportCmd shows time reports and statistics
type ReportCmd struct {
	Average  ReportAverageCmd  `cmd:"average" aliases:"avg" help:"Show average entry duration for an activity"`
	Count    ReportCountCmd    `cmd:"count" help:"Show how many entries an activity has"`
	Day      ReportDayCmd      `cmd:"day" help:"Show a hierarchical report for one day" default:"1"`
	Sessions ReportSessionsCmd `cmd:"sessions" help:"Show average session composition for an activity"`
	Total    ReportTotalCmd    `cmd:"total" help:"Show total recorded time for an activity and its subtree"`
}
