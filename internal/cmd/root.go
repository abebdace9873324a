package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sherlock",
	Short: "search engineering admission allotment reports",
	Long: `sherlock - search engineering admission allotment reports
  - search a report for a student, branch or code
  - flatten PDF, HTML, DOCX, Markdown or CSV reports to searchable text`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
