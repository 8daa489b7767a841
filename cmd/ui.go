package cmd

import (
	"github.com/joshyorko/previewctl/interactive"
	"github.com/joshyorko/previewctl/pretty"
	"github.com/spf13/cobra"
)

func runShell() {
	client := summonClient()
	defer client.Close()

	err := interactive.Run(interactive.Config{
		Gateway:   client,
		Endpoint:  client.Endpoint(),
		KeepGoing: effectiveKeepGoing(),
	})
	pretty.Guard(err == nil, 1, "UI error: %v", err)
}

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui", "shell"},
	Short:   "Launch the interactive terminal shell.",
	Long: `Launch the interactive terminal shell.

Panels:
  Node class   pick exactly one class
  Parameters   checkboxes for classes with several parameters
  Action       On, Off or Toggle

Keys:
  tab/shift+tab  Switch panel
  j/k            Move / change selection
  space          Check or uncheck parameter
  a, enter       Apply
  c              Copy warning text
  q              Quit`,
	Run: func(cmd *cobra.Command, args []string) {
		if !pretty.Interactive {
			pretty.Exit(1, "The shell requires an interactive terminal (TTY); use 'previewctl apply' instead.")
		}
		runShell()
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
