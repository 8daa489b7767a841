package cmd

import (
	"fmt"
	"io"

	"github.com/joshyorko/previewctl/operations"
	"github.com/joshyorko/previewctl/pretty"
	"github.com/joshyorko/previewctl/settings"
	"github.com/spf13/cobra"
)

func showDiagnosis(out io.Writer, diagnosis operations.Diagnosis) {
	fmt.Fprintf(out, "Endpoint: %s\n", diagnosis.Endpoint)
	for _, check := range diagnosis.Checks {
		mark := pretty.Green + "ok  " + pretty.Reset
		if !check.Ok {
			mark = pretty.Red + "FAIL" + pretty.Reset
		}
		fmt.Fprintf(out, "  %s %-14s %s\n", mark, check.Name, check.Detail)
	}
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the host application is running and reachable.",
	Long: `Check that the host application process is running, that its RPC
endpoint answers, and count nodes of every known class.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := summonClient()
		defer client.Close()

		diagnosis := operations.Diagnose(cmd.Context(), client, client.Endpoint(), settings.HostProcess())
		showDiagnosis(cmd.OutOrStdout(), diagnosis)
		pretty.Guard(diagnosis.Healthy(), 4, "Host is not healthy, see above.")
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
