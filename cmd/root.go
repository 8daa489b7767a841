package cmd

import (
	"os"
	"time"

	"github.com/joshyorko/previewctl/common"
	"github.com/joshyorko/previewctl/pretty"
	"github.com/joshyorko/previewctl/rpc"
	"github.com/joshyorko/previewctl/settings"
	"github.com/spf13/cobra"
)

var (
	silentFlag    bool
	debugFlag     bool
	traceFlag     bool
	homeFlag      string
	endpointFlag  string
	timeoutFlag   time.Duration
	keepGoingFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "previewctl",
	Short: "Toggle preview display parameters of Terragen nodes.",
	Long: `previewctl switches preview display parameters (camera frustums, object
bounding boxes, reader visibility, ...) on, off or toggles them for every node
of one node class in the project open in Terragen, through its RPC interface.

Without a subcommand it launches the interactive shell when attached to a
terminal.`,
	Version: common.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
		if len(homeFlag) > 0 {
			common.Strategy.ForceHome(homeFlag)
		}
		err := settings.Summon()
		pretty.Guard(err == nil, 2, "Settings problem: %v", err)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !pretty.Interactive {
			cmd.Help()
			return
		}
		runShell()
	},
}

func Execute() {
	defer func() {
		if len(os.Args) > 1 {
			common.Trace("Command %q done.", os.Args[1])
		}
	}()
	err := rootCmd.Execute()
	pretty.Guard(err == nil, 1, "Error: %v", err)
}

func effectiveEndpoint() string {
	if len(endpointFlag) > 0 {
		return endpointFlag
	}
	return settings.Endpoint()
}

func effectiveTimeout() time.Duration {
	if timeoutFlag > 0 {
		return timeoutFlag
	}
	return settings.Timeout()
}

func effectiveKeepGoing() bool {
	return keepGoingFlag || settings.KeepGoing()
}

// summonClient exits when the endpoint cannot be used at all. Reachability
// is not checked here; the first call reports that.
func summonClient() *rpc.Client {
	endpoint := effectiveEndpoint()
	_, err := settings.ParseEndpoint(endpoint)
	pretty.Guard(err == nil, 2, "%v", err)
	client, err := rpc.Dial(endpoint, effectiveTimeout())
	pretty.Guard(err == nil, 2, "Cannot use endpoint %q: %v", endpoint, err)
	common.Debug("Using endpoint %s with timeout %s.", endpoint, effectiveTimeout())
	return client
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "", false, "Be less verbose on output.")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "", false, "Turn on debugging output.")
	rootCmd.PersistentFlags().BoolVarP(&traceFlag, "trace", "", false, "Turn on tracing output.")
	rootCmd.PersistentFlags().StringVarP(&homeFlag, "home", "", "", "Directory holding previewctl settings (default $PREVIEWCTL_HOME or ~/.previewctl).")
	rootCmd.PersistentFlags().StringVarP(&endpointFlag, "endpoint", "e", "", "Host RPC endpoint (http, https, ws or wss URL); overrides settings.")
	rootCmd.PersistentFlags().DurationVarP(&timeoutFlag, "timeout", "", 0, "Timeout of a single RPC call; overrides settings.")
	rootCmd.PersistentFlags().BoolVarP(&keepGoingFlag, "keep-going", "k", false, "Skip failing node parameters instead of stopping at the first failure.")
}
