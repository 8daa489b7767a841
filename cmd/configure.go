package cmd

import (
	"io"

	"github.com/joshyorko/previewctl/common"
	"github.com/joshyorko/previewctl/pretty"
	"github.com/joshyorko/previewctl/settings"
	"github.com/joshyorko/previewctl/xviper"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"conf", "config"},
	Short:   "Show or change previewctl settings.",
	Long:    "Show or change previewctl settings.",
}

func showSettings(out io.Writer) error {
	blob, err := yaml.Marshal(settings.Summary())
	if err != nil {
		return err
	}
	_, err = out.Write(blob)
	return err
}

var configureShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings as YAML.",
	Long:  "Show effective settings as YAML. Environment variables PREVIEWCTL_RPC_ENDPOINT and friends override the file.",
	Run: func(cmd *cobra.Command, args []string) {
		common.Log("Settings file: %s", xviper.ConfigFileUsed())
		err := showSettings(cmd.OutOrStdout())
		pretty.Guard(err == nil, 1, "Error: %v", err)
	},
}

var configureSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Persist one setting.",
	Long:      "Persist one setting into the settings file.",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settings.KnownKeys(),
	Run: func(cmd *cobra.Command, args []string) {
		err := settings.Set(args[0], args[1])
		pretty.Guard(err == nil, 2, "%v", err)
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.AddCommand(configureShowCmd)
	configureCmd.AddCommand(configureSetCmd)
}
