package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/joshyorko/previewctl/common"
	"github.com/joshyorko/previewctl/pretty"
	"github.com/joshyorko/previewctl/registry"
	"github.com/joshyorko/previewctl/rpc"
	"github.com/joshyorko/previewctl/toggling"
	"github.com/spf13/cobra"
)

var (
	actionFlag string
	skipFlags  []string
	dryFlag    bool
)

// parameterByLabel accepts either a full parameter name or its checkbox
// label, case insensitive.
func parameterByLabel(class registry.Class, given string) (string, error) {
	wanted := strings.ToLower(strings.TrimSpace(given))
	for _, parameter := range class.Parameters {
		if parameter.Name == wanted || strings.ToLower(parameter.Label) == wanted {
			return parameter.Name, nil
		}
	}
	return "", fmt.Errorf("Class %q has no parameter %q, choose from: %s", class.Name, given, strings.Join(class.ParameterNames(), ", "))
}

func buildRequest(className, actionName string, skips []string) (toggling.Request, error) {
	class, ok := registry.Lookup(className)
	if !ok {
		return toggling.Request{}, fmt.Errorf("%w %q, choose from: %s", toggling.ErrUnknownClass, className, strings.Join(registry.Names(), ", "))
	}
	action, err := toggling.ParseAction(actionName)
	if err != nil {
		return toggling.Request{}, err
	}
	if len(skips) > 0 && !class.MultiParameter() {
		return toggling.Request{}, fmt.Errorf("Class %q has a single parameter %q, nothing can be skipped", class.Name, class.Parameters[0].Name)
	}
	request := toggling.NewRequest(class.Name, action)
	for _, skip := range skips {
		name, err := parameterByLabel(class, skip)
		if err != nil {
			return toggling.Request{}, err
		}
		request = request.Without(name)
	}
	return request, nil
}

func describePlan(out io.Writer, request toggling.Request) {
	class, _ := registry.Lookup(request.Class)
	fmt.Fprintf(out, "%s on %s nodes (%s):\n", request.Action.Label(), request.Class, class.Group)
	for _, name := range request.Selected(class) {
		fmt.Fprintf(out, "  - %s\n", name)
	}
}

func runApply(ctx context.Context, out io.Writer, gateway toggling.Gateway, request toggling.Request, keepGoing bool) error {
	report, err := toggling.Apply(ctx, gateway, request, toggling.Options{
		KeepGoing: keepGoing,
		OnWrite: func(write toggling.Write) {
			fmt.Fprintf(out, "  %-24s %s=%s\n", write.Node.Name, write.Parameter, write.Value)
		},
	})
	fmt.Fprintf(out, "%s in %ss.\n", report.Summary(), report.Elapsed)
	return err
}

var applyCmd = &cobra.Command{
	Use:   "apply <class>",
	Short: "Apply On, Off or Toggle to every node of one class.",
	Long: `Apply On, Off or Toggle to the preview parameters of every node of one
class, without the interactive shell. Parameters of multi parameter classes
can be left out with --skip.`,
	Example: `  previewctl apply camera --action toggle --skip frustum
  previewctl apply obj_reader --action off`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: registry.Names(),
	Run: func(cmd *cobra.Command, args []string) {
		request, err := buildRequest(args[0], actionFlag, skipFlags)
		pretty.Guard(err == nil, 2, "%v", err)

		out := cmd.OutOrStdout()
		if dryFlag {
			describePlan(out, request)
			return
		}
		client := summonClient()
		defer client.Close()

		common.Debug("Apply request fingerprint %s.", request.Fingerprint())
		err = runApply(cmd.Context(), out, client, request, effectiveKeepGoing())
		if err != nil {
			title, message := rpc.Describe(err)
			pretty.Exit(3, "%s: %s", title, message)
		}
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&actionFlag, "action", "a", "on", "Action to apply: on, off or toggle.")
	applyCmd.Flags().StringSliceVarP(&skipFlags, "skip", "s", nil, "Parameter (name or label) to leave untouched; repeatable.")
	applyCmd.Flags().BoolVarP(&dryFlag, "dryrun", "d", false, "Only show which parameters would be written.")
}
