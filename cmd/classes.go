package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshyorko/previewctl/pretty"
	"github.com/joshyorko/previewctl/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	yamlFlag bool
)

type classListing struct {
	Name       string   `yaml:"name"`
	Label      string   `yaml:"label"`
	Group      string   `yaml:"group"`
	Parameters []string `yaml:"parameters"`
}

func listClassesYaml(out io.Writer) error {
	listing := []classListing{}
	for _, class := range registry.Classes() {
		listing = append(listing, classListing{Name: class.Name, Label: class.Label, Group: strings.ToLower(class.Group.String()), Parameters: class.ParameterNames()})
	}
	blob, err := yaml.Marshal(listing)
	if err != nil {
		return err
	}
	_, err = out.Write(blob)
	return err
}

func listClassesText(out io.Writer) {
	fmt.Fprintf(out, "%-20s %-14s %-8s %s\n", "class", "label", "group", "parameters")
	fmt.Fprintln(out, pretty.Separator())
	for _, class := range registry.Classes() {
		labels := []string{}
		for _, parameter := range class.Parameters {
			labels = append(labels, fmt.Sprintf("%s (%s)", parameter.Name, strings.ToLower(parameter.Label)))
		}
		fmt.Fprintf(out, "%-20s %-14s %-8s %s\n", class.Name, class.Label, strings.ToLower(class.Group.String()), strings.Join(labels, ", "))
	}
}

var classesCmd = &cobra.Command{
	Use:     "classes",
	Aliases: []string{"ls"},
	Short:   "List node classes and their preview parameters.",
	Long:    "List node classes and their preview parameters, in the order the shell shows them.",
	Run: func(cmd *cobra.Command, args []string) {
		if yamlFlag {
			err := listClassesYaml(cmd.OutOrStdout())
			pretty.Guard(err == nil, 1, "Error: %v", err)
			return
		}
		listClassesText(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
	classesCmd.Flags().BoolVarP(&yamlFlag, "yaml", "y", false, "Output as YAML.")
}
