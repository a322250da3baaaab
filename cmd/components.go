package cmd

import (
	"github.com/spf13/cobra"

	"github.com/curl/urler/internal/controller"
)

// componentsCmd represents the components command.
var componentsCmd = newComponentsCmd()

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the URL components",
		Long:  "List every URL component with its --set and --append support.",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(controller.ComponentTable())
		},
	}
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}
