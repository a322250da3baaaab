package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/curl/urler/internal/controller"
)

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [URL]",
		Short: "Inspect URL components interactively",
		Long: `Open an interactive view that splits a URL into its components while you
type. The optional argument pre-fills the input line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !controller.IsTTY(cmd.OutOrStdout()) {
				return errors.New("inspect needs an interactive terminal")
			}

			initial := ""
			if len(args) == 1 {
				initial = args[0]
			}

			return controller.RunInspector(urlEngine, cmd.OutOrStdout(), initial)
		},
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
