package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"planview.dev/pkg/planview/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [report.json]",
		Short: "List filtered report entries as a table",
		Long: `List the leaf entries of a filtered report as a flat table.

` + filterHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				Report: reportArg(args),
				Spec:   filterSpec(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
