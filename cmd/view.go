package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"planview.dev/pkg/planview/internal/domain"
)

var viewFollowFlag bool
var viewSelectFlag []string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [report.json]",
		Short: "Browse a test report",
		Long: `Browse a test report interactively. The report tree is filtered by the
root-level filter flags; ancestors of matching entries stay visible.

With --follow the report is reloaded whenever its producer rewrites it, and
entries that have not run yet are never hidden.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.View(context.Background(), domain.ViewArgs{
				Report:    reportArg(args),
				Spec:      filterSpec(),
				Selection: viewSelectFlag,
				Follow:    viewFollowFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&viewFollowFlag, "follow", false, "reload the report when it changes on disk")
	cmd.Flags().StringSliceVar(&viewSelectFlag, "select", nil, "initial selection as a chain of uids")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
