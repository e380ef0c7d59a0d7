package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"planview.dev/pkg/planview/internal/domain"
	m "planview.dev/pkg/planview/internal/model"
)

var mergeOutputFlag string

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge DIR",
		Short: "Merge shard reports into a single report",
		Long: `Merge report_*.json shards under DIR into a single report. Top-level
entries are concatenated under a synthesized root; counters are summed from
the shard roots.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Merge(context.Background(), domain.MergeArgs{
				Dir:    m.Path(args[0]),
				Output: m.Path(mergeOutputFlag),
			})
		},
	}

	cmd.Flags().StringVarP(&mergeOutputFlag, "output", "o", defaultReportFile, "merged report output file")

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
