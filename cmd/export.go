package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planview.dev/pkg/planview/internal/domain"
)

var exportFormatFlag string
var exportOutputFlag string

// exportCmd represents the export command.
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [report.json]",
		Short: "Export a filtered report",
		Long:  "Write the filtered report tree to stdout or a file, as JSON or YAML.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := cmd.OutOrStdout()

			if exportOutputFlag != "" {
				file, err := os.Create(exportOutputFlag)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer file.Close()

				output = file
			}

			return workflow.Export(context.Background(), domain.ExportArgs{
				Report: reportArg(args),
				Spec:   filterSpec(),
				Format: exportFormatFlag,
				Output: output,
			})
		},
	}

	cmd.Flags().StringVar(&exportFormatFlag, "format", domain.FormatJSON, "output format: json or yaml")
	cmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "output file (default stdout)")

	return cmd
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
