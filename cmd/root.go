// Package cmd provides the root command and CLI setup for planview.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"planview.dev/pkg/planview/internal/adapter"
	"planview.dev/pkg/planview/internal/controller"
	"planview.dev/pkg/planview/internal/domain"
	m "planview.dev/pkg/planview/internal/model"
)

var reportStore adapter.ReportStore
var preferences adapter.Preferences
var notifier domain.ExpandNotifier
var ui controller.UI
var workflow domain.Workflow

// filterTextFlag is a root-level flag feeding the filter spec's text match.
var filterTextFlag string

// tagFlags collects repeated CATEGORY=TAG constraints for the filter spec.
var tagFlags []string

// logVerboseFlag switches file logging to debug level.
var logVerboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	reportStore = adapter.NewLocalReportStore()
	preferences = adapter.NewViperPreferences()
	notifier = adapter.NewRouterLog()
	workflow = domain.NewWorkflow(reportStore, preferences, ui, notifier)
}

const filterHelp = `Filtering:
  --filter TEXT            keep entries whose name/description contains TEXT
  --tag CATEGORY=TAG       keep entries carrying TAG in CATEGORY (repeatable)
Ancestors of a matching entry are always kept, so the path to every match
stays navigable.`

const rootLongDescription = `Planview browses hierarchical test-execution reports: filter the report
tree, walk it interactively, and export or merge filtered views.

` + filterHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "planview",
		Short: "Test report tree viewer",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", logVerboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&filterTextFlag, filterFlagName, "f", "", "filter entries by name/description substring")
	cmd.PersistentFlags().StringArrayVarP(&tagFlags, tagFlagName, "t", nil, "filter entries by CATEGORY=TAG (can be repeated)")
	cmd.PersistentFlags().BoolVarP(&logVerboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "log at debug level")

	cmd.PersistentFlags().Bool(treeViewFlagName, viper.GetBool(adapter.UseTreeViewKey), "browse as a tree instead of a flat list")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(treeViewFlagName), adapter.UseTreeViewKey)

	cmd.PersistentFlags().Bool(showTimeFlagName, viper.GetBool(adapter.DisplayTimeInfoKey), "show execution durations")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(showTimeFlagName), adapter.DisplayTimeInfoKey)

	cmd.PersistentFlags().Bool(showPathFlagName, viper.GetBool(adapter.DisplayPathKey), "show full entry paths instead of names")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(showPathFlagName), adapter.DisplayPathKey)

	cmd.PersistentFlags().Bool(hideEmptyFlagName, viper.GetBool(adapter.HideEmptyTestcasesKey), "hide entries with no executed results")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(hideEmptyFlagName), adapter.HideEmptyTestcasesKey)

	cmd.PersistentFlags().Bool(hideSkippedFlagName, viper.GetBool(adapter.HideSkippedTestcasesKey), "hide skipped entries")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(hideSkippedFlagName), adapter.HideSkippedTestcasesKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// reportArg resolves the report path from the positional argument, falling
// back to the configured default.
func reportArg(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return m.Path(viper.GetString(reportConfigKey))
}

// filterSpec assembles the filter spec from the root-level flags.
func filterSpec() m.FilterSpec {
	return m.FilterSpec{
		Text: filterTextFlag,
		Tags: parseTagFilters(tagFlags),
	}
}

// parseTagFilters turns repeated CATEGORY=TAG pairs into the per-category
// tag sets of a filter spec. Pairs without a category constrain the default
// "simple" category; malformed pairs are skipped.
func parseTagFilters(pairs []string) map[string][]string {
	if len(pairs) == 0 {
		return nil
	}

	tags := make(map[string][]string)

	for _, pair := range pairs {
		category, tag, found := strings.Cut(pair, "=")
		if !found {
			category, tag = "simple", pair
		}

		if tag == "" {
			continue
		}

		tags[category] = append(tags[category], tag)
	}

	if len(tags) == 0 {
		return nil
	}

	return tags
}
