package adapter

import (
	"github.com/spf13/viper"

	m "planview.dev/pkg/planview/internal/model"
)

// Preference keys persisted in the external key-value store. Defaults are
// registered by the cmd package alongside the other viper keys.
const (
	UseTreeViewKey          = "ui.use_tree_view"
	DisplayTimeInfoKey      = "ui.display_time_info"
	DisplayPathKey          = "ui.display_path"
	HideEmptyTestcasesKey   = "ui.hide_empty_testcases"
	HideSkippedTestcasesKey = "ui.hide_skipped_testcases"
)

// Preferences exposes the persisted display preferences consumed by the
// engine. Implementations are read-only views; writing preferences is the
// concern of the configuration collaborator.
type Preferences interface {
	// UseTreeView selects tree presentation over the flat list.
	UseTreeView() bool

	// DisplayTimeInfo enables execution duration columns.
	DisplayTimeInfo() bool

	// DisplayPath enables the file path column.
	DisplayPath() bool

	// DisplayFlags derives the filter visibility gate from the
	// hide_empty/hide_skipped preferences.
	DisplayFlags() m.DisplayFlags
}

// ViperPreferences reads preferences from the process-wide viper instance,
// which merges config file, environment and flag values.
type ViperPreferences struct{}

// NewViperPreferences constructs a ViperPreferences.
func NewViperPreferences() *ViperPreferences {
	return &ViperPreferences{}
}

// UseTreeView implements Preferences.
func (p *ViperPreferences) UseTreeView() bool {
	return viper.GetBool(UseTreeViewKey)
}

// DisplayTimeInfo implements Preferences.
func (p *ViperPreferences) DisplayTimeInfo() bool {
	return viper.GetBool(DisplayTimeInfoKey)
}

// DisplayPath implements Preferences.
func (p *ViperPreferences) DisplayPath() bool {
	return viper.GetBool(DisplayPathKey)
}

// DisplayFlags implements Preferences. The hide_* preferences are stored in
// negative form; the engine works with positive display flags.
func (p *ViperPreferences) DisplayFlags() m.DisplayFlags {
	return m.DisplayFlags{
		DisplayEmpty:   !viper.GetBool(HideEmptyTestcasesKey),
		DisplaySkipped: !viper.GetBool(HideSkippedTestcasesKey),
	}
}
