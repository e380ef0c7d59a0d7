package adapter

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	m "planview.dev/pkg/planview/internal/model"
)

func TestViperPreferences_ReadsConfiguredValues(t *testing.T) {
	defer viper.Reset()

	viper.Set(UseTreeViewKey, true)
	viper.Set(DisplayTimeInfoKey, true)
	viper.Set(DisplayPathKey, false)

	prefs := NewViperPreferences()

	assert.True(t, prefs.UseTreeView())
	assert.True(t, prefs.DisplayTimeInfo())
	assert.False(t, prefs.DisplayPath())
}

// The hide_* preferences are stored negated; DisplayFlags flips them back.
func TestViperPreferences_DisplayFlagsNegation(t *testing.T) {
	defer viper.Reset()

	viper.Set(HideEmptyTestcasesKey, true)
	viper.Set(HideSkippedTestcasesKey, false)

	prefs := NewViperPreferences()

	assert.Equal(t, m.DisplayFlags{DisplayEmpty: false, DisplaySkipped: true}, prefs.DisplayFlags())
}

func TestViperPreferences_UnsetKeysShowEverything(t *testing.T) {
	defer viper.Reset()
	viper.Reset()

	prefs := NewViperPreferences()

	assert.Equal(t, m.ShowAll, prefs.DisplayFlags())
}
