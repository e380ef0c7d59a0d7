package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planview.dev/pkg/planview/internal/domain"
	m "planview.dev/pkg/planview/internal/model"
)

// fakeWorkflow records the args each workflow entry point receives.
type fakeWorkflow struct {
	viewArgs   []domain.ViewArgs
	listArgs   []domain.ListArgs
	exportArgs []domain.ExportArgs
	mergeArgs  []domain.MergeArgs
	err        error
}

func (f *fakeWorkflow) View(_ context.Context, args domain.ViewArgs) error {
	f.viewArgs = append(f.viewArgs, args)
	return f.err
}

func (f *fakeWorkflow) List(_ context.Context, args domain.ListArgs) error {
	f.listArgs = append(f.listArgs, args)
	return f.err
}

func (f *fakeWorkflow) Export(_ context.Context, args domain.ExportArgs) error {
	f.exportArgs = append(f.exportArgs, args)
	return f.err
}

func (f *fakeWorkflow) Merge(_ context.Context, args domain.MergeArgs) error {
	f.mergeArgs = append(f.mergeArgs, args)
	return f.err
}

// runCommand executes the CLI against a fake workflow, with logging redirected
// to a temp dir and flag state restored afterwards.
func runCommand(t *testing.T, args ...string) (*fakeWorkflow, error) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "test.log"))

	fake := &fakeWorkflow{}
	original := workflow
	workflow = fake

	t.Cleanup(func() {
		workflow = original

		filterTextFlag = ""
		tagFlags = nil
		viewFollowFlag = false
		viewSelectFlag = nil
		exportFormatFlag = domain.FormatJSON
		exportOutputFlag = ""
		mergeOutputFlag = defaultReportFile
	})

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)

	return fake, rootCmd.Execute()
}

func TestViewCommand(t *testing.T) {
	fake, err := runCommand(t, "view", "my-report.json")

	require.NoError(t, err)
	require.Len(t, fake.viewArgs, 1)
	assert.Equal(t, m.Path("my-report.json"), fake.viewArgs[0].Report)
	assert.False(t, fake.viewArgs[0].Follow)
}

func TestViewCommand_DefaultReport(t *testing.T) {
	fake, err := runCommand(t, "view")

	require.NoError(t, err)
	require.Len(t, fake.viewArgs, 1)
	assert.Equal(t, m.Path(defaultReportFile), fake.viewArgs[0].Report)
}

func TestViewCommand_FollowAndSelection(t *testing.T) {
	fake, err := runCommand(t, "view", "my-report.json",
		"--follow", "--select", "alpha,a1")

	require.NoError(t, err)
	require.Len(t, fake.viewArgs, 1)
	assert.True(t, fake.viewArgs[0].Follow)
	assert.Equal(t, []string{"alpha", "a1"}, fake.viewArgs[0].Selection)
}

func TestViewCommand_FilterFlags(t *testing.T) {
	fake, err := runCommand(t, "view", "my-report.json",
		"-f", "login", "-t", "env=staging", "-t", "smoke")

	require.NoError(t, err)
	require.Len(t, fake.viewArgs, 1)

	spec := fake.viewArgs[0].Spec
	assert.Equal(t, "login", spec.Text)
	assert.Equal(t, map[string][]string{
		"env":    {"staging"},
		"simple": {"smoke"},
	}, spec.Tags)
}

func TestListCommand(t *testing.T) {
	fake, err := runCommand(t, "list", "my-report.json", "-f", "login")

	require.NoError(t, err)
	require.Len(t, fake.listArgs, 1)
	assert.Equal(t, m.Path("my-report.json"), fake.listArgs[0].Report)
	assert.Equal(t, "login", fake.listArgs[0].Spec.Text)
}

func TestExportCommand_Defaults(t *testing.T) {
	fake, err := runCommand(t, "export", "my-report.json")

	require.NoError(t, err)
	require.Len(t, fake.exportArgs, 1)
	assert.Equal(t, domain.FormatJSON, fake.exportArgs[0].Format)
	assert.NotNil(t, fake.exportArgs[0].Output)
}

func TestExportCommand_YAMLToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.yaml")

	fake, err := runCommand(t, "export", "my-report.json",
		"--format", "yaml", "-o", output)

	require.NoError(t, err)
	require.Len(t, fake.exportArgs, 1)
	assert.Equal(t, domain.FormatYAML, fake.exportArgs[0].Format)
	assert.FileExists(t, output)
}

func TestMergeCommand(t *testing.T) {
	fake, err := runCommand(t, "merge", "shards", "-o", "merged.json")

	require.NoError(t, err)
	require.Len(t, fake.mergeArgs, 1)
	assert.Equal(t, m.Path("shards"), fake.mergeArgs[0].Dir)
	assert.Equal(t, m.Path("merged.json"), fake.mergeArgs[0].Output)
}

func TestMergeCommand_RequiresDir(t *testing.T) {
	_, err := runCommand(t, "merge")

	require.Error(t, err)
}
