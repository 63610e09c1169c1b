package cobrax

import (
	"testing"

	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/meta"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAreaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "area [flags] [ROOT]",
		Short:   "Compute an area",
		Long:    "Compute `height x width`",
		Version: "1.0.2",
		Run:     func(*cobra.Command, []string) {},
	}
	cmd.Flags().IntP("height", "h", 9, "Height")
	cmd.Flags().IntP("width", "w", 3, "Width")
	cmd.Flags().StringP("strategy", "s", "fast", "Computation `STRATEGY`")
	cmd.Flags().BoolP("verbose", "v", false, "Talk more")
	cmd.Flags().String("secret", "", "Not shown")
	_ = cmd.Flags().MarkHidden("secret")
	SetAuthor(cmd, "dystroy")
	SetPositionalHelp(cmd, "ROOT", "root directory")
	return cmd
}

func TestDescribe(t *testing.T) {
	cmd := newAreaCmd()
	require.NoError(t, SetPossibleValues(cmd, "strategy", "fast", "precise"))

	got := Describe(cmd)

	want := meta.Command{
		Name:    "area",
		Author:  "dystroy",
		Version: "1.0.2",
		About:   "Compute `height x width`",
		Options: []meta.Option{
			{Short: "h", Long: "height", Help: "Height", ValueNames: []string{"HEIGHT"}, DefaultValues: []string{"9"}, TakesValue: true},
			{Short: "s", Long: "strategy", Help: "Computation STRATEGY", ValueNames: []string{"STRATEGY"},
				PossibleValues: []string{"fast", "precise"}, DefaultValues: []string{"fast"}, TakesValue: true},
			{Short: "v", Long: "verbose", Help: "Talk more"},
			{Short: "w", Long: "width", Help: "Width", ValueNames: []string{"WIDTH"}, DefaultValues: []string{"3"}, TakesValue: true},
		},
		Positionals: []meta.Positional{
			{ValueNames: []string{"ROOT"}, Help: "root directory"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe_Subcommand(t *testing.T) {
	root := &cobra.Command{Use: "tool", Version: "2.0.0", Long: "The tool"}
	root.PersistentFlags().Bool("debug", false, "Debug output")
	sub := &cobra.Command{Use: "run FILE", Short: "Run a file", Run: func(*cobra.Command, []string) {}}
	sub.Flags().String("mode", "", "Run mode")
	root.AddCommand(sub)

	got := Describe(sub)

	assert.Equal(t, "tool run", got.Name)
	assert.Equal(t, "2.0.0", got.Version, "version inherited from the root")
	assert.Equal(t, "Run a file", got.About, "short used without long")
	require.Len(t, got.Options, 2)
	assert.Equal(t, "mode", got.Options[0].Long, "local flags first")
	assert.Empty(t, got.Options[0].DefaultValues)
	assert.Equal(t, "debug", got.Options[1].Long)
	assert.Equal(t, []meta.Positional{{ValueNames: []string{"FILE"}, Required: true}}, got.Positionals)
}

func TestPositionalsFromUse(t *testing.T) {
	tests := []struct {
		use  string
		want []meta.Positional
	}{
		{"area", nil},
		{"area [flags]", nil},
		{"area ROOT", []meta.Positional{{ValueNames: []string{"ROOT"}, Required: true}}},
		{"area [ROOT]", []meta.Positional{{ValueNames: []string{"ROOT"}}}},
		{"area [-v] FILES...", []meta.Positional{{ValueNames: []string{"FILES"}, Required: true}}},
		{"run PROG -- ARGS", []meta.Positional{
			{ValueNames: []string{"PROG"}, Required: true},
			{ValueNames: []string{"ARGS"}, Required: true, Last: true},
		}},
		{"run PROG [-- ARGS]", []meta.Positional{
			{ValueNames: []string{"PROG"}, Required: true},
			{ValueNames: []string{"ARGS"}, Last: true},
		}},
		{"tool [command]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.want, positionalsFromUse(tt.use))
		})
	}
}

func TestSetPossibleValues_UnknownFlag(t *testing.T) {
	err := SetPossibleValues(newAreaCmd(), "nope", "a")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSetPossibleValues_PersistentFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "tool"}
	cmd.PersistentFlags().String("color", "auto", "Color mode")
	require.NoError(t, SetPossibleValues(cmd, "color", "auto", "always", "never"))

	got := Describe(cmd)
	require.Len(t, got.Options, 1)
	assert.Equal(t, []string{"auto", "always", "never"}, got.Options[0].PossibleValues)
}
