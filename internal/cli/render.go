package cli

import (
	"io"
	"os"

	"github.com/arthur-debert/clihelp/pkg/cobrax"
	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/meta"
	"github.com/arthur-debert/clihelp/pkg/printer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var themeNames = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "tokyo-night", "pink"}

func newRenderCmd() *cobra.Command {
	var (
		format       string
		width        int
		fullWidth    bool
		maxWidth     int
		theme        string
		without      []string
		introduction string
	)

	cmd := &cobra.Command{
		Use:   "render [flags] FILE",
		Short: "Print the help described by a file",
		Long: `Render reads a command description and prints its help. The format is
taken from the file extension (.yaml, .yml, .toml, .xml) unless --format
is given. Use - as FILE to read the description from stdin.`,
		Example: `  # Print the help of a described command
  clihelp render area.yaml

  # Use the terminal width for every section
  clihelp render --full-width area.toml

  # Read from stdin
  cat area.xml | clihelp render --format xml -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := loadDescription(cmd.InOrStdin(), args[0], format)
			if err != nil {
				return err
			}

			overrides := make(map[string]interface{})
			if cmd.Flags().Changed("full-width") {
				overrides["full_width"] = fullWidth
			}
			if cmd.Flags().Changed("max-width") {
				overrides["max_width"] = maxWidth
			}
			if cmd.Flags().Changed("theme") {
				overrides["theme"] = theme
			}
			cfg, err := loadConfig(cmd, overrides)
			if err != nil {
				return err
			}

			p := printer.New(*desc).WithOutput(cmd.OutOrStdout())
			if err := cfg.Apply(p); err != nil {
				return err
			}
			if width > 0 {
				p.WithWidth(width)
			}
			if introduction != "" {
				p.WithIntroduction(introduction)
			}
			for _, key := range without {
				p.Without(key)
			}

			log.Info().
				Str("command", desc.Name).
				Int("options", len(desc.Options)).
				Int("positionals", len(desc.Positionals)).
				Msg("Rendering help")
			return p.PrintHelp()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Description `FORMAT`, required when reading stdin")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Lay out at `COLUMNS` instead of the terminal width")
	cmd.Flags().BoolVar(&fullWidth, "full-width", false, "Print every section at the terminal width")
	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "Cap the layout width")
	cmd.Flags().StringVarP(&theme, "theme", "t", "auto", "Glamour style used to print")
	cmd.Flags().StringSliceVar(&without, "without", nil, "Skip the given `SECTIONS`")
	cmd.Flags().StringVarP(&introduction, "introduction", "i", "", "Template of the introduction section")

	_ = cobrax.SetPossibleValues(cmd, "format", string(meta.FormatYAML), string(meta.FormatTOML), string(meta.FormatXML))
	_ = cobrax.SetPossibleValues(cmd, "theme", themeNames...)
	cobrax.SetPositionalHelp(cmd, "FILE", "command description, or - for stdin")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{string(meta.FormatYAML), string(meta.FormatTOML), string(meta.FormatXML)}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("theme", cobra.FixedCompletions(themeNames, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func loadDescription(stdin io.Reader, path, format string) (*meta.Command, error) {
	if path != "-" && format == "" {
		return meta.Load(path)
	}
	if format == "" {
		return nil, errors.New(errors.ErrInvalidInput, "--format is required when reading stdin")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMetadataLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	return meta.Parse(data, meta.Format(format))
}
