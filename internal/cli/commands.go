package cli

import (
	"github.com/arthur-debert/clihelp/internal/version"
	"github.com/arthur-debert/clihelp/pkg/cobrax"
	"github.com/arthur-debert/clihelp/pkg/config"
	"github.com/arthur-debert/clihelp/pkg/logging"
	"github.com/arthur-debert/clihelp/pkg/printer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "clihelp",
		Short: "Print command line help from a command description",
		Long: `clihelp prints the help of a command line program from a YAML, TOML or
XML description of its options and arguments. Sections are markdown
templates, laid out so that titles, paragraphs and tables share one width.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}
	cobrax.SetAuthor(rootCmd, "Arthur Debert")

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().String("config", "", "Read settings from `FILE` instead of the XDG config file")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	cobrax.Install(rootCmd, cobrax.Options{
		Configure: func(cmd *cobra.Command, p *printer.Printer) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			return cfg.Apply(p)
		},
		Topics: topics,
	})

	return rootCmd
}

// loadConfig reads the settings, using the --config flag when set
func loadConfig(cmd *cobra.Command, overrides map[string]interface{}) (*config.Config, error) {
	opts := config.Options{Overrides: overrides}
	if f := cmd.Flag("config"); f != nil {
		opts.Path = f.Value.String()
	}
	return config.Load(opts)
}
