// Package cobrax plugs the help printer into cobra applications.
//
// Describe turns a cobra command into the metadata the printer binds, and
// Install replaces cobra's help (both the --help flag and the help command)
// with printed help. Help topics are extra templates, expanded with the root
// command's bindings and printed through `help <topic>`.
package cobrax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/logging"
	"github.com/arthur-debert/clihelp/pkg/printer"
	"github.com/spf13/cobra"
)

// Options configures Install
type Options struct {
	// Configure adjusts the printer of a command before it prints
	Configure func(cmd *cobra.Command, p *printer.Printer) error

	// Topics maps topic names to templates
	Topics map[string]string
}

// NewPrinter returns a printer bound to cmd, writing to its output
func NewPrinter(cmd *cobra.Command) *printer.Printer {
	return printer.New(Describe(cmd)).WithOutput(cmd.OutOrStdout())
}

type helper struct {
	root *cobra.Command
	opts Options
}

// Install makes root and all its subcommands print their help with the
// printer. An existing help command is replaced. Commands using -h for
// another flag get a --help flag without shorthand, so Install must run
// after the command tree and its flags are defined.
func Install(root *cobra.Command, opts Options) {
	h := &helper{root: root, opts: opts}
	addHelpFlags(root)

	helpCmd := &cobra.Command{
		Use:                "help [command or topic]",
		Short:              "Help about any command or topic",
		DisableFlagParsing: true,
		Long: "Help provides help for any command or topic in the application.\n" +
			"Type `" + root.Name() + " help topics` to list the topics.",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, h.topicNames()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.run(args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if err := h.print(cmd); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

// addHelpFlags declares the help flag cobra would add, without the -h
// shorthand where a command already uses it
func addHelpFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	taken := flags.ShorthandLookup("h") != nil ||
		cmd.PersistentFlags().ShorthandLookup("h") != nil ||
		cmd.InheritedFlags().ShorthandLookup("h") != nil
	if taken && flags.Lookup("help") == nil && cmd.PersistentFlags().Lookup("help") == nil {
		flags.Bool("help", false, "help for "+cmd.Name())
	}
	for _, c := range cmd.Commands() {
		addHelpFlags(c)
	}
}

func (h *helper) run(args []string) error {
	if len(args) == 0 {
		return h.print(h.root)
	}
	if args[0] == "topics" {
		return h.listTopics()
	}
	if tmpl, ok := h.topic(args[0]); ok {
		p, err := h.printer(h.root)
		if err != nil {
			return err
		}
		return p.PrintTemplate(tmpl)
	}

	cmd, _, err := h.root.Find(args)
	if err != nil || cmd == nil {
		return errors.Newf(errors.ErrInvalidInput, "unknown help topic %q", strings.Join(args, " "))
	}
	return h.print(cmd)
}

func (h *helper) printer(cmd *cobra.Command) (*printer.Printer, error) {
	p := NewPrinter(cmd)
	if h.opts.Configure != nil {
		if err := h.opts.Configure(cmd, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (h *helper) print(cmd *cobra.Command) error {
	logger := logging.GetLogger("cobrax")
	logger.Debug().
		Str("command", cmd.CommandPath()).
		Msg("Printing help")
	p, err := h.printer(cmd)
	if err != nil {
		return err
	}
	return p.PrintHelp()
}

// topic accepts flag-style names, so `help --strategy` finds "strategy"
func (h *helper) topic(name string) (string, bool) {
	name = strings.TrimLeft(name, "-")
	tmpl, ok := h.opts.Topics[name]
	return tmpl, ok
}

func (h *helper) topicNames() []string {
	names := make([]string, 0, len(h.opts.Topics))
	for name := range h.opts.Topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *helper) listTopics() error {
	out := h.root.OutOrStdout()
	names := h.topicNames()
	if len(names) == 0 {
		_, err := fmt.Fprintln(out, "No help topics available.")
		return err
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", h.root.Name())
	_, err := fmt.Fprint(out, b.String())
	return err
}
