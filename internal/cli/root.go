package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"codec-generator/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string

	logger *slog.Logger
}

// Logger returns the logger commands report through. Until the root command
// sets one up it discards everything.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.logger
}

func (o *RootOptions) setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}

	o.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand creates the root command of codec-generator.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "codec-generator",
		Short: "Generate wire codecs from schema descriptors",
		Long: `codec-generator compiles entity and enum descriptors into Go codecs.

Descriptors come from YAML schema files or from Go packages whose types
carry schema directives. For every entity it emits a full-state struct, a
partial-update struct and the functions that move both to and from wire
objects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.setupLogger(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath, "generator config file")

	cmd.AddCommand(NewGenCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}
