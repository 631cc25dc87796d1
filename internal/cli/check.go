package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codec-generator/internal/gen"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		in    inputOptions
		flags configFlags
	)

	cmd := &cobra.Command{
		Use:   "check [schema.yaml...]",
		Short: "Verify generated codecs are up to date",
		Long: `Compile descriptors and compare the result with the files on disk.

Takes the same inputs and flags as gen but writes nothing. Exits with
status 1 when any generated file is missing or differs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(rootOpts, cmd)
			if err != nil {
				return err
			}

			log := rootOpts.Logger()

			s, source, err := in.load(cmd.Context(), args, log)
			if err != nil {
				return err
			}

			prog, err := compile(cmd.Context(), s, cfg, cmd.ErrOrStderr(), log)
			if err != nil {
				return err
			}

			files, err := gen.NewGenerator(cfg.GeneratorConfig(source, log)).Generate(prog)
			if err != nil {
				return WrapExitError(ExitFailure, "generating code", err)
			}

			stale, err := gen.Stale(files, cfg.OutputDir)
			if err != nil {
				return WrapExitError(ExitCommandError, "reading generated files", err)
			}

			if len(stale) > 0 {
				for _, name := range stale {
					fmt.Fprintf(cmd.OutOrStdout(), "stale: %s\n", name)
				}

				return NewExitError(ExitFailure,
					fmt.Sprintf("%d generated file(s) out of date; run codec-generator gen", len(stale)))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "generated files are up to date")

			return nil
		},
	}

	in.bind(cmd)
	flags.bind(cmd)

	return cmd
}
