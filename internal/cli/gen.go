package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codec-generator/internal/gen"
)

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		in    inputOptions
		flags configFlags
	)

	cmd := &cobra.Command{
		Use:   "gen [schema.yaml...]",
		Short: "Generate codecs",
		Long: `Compile descriptors and write the generated codec file.

Descriptors are read from the given YAML schema files, which are merged
into one package, or from the Go packages named by --from-go. Files whose
content would not change are left untouched.`,
		Example: `  codec-generator gen -o ./restricted restricted/schema.yaml
  codec-generator gen --from-go ./descriptors --package restricted -o ./restricted`,
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

			written, err := gen.WriteFiles(files, cfg.OutputDir)
			if err != nil {
				return WrapExitError(ExitCommandError, "writing files", err)
			}

			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			if len(written) == 0 {
				log.Info("generated files are up to date", "dir", cfg.OutputDir)
			}

			return nil
		},
	}

	in.bind(cmd)
	flags.bind(cmd)

	return cmd
}
