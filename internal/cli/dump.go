package cli

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"codec-generator/internal/compiler"
	"codec-generator/internal/schema"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		in      inputOptions
		flags   configFlags
		summary bool
		asYAML  bool
	)

	cmd := &cobra.Command{
		Use:   "dump [schema.yaml...]",
		Short: "Print the compiled model",
		Long: `Compile descriptors and print the result.

By default every compiled entity and enum is dumped in full. --summary
prints one line per declaration; --yaml prints the descriptors as a schema
file instead, which turns Go descriptors into YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(rootOpts, cmd)
			if err != nil {
				return err
			}

			log := rootOpts.Logger()

			s, _, err := in.load(cmd.Context(), args, log)
			if err != nil {
				return err
			}

			if cfg.Package != "" {
				s.Package = cfg.Package
			}

			if asYAML {
				data, err := schema.Marshal(s)
				if err != nil {
					return WrapExitError(ExitFailure, "encoding schema", err)
				}

				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			prog, err := compile(cmd.Context(), s, cfg, cmd.ErrOrStderr(), log)
			if err != nil {
				return err
			}

			if summary {
				writeSummary(cmd.OutOrStdout(), prog)

				return nil
			}

			dumpConfig.Fdump(cmd.OutOrStdout(), prog)

			return nil
		},
	}

	in.bind(cmd)
	flags.bind(cmd)
	cmd.Flags().BoolVar(&summary, "summary", false, "one line per entity and enum")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the descriptors as a YAML schema")
	cmd.MarkFlagsMutuallyExclusive("summary", "yaml")

	return cmd
}

func writeSummary(w io.Writer, prog *compiler.Program) {
	fmt.Fprintf(w, "package %s\n", prog.Package)

	for _, en := range prog.Enums {
		fmt.Fprintf(w, "enum %s (%d variants)\n", en.Name, len(en.Variants))
	}

	for _, e := range prog.Entities {
		fmt.Fprintln(w, compiler.Describe(e))
	}
}
