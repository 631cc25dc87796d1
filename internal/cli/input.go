package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"codec-generator/internal/analyze"
	"codec-generator/internal/compiler"
	"codec-generator/internal/config"
	"codec-generator/internal/diagnostic"
	"codec-generator/internal/schema"
)

// inputOptions selects where descriptors are read from.
type inputOptions struct {
	fromGo []string
}

func (in *inputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&in.fromGo, "from-go", nil,
		"read descriptors from Go packages instead of schema files")
}

// load reads descriptors from schema files or Go packages. source names
// them for the generated file header.
func (in *inputOptions) load(ctx context.Context, files []string, log *slog.Logger) (s *schema.Schema, source string, err error) {
	switch {
	case len(in.fromGo) > 0 && len(files) > 0:
		return nil, "", NewExitError(ExitCommandError, "schema files and --from-go are mutually exclusive")
	case len(in.fromGo) > 0:
		analyzer := &analyze.Analyzer{Logger: log}

		res, err := analyzer.Load(ctx, in.fromGo...)
		if err != nil {
			return nil, "", WrapExitError(ExitCommandError, "loading Go descriptors", err)
		}

		logDiagnostics(log, res.Diagnostics)

		return res.Schema, strings.Join(in.fromGo, ", "), nil
	case len(files) > 0:
		s, err := schema.LoadFiles(files...)
		if err != nil {
			return nil, "", WrapExitError(ExitCommandError, "loading schema", err)
		}

		return s, strings.Join(files, ", "), nil
	default:
		return nil, "", NewExitError(ExitCommandError, "no descriptors: pass schema files or --from-go")
	}
}

// configFlags override values of the config file.
type configFlags struct {
	pkg                  string
	outputDir            string
	runtimeImport        string
	generateComments     bool
	allowMapEntryOverlap bool
}

func (f *configFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pkg, "package", "", "package of the generated code")
	cmd.Flags().StringVarP(&f.outputDir, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&f.runtimeImport, "runtime-import", "", "import path of the wire runtime")
	cmd.Flags().BoolVar(&f.generateComments, "comments", false, "comment every field with its wire id and type")
	cmd.Flags().BoolVar(&f.allowMapEntryOverlap, "allow-map-entry-overlap", false,
		"let entities with map fields use field ids 1 and 2")
}

// resolve loads the config file and applies the flags set on cmd.
func (f *configFlags) resolve(opts *RootOptions, cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}

	flags := cmd.Flags()

	if flags.Changed("package") {
		cfg.Package = f.pkg
	}

	if flags.Changed("out") {
		cfg.OutputDir = f.outputDir
	}

	if flags.Changed("runtime-import") {
		cfg.RuntimeImport = f.runtimeImport
	}

	if flags.Changed("comments") {
		cfg.GenerateComments = f.generateComments
	}

	if flags.Changed("allow-map-entry-overlap") {
		cfg.AllowMapEntryOverlap = f.allowMapEntryOverlap
	}

	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid flags", err)
	}

	return cfg, nil
}

// loadConfig reads path. Only the default path may be missing.
func loadConfig(path string) (*config.Config, error) {
	switch path {
	case "":
		return config.Default(), nil
	case config.DefaultPath:
		return config.LoadOrDefault(path)
	default:
		return config.Load(path)
	}
}

// compile compiles s, writing the diagnostics of a failed compile to w.
func compile(ctx context.Context, s *schema.Schema, cfg *config.Config, w io.Writer, log *slog.Logger) (*compiler.Program, error) {
	prog, err := compiler.Compile(ctx, s, cfg.CompilerOptions(log))
	if err != nil {
		var failure *compiler.Failure
		if errors.As(err, &failure) {
			fmt.Fprintln(w, compiler.Summary(failure.Diagnostics))

			return nil, WrapExitError(ExitFailure,
				fmt.Sprintf("compile failed with %d error(s)", len(failure.Diagnostics.Errors)), err)
		}

		return nil, WrapExitError(ExitFailure, "compile failed", err)
	}

	logDiagnostics(log, prog.Diagnostics)

	return prog, nil
}

func logDiagnostics(log *slog.Logger, d diagnostic.Diagnostics) {
	for _, item := range d.Warnings {
		log.Warn(item.Message, "code", item.Code, "entity", item.Entity, "field", item.Field)
	}

	for _, item := range d.Infos {
		log.Debug(item.Message, "code", item.Code, "entity", item.Entity, "field", item.Field)
	}
}
