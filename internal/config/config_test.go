package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codec-generator/internal/gen"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
package: restricted
output_dir: ./out
generate_comments: true
allow_map_entry_overlap: true
`))
	require.NoError(t, err)

	assert.Equal(t, "restricted", cfg.Package)
	assert.Equal(t, "./out", cfg.OutputDir)
	assert.True(t, cfg.GenerateComments)
	assert.True(t, cfg.AllowMapEntryOverlap)
	assert.Equal(t, gen.DefaultRuntimeImport, cfg.RuntimeImport, "missing keys keep defaults")
	assert.Equal(t, gen.DefaultFileSuffix, cfg.FileSuffix)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "unknown key", yaml: "pakage: x\n", want: "field pakage not found"},
		{name: "bad package", yaml: "package: my-pkg\n", want: "not a Go identifier"},
		{name: "empty runtime", yaml: "runtime_import: \"\"\n", want: "runtime_import"},
		{name: "bad suffix", yaml: "file_suffix: .txt\n", want: "must end in .go"},
		{name: "test suffix", yaml: "file_suffix: _test.go\n", want: "names a test file"},
		{name: "negative concurrency", yaml: "concurrency: -1\n", want: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{Package: "a b", FileSuffix: ".txt"}

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "not a Go identifier")
	assert.Contains(t, err.Error(), "runtime_import")
	assert.Contains(t, err.Error(), "must end in .go")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	cfg := Default()
	cfg.Package = "physics"
	cfg.GenerateComments = true

	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, DefaultPath))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("concurrency: [\n"), 0o644))

	_, err = LoadOrDefault(bad)
	assert.Error(t, err)
}

func TestConfig_Options(t *testing.T) {
	cfg := Default()
	cfg.Package = "p"
	cfg.AllowMapEntryOverlap = true

	opts := cfg.CompilerOptions(nil)
	assert.True(t, opts.AllowMapEntryOverlap)
	assert.Equal(t, 8, opts.Concurrency)

	gc := cfg.GeneratorConfig("schema.yaml", nil)
	assert.Equal(t, "p", gc.PackageName)
	assert.Equal(t, "schema.yaml", gc.Source)
	assert.Equal(t, gen.DefaultFileSuffix, gc.FileSuffix)
}
