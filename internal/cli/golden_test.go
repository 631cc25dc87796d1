package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"codec-generator/internal/gen"
)

// TestGen_Examples regenerates every example the way its go:generate line
// does and compares the result with the checked-in codec. Run with -update
// to rewrite the checked-in files.
func TestGen_Examples(t *testing.T) {
	for _, pkg := range []string{"physics", "restricted", "inventory"} {
		t.Run(pkg, func(t *testing.T) {
			dir, err := filepath.Abs(filepath.Join("..", "..", "examples", "improbable", pkg))
			require.NoError(t, err)

			out := t.TempDir()
			t.Chdir(dir)

			_, _, err = run(t, "gen", "-o", out, "schema.yaml")
			require.NoError(t, err)

			got, err := os.ReadFile(filepath.Join(out, pkg+gen.DefaultFileSuffix))
			require.NoError(t, err)

			g := goldie.New(t,
				goldie.WithFixtureDir(dir),
				goldie.WithNameSuffix(gen.DefaultFileSuffix),
			)
			g.Assert(t, pkg, got)
		})
	}
}
