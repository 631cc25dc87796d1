package gen

import (
	"os"
	"path/filepath"
	"strings"
)

func debugName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

// writeDebugUnformatted writes source that go/format rejected to a sidecar
// next to the intended output. It is best-effort.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, debugName(filename)), content, filePerm)
}

// removeDebugUnformatted drops the sidecar of a previous failed run.
func removeDebugUnformatted(outDir, filename string) {
	_ = os.Remove(filepath.Join(outDir, debugName(filename)))
}
