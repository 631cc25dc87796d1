package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes the generated files to outputDir, creating it if
// needed. Files whose content is already on disk are left untouched.
// It returns the paths that were written.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		current, err := os.ReadFile(outputPath)
		if err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("reading %s: %w", file.Filename, err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		removeDebugUnformatted(outputDir, file.Filename)

		written = append(written, outputPath)
	}

	return written, nil
}

// Stale reports the files whose content differs from what is on disk in
// outputDir, missing files included.
func Stale(files []GeneratedFile, outputDir string) ([]string, error) {
	var stale []string

	for _, file := range files {
		current, err := os.ReadFile(filepath.Join(outputDir, file.Filename))
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, file.Filename)

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.Filename, err)
		}

		if !bytes.Equal(current, file.Content) {
			stale = append(stale, file.Filename)
		}
	}

	return stale, nil
}
