package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files. An empty outputDir writes each file
// at its Filename; otherwise files are placed in outputDir by base name,
// which is created if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if outputDir != "" {
		err := os.MkdirAll(outputDir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, file := range files {
		outputPath := OutputPath(file, outputDir)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", outputPath, err)
		}
	}

	return nil
}

// RemoveFiles deletes paths. Missing files are ignored.
func RemoveFiles(paths []string) error {
	for _, p := range paths {
		err := os.Remove(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing file %s: %w", p, err)
		}
	}

	return nil
}

// OutputPath is where WriteFiles puts file.
func OutputPath(file GeneratedFile, outputDir string) string {
	if outputDir == "" {
		return file.Filename
	}

	return filepath.Join(outputDir, filepath.Base(file.Filename))
}

// DebugName is the sidecar file receiving unformatted output for filename.
// It stays a .go file so editors can highlight it.
func DebugName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
