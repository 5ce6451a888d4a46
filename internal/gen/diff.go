package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line diff turning current into expected, with "-", "+" and " "
// prefixes. It returns "" when both are equal. Colored output paints removed
// lines red and added lines green.
func Diff(current, expected []byte, colored bool) string {
	if string(current) == string(expected) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(current), string(expected))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)

	if colored {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}

	var sb strings.Builder

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(del.Sprint("-" + line))
			case diffmatchpatch.DiffInsert:
				sb.WriteString(ins.Sprint("+" + line))
			case diffmatchpatch.DiffEqual:
				sb.WriteString(" " + line)
			}

			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// splitLines splits text on newlines, dropping the final empty line.
func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Stale is a generated file whose content on disk differs from a fresh run.
type Stale struct {
	Filename string
	// Missing is set when the file does not exist.
	Missing bool
	// Orphan is set when the file is no longer generated at all.
	Orphan bool
	// Diff turns the file on disk into the expected content.
	Diff string
}

// Compare checks files against their on-disk content. Orphans, as returned
// by Generator.Orphans, are reported as stale with a diff removing them.
func Compare(files []GeneratedFile, orphans []string, outputDir string, colored bool) ([]Stale, error) {
	var stale []Stale

	for _, file := range files {
		path := OutputPath(file, outputDir)

		current, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, Stale{Filename: path, Missing: true, Diff: Diff(nil, file.Content, colored)})

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		if d := Diff(current, file.Content, colored); d != "" {
			stale = append(stale, Stale{Filename: path, Diff: d})
		}
	}

	for _, path := range orphans {
		current, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		stale = append(stale, Stale{Filename: path, Orphan: true, Diff: Diff(current, nil, colored)})
	}

	return stale, nil
}
