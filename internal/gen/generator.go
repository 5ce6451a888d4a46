package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"autofrom/internal/analyze"
	"autofrom/internal/config"
	"autofrom/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Suffix replaces ".go" in the source file name.
	Suffix string
	// Constructor and Dispatcher are naming templates.
	Constructor string
	Dispatcher  string
	// DispatcherEnabled toggles the type-switch function.
	DispatcherEnabled bool
	// DebugDir receives unformatted output when formatting fails. Empty means
	// next to the source file.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return ConfigFrom(config.Default())
}

// ConfigFrom derives a GeneratorConfig from the settings file.
func ConfigFrom(cfg *config.Config) GeneratorConfig {
	return GeneratorConfig{
		Suffix:            cfg.Output.Suffix,
		Constructor:       cfg.Naming.Constructor,
		Dispatcher:        cfg.Naming.Dispatcher,
		DispatcherEnabled: cfg.DispatcherEnabled(),
	}
}

// Generator produces Go code from resolved plans.
type Generator struct {
	config GeneratorConfig
	names  *namer
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) (*Generator, error) {
	names, err := newNamer(config.Constructor, config.Dispatcher)
	if err != nil {
		return nil, err
	}

	return &Generator{config: config, names: names}, nil
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the output path (e.g., "shapes/shapes_autofrom.go").
	Filename string
	// Source is the file the output was generated from.
	Source string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per source file. Files whose unions yield no
// conversion produce no output.
func (g *Generator) Generate(files []plan.FilePlan) ([]GeneratedFile, error) {
	var out []GeneratedFile

	for _, fp := range files {
		if fp.Impls() == 0 {
			continue
		}

		file, err := g.GenerateFile(fp)
		if err != nil {
			return nil, fmt.Errorf("generating for %s: %w", fp.File.Path, err)
		}

		out = append(out, *file)
	}

	return out, nil
}

// GenerateFile renders the output of a single source file.
func (g *Generator) GenerateFile(fp plan.FilePlan) (*GeneratedFile, error) {
	data := fileData{PackageName: fp.File.Package}

	seen := make(map[string]string)

	for _, p := range fp.Plans {
		u, err := g.unionData(p)
		if err != nil {
			return nil, err
		}

		// Generated names live in one package scope
		for _, name := range u.names() {
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("generated name %s is used by %s and %s", name, prev, p.Decl.Name)
			}

			seen[name] = p.Decl.Name
		}

		data.Unions = append(data.Unions, u)
	}

	data.Imports = usedImports(fp.File.Imports, fp.Plans)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	filename := OutputName(fp.File.Path, g.config.Suffix)

	// Imports are already exact, so only sorting and formatting are needed
	formatted, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		g.writeDebug(filename, buf.Bytes())

		return &GeneratedFile{
			Filename: filename,
			Source:   fp.File.Path,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Source:   fp.File.Path,
		Content:  formatted,
	}, nil
}

// Orphans returns the outputs left on disk by earlier runs for files that no
// longer produce any conversion, because their unions lost every eligible
// variant or their directive was removed. Only files starting with Header
// are returned, and never a path some other file still produces.
func (g *Generator) Orphans(files []plan.FilePlan, outputDir string) ([]string, error) {
	produced := make(map[string]bool)

	for _, fp := range files {
		if fp.Impls() > 0 {
			produced[g.outputPath(fp, outputDir)] = true
		}
	}

	var orphans []string

	for _, fp := range files {
		path := g.outputPath(fp, outputDir)
		if fp.Impls() > 0 || produced[path] {
			continue
		}

		ok, err := isGenerated(path)
		if err != nil {
			return nil, err
		}

		if ok {
			orphans = append(orphans, path)
			produced[path] = true
		}
	}

	return orphans, nil
}

func (g *Generator) outputPath(fp plan.FilePlan, outputDir string) string {
	return OutputPath(GeneratedFile{Filename: OutputName(fp.File.Path, g.config.Suffix)}, outputDir)
}

// isGenerated reports whether path exists and was written by this tool.
func isGenerated(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	return bytes.HasPrefix(data, []byte(Header+"\n")), nil
}

// Splice returns the declaration of p verbatim followed by its conversions.
// Only the conversions are formatted.
func (g *Generator) Splice(p *plan.Plan) ([]byte, error) {
	u, err := g.unionData(p)
	if err != nil {
		return nil, err
	}

	if len(u.Impls) == 0 {
		return []byte(p.Decl.Source), nil
	}

	var buf bytes.Buffer
	if err := unionTemplate.Execute(&buf, u); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	impls, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting code: %w", err)
	}

	out := make([]byte, 0, len(p.Decl.Source)+len(impls)+2)
	out = append(out, p.Decl.Source...)
	out = append(out, "\n\n"...)

	return append(out, impls...), nil
}

func (g *Generator) unionData(p *plan.Plan) (unionData, error) {
	u := unionData{Name: p.Decl.Name}

	for _, impl := range p.Impls {
		name, err := g.names.Constructor(impl)
		if err != nil {
			return unionData{}, fmt.Errorf("variant %s of %s: %w", impl.Variant, impl.Union, err)
		}

		u.Impls = append(u.Impls, implData{
			Func:    name,
			Variant: impl.Variant,
			Type:    impl.FieldType.Text,
		})
	}

	// An empty type switch would declare an unused variable
	if g.config.DispatcherEnabled && len(u.Impls) > 0 {
		name, err := g.names.Dispatcher(p.Decl.Name)
		if err != nil {
			return unionData{}, fmt.Errorf("union %s: %w", p.Decl.Name, err)
		}

		u.Dispatcher = name
	}

	return u, nil
}

func (u unionData) names() []string {
	names := make([]string, 0, len(u.Impls)+1)
	for _, impl := range u.Impls {
		names = append(names, impl.Func)
	}

	if u.Dispatcher != "" {
		names = append(names, u.Dispatcher)
	}

	return names
}

// usedImports returns the file imports referenced by the generated field
// types, in source order. Blank and dot imports are never referenced by a
// qualifier.
func usedImports(all []analyze.Import, plans []*plan.Plan) []importData {
	used := make(map[string]bool)

	for _, p := range plans {
		for _, impl := range p.Impls {
			for _, q := range impl.FieldType.Qualifiers() {
				used[q] = true
			}
		}
	}

	var out []importData

	for _, imp := range all {
		if imp.Name == "_" || imp.Name == "." || !used[imp.LocalName()] {
			continue
		}

		out = append(out, importData{Name: imp.Name, Path: imp.Path})
	}

	return out
}

// OutputName returns the generated file name for source. Test files keep
// their _test.go ending so the output joins the same package.
func OutputName(source, suffix string) string {
	if base, ok := strings.CutSuffix(source, "_test.go"); ok {
		return base + strings.TrimSuffix(suffix, ".go") + "_test.go"
	}

	return strings.TrimSuffix(source, ".go") + suffix
}

// writeDebug keeps unformatted output in a sidecar file. It is best-effort.
func (g *Generator) writeDebug(filename string, content []byte) {
	dir := g.config.DebugDir
	if dir == "" {
		dir = filepath.Dir(filename)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return
	}

	_ = os.WriteFile(filepath.Join(dir, DebugName(filepath.Base(filename))), content, filePerm)
}
