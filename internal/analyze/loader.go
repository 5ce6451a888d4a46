package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"autofrom/internal/diagnostic"
)

// LoadMode specifies what information to load from packages. Field types are
// compared by their spelling, so no type information is requested.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Loader loads Go packages and collects their annotated unions.
type Loader struct {
	// Directive is the comment directive name, without the leading "//".
	Directive string
	// Dir is the working directory for package patterns.
	Dir string
	// BuildTags are passed to the build system as -tags.
	BuildTags []string
	// Tests includes test files.
	Tests bool
	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// NewLoader creates a Loader for the given directive name. An empty name
// selects DefaultDirective.
func NewLoader(directive string) *Loader {
	if directive == "" {
		directive = DefaultDirective
	}

	return &Loader{Directive: directive}
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}

	return slog.Default()
}

// LoadPackages loads the packages matching patterns and returns every source
// file, in package then file order. Files without a directive have no Unions;
// they are kept so that output they once produced can be found. Generated
// files are skipped so earlier output never feeds back into generation.
func (l *Loader) LoadPackages(ctx context.Context, patterns ...string) ([]*File, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		Context:    ctx,
		Dir:        l.Dir,
		Tests:      l.Tests,
		BuildFlags: l.buildFlags(),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	var files []*File

	seen := make(map[string]bool)

	for _, pkg := range pkgs {
		found, err := l.processPackage(pkg, seen)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		files = append(files, found...)
	}

	l.resolveImportNames(ctx, files)

	return files, nil
}

func (l *Loader) buildFlags() []string {
	if len(l.BuildTags) == 0 {
		return nil
	}

	return []string{"-tags=" + strings.Join(l.BuildTags, ",")}
}

// resolveImportNames records the package name of every import used by a file
// holding unions. The last element of an import path is only a guess
// (github.com/go-chi/chi/v5 declares chi). Paths that fail to load keep the
// guess.
func (l *Loader) resolveImportNames(ctx context.Context, files []*File) {
	var paths []string

	seen := make(map[string]bool)

	for _, f := range files {
		if len(f.Unions) == 0 {
			continue
		}

		for _, imp := range f.Imports {
			if imp.Path == "C" || seen[imp.Path] {
				continue
			}

			seen[imp.Path] = true
			paths = append(paths, imp.Path)
		}
	}

	if len(paths) == 0 {
		return
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode:       packages.NeedName,
		Context:    ctx,
		Dir:        l.Dir,
		BuildFlags: l.buildFlags(),
	}, paths...)
	if err != nil {
		l.logger().Debug("resolving import names", "error", err)
		return
	}

	names := make(map[string]string, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Name != "" {
			names[pkg.PkgPath] = pkg.Name
		}
	}

	for _, f := range files {
		for i := range f.Imports {
			if name, ok := names[f.Imports[i].Path]; ok {
				f.Imports[i].PkgName = name
			}
		}
	}
}

// processPackage scans the syntax of a loaded package. Files already seen
// through another package variant (tests) are skipped.
func (l *Loader) processPackage(pkg *packages.Package, seen map[string]bool) ([]*File, error) {
	var files []*File

	for _, f := range pkg.Syntax {
		filename := pkg.Fset.Position(f.Pos()).Filename
		if seen[filename] {
			continue
		}

		seen[filename] = true

		if ast.IsGenerated(f) {
			l.logger().Debug("skipping generated file", "file", filename)
			continue
		}

		src, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filename, err)
		}

		file := l.scanFile(pkg.Fset, f, filename, src)
		file.PkgPath = pkg.PkgPath
		files = append(files, file)
	}

	return files, nil
}

// ParseSource parses a single file held in memory. It returns a nil File when
// the source is generated or holds no annotated union.
func (l *Loader) ParseSource(filename string, src []byte) (*File, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if ast.IsGenerated(f) {
		return nil, nil
	}

	file := l.scanFile(fset, f, filename, src)
	if len(file.Unions) == 0 {
		return nil, nil
	}

	return file, nil
}

// scanFile collects the imports and annotated declarations of one file.
func (l *Loader) scanFile(fset *token.FileSet, f *ast.File, filename string, src []byte) *File {
	b := &declBuilder{fset: fset, src: src}

	var unions []*Annotated

	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok {
			// Directives on functions are reported like any other misplaced one.
			if fd, isFunc := d.(*ast.FuncDecl); isFunc {
				for _, dir := range findDirectives(fd.Doc, l.Directive) {
					unions = append(unions, l.misplaced(b, dir, fd.Pos()))
				}
			}

			continue
		}

		unions = append(unions, l.scanGenDecl(b, gd)...)
	}

	file := &File{
		Path:    filename,
		Package: f.Name.Name,
		Unions:  unions,
	}

	for _, spec := range f.Imports {
		imp := Import{Path: spec.Path.Value}
		if p, err := strconv.Unquote(spec.Path.Value); err == nil {
			imp.Path = p
		}

		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}

		file.Imports = append(file.Imports, imp)
	}

	for _, u := range unions {
		if u.Decl != nil {
			l.logger().Debug("found union", "file", filename, "union", u.Decl.Name, "variants", len(u.Decl.Variants))
		}
	}

	return file
}

func (l *Loader) scanGenDecl(b *declBuilder, gd *ast.GenDecl) []*Annotated {
	var out []*Annotated

	dirs := findDirectives(gd.Doc, l.Directive)

	// A directive inside a group belongs on the group itself.
	for _, spec := range gd.Specs {
		var doc *ast.CommentGroup

		switch s := spec.(type) {
		case *ast.TypeSpec:
			doc = s.Doc
		case *ast.ValueSpec:
			doc = s.Doc
		}

		for _, dir := range findDirectives(doc, l.Directive) {
			out = append(out, l.misplaced(b, dir, spec.Pos()))
		}
	}

	if len(dirs) == 0 {
		return out
	}

	a := &Annotated{
		Directive:    dirs[0].text,
		DirectivePos: b.position(dirs[0].pos),
	}

	if len(dirs) > 1 {
		a.Err = b.errorf(dirs[1].pos-token.Pos(len(l.Directive)+2), "union directive repeated")
	} else {
		a.Decl, a.Err = b.build(gd)
	}

	return append([]*Annotated{a}, out...)
}

func (l *Loader) misplaced(b *declBuilder, dir directive, at token.Pos) *Annotated {
	return &Annotated{
		Directive:    dir.text,
		DirectivePos: b.position(dir.pos),
		Err: diagnostic.Errorf(diagnostic.CodeInvalidDeclaration, b.position(at),
			"union directive must annotate a parenthesized type group"),
	}
}
