package analyze

import (
	"go/token"

	"autofrom/internal/common"
	"autofrom/internal/union"
)

// DefaultDirective is the comment directive marking a union declaration.
const DefaultDirective = "autofrom:union"

// File is a scanned Go source file and the unions it declares.
type File struct {
	// Path is the file name as reported by the loader.
	Path string
	// Package is the package name.
	Package string
	// PkgPath is the package import path (empty for ParseSource).
	PkgPath string
	// Imports of the file, in source order.
	Imports []Import
	// Unions in source order; empty for a file without a directive.
	Unions []*Annotated
}

// Import is one import spec.
type Import struct {
	Name string // explicit name, "" when absent
	Path string
	// PkgName is the name declared by the imported package, when it was
	// loaded.
	PkgName string
}

// LocalName returns the name the import is referred to by: the explicit name,
// else the loaded package name, else a guess from the path.
func (i Import) LocalName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.PkgName != "":
		return i.PkgName
	default:
		return common.PkgAlias(i.Path)
	}
}

// Annotated is a declaration carrying the union directive.
type Annotated struct {
	// Directive is the text following the directive name.
	Directive string
	// DirectivePos is the position of the first byte of Directive.
	DirectivePos token.Position
	// Decl is nil when Err is set.
	Decl *union.Decl
	// Err reports a declaration that cannot describe a union.
	Err error
}

// Name returns the union name, or "" when the declaration is invalid.
func (a *Annotated) Name() string {
	if a.Decl == nil {
		return ""
	}

	return a.Decl.Name
}
