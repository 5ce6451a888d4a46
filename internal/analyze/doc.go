// Package analyze finds annotated tagged unions in Go source.
//
// It uses golang.org/x/tools/go/packages to parse packages (syntax only, no
// type checking) and turns every type group documented with the union
// directive into a union.Decl.
//
// Key types:
//   - Loader: loads packages and scans their files
//   - File: one source file holding at least one annotated union
//   - Annotated: the directive text and the declaration it annotates
package analyze
