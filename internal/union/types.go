package union

import (
	"go/token"

	"autofrom/internal/common"
)

// Decl is one annotated tagged-union declaration.
type Decl struct {
	// Name is the union (interface) type name.
	Name string
	// Pos is the position of the union name.
	Pos token.Position
	// Source is the declaration text exactly as written, directive included.
	Source string
	// Variants in declaration order.
	Variants []Variant
}

// Variant returns the variant called name, if any.
func (d *Decl) Variant(name string) (*Variant, bool) {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return &d.Variants[i], true
		}
	}

	return nil, false
}

// Shape is the field layout of a variant.
type Shape int

const (
	ShapeUnit    Shape = iota // no fields
	ShapeUnnamed              // embedded fields only
	ShapeNamed                // at least one named field
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeUnnamed:
		return "unnamed"
	case ShapeNamed:
		return "named"
	default:
		return common.UnknownStr
	}
}

// Variant is one arm of the union.
type Variant struct {
	Name   string
	Pos    token.Position
	Shape  Shape
	Fields []Field
}

// Field is a variant field. Name is empty for unnamed fields.
type Field struct {
	Name string
	Type *TypeExpr
}

// TypeKind classifies a field type reference.
type TypeKind int

const (
	TypeKindOther   TypeKind = iota // slices, maps, funcs, literals, ...
	TypeKindPath                    // Name, pkg.Name, optionally with type arguments
	TypeKindPointer                 // *T
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindOther:
		return "other"
	case TypeKindPath:
		return "path"
	case TypeKindPointer:
		return "pointer"
	default:
		return common.UnknownStr
	}
}

// TypeExpr is the structure of a type reference as written in source.
type TypeExpr struct {
	Kind TypeKind
	// Segments holds the path segments for TypeKindPath ("fs", "PathError").
	Segments []string
	// Args holds the type arguments of an instantiated generic path.
	Args []*TypeExpr
	// Elem is the pointed-to type for TypeKindPointer.
	Elem *TypeExpr
	// Refs holds the qualified paths found inside a TypeKindOther form
	// ([]fs.File holds fs.File).
	Refs []*TypeExpr
	// Text is the source text of the reference.
	Text string
	Pos  token.Position
}

// IsPath reports whether t is a path form.
func (t *TypeExpr) IsPath() bool {
	return t != nil && t.Kind == TypeKindPath
}

// Qualifier returns the package qualifier of a path, or "".
func (t *TypeExpr) Qualifier() string {
	if !t.IsPath() || len(t.Segments) < 2 {
		return ""
	}

	return t.Segments[0]
}

// Qualifiers returns every package qualifier used by t, its type arguments,
// its element type and the paths inside opaque forms, in first-seen order.
func (t *TypeExpr) Qualifiers() []string {
	var out []string

	seen := make(map[string]bool)

	var walk func(*TypeExpr)
	walk = func(x *TypeExpr) {
		if x == nil {
			return
		}

		if q := x.Qualifier(); q != "" && !seen[q] {
			seen[q] = true
			out = append(out, q)
		}

		for _, a := range x.Args {
			walk(a)
		}

		walk(x.Elem)

		for _, r := range x.Refs {
			walk(r)
		}
	}
	walk(t)

	return out
}
