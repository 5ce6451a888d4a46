package analyze

import (
	"go/ast"
	"go/token"
	"go/types"

	"autofrom/internal/diagnostic"
	"autofrom/internal/union"
)

// declBuilder converts annotated syntax into the union model.
type declBuilder struct {
	fset *token.FileSet
	src  []byte
}

func (b *declBuilder) position(pos token.Pos) token.Position {
	return b.fset.Position(pos)
}

func (b *declBuilder) errorf(pos token.Pos, format string, args ...any) error {
	return diagnostic.Errorf(diagnostic.CodeInvalidDeclaration, b.position(pos), format, args...)
}

// build converts a parenthesized type group. The first spec is the union
// interface, the remaining specs are its variants.
func (b *declBuilder) build(gd *ast.GenDecl) (*union.Decl, error) {
	if gd.Tok != token.TYPE || !gd.Lparen.IsValid() {
		return nil, b.errorf(gd.Pos(), "union directive must annotate a parenthesized type group")
	}

	if len(gd.Specs) == 0 {
		return nil, b.errorf(gd.Pos(), "union type group is empty")
	}

	head := gd.Specs[0].(*ast.TypeSpec)
	if _, ok := head.Type.(*ast.InterfaceType); !ok || head.Assign.IsValid() {
		return nil, b.errorf(head.Name.Pos(), "union %s must be an interface type", head.Name.Name)
	}

	if head.TypeParams != nil {
		return nil, b.errorf(head.Name.Pos(), "generic union %s is not supported", head.Name.Name)
	}

	decl := &union.Decl{
		Name:   head.Name.Name,
		Pos:    b.position(head.Name.Pos()),
		Source: b.source(gd),
	}

	for _, spec := range gd.Specs[1:] {
		v, err := b.variant(spec.(*ast.TypeSpec))
		if err != nil {
			return nil, err
		}

		decl.Variants = append(decl.Variants, v)
	}

	return decl, nil
}

func (b *declBuilder) variant(spec *ast.TypeSpec) (union.Variant, error) {
	name := spec.Name.Name

	st, ok := spec.Type.(*ast.StructType)
	if !ok || spec.Assign.IsValid() {
		return union.Variant{}, b.errorf(spec.Name.Pos(), "variant %s must be a struct type", name)
	}

	if spec.TypeParams != nil {
		return union.Variant{}, b.errorf(spec.Name.Pos(), "generic variant %s is not supported", name)
	}

	v := union.Variant{
		Name:  name,
		Pos:   b.position(spec.Name.Pos()),
		Shape: union.ShapeUnit,
	}

	for _, f := range st.Fields.List {
		typ := b.typeExpr(f.Type)

		if len(f.Names) == 0 {
			v.Fields = append(v.Fields, union.Field{Type: typ})
			continue
		}

		v.Shape = union.ShapeNamed
		for _, n := range f.Names {
			v.Fields = append(v.Fields, union.Field{Name: n.Name, Type: typ})
		}
	}

	if v.Shape != union.ShapeNamed && len(v.Fields) > 0 {
		v.Shape = union.ShapeUnnamed
	}

	return v, nil
}

// typeExpr mirrors the structure of a type expression. Forms other than
// paths, instantiations and pointers are kept as opaque text.
func (b *declBuilder) typeExpr(expr ast.Expr) *union.TypeExpr {
	t := &union.TypeExpr{
		Kind: union.TypeKindOther,
		Text: types.ExprString(expr),
		Pos:  b.position(expr.Pos()),
	}

	switch e := expr.(type) {
	case *ast.Ident:
		t.Kind = union.TypeKindPath
		t.Segments = []string{e.Name}

	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			t.Kind = union.TypeKindPath
			t.Segments = []string{x.Name, e.Sel.Name}
		}

	case *ast.IndexExpr:
		b.instantiate(t, e.X, e.Index)

	case *ast.IndexListExpr:
		b.instantiate(t, e.X, e.Indices...)

	case *ast.StarExpr:
		t.Kind = union.TypeKindPointer
		t.Elem = b.typeExpr(e.X)
	}

	if t.Kind == union.TypeKindOther {
		t.Refs = b.refs(expr)
	}

	return t
}

// refs collects the qualified identifiers of an opaque type expression.
func (b *declBuilder) refs(expr ast.Expr) []*union.TypeExpr {
	var out []*union.TypeExpr

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if x, ok := sel.X.(*ast.Ident); ok {
			out = append(out, &union.TypeExpr{
				Kind:     union.TypeKindPath,
				Segments: []string{x.Name, sel.Sel.Name},
				Text:     types.ExprString(sel),
				Pos:      b.position(sel.Pos()),
			})
		}

		return false
	})

	return out
}

func (b *declBuilder) instantiate(t *union.TypeExpr, base ast.Expr, args ...ast.Expr) {
	bt := b.typeExpr(base)
	if !bt.IsPath() || len(bt.Args) > 0 {
		return
	}

	t.Kind = union.TypeKindPath
	t.Segments = bt.Segments

	for _, a := range args {
		t.Args = append(t.Args, b.typeExpr(a))
	}
}

// source returns the declaration text, doc comment included.
func (b *declBuilder) source(gd *ast.GenDecl) string {
	start := gd.Pos()
	if gd.Doc != nil {
		start = gd.Doc.Pos()
	}

	file := b.fset.File(start)
	if file == nil || b.src == nil {
		return ""
	}

	from, to := file.Offset(start), file.Offset(gd.End())
	if from < 0 || to > len(b.src) || from > to {
		return ""
	}

	return string(b.src[from:to])
}
