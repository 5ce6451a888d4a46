package plan

import (
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autofrom/internal/attr"
	"autofrom/internal/diagnostic"
	"autofrom/internal/union"
)

func pathType(text string) *union.TypeExpr {
	return &union.TypeExpr{Kind: union.TypeKindPath, Segments: strings.Split(text, "."), Text: text}
}

func unnamed(name string, types ...*union.TypeExpr) union.Variant {
	v := union.Variant{
		Name:  name,
		Pos:   token.Position{Filename: "value.go", Line: 10, Column: 2},
		Shape: union.ShapeUnnamed,
	}
	for _, t := range types {
		v.Fields = append(v.Fields, union.Field{Type: t})
	}

	if len(types) == 0 {
		v.Shape = union.ShapeUnit
	}

	return v
}

func named(name string, fields ...string) union.Variant {
	v := union.Variant{Name: name, Shape: union.ShapeNamed}
	for _, f := range fields {
		v.Fields = append(v.Fields, union.Field{Name: f, Type: pathType("int32")})
	}

	return v
}

func decl(variants ...union.Variant) *union.Decl {
	return &union.Decl{Name: "Value", Variants: variants}
}

func statuses(p *Plan) map[string]Status {
	out := make(map[string]Status, len(p.Report))
	for _, r := range p.Report {
		out[r.Variant] = r.Status
	}

	return out
}

func TestGenerate_MixedShapes(t *testing.T) {
	d := decl(
		unnamed("A", pathType("int32")),
		unnamed("B", pathType("string")),
		unnamed("C"),
		unnamed("D", pathType("int32"), pathType("int32")),
	)

	p, err := Generate("", token.Position{}, d)
	require.NoError(t, err)

	require.Len(t, p.Impls, 2)
	assert.Equal(t, "A", p.Impls[0].Variant)
	assert.Equal(t, "int32", p.Impls[0].TypeKey)
	assert.Equal(t, "B", p.Impls[1].Variant)
	assert.Equal(t, "string", p.Impls[1].TypeKey)
	assert.Equal(t, "Value", p.Impls[0].Union)

	want := map[string]Status{
		"A": StatusEligible,
		"B": StatusEligible,
		"C": StatusSkipped,
		"D": StatusSkipped,
	}
	if diff := cmp.Diff(want, statuses(p)); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "no fields", p.Report[2].Reason)
	assert.Equal(t, "2 unnamed fields", p.Report[3].Reason)
	assert.Len(t, p.Diagnostics.Infos, 2)
	assert.False(t, p.Diagnostics.HasErrors())
}

func TestGenerate_SameType(t *testing.T) {
	d := decl(unnamed("A", pathType("int32")), unnamed("B", pathType("int32")))

	p, err := Generate("", token.Position{}, d)
	require.Error(t, err)
	assert.Nil(t, p)

	assert.ErrorIs(t, err, diagnostic.ErrAmbiguousType)
	assert.ErrorContains(t, err, "variants A and B have the same type int32")
	assert.ErrorContains(t, err, "value.go:10:2")
}

func TestGenerate_SameTypeDisabled(t *testing.T) {
	d := decl(unnamed("A", pathType("int32")), unnamed("B", pathType("int32")))

	p, err := Generate("disabled=[B]", token.Position{}, d)
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, p.Eligible())
	assert.Equal(t, StatusDisabled, statuses(p)["B"])
}

func TestGenerate_NamedField(t *testing.T) {
	d := decl(unnamed("A", pathType("int32")), named("E", "X"))

	_, err := Generate("", token.Position{}, d)
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrNamedField)
	assert.ErrorContains(t, err, "named field in variant E is not allowed")
}

func TestGenerate_NamedFieldDisabled(t *testing.T) {
	d := decl(unnamed("A", pathType("int32")), named("E", "X", "Y"))

	p, err := Generate("disabled=[E]", token.Position{}, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, p.Eligible())
}

func TestGenerate_NamedFieldAbortsEvenAfterAmbiguityCandidates(t *testing.T) {
	// The pass stops at the first fatal variant in declaration order.
	d := decl(named("E", "X"), unnamed("A", pathType("int32")), unnamed("B", pathType("int32")))

	_, err := Generate("", token.Position{}, d)
	assert.ErrorIs(t, err, diagnostic.ErrNamedField)
}

func TestGenerate_DirectiveErrors(t *testing.T) {
	d := decl(unnamed("A", pathType("int32")))

	_, err := Generate("enabled=[A]", token.Position{}, d)
	assert.ErrorIs(t, err, diagnostic.ErrUnexpectedAttribute)

	_, err = Generate("disabled=[A], disabled=[A]", token.Position{}, d)
	assert.ErrorIs(t, err, diagnostic.ErrDuplicateAttribute)

	_, err = Generate("disabled=[A", token.Position{}, d)
	assert.ErrorIs(t, err, diagnostic.ErrMalformedAttribute)
}

func TestResolve_PointerAndOtherFieldsSkipped(t *testing.T) {
	ptr := &union.TypeExpr{Kind: union.TypeKindPointer, Elem: pathType("Node"), Text: "*Node"}
	other := &union.TypeExpr{Kind: union.TypeKindOther, Text: "[]byte"}

	p, err := Resolve(nil, decl(unnamed("Ref", ptr), unnamed("Raw", other), unnamed("N", pathType("Node"))))
	require.NoError(t, err)

	assert.Equal(t, []string{"N"}, p.Eligible())
	assert.Equal(t, "field type *Node is a pointer", p.Report[0].Reason)
	assert.Equal(t, "field type []byte is not a named type", p.Report[1].Reason)
}

func TestResolve_NonPathTypeArgument(t *testing.T) {
	ptrBox := pathType("Box")
	ptrBox.Args = []*union.TypeExpr{{Kind: union.TypeKindPointer, Elem: pathType("int"), Text: "*int"}}
	sliceBox := pathType("Box")
	sliceBox.Args = []*union.TypeExpr{{Kind: union.TypeKindOther, Text: "[]byte"}}

	p, err := Resolve(nil, decl(unnamed("P", ptrBox), unnamed("S", sliceBox)))
	require.NoError(t, err)

	assert.Equal(t, []string{"P", "S"}, p.Eligible())
	assert.Equal(t, "Box[*int]", p.Impls[0].TypeKey)
	assert.Equal(t, "Box[[]byte]", p.Impls[1].TypeKey)
}

func TestResolve_PredeclaredAliasesCollide(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		canon string
	}{
		{"rune", "rune", "int32", "int32"},
		{"byte", "uint8", "byte", "uint8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(nil, decl(unnamed("A", pathType(tt.a)), unnamed("B", pathType(tt.b))))
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.ErrAmbiguousType)
			assert.ErrorContains(t, err, "variants A and B have the same type "+tt.canon)
		})
	}
}

func TestResolve_GenericKeysDistinct(t *testing.T) {
	boxInt := pathType("Box")
	boxInt.Args = []*union.TypeExpr{pathType("int")}
	boxStr := pathType("Box")
	boxStr.Args = []*union.TypeExpr{pathType("string")}

	p, err := Resolve(nil, decl(unnamed("I", boxInt), unnamed("S", boxStr)))
	require.NoError(t, err)

	assert.Equal(t, []string{"I", "S"}, p.Eligible())
	assert.Equal(t, "Box[int]", p.Impls[0].TypeKey)
	assert.Equal(t, "Box[string]", p.Impls[1].TypeKey)
}

func TestResolve_UnknownDisabledWarns(t *testing.T) {
	cfg, err := attr.Parse("disabled=[Ghost]", token.Position{Filename: "value.go", Line: 3, Column: 17})
	require.NoError(t, err)

	p, err := Resolve(cfg, decl(unnamed("A", pathType("int32"))))
	require.NoError(t, err)

	require.Len(t, p.Diagnostics.Warnings, 1)
	w := p.Diagnostics.Warnings[0]
	assert.Equal(t, diagnostic.CodeUnknownVariant, w.Code)
	assert.Equal(t, "Ghost", w.Variant)
	assert.Equal(t, 27, w.Pos.Column)
	assert.NotContains(t, w.Message, "did you mean")
}

func TestResolve_UnknownDisabledSuggests(t *testing.T) {
	cfg, err := attr.Parse("disabled=[Clik]", token.Position{})
	require.NoError(t, err)

	p, err := Resolve(cfg, decl(unnamed("Click", pathType("int32")), unnamed("Key", pathType("rune"))))
	require.NoError(t, err)

	// The misspelled name disables nothing
	assert.Equal(t, []string{"Click", "Key"}, p.Eligible())

	require.Len(t, p.Diagnostics.Warnings, 1)
	assert.Contains(t, p.Diagnostics.Warnings[0].Message, "(did you mean Click?)")
}

func TestResolve_DeclarationUntouched(t *testing.T) {
	build := func() *union.Decl {
		return decl(
			unnamed("A", pathType("int32")),
			unnamed("C"),
			named("E", "X"),
		)
	}
	d := build()

	p, err := Generate("disabled=[E]", token.Position{}, d)
	require.NoError(t, err)

	assert.Same(t, d, p.Decl)
	if diff := cmp.Diff(build(), d); diff != "" {
		t.Errorf("declaration changed (-want +got):\n%s", diff)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	d := decl(unnamed("A", pathType("int32")), unnamed("B", pathType("fs.PathError")), unnamed("C"))

	first, err := Generate("disabled=[C]", token.Position{}, d)
	require.NoError(t, err)

	second, err := Generate("disabled=[C]", token.Position{}, first.Decl)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Impls, second.Impls); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestResolve_NilDecl(t *testing.T) {
	_, err := Resolve(nil, nil)
	assert.Error(t, err)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "eligible", StatusEligible.String())
	assert.Equal(t, "disabled", StatusDisabled.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "unknown", Status(9).String())
}
