package plan

import (
	"errors"
	"fmt"
	"go/token"

	"autofrom/internal/attr"
	"autofrom/internal/common"
	"autofrom/internal/diagnostic"
	"autofrom/internal/match"
	"autofrom/internal/union"
)

// Generate parses the directive text found at pos and resolves decl with it.
// It is the whole pipeline for one annotated declaration.
func Generate(text string, pos token.Position, decl *union.Decl) (*Plan, error) {
	cfg, err := attr.Parse(text, pos)
	if err != nil {
		return nil, err
	}

	return Resolve(cfg, decl)
}

// Resolve folds the variants of decl into a Plan. A nil cfg disables nothing.
func Resolve(cfg *attr.Config, decl *union.Decl) (*Plan, error) {
	if decl == nil {
		return nil, errors.New("declaration is nil")
	}

	if cfg == nil {
		cfg = &attr.Config{}
	}

	acc := accumulator{claimed: make(map[string]string)}

	for _, v := range decl.Variants {
		var err error

		acc, err = acc.add(cfg, decl.Name, v)
		if err != nil {
			return nil, err
		}
	}

	p := &Plan{
		Decl:   decl,
		Config: cfg,
		Impls:  acc.impls,
		Report: acc.report,
	}

	p.collectDiagnostics()

	return p, nil
}

// accumulator carries the fold state: the claimed Type-Keys (key to variant
// name) and the output built so far.
type accumulator struct {
	claimed map[string]string
	impls   []Impl
	report  []VariantReport
}

// add folds one variant into the accumulator.
func (a accumulator) add(cfg *attr.Config, unionName string, v union.Variant) (accumulator, error) {
	entry := VariantReport{
		Variant: v.Name,
		Pos:     v.Pos,
		Shape:   v.Shape,
	}

	switch {
	case cfg.IsDisabled(v.Name):
		entry.Status = StatusDisabled

	case v.Shape == union.ShapeNamed:
		return a, diagnostic.Errorf(diagnostic.CodeNamedField, v.Pos,
			"named field in variant %s is not allowed", v.Name)

	case v.Shape == union.ShapeUnit || common.IsEmpty(v.Fields):
		entry.Status = StatusSkipped
		entry.Reason = "no fields"

	case common.IsMultiple(v.Fields):
		entry.Status = StatusSkipped
		entry.Reason = fmt.Sprintf("%d unnamed fields", len(v.Fields))

	default:
		field, _ := common.First(v.Fields)

		if !field.Type.IsPath() {
			entry.Status = StatusSkipped
			entry.Reason = skipReason(field.Type)

			break
		}

		key, err := union.TypeKey(field.Type)
		if err != nil {
			return a, err
		}

		// rune and int32 are one type to the dispatcher's type switch
		canon, err := union.CanonicalKey(field.Type)
		if err != nil {
			return a, err
		}

		if prev, ok := a.claimed[canon]; ok {
			return a, diagnostic.Errorf(diagnostic.CodeAmbiguousType, v.Pos,
				"variants %s and %s have the same type %s", prev, v.Name, canon)
		}

		a.claimed[canon] = v.Name
		a.impls = append(a.impls, Impl{
			Union:     unionName,
			Variant:   v.Name,
			FieldType: field.Type,
			TypeKey:   key,
			Pos:       v.Pos,
		})

		entry.Status = StatusEligible
		entry.TypeKey = key
	}

	a.report = append(a.report, entry)

	return a, nil
}

func skipReason(t *union.TypeExpr) string {
	switch {
	case t == nil:
		return "field has no type"
	case t.Kind == union.TypeKindPointer:
		return fmt.Sprintf("field type %s is a pointer", t.Text)
	default:
		return fmt.Sprintf("field type %s is not a named type", t.Text)
	}
}

// collectDiagnostics warns about disabled names that match no variant and
// records an info line for every skipped variant.
func (p *Plan) collectDiagnostics() {
	var names []string
	for _, v := range p.Decl.Variants {
		names = append(names, v.Name)
	}

	for _, id := range p.Config.Disabled {
		if _, ok := p.Decl.Variant(id.Name); ok {
			continue
		}

		msg := fmt.Sprintf("disabled variant %s is not declared in %s", id.Name, p.Decl.Name)
		if near, ok := match.Suggest(id.Name, names); ok {
			msg += fmt.Sprintf(" (did you mean %s?)", near)
		}

		p.Diagnostics.AddWarning(diagnostic.CodeUnknownVariant, id.Pos, p.Decl.Name, id.Name, msg)
	}

	for _, r := range p.Report {
		if r.Status == StatusSkipped {
			p.Diagnostics.AddInfo(r.Pos, p.Decl.Name, r.Variant,
				fmt.Sprintf("variant %s skipped: %s", r.Variant, r.Reason))
		}
	}
}
