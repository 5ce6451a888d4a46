package plan

import (
	"go/token"

	"autofrom/internal/attr"
	"autofrom/internal/common"
	"autofrom/internal/diagnostic"
	"autofrom/internal/union"
)

// Status is the outcome of resolution for one variant.
type Status int

const (
	StatusEligible Status = iota // receives a conversion
	StatusDisabled               // listed in the disabled attribute
	StatusSkipped                // shape does not qualify
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusEligible:
		return "eligible"
	case StatusDisabled:
		return "disabled"
	case StatusSkipped:
		return "skipped"
	default:
		return common.UnknownStr
	}
}

// VariantReport explains what happened to one variant.
type VariantReport struct {
	Variant string
	Pos     token.Position
	Shape   union.Shape
	Status  Status
	// Reason is set for skipped variants.
	Reason string
	// TypeKey is set for eligible variants.
	TypeKey string
}

// Impl is one generated conversion: a value of FieldType becomes the union
// by wrapping it in Variant.
type Impl struct {
	Union     string
	Variant   string
	FieldType *union.TypeExpr
	TypeKey   string
	Pos       token.Position
}

// Plan is the resolved generation plan of one declaration.
type Plan struct {
	// Decl is the declaration, unchanged.
	Decl *union.Decl
	// Config is the parsed directive.
	Config *attr.Config
	// Impls follow declaration order.
	Impls []Impl
	// Report has one entry per variant, in declaration order.
	Report []VariantReport
	// Diagnostics holds warnings and infos; errors abort resolution instead.
	Diagnostics diagnostic.Diagnostics
}

// Eligible returns the names of the variants that receive a conversion.
func (p *Plan) Eligible() []string {
	names := make([]string, 0, len(p.Impls))
	for _, impl := range p.Impls {
		names = append(names, impl.Variant)
	}

	return names
}
