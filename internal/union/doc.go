// Package union is the host-independent model of an annotated tagged union:
// its name, its ordered variants, each variant's field shape and the
// structural form of every field type.
//
// Key types:
//   - Decl: the union and its variants, in declaration order
//   - Variant: one arm; Shape tells unit, unnamed or named fields apart
//   - TypeExpr: a field type reference; only path forms can be converted from
package union
