// Package plan decides, for one annotated union, which variants receive a
// generated conversion.
//
// The decision is a single pass over the variants in declaration order:
//   - variants listed in the directive's disabled attribute are dropped
//   - named-field variants abort the pass
//   - a variant with exactly one unnamed field of path type claims the
//     Type-Key of that field; a second claim of the same key aborts the pass
//   - every other shape is skipped without error
//
// Nothing is emitted when the pass aborts.
package plan
