// Package gen renders resolved plans into Go source.
//
// For every source file holding annotated unions the generator writes one
// sibling file with a constructor per eligible variant and, unless disabled,
// a dispatcher that converts an arbitrary value by its dynamic type:
//
//	func ShapeFromTick(v time.Duration) Shape {
//		return Tick{v}
//	}
//
//	func ShapeFrom(v any) (Shape, bool) {
//		switch v := v.(type) {
//		case time.Duration:
//			return Tick{v}, true
//		}
//
//		return nil, false
//	}
//
// Variant types are told apart by their text, with byte, rune and any folded
// into the types they alias. Two variants whose types are one type through a
// user-defined alias still produce duplicate cases, which the compiler reports.
//
// Only the imports the emitted field types refer to are kept. Output is
// formatted and its imports grouped with golang.org/x/tools/imports.
package gen
