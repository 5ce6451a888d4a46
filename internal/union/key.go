package union

import (
	"go/token"
	"strings"

	"autofrom/internal/diagnostic"
)

// PathSeparator joins the segments of a Type-Key.
const PathSeparator = "."

// predeclaredAliases maps predeclared alias names to the type they denote.
var predeclaredAliases = map[string]string{
	"byte": "uint8",
	"rune": "int32",
	"any":  "interface{}",
}

// TypeKey renders the key of a path type reference, used to detect two
// variants converting from the same type.
//
// The key is textual: segments joined by PathSeparator, type arguments
// rendered recursively inside brackets. A type argument that is not a path
// (*int, []byte) is rendered as written. Two references to the same type that
// are written differently (a package imported under two names, for example)
// get different keys. Only a reference that is not a path fails, with an
// unsupported_type error.
func TypeKey(t *TypeExpr) (string, error) {
	return renderKey(t, false)
}

// CanonicalKey is TypeKey with the predeclared aliases byte, rune and any
// replaced by the types they denote, so that rune and int32 collide.
func CanonicalKey(t *TypeExpr) (string, error) {
	return renderKey(t, true)
}

func renderKey(t *TypeExpr, canonical bool) (string, error) {
	if !t.IsPath() {
		return "", diagnostic.Errorf(diagnostic.CodeUnsupportedType, t.posOrZero(),
			"type %s cannot be used as a conversion key", t.textOrNil())
	}

	var sb strings.Builder
	writeKey(&sb, t, canonical)

	return sb.String(), nil
}

func writeKey(sb *strings.Builder, t *TypeExpr, canonical bool) {
	if !t.IsPath() {
		sb.WriteString(t.textOrNil())
		return
	}

	name := strings.Join(t.Segments, PathSeparator)
	if target, ok := predeclaredAliases[name]; ok && canonical && len(t.Args) == 0 {
		name = target
	}

	sb.WriteString(name)

	if len(t.Args) == 0 {
		return
	}

	sb.WriteByte('[')

	for i, arg := range t.Args {
		if i > 0 {
			sb.WriteByte(',')
		}

		writeKey(sb, arg, canonical)
	}

	sb.WriteByte(']')
}

func (t *TypeExpr) posOrZero() token.Position {
	if t == nil {
		return token.Position{}
	}

	return t.Pos
}

func (t *TypeExpr) textOrNil() string {
	if t == nil {
		return "<nil>"
	}

	return t.Text
}
