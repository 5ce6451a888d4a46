package analyze

import (
	"go/ast"
	"go/token"
	"strings"
)

// directive is an occurrence of the union directive in a comment group.
type directive struct {
	text string
	pos  token.Pos // position of text
}

// findDirectives returns every line comment of doc that is exactly the
// directive or the directive followed by blank space.
func findDirectives(doc *ast.CommentGroup, name string) []directive {
	if doc == nil {
		return nil
	}

	prefix := "//" + name

	var out []directive

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, prefix)
		if !ok {
			continue
		}

		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		out = append(out, directive{
			text: rest,
			pos:  c.Slash + token.Pos(len(prefix)),
		})
	}

	return out
}
