package attr

import (
	"go/scanner"
	"go/token"
	"strconv"

	"autofrom/internal/diagnostic"
)

// lexer turns directive text into Go tokens. Positions are translated back
// into the source file the directive was read from.
type lexer struct {
	s  scanner.Scanner
	at token.Position

	file    *token.File
	scanErr *diagnostic.Error

	tok token.Token
	lit string
	off int
}

func newLexer(text string, at token.Position) *lexer {
	if !at.IsValid() {
		at = token.Position{Filename: at.Filename, Line: 1, Column: 1}
	}

	src := []byte(text)
	fset := token.NewFileSet()

	l := &lexer{
		at:   at,
		file: fset.AddFile(at.Filename, -1, len(src)),
	}
	l.s.Init(l.file, src, l.handleError, scanner.ScanComments)
	l.next()

	return l
}

func (l *lexer) handleError(pos token.Position, msg string) {
	if l.scanErr == nil {
		l.scanErr = diagnostic.Errorf(diagnostic.CodeMalformedAttribute, l.position(pos.Offset), "%s", msg)
	}
}

// next advances to the following token. Semicolons inserted by the scanner at
// the end of the text are not part of the language and are dropped. Comments
// are not allowed and become ILLEGAL.
func (l *lexer) next() {
	for {
		pos, tok, lit := l.s.Scan()
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		l.tok, l.lit, l.off = tok, lit, l.file.Offset(pos)

		if tok == token.COMMENT {
			l.handleError(l.file.Position(pos), "comments are not allowed in a directive")
			l.tok = token.ILLEGAL
		}

		return
	}
}

// err returns the first scan error, if any.
func (l *lexer) err() error {
	if l.scanErr != nil {
		return l.scanErr
	}

	return nil
}

// position maps an offset inside the directive text to the source file.
// Directives are line comments, so the line never changes.
func (l *lexer) position(off int) token.Position {
	return token.Position{
		Filename: l.at.Filename,
		Offset:   l.at.Offset + off,
		Line:     l.at.Line,
		Column:   l.at.Column + off,
	}
}

func (l *lexer) pos() token.Position {
	return l.position(l.off)
}

// ident consumes an identifier.
func (l *lexer) ident(what string) (Ident, error) {
	if l.tok != token.IDENT {
		return Ident{}, l.unexpected(what)
	}

	id := Ident{Name: l.lit, Pos: l.pos()}
	l.next()

	return id, nil
}

// expect consumes tok.
func (l *lexer) expect(tok token.Token) error {
	if l.tok != tok {
		return l.unexpected(strconv.Quote(tok.String()))
	}

	l.next()

	return nil
}

func (l *lexer) unexpected(what string) error {
	if l.tok == token.ILLEGAL && l.scanErr != nil {
		return l.scanErr
	}

	return diagnostic.Errorf(diagnostic.CodeMalformedAttribute, l.pos(),
		"expected %s, found %s", what, l.describe())
}

func (l *lexer) describe() string {
	switch {
	case l.tok == token.EOF:
		return "end of directive"
	case l.tok == token.IDENT:
		return l.lit
	case l.lit != "":
		return strconv.Quote(l.lit)
	default:
		return strconv.Quote(l.tok.String())
	}
}
