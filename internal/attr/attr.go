package attr

import (
	"go/token"
	"slices"

	"autofrom/internal/diagnostic"
)

// Disabled is the attribute listing variants excluded from generation.
const Disabled = "disabled"

// KnownAttributes is the set of attribute names a directive may use.
var KnownAttributes = []string{Disabled}

// Ident is an identifier and the place it was written.
type Ident struct {
	Name string
	Pos  token.Position
}

// Attribute is one name=[members] entry of a directive.
type Attribute struct {
	Name    Ident
	Members []Ident
}

// Config is the validated content of a directive.
type Config struct {
	// Disabled lists the variants that get no conversion, in source order.
	Disabled []Ident
}

// IsDisabled reports whether the variant name is listed in Disabled.
func (c *Config) IsDisabled(name string) bool {
	if c == nil {
		return false
	}

	return slices.ContainsFunc(c.Disabled, func(id Ident) bool {
		return id.Name == name
	})
}

// DisabledNames returns the names listed in Disabled.
func (c *Config) DisabledNames() []string {
	if c == nil {
		return nil
	}

	names := make([]string, 0, len(c.Disabled))
	for _, id := range c.Disabled {
		names = append(names, id.Name)
	}

	return names
}

// Parse parses directive text into a Config. at is the position of the first
// byte of text in its source file and is used for error positions.
//
// Attributes are checked in order: a name outside KnownAttributes fails
// before a repeated one.
func Parse(text string, at token.Position) (*Config, error) {
	attrs, err := ParseAttributes(text, at)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]Attribute, len(attrs))

	for _, a := range attrs {
		name := a.Name.Name
		if !slices.Contains(KnownAttributes, name) {
			return nil, diagnostic.Errorf(diagnostic.CodeUnexpectedAttribute, a.Name.Pos,
				"unexpected attribute %s", name)
		}

		if _, dup := seen[name]; dup {
			return nil, diagnostic.Errorf(diagnostic.CodeDuplicateAttribute, a.Name.Pos,
				"attribute %s appeared multiple times", name)
		}

		seen[name] = a
	}

	cfg := &Config{Disabled: []Ident{}}
	if a, ok := seen[Disabled]; ok {
		cfg.Disabled = a.Members
	}

	return cfg, nil
}

// ParseAttributes performs the structural parse only. The whole text must
// be consumed; a trailing comma is accepted after the last attribute and
// after the last member of a list.
func ParseAttributes(text string, at token.Position) ([]Attribute, error) {
	l := newLexer(text, at)

	var attrs []Attribute

	for l.tok != token.EOF {
		a, err := parseAttribute(l)
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, a)

		if l.tok == token.EOF {
			break
		}

		if err := l.expect(token.COMMA); err != nil {
			return nil, err
		}
	}

	// Errors on skipped input never surface as a token
	if err := l.err(); err != nil {
		return nil, err
	}

	return attrs, nil
}

func parseAttribute(l *lexer) (Attribute, error) {
	name, err := l.ident("attribute name")
	if err != nil {
		return Attribute{}, err
	}

	if err := l.expect(token.ASSIGN); err != nil {
		return Attribute{}, err
	}

	if err := l.expect(token.LBRACK); err != nil {
		return Attribute{}, err
	}

	members := []Ident{}

	for l.tok != token.RBRACK {
		id, err := l.ident("identifier or ']'")
		if err != nil {
			return Attribute{}, err
		}

		members = append(members, id)

		if l.tok != token.COMMA {
			break
		}

		l.next()
	}

	if err := l.expect(token.RBRACK); err != nil {
		return Attribute{}, err
	}

	return Attribute{Name: name, Members: members}, nil
}
