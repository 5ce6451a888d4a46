package attr

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autofrom/internal/diagnostic"
)

var testPos = token.Position{Filename: "events.go", Offset: 100, Line: 7, Column: 18}

func names(ids []Ident) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Name)
	}

	return out
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		disabled []string
	}{
		{"empty", "", []string{}},
		{"blank", "   \t", []string{}},
		{"empty list", "disabled=[]", []string{}},
		{"single", "disabled=[Close]", []string{"Close"}},
		{"ordered", "disabled=[Pair, Close, Key]", []string{"Pair", "Close", "Key"}},
		{"spacing", " disabled = [ A ,B ] ", []string{"A", "B"}},
		{"trailing member comma", "disabled=[A, B,]", []string{"A", "B"}},
		{"trailing attribute comma", "disabled=[A],", []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.text, testPos)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, tt.disabled, names(cfg.Disabled))
		})
	}
}

func TestParse_Positions(t *testing.T) {
	cfg, err := Parse("disabled=[A, Bee]", testPos)
	require.NoError(t, err)
	require.Len(t, cfg.Disabled, 2)

	assert.Equal(t, token.Position{Filename: "events.go", Offset: 110, Line: 7, Column: 28}, cfg.Disabled[0].Pos)
	assert.Equal(t, 31, cfg.Disabled[1].Pos.Column)
}

func TestParse_UnexpectedAttribute(t *testing.T) {
	_, err := Parse("disabled=[A], enabled=[B]", testPos)
	require.Error(t, err)

	assert.ErrorIs(t, err, diagnostic.ErrUnexpectedAttribute)
	assert.ErrorContains(t, err, "unexpected attribute enabled")
	assert.ErrorContains(t, err, "events.go:7:32")
}

func TestParse_DuplicateAttribute(t *testing.T) {
	_, err := Parse("disabled=[A], disabled=[B]", testPos)
	require.Error(t, err)

	assert.ErrorIs(t, err, diagnostic.ErrDuplicateAttribute)
	assert.ErrorContains(t, err, "attribute disabled appeared multiple times")

	de, ok := diagnostic.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 32, de.Pos.Column, "the second occurrence is reported")
}

func TestParse_UnexpectedBeforeDuplicate(t *testing.T) {
	_, err := Parse("disabled=[], disabled=[], other=[]", testPos)
	assert.ErrorIs(t, err, diagnostic.ErrDuplicateAttribute)

	_, err = Parse("other=[], disabled=[], disabled=[]", testPos)
	assert.ErrorIs(t, err, diagnostic.ErrUnexpectedAttribute)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"missing assign", "disabled[A]", `expected "=", found "["`},
		{"missing brackets", "disabled=A", `expected "[", found A`},
		{"unclosed", "disabled=[A, B", `expected "]", found end of directive`},
		{"missing comma", "disabled=[A B]", `expected "]", found B`},
		{"non identifier", "disabled=[1]", `expected identifier or ']', found "1"`},
		{"keyword", "disabled=[type]", `expected identifier or ']', found "type"`},
		{"leading comma", ",disabled=[]", `expected attribute name, found ","`},
		{"garbage after", "disabled=[A] extra", `expected ",", found extra`},
		{"double comma", "disabled=[A,,B]", `expected identifier or ']', found ","`},
		{"illegal char", "disabled=[A#]", "illegal character"},
		{"block comment", "disabled=[A] /* x */", "comments are not allowed in a directive"},
		{"comment in list", "disabled=[A /* x */]", "comments are not allowed in a directive"},
		{"line comment", "disabled=[A] // note", "comments are not allowed in a directive"},
		{"unterminated comment", "disabled=[A] /* x", "comment not terminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, testPos)
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.ErrMalformedAttribute)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestParse_CommentPosition(t *testing.T) {
	_, err := Parse("disabled=[A] /* x */", testPos)

	de, ok := diagnostic.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 31, de.Pos.Column)
}

func TestParse_InvalidPosition(t *testing.T) {
	_, err := Parse("nope=[]", token.Position{})
	require.Error(t, err)
	assert.Equal(t, "1:1: unexpected attribute nope", err.Error())
}

func TestParseAttributes_KeepsUnknown(t *testing.T) {
	attrs, err := ParseAttributes("a=[x], b=[], a=[y, z]", testPos)
	require.NoError(t, err)
	require.Len(t, attrs, 3)

	assert.Equal(t, "a", attrs[0].Name.Name)
	assert.Equal(t, []string{"x"}, names(attrs[0].Members))
	assert.Empty(t, attrs[1].Members)
	assert.Equal(t, []string{"y", "z"}, names(attrs[2].Members))
}

func TestConfig_IsDisabled(t *testing.T) {
	cfg, err := Parse("disabled=[Legacy, Close]", testPos)
	require.NoError(t, err)

	assert.True(t, cfg.IsDisabled("Legacy"))
	assert.True(t, cfg.IsDisabled("Close"))
	assert.False(t, cfg.IsDisabled("Click"))
	assert.Equal(t, []string{"Legacy", "Close"}, cfg.DisabledNames())

	var nilCfg *Config
	assert.False(t, nilCfg.IsDisabled("Legacy"))
}
