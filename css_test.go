package cssyntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	css "github.com/mattcaisley/cssyntax"
	"github.com/mattcaisley/cssyntax/token"
)

func TestTokenize_Basic(t *testing.T) {
	toks, err := css.Tokenize(`a { color: red; }`)
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestTokenize_EscapeInsideUnquotedURLIsFatal(t *testing.T) {
	_, err := css.Tokenize(`url(foo\2603)`)
	assert.Error(t, err)
}

func TestTokenize_UnicodeRange(t *testing.T) {
	toks, err := css.Tokenize(`U+25-FF`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.UnicodeRange, toks[0].Kind)
	assert.Equal(t, 0x25, toks[0].RangeStart)
	assert.Equal(t, 0xFF, toks[0].RangeEnd)
}

func TestTokenize_NumericForms(t *testing.T) {
	toks, err := css.Tokenize(`10px 50% 3.14 -2e3`)
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tok := range toks {
		if tok.Kind != token.Whitespace && tok.Kind != token.EOF {
			kinds = append(kinds, tok.Kind)
		}
	}
	assert.Equal(t, []token.Kind{token.Dimension, token.Percentage, token.Number, token.Number}, kinds)
}

func TestParseStylesheet_GenericTree(t *testing.T) {
	sheet, err := css.ParseStylesheet(`a { color: red; }`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
}

func TestParseCSSStylesheet_Import(t *testing.T) {
	sheet, err := css.ParseCSSStylesheet(`@import url(/css/screen.css) screen, projection;`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	ir, ok := sheet.Rules[0].(*css.ImportRule)
	require.True(t, ok)
	assert.Equal(t, "/css/screen.css", ir.URL)
	assert.Equal(t, "screen, projection", ir.Media)
}

func TestParseCSSStylesheet_StyleRuleWithFunction(t *testing.T) {
	sheet, err := css.ParseCSSStylesheet(`a { background: linear-gradient(to right, red, blue); }`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	sr, ok := sheet.Rules[0].(*css.StyleRule)
	require.True(t, ok)
	require.Len(t, sr.Declarations, 1)
	assert.Equal(t, "linear-gradient(to right, red, blue)", sr.Declarations[0].Value)
}

func TestParseCSSStylesheet_Keyframes(t *testing.T) {
	sheet, err := css.ParseCSSStylesheet(`@keyframes fade { from { opacity: 0; } to { opacity: 1; } }`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	kr, ok := sheet.Rules[0].(*css.KeyframesRule)
	require.True(t, ok)
	assert.Equal(t, "fade", kr.Name)
	require.Len(t, kr.Keyframes, 2)
}

func TestParseCSSStylesheet_Escapes(t *testing.T) {
	// Stringify reconstructs from verbatim source, so the selector keeps
	// its escape rather than the decoded "a" (§4.4's design note).
	sheet, err := css.ParseCSSStylesheet(`\61  { color: red; }`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	sr, ok := sheet.Rules[0].(*css.StyleRule)
	require.True(t, ok)
	assert.Equal(t, []string{`\61`}, sr.Selectors)
}

func TestParseCSSStylesheet_WithDebugOption(t *testing.T) {
	sheet, err := css.ParseCSSStylesheet(`a`, css.WithDebug(true))
	require.NoError(t, err)
	assert.NotEmpty(t, sheet.Errors)
}
