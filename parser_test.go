package cssyntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	css "github.com/mattcaisley/cssyntax"
	"github.com/mattcaisley/cssyntax/ast"
)

func TestParser_ParseStylesheet_StyleRule(t *testing.T) {
	sheet := css.NewParser(`foo { padding: 10px; color: RED !IMPORTANT }`).ParseStylesheet()
	require.Empty(t, sheet.Errors)
	require.Len(t, sheet.Rules, 1)

	sr, ok := sheet.Rules[0].(*css.StyleRule)
	require.True(t, ok)
	assert.Equal(t, []string{"foo"}, sr.Selectors)
	require.Len(t, sr.Declarations, 2)

	assert.Equal(t, "padding", sr.Declarations[0].Name)
	assert.Equal(t, "10px", sr.Declarations[0].Value)
	assert.False(t, sr.Declarations[0].Important)
	assert.True(t, sr.Declarations[0].HasUnit)
	assert.Equal(t, "px", sr.Declarations[0].Unit)

	assert.Equal(t, "color", sr.Declarations[1].Name)
	assert.True(t, sr.Declarations[1].Important)
}

func TestParser_ParseStylesheet_MultipleSelectors(t *testing.T) {
	sheet := css.NewParser(`a.btn, .btn-primary { color: red; }`).ParseStylesheet()
	require.Len(t, sheet.Rules, 1)

	sr, ok := sheet.Rules[0].(*css.StyleRule)
	require.True(t, ok)
	assert.Equal(t, []string{"a.btn", ".btn-primary"}, sr.Selectors)
}

func TestParser_ParseStylesheet_KeyframesMultipleSelectors(t *testing.T) {
	sheet := css.NewParser(`@keyframes pulse { 0%, 50% { opacity: 1; } 100% { opacity: 0; } }`).ParseStylesheet()
	require.Len(t, sheet.Rules, 1)

	kr, ok := sheet.Rules[0].(*css.KeyframesRule)
	require.True(t, ok)
	require.Len(t, kr.Keyframes, 2)
	assert.Equal(t, []string{"0%", "50%"}, kr.Keyframes[0].Values)
	assert.Equal(t, []string{"100%"}, kr.Keyframes[1].Values)
}

func TestParser_ParseStylesheet_QualifiedRuleWithoutBlockIsAnError(t *testing.T) {
	sheet := css.NewParser(`foo`).ParseStylesheet()
	assert.Empty(t, sheet.Rules)
	require.Len(t, sheet.Errors, 1)
}

func TestParser_ParseStylesheet_Import(t *testing.T) {
	sheet := css.NewParser(`@import "screen.css" screen, projection;`).ParseStylesheet()
	require.Len(t, sheet.Rules, 1)

	ir, ok := sheet.Rules[0].(*css.ImportRule)
	require.True(t, ok)
	assert.Equal(t, "screen.css", ir.URL)
	assert.Equal(t, "screen, projection", ir.Media)
}

func TestParser_ParseStylesheet_Keyframes(t *testing.T) {
	sheet := css.NewParser(`@keyframes spin { 0% { transform: none; } 100% { transform: full; } }`).ParseStylesheet()
	require.Len(t, sheet.Rules, 1)

	kr, ok := sheet.Rules[0].(*css.KeyframesRule)
	require.True(t, ok)
	assert.Equal(t, "spin", kr.Name)
	require.Len(t, kr.Keyframes, 2)
	assert.Equal(t, []string{"0%"}, kr.Keyframes[0].Values)
	assert.Equal(t, "transform", kr.Keyframes[0].Declarations[0].Name)
	assert.Equal(t, []string{"100%"}, kr.Keyframes[1].Values)
}

func TestParser_ParseStylesheet_GenericAtRuleFallback(t *testing.T) {
	sheet := css.NewParser(`@media screen { a { color: red; } }`).ParseStylesheet()
	require.Len(t, sheet.Rules, 1)

	gr, ok := sheet.Rules[0].(*css.GenericAtRule)
	require.True(t, ok)
	assert.Equal(t, "media", gr.Name)
	assert.Equal(t, "screen", gr.Prelude)
	assert.True(t, gr.HasBlock)
}

func TestParser_RegisterAtRuleHandler(t *testing.T) {
	css.RegisterAtRuleHandler("charset", func(p *css.Parser, rule *ast.AtRule) (css.CssRule, bool) {
		return nil, false
	})
}
