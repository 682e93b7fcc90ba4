package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcaisley/cssyntax/ast"
	"github.com/mattcaisley/cssyntax/parser"
	"github.com/mattcaisley/cssyntax/token"
)

func TestParser_ParseComponentValue(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{`foo`, `foo`},
		{`foo(bar)`, `foo(bar)`},
		{`(foo)`, `(foo)`},
		{`[foo]`, `[foo]`},
	}
	for _, tt := range tests {
		cv, err := parser.New(tt.s).ParseComponentValue()
		require.NoError(t, err, tt.s)
		assert.Equal(t, tt.want, ast.Stringify(cv.(ast.Node)), tt.s)
	}
}

func TestParser_ParseComponentValue_TrailingInputFails(t *testing.T) {
	_, err := parser.New(`foo bar`).ParseComponentValue()
	assert.Error(t, err)
}

func TestParser_ParseDeclaration(t *testing.T) {
	decl, err := parser.New(`color: red`).ParseDeclaration()
	require.NoError(t, err)
	assert.Equal(t, "color", decl.Name)
	assert.False(t, decl.Important)
	assert.Equal(t, " red", ast.Stringify(decl.Values))
}

func TestParser_ParseDeclaration_Important(t *testing.T) {
	decl, err := parser.New(`color: red !important`).ParseDeclaration()
	require.NoError(t, err)
	assert.True(t, decl.Important)
	assert.Equal(t, " red", ast.Stringify(decl.Values))
}

func TestParser_ParseRule_Qualified(t *testing.T) {
	rule, err := parser.New(`a { color: red; }`).ParseRule()
	require.NoError(t, err)
	qr, ok := rule.(*ast.QualifiedRule)
	require.True(t, ok)
	require.NotNil(t, qr.Block)
}

func TestParser_ParseRule_At(t *testing.T) {
	rule, err := parser.New(`@import "foo.css";`).ParseRule()
	require.NoError(t, err)
	ar, ok := rule.(*ast.AtRule)
	require.True(t, ok)
	assert.Equal(t, "import", ar.Name)
	assert.Nil(t, ar.Block)
}

func TestParser_ParseStylesheet_DiscardsTopLevelCDOCDC(t *testing.T) {
	sheet := parser.New("<!-- a {} -->").ParseStylesheet()
	require.Len(t, sheet.Rules, 1)
	_, ok := sheet.Rules[0].(*ast.QualifiedRule)
	assert.True(t, ok)
}

func TestParser_ParseListOfDeclarations(t *testing.T) {
	p := parser.New(`color: red; @media screen {} margin: 0`)
	nodes := p.ParseListOfDeclarations()
	require.Len(t, nodes, 3)

	decl, ok := nodes[0].(*ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, "color", decl.Name)

	_, ok = nodes[1].(*ast.AtRule)
	assert.True(t, ok)

	decl2, ok := nodes[2].(*ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, "margin", decl2.Name)
}

func TestParser_ConsumeFunction(t *testing.T) {
	cv, err := parser.New(`linear-gradient(to right, red, blue)`).ParseComponentValue()
	require.NoError(t, err)
	fn, ok := cv.(*ast.FunctionValue)
	require.True(t, ok)
	assert.Equal(t, "linear-gradient", fn.Name)
}

func TestParser_UnicodeRangeComponentValue(t *testing.T) {
	cv, err := parser.New(`U+0025-00FF`).ParseComponentValue()
	require.NoError(t, err)
	tv, ok := cv.(*ast.TokenValue)
	require.True(t, ok)
	assert.Equal(t, token.UnicodeRange, tv.Token.Kind)
	assert.Equal(t, 0x25, tv.Token.RangeStart)
	assert.Equal(t, 0xFF, tv.Token.RangeEnd)
}
