package cssyntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	css "github.com/mattcaisley/cssyntax"
)

func TestStyleRule_String(t *testing.T) {
	sr := &css.StyleRule{
		Selectors: []string{"a", "b"},
		Declarations: []css.Decl{
			{Name: "color", Value: "red"},
			{Name: "margin", Value: "0", Important: true},
		},
	}
	assert.Equal(t, `a, b{color:red;margin:0!important}`, sr.String())
}

func TestImportRule_String(t *testing.T) {
	assert.Equal(t, `@import "screen.css";`, (&css.ImportRule{URL: "screen.css"}).String())
	assert.Equal(t, `@import "screen.css" screen;`, (&css.ImportRule{URL: "screen.css", Media: "screen"}).String())
}

func TestKeyframesRule_String(t *testing.T) {
	kr := &css.KeyframesRule{
		Name: "spin",
		Keyframes: []css.Keyframe{
			{Values: []string{"0%"}, Declarations: []css.Decl{{Name: "transform", Value: "none"}}},
			{Values: []string{"100%"}, Declarations: []css.Decl{{Name: "transform", Value: "full"}}},
		},
	}
	assert.Equal(t, `@keyframes spin{0%{transform:none} 100%{transform:full}}`, kr.String())
}

func TestGenericAtRule_String(t *testing.T) {
	assert.Equal(t, `@charset "utf-8";`, (&css.GenericAtRule{Name: "charset", Prelude: `"utf-8"`}).String())
	assert.Equal(t, `@media screen{a{color:red}}`, (&css.GenericAtRule{
		Name: "media", Prelude: "screen", HasBlock: true, Block: "a{color:red}",
	}).String())
}

func TestStylesheet_String(t *testing.T) {
	sheet := &css.Stylesheet{
		Rules: []css.CssRule{
			&css.StyleRule{Selectors: []string{"a"}, Declarations: []css.Decl{{Name: "color", Value: "red"}}},
			&css.GenericAtRule{Name: "page"},
		},
	}
	assert.Equal(t, `a{color:red} @page;`, sheet.String())
}

func TestDump(t *testing.T) {
	sheet := &css.Stylesheet{
		Rules: []css.CssRule{
			&css.StyleRule{Selectors: []string{"a"}, Declarations: []css.Decl{{Name: "color", Value: "red"}}},
		},
		Errors: []*css.Error{{Message: "bad rule"}},
	}
	out := css.Dump(sheet)
	assert.Contains(t, out, "Stylesheet")
	assert.Contains(t, out, `StyleRule "a"`)
	assert.Contains(t, out, "bad rule")
}
