package cssyntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCssRule(t *testing.T) {
	var rules []CssRule
	rules = append(rules, &StyleRule{}, &ImportRule{}, &KeyframesRule{}, &GenericAtRule{})
	for _, r := range rules {
		r.cssRule()
	}
}

func TestDecl(t *testing.T) {
	d := Decl{Name: "color", Value: "red"}
	assert.Equal(t, "color", d.Name)
	assert.False(t, d.Important)
}

func TestStylesheet_ErrorsDoNotExcludeRules(t *testing.T) {
	sheet := &Stylesheet{
		Rules:  []CssRule{&StyleRule{Selectors: []string{"a"}}},
		Errors: []*Error{{Message: "bad rule"}},
	}
	assert.Len(t, sheet.Rules, 1)
	assert.Len(t, sheet.Errors, 1)
}
