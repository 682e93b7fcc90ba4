package cssyntax_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	css "github.com/mattcaisley/cssyntax"
)

// goldenDecl/goldenStyleRule/goldenFixture are a deliberately narrow
// snapshot shape: only the fields a golden file needs to pin down,
// independent of the richer Decl/StyleRule types so the fixture stays
// readable.
type goldenDecl struct {
	Name      string `yaml:"name"`
	Value     string `yaml:"value"`
	Important bool   `yaml:"important"`
}

type goldenStyleRule struct {
	Selectors    []string     `yaml:"selectors"`
	Declarations []goldenDecl `yaml:"declarations"`
}

type goldenFixture struct {
	Rules []goldenStyleRule `yaml:"rules"`
}

func TestParseCSSStylesheet_GoldenStyleBasic(t *testing.T) {
	data, err := os.ReadFile("testdata/style_basic.golden.yaml")
	require.NoError(t, err)

	var want goldenFixture
	require.NoError(t, yaml.Unmarshal(data, &want))

	sheet, err := css.ParseCSSStylesheet(`a.btn, .btn-primary { color: red; padding: 4px 8px; }`)
	require.NoError(t, err)

	var got goldenFixture
	for _, r := range sheet.Rules {
		sr, ok := r.(*css.StyleRule)
		require.True(t, ok)

		gr := goldenStyleRule{Selectors: sr.Selectors}
		for _, d := range sr.Declarations {
			gr.Declarations = append(gr.Declarations, goldenDecl{
				Name: d.Name, Value: d.Value, Important: d.Important,
			})
		}
		got.Rules = append(got.Rules, gr)
	}

	require.Equal(t, want, got)
}
