package cssyntax

import "github.com/shopspring/decimal"

// CssRule is a rule that has been reinterpreted with CSS semantics: a
// style rule, an at-rule handled by a registered AtRuleHandler, or a
// generic at-rule left uninterpreted because no handler claimed it
// (§4.3's dispatch-by-keyword design).
type CssRule interface {
	cssRule()
}

func (*StyleRule) cssRule()     {}
func (*ImportRule) cssRule()    {}
func (*KeyframesRule) cssRule() {}
func (*GenericAtRule) cssRule() {}

// Stylesheet is the CSS-interpreted top-level tree.
type Stylesheet struct {
	Rules []CssRule

	// Errors collects every recoverable anomaly found while parsing,
	// in source order. A non-empty Errors does not mean Rules is empty
	// or wrong — each rule that could be recovered still appears.
	Errors []*Error
}

// StyleRule is a qualified rule interpreted as a list of selectors plus
// a list of declarations (§4.3's "qualified rules reinterpreted as style
// rules"). Selectors is the prelude split on top-level commas, each
// group stringified and trimmed; empty groups (a stray leading, trailing
// or doubled comma) are dropped.
type StyleRule struct {
	Selectors    []string
	Declarations []Decl
}

// Decl is a single declaration after CSS interpretation: its value is
// flattened to its source text (via ast.Stringify) rather than kept as
// a raw component-value list, since most consumers want the value as
// written.
type Decl struct {
	Name      string
	Value     string
	Important bool

	// Number is set when Value is a single numeric token (number,
	// percentage or dimension), letting a caller avoid re-parsing a
	// numeric literal out of Value.
	Number   decimal.Decimal
	HasUnit  bool
	Unit     string
	IsNumber bool
}

// ImportRule is the built-in interpretation of @import (§4.3's worked
// example). The media-query fragment, if any, is folded into Media
// verbatim rather than parsed into a structured media-query list —
// selectors and media queries are both out of this package's scope per
// spec.md's Non-goals, so both are kept as source text.
type ImportRule struct {
	URL   string
	Media string
}

// Keyframe is one or more percentage/from/to selectors and their shared
// declarations inside a @keyframes rule. Values is the selector-list
// prelude split on top-level commas, the same way StyleRule.Selectors is.
type Keyframe struct {
	Values       []string
	Declarations []Decl
}

// KeyframesRule is the built-in interpretation of @keyframes.
type KeyframesRule struct {
	Name      string
	Keyframes []Keyframe
}

// GenericAtRule is an at-rule for which no handler was registered. Its
// prelude and block are kept as source text so a caller can still
// inspect or re-parse them.
type GenericAtRule struct {
	Name     string
	Prelude  string
	Block    string // "" if the at-rule had no block
	HasBlock bool
}
