package cssyntax

import (
	"strings"

	"github.com/mattcaisley/cssyntax/ast"
	"github.com/mattcaisley/cssyntax/parser"
	"github.com/mattcaisley/cssyntax/token"
)

// Parser wraps the generic syntax parser and reinterprets its output as
// CSS (§4.3): qualified rules become style rules, at-rules are dispatched
// through the registered AtRuleHandlers.
type Parser struct {
	inner *parser.Parser
	cfg   *Config
}

// NewParser returns a Parser reading CSS text, configured by opts.
func NewParser(text string, opts ...Option) *Parser {
	return &Parser{inner: parser.New(text), cfg: newConfig(opts...)}
}

// ParseStylesheet runs "parse a stylesheet" and reinterprets every rule
// with CSS semantics. Anomalies found while interpreting a rule are
// collected into Stylesheet.Errors rather than aborting the parse. A
// qualified rule with an empty prelude becomes a StyleRule with no
// selectors, and a malformed declaration inside a rule body is dropped;
// neither adds an Error.
func (p *Parser) ParseStylesheet() *Stylesheet {
	sheet := &Stylesheet{}
	for _, rule := range p.inner.ParseStylesheet().Rules {
		if cr, err := p.interpretRule(rule); err != nil {
			sheet.Errors = append(sheet.Errors, err)
		} else if cr != nil {
			sheet.Rules = append(sheet.Rules, cr)
		}
	}
	return sheet
}

func (p *Parser) interpretRule(rule ast.Rule) (CssRule, *Error) {
	switch r := rule.(type) {
	case *ast.QualifiedRule:
		return p.interpretStyleRule(r)
	case *ast.AtRule:
		return p.interpretAtRule(r)
	default:
		return nil, &Error{Message: "unrecognized rule node"}
	}
}

// interpretStyleRule reinterprets a qualified rule as a style rule: its
// prelude is split into selectors on top-level commas and kept as
// source text (selector matching is out of this package's scope), and
// its block is parsed as a list of declarations.
func (p *Parser) interpretStyleRule(r *ast.QualifiedRule) (CssRule, *Error) {
	if r.Block == nil {
		return nil, &Error{Message: "qualified rule has no block", Pos: r.TokenPos}
	}

	sr := &StyleRule{Selectors: splitSelectorGroups(r.Prelude)}
	for _, n := range p.parseDeclarationsFrom(r.Block.Values) {
		if d, ok := n.(*ast.Declaration); ok {
			sr.Declarations = append(sr.Declarations, declFromAST(d))
		}
	}
	return sr, nil
}

// splitSelectorGroups splits prelude on top-level commas (commas inside
// a function or block are part of that child node, not this flat list,
// so a plain scan is enough), trims each group and drops empties — a
// stray leading, trailing or doubled comma yields no group rather than
// an empty string (§4.3).
func splitSelectorGroups(prelude ast.ComponentValues) []string {
	var groups []string
	var cur ast.ComponentValues
	flush := func() {
		if s := strings.TrimSpace(ast.Stringify(cur)); s != "" {
			groups = append(groups, s)
		}
		cur = nil
	}
	for _, cv := range prelude {
		if tv, ok := cv.(*ast.TokenValue); ok && tv.Token.Kind == token.Comma {
			flush()
			continue
		}
		cur = append(cur, cv)
	}
	flush()
	return groups
}

func (p *Parser) interpretAtRule(r *ast.AtRule) (CssRule, *Error) {
	if handler, ok := lookupAtRuleHandler(r.Name); ok {
		if cr, ok := handler(p, r); ok {
			return cr, nil
		}
	}

	gr := &GenericAtRule{
		Name:    r.Name,
		Prelude: strings.TrimSpace(ast.Stringify(r.Prelude)),
	}
	if r.Block != nil {
		gr.HasBlock = true
		gr.Block = ast.Stringify(r.Block.Values)
	}
	return gr, nil
}

// parseRulesFrom re-parses an already-parsed block's component values as
// a list of rules, the way a nested at-rule like @keyframes needs to.
// Component values are stringified and fed back through the syntax
// parser rather than walked a second time as a tree.
func (p *Parser) parseRulesFrom(values ast.ComponentValues) ast.Rules {
	return parser.New(ast.Stringify(values)).ParseListOfRules()
}

// parseDeclarationsFrom re-parses an already-parsed block's component
// values as a list of declarations.
func (p *Parser) parseDeclarationsFrom(values ast.ComponentValues) []ast.Node {
	return parser.New(ast.Stringify(values)).ParseListOfDeclarations()
}

// declFromAST flattens a generic declaration node into a Decl, resolving
// Number/Unit when the declaration's value is a single numeric token.
func declFromAST(d *ast.Declaration) Decl {
	decl := Decl{
		Name:      d.Name,
		Value:     strings.TrimSpace(ast.Stringify(d.Values)),
		Important: d.Important,
	}

	var numTok *token.Token
	for _, cv := range d.Values {
		tv, ok := cv.(*ast.TokenValue)
		if !ok || tv.Token.Kind == token.Whitespace {
			continue
		}
		if numTok != nil {
			numTok = nil
			break
		}
		t := tv.Token
		numTok = &t
	}

	if numTok != nil {
		switch numTok.Kind {
		case token.Number:
			decl.IsNumber = true
			decl.Number = numTok.Number
		case token.Percentage:
			decl.IsNumber = true
			decl.Number = numTok.Number
			decl.HasUnit = true
			decl.Unit = "%"
		case token.Dimension:
			decl.IsNumber = true
			decl.Number = numTok.Number
			decl.HasUnit = true
			decl.Unit = numTok.Unit
		}
	}

	return decl
}
