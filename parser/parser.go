// Package parser implements the CSS Syntax Module Level 3 syntax-level
// grammar (https://www.w3.org/TR/css-syntax-3/#parsing, §5): turning a
// token stream into the generic syntax tree defined by package ast.
//
// Reconsumption is modeled by argument passing rather than a scanner
// pushback: whenever the grammar says "reconsume the current input
// token", the already-read token.Token is simply passed as an argument
// to the next consume* call instead of being unread.
package parser

import (
	"fmt"
	"strings"

	"github.com/mattcaisley/cssyntax/ast"
	"github.com/mattcaisley/cssyntax/scanner"
	"github.com/mattcaisley/cssyntax/token"
)

// tokenSource is either the live tokenizer or a fixed list of tokens
// (used by the declaration sub-stream mechanism, §5.4.4).
type tokenSource interface {
	next() token.Token
}

type scannerSource struct {
	t *scanner.Tokenizer
}

func (s *scannerSource) next() token.Token { return s.t.Next() }

type sliceSource struct {
	toks []token.Token
	pos  int
}

func (s *sliceSource) next() token.Token {
	if s.pos >= len(s.toks) {
		return token.Token{Kind: token.EOF}
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok
}

// Parser consumes CSS syntax-level grammar from a source string.
type Parser struct {
	stack []tokenSource
}

// New returns a Parser reading from text.
func New(text string) *Parser {
	return &Parser{stack: []tokenSource{&scannerSource{t: scanner.New(text)}}}
}

func (p *Parser) next() token.Token {
	return p.stack[len(p.stack)-1].next()
}

// with pushes a fixed token list as the current source for the
// duration of fn, restoring the previous source afterwards even if fn
// panics (the fatal-error conditions raised by the scanner propagate
// through this unwind).
func (p *Parser) with(tokens []token.Token, fn func()) {
	p.stack = append(p.stack, &sliceSource{toks: tokens})
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()
	fn()
}

func (p *Parser) skipWhitespace() token.Token {
	for {
		tok := p.next()
		if tok.Kind != token.Whitespace {
			return tok
		}
	}
}

// --- entry points (§5.3) ----------------------------------------------

// ParseStylesheet implements "parse a stylesheet" (§5.3.3): a top-level
// list of rules in which CDO/CDC tokens are discarded.
func (p *Parser) ParseStylesheet() ast.Stylesheet {
	return ast.Stylesheet{Rules: p.consumeListOfRules(true)}
}

// ParseListOfRules implements "parse a list of rules" (§5.3.4): used
// when parsing the contents of an at-rule or style-rule body that
// itself contains rules (such as @media or @keyframes).
func (p *Parser) ParseListOfRules() ast.Rules {
	return p.consumeListOfRules(false)
}

// ParseRule implements "parse a rule" (§5.3.5).
func (p *Parser) ParseRule() (ast.Rule, error) {
	tok := p.skipWhitespace()
	if tok.Kind == token.EOF {
		return nil, fmt.Errorf("parser: unexpected EOF while parsing rule")
	}

	var rule ast.Rule
	if tok.Kind == token.AtKeyword {
		rule = p.consumeAtRule(tok)
	} else {
		qr := p.consumeQualifiedRule(tok)
		if qr == nil {
			return nil, fmt.Errorf("parser: EOF reached before qualified rule's block")
		}
		rule = qr
	}

	if tok = p.skipWhitespace(); tok.Kind != token.EOF {
		return nil, fmt.Errorf("parser: unexpected trailing input after rule")
	}
	return rule, nil
}

// ParseDeclaration implements "parse a declaration" (§5.3.6).
func (p *Parser) ParseDeclaration() (*ast.Declaration, error) {
	tok := p.skipWhitespace()
	if tok.Kind != token.Ident {
		return nil, fmt.Errorf("parser: expected ident, got %s", tok.Kind)
	}
	decl, ok := p.consumeDeclaration(tok)
	if !ok {
		return nil, fmt.Errorf("parser: malformed declaration")
	}
	return decl, nil
}

// ParseListOfDeclarations implements "parse a list of declarations"
// (§5.3.7): the contents of a style rule's block, or of at-rules whose
// grammar permits a mix of declarations and nested rules.
func (p *Parser) ParseListOfDeclarations() []ast.Node {
	return p.consumeListOfDeclarations()
}

// ParseComponentValue implements "parse a component value" (§5.3.8).
func (p *Parser) ParseComponentValue() (ast.ComponentValue, error) {
	tok := p.skipWhitespace()
	if tok.Kind == token.EOF {
		return nil, fmt.Errorf("parser: unexpected EOF")
	}
	cv := p.consumeComponentValue(tok)
	if tok = p.skipWhitespace(); tok.Kind != token.EOF {
		return nil, fmt.Errorf("parser: unexpected trailing input after component value")
	}
	return cv, nil
}

// ParseComponentValues implements "parse a list of component values"
// (§5.3.9).
func (p *Parser) ParseComponentValues() ast.ComponentValues {
	var values ast.ComponentValues
	for {
		tok := p.next()
		if tok.Kind == token.EOF {
			return values
		}
		values = append(values, p.consumeComponentValue(tok))
	}
}

// --- grammar (§5.4) -----------------------------------------------------

func (p *Parser) consumeListOfRules(topLevel bool) ast.Rules {
	var rules ast.Rules
	for {
		tok := p.next()
		switch tok.Kind {
		case token.Whitespace:
			continue
		case token.EOF:
			return rules
		case token.CDO, token.CDC:
			if topLevel {
				continue
			}
			if r := p.consumeQualifiedRule(tok); r != nil {
				rules = append(rules, r)
			}
		case token.AtKeyword:
			rules = append(rules, p.consumeAtRule(tok))
		default:
			if r := p.consumeQualifiedRule(tok); r != nil {
				rules = append(rules, r)
			}
		}
	}
}

func (p *Parser) consumeAtRule(first token.Token) *ast.AtRule {
	rule := &ast.AtRule{Name: first.Value, TokenPos: first.Pos}
	for {
		tok := p.next()
		switch tok.Kind {
		case token.Semicolon, token.EOF:
			return rule
		case token.LBrace:
			rule.Block = p.consumeSimpleBlockFrom(tok)
			return rule
		default:
			rule.Prelude = append(rule.Prelude, p.consumeComponentValue(tok))
		}
	}
}

func (p *Parser) consumeQualifiedRule(first token.Token) *ast.QualifiedRule {
	rule := &ast.QualifiedRule{TokenPos: first.Pos}
	tok := first
	for {
		switch tok.Kind {
		case token.EOF:
			return nil
		case token.LBrace:
			rule.Block = p.consumeSimpleBlockFrom(tok)
			return rule
		default:
			rule.Prelude = append(rule.Prelude, p.consumeComponentValue(tok))
		}
		tok = p.next()
	}
}

func (p *Parser) consumeListOfDeclarations() []ast.Node {
	var decls []ast.Node
	for {
		tok := p.next()
		switch tok.Kind {
		case token.Whitespace, token.Semicolon:
			continue
		case token.EOF:
			return decls
		case token.AtKeyword:
			decls = append(decls, p.consumeAtRule(tok))
		default:
			if decl := p.consumeDeclarationInList(tok); decl != nil {
				decls = append(decls, decl)
			}
		}
	}
}

// consumeDeclarationInList gathers the raw tokens up to the next
// semicolon or EOF into a fixed token list, then re-parses that list as
// a single declaration in a sub-stream. Tokens are gathered one by one,
// not as component values, so a semicolon nested inside a function or
// block also ends the list.
func (p *Parser) consumeDeclarationInList(first token.Token) *ast.Declaration {
	tmp := []token.Token{first}
	for first.Kind != token.Semicolon && first.Kind != token.EOF {
		first = p.next()
		tmp = append(tmp, first)
	}

	var decl *ast.Declaration
	p.with(tmp, func() {
		nameTok := p.next()
		if nameTok.Kind != token.Ident {
			return
		}
		if d, ok := p.consumeDeclaration(nameTok); ok {
			decl = d
		}
	})
	return decl
}

func (p *Parser) consumeDeclaration(nameTok token.Token) (*ast.Declaration, bool) {
	decl := &ast.Declaration{Name: nameTok.Value, TokenPos: nameTok.Pos}

	tok := p.skipWhitespace()
	if tok.Kind != token.Colon {
		return nil, false
	}

	for {
		tok = p.next()
		if tok.Kind == token.Semicolon || tok.Kind == token.EOF {
			break
		}
		decl.Values = append(decl.Values, p.consumeComponentValue(tok))
	}

	decl.Values, decl.Important = cleanImportantFlag(decl.Values)
	return decl, true
}

func (p *Parser) consumeComponentValue(tok token.Token) ast.ComponentValue {
	switch tok.Kind {
	case token.LBrace, token.LBracket, token.LParen:
		return p.consumeSimpleBlockFrom(tok)
	case token.Function:
		return p.consumeFunction(tok)
	default:
		return &ast.TokenValue{Token: tok}
	}
}

func (p *Parser) consumeSimpleBlockFrom(open token.Token) *ast.SimpleBlock {
	block := &ast.SimpleBlock{Open: open.Kind, TokenPos: open.Pos}
	closeKind := block.Close()

	for {
		tok := p.next()
		switch tok.Kind {
		case closeKind, token.EOF:
			return block
		default:
			block.Values = append(block.Values, p.consumeComponentValue(tok))
		}
	}
}

func (p *Parser) consumeFunction(nameTok token.Token) *ast.FunctionValue {
	fn := &ast.FunctionValue{Name: nameTok.Value, TokenPos: nameTok.Pos}
	for {
		tok := p.next()
		switch tok.Kind {
		case token.RParen, token.EOF:
			return fn
		default:
			fn.Values = append(fn.Values, p.consumeComponentValue(tok))
		}
	}
}

// cleanImportantFlag strips a trailing "!important" (whitespace
// tolerant, case insensitive per §5.4.6) from a declaration's values,
// along with any whitespace left before the "!".
func cleanImportantFlag(values ast.ComponentValues) (ast.ComponentValues, bool) {
	i := len(values)

	skipTrailingWS := func() {
		for i > 0 {
			tv, ok := values[i-1].(*ast.TokenValue)
			if !ok || tv.Token.Kind != token.Whitespace {
				return
			}
			i--
		}
	}

	skipTrailingWS()
	if i == 0 {
		return values, false
	}
	tv, ok := values[i-1].(*ast.TokenValue)
	if !ok || tv.Token.Kind != token.Ident || !strings.EqualFold(tv.Token.Value, "important") {
		return values, false
	}
	i--

	skipTrailingWS()
	if i == 0 {
		return values, false
	}
	tv, ok = values[i-1].(*ast.TokenValue)
	if !ok || tv.Token.Kind != token.Delim || tv.Token.Value != "!" {
		return values, false
	}
	i--

	skipTrailingWS()
	return values[:i], true
}
