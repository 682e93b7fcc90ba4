// Package ast defines the generic CSS syntax tree produced by the
// parser subpackage: the structures described in
// https://www.w3.org/TR/css-syntax-3/#parsing (§5) before any
// CSS-specific interpretation (style rules, at-rule bodies, …) has been
// applied.
package ast

import (
	"github.com/mattcaisley/cssyntax/token"
)

// Node is implemented by every tree element.
type Node interface {
	node()
	// Pos returns the position of the node's first token.
	Pos() token.Position
}

func (Stylesheet) node()      {}
func (Rules) node()           {}
func (*AtRule) node()         {}
func (*QualifiedRule) node()  {}
func (ComponentValues) node() {}
func (*SimpleBlock) node()    {}
func (*FunctionValue) node()  {}
func (*TokenValue) node()     {}
func (*Declaration) node()    {}

// Stylesheet is the root of the tree (§5.3.3 "parse a stylesheet").
type Stylesheet struct {
	Rules Rules
}

func (s Stylesheet) Pos() token.Position { return s.Rules.Pos() }

// Rules is a top-level or nested list of rules.
type Rules []Rule

func (r Rules) Pos() token.Position {
	if len(r) == 0 {
		return token.Position{}
	}
	return r[0].Pos()
}

// Rule is a qualified rule or an at-rule (§5.4.1).
type Rule interface {
	Node
	rule()
}

func (*AtRule) rule()        {}
func (*QualifiedRule) rule() {}

// AtRule is a rule introduced by an at-keyword (§5.4.2).
type AtRule struct {
	Name    string
	Prelude ComponentValues
	Block   *SimpleBlock // nil if the at-rule ended with ';'

	TokenPos token.Position
}

func (r *AtRule) Pos() token.Position { return r.TokenPos }

// QualifiedRule pairs a prelude with a mandatory simple block (§5.4.3).
type QualifiedRule struct {
	Prelude ComponentValues
	Block   *SimpleBlock

	TokenPos token.Position
}

func (r *QualifiedRule) Pos() token.Position { return r.TokenPos }

// ComponentValues is a list of component values, the contents of a
// prelude, a simple block or a function's arguments.
type ComponentValues []ComponentValue

func (vs ComponentValues) Pos() token.Position {
	if len(vs) == 0 {
		return token.Position{}
	}
	return vs[0].Pos()
}

// ComponentValue is a preserved token, a simple block or a function
// (§4.1's "component value").
type ComponentValue interface {
	Node
	componentValue()
}

func (*SimpleBlock) componentValue()   {}
func (*FunctionValue) componentValue() {}
func (*TokenValue) componentValue()    {}

// SimpleBlock is a matched pair of (), [] or {} and everything between
// them (§5.4.7). Open identifies which bracket kind started the block.
type SimpleBlock struct {
	Open   token.Kind // token.LBrace, token.LBracket or token.LParen
	Values ComponentValues

	TokenPos token.Position
}

func (b *SimpleBlock) Pos() token.Position { return b.TokenPos }

// Close returns the token kind that terminates this block.
func (b *SimpleBlock) Close() token.Kind {
	switch b.Open {
	case token.LBracket:
		return token.RBracket
	case token.LParen:
		return token.RParen
	default:
		return token.RBrace
	}
}

// FunctionValue is a function token together with its argument list
// (§5.4.8).
type FunctionValue struct {
	Name   string
	Values ComponentValues

	TokenPos token.Position
}

func (f *FunctionValue) Pos() token.Position { return f.TokenPos }

// TokenValue wraps a single preserved token so it can appear as a
// ComponentValue.
type TokenValue struct {
	Token token.Token
}

func (t *TokenValue) Pos() token.Position { return t.Token.Pos }

// Declaration is a name/value pair, optionally marked "!important"
// (§5.4.5, §5.4.6's declaration branch).
type Declaration struct {
	Name      string
	Values    ComponentValues
	Important bool

	TokenPos token.Position
}

func (d *Declaration) Pos() token.Position { return d.TokenPos }
