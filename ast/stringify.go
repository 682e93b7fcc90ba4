package ast

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/mattcaisley/cssyntax/token"
)

// Stringify serializes a tree back to CSS text by concatenating each
// token's original source span (§4.4). It round-trips faithfully for
// anything the tokenizer produced but does not re-indent or otherwise
// "pretty print" — that was never part of this tree's job, grounded on
// the teacher's node-switch printer.
func Stringify(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Stylesheet:
		writeNode(b, v.Rules)
	case Rules:
		for _, r := range v {
			writeNode(b, r)
		}
	case *AtRule:
		b.WriteString("@" + v.Name)
		if len(v.Prelude) > 0 {
			b.WriteString(" ")
			writeNode(b, v.Prelude)
		}
		if v.Block != nil {
			writeNode(b, v.Block)
		} else {
			b.WriteString(";")
		}
	case *QualifiedRule:
		writeNode(b, v.Prelude)
		writeNode(b, v.Block)
	case *Declaration:
		b.WriteString(v.Name + ":")
		writeNode(b, v.Values)
		if v.Important {
			b.WriteString(" !important")
		}
	case ComponentValues:
		for _, cv := range v {
			writeNode(b, cv)
		}
	case *SimpleBlock:
		open, close := blockDelims(v.Open)
		b.WriteString(open)
		writeNode(b, v.Values)
		b.WriteString(close)
	case *FunctionValue:
		b.WriteString(v.Name + "(")
		writeNode(b, v.Values)
		b.WriteString(")")
	case *TokenValue:
		b.WriteString(v.Token.Source)
	default:
		panic(fmt.Sprintf("ast: Stringify: unhandled node type %T", n))
	}
}

func blockDelims(open token.Kind) (string, string) {
	switch open {
	case token.LBracket:
		return "[", "]"
	case token.LParen:
		return "(", ")"
	default:
		return "{", "}"
	}
}

// Dump renders n as an indented ASCII tree for debugging, grounded on
// the same node vocabulary as Stringify but meant for a human reader
// rather than round-tripping.
func Dump(n Node) string {
	root := treeprint.New()
	dumpNode(root, n)
	return root.String()
}

func dumpNode(branch treeprint.Tree, n Node) {
	switch v := n.(type) {
	case Stylesheet:
		dumpNode(branch.AddBranch("Stylesheet"), v.Rules)
	case Rules:
		for _, r := range v {
			dumpNode(branch, r)
		}
	case *AtRule:
		b := branch.AddBranch(fmt.Sprintf("AtRule @%s", v.Name))
		if len(v.Prelude) > 0 {
			dumpNode(b.AddBranch("Prelude"), v.Prelude)
		}
		if v.Block != nil {
			dumpNode(b, v.Block)
		}
	case *QualifiedRule:
		b := branch.AddBranch("QualifiedRule")
		dumpNode(b.AddBranch("Prelude"), v.Prelude)
		dumpNode(b, v.Block)
	case *Declaration:
		branch.AddNode(fmt.Sprintf("Declaration %s important=%v: %s", v.Name, v.Important, Stringify(v.Values)))
	case ComponentValues:
		for _, cv := range v {
			dumpNode(branch, cv)
		}
	case *SimpleBlock:
		open, close := blockDelims(v.Open)
		dumpNode(branch.AddBranch(fmt.Sprintf("SimpleBlock %s%s", open, close)), v.Values)
	case *FunctionValue:
		dumpNode(branch.AddBranch(fmt.Sprintf("Function %s()", v.Name)), v.Values)
	case *TokenValue:
		branch.AddNode(fmt.Sprintf("Token %s %q", v.Token.Kind, v.Token.Source))
	}
}
