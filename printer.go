package cssyntax

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// String reconstructs the stylesheet's CSS text from its interpreted
// rules. It is not guaranteed to byte-match the original source (an
// ImportRule's media fragment and a GenericAtRule's prelude are stored
// already-trimmed), but it round-trips semantically.
func (s *Stylesheet) String() string {
	var b strings.Builder
	for i, r := range s.Rules {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(cssText(r))
	}
	return b.String()
}

func cssText(r CssRule) string {
	switch v := r.(type) {
	case *StyleRule:
		return v.String()
	case *ImportRule:
		return v.String()
	case *KeyframesRule:
		return v.String()
	case *GenericAtRule:
		return v.String()
	default:
		return ""
	}
}

// String renders a style rule as "selector, selector{decl;decl;...}".
func (r *StyleRule) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Selectors, ", "))
	b.WriteString("{")
	for i, d := range r.Declarations {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(d.String())
	}
	b.WriteString("}")
	return b.String()
}

// String renders a declaration as "name:value" (with a trailing
// "!important" when set).
func (d *Decl) String() string {
	s := d.Name + ":" + d.Value
	if d.Important {
		s += "!important"
	}
	return s
}

// String renders @import "url" media;.
func (r *ImportRule) String() string {
	s := fmt.Sprintf("@import %q", r.URL)
	if r.Media != "" {
		s += " " + r.Media
	}
	return s + ";"
}

// String renders @keyframes name{0%{...}100%{...}}.
func (r *KeyframesRule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s{", r.Name)
	for i, k := range r.Keyframes {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(k.String())
	}
	b.WriteString("}")
	return b.String()
}

// String renders one keyframe's selectors and its declarations.
func (k *Keyframe) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(k.Values, ", "))
	b.WriteString("{")
	for i, d := range k.Declarations {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(d.String())
	}
	b.WriteString("}")
	return b.String()
}

// String renders an uninterpreted at-rule from its stored source text.
func (r *GenericAtRule) String() string {
	s := "@" + r.Name
	if r.Prelude != "" {
		s += " " + r.Prelude
	}
	if r.HasBlock {
		return s + "{" + r.Block + "}"
	}
	return s + ";"
}

// Dump renders a stylesheet as an indented ASCII tree for debugging, the
// CSS-interpreted counterpart to ast.Dump.
func Dump(sheet *Stylesheet) string {
	root := treeprint.New()
	b := root.AddBranch("Stylesheet")
	for _, r := range sheet.Rules {
		dumpRule(b, r)
	}
	for _, e := range sheet.Errors {
		root.AddBranch("Errors").AddNode(e.Error())
	}
	return root.String()
}

func dumpRule(branch treeprint.Tree, r CssRule) {
	switch v := r.(type) {
	case *StyleRule:
		b := branch.AddBranch(fmt.Sprintf("StyleRule %q", strings.Join(v.Selectors, ", ")))
		for _, d := range v.Declarations {
			b.AddNode(d.String())
		}
	case *ImportRule:
		branch.AddNode(fmt.Sprintf("ImportRule %s", v.String()))
	case *KeyframesRule:
		b := branch.AddBranch(fmt.Sprintf("KeyframesRule %s", v.Name))
		for _, k := range v.Keyframes {
			kb := b.AddBranch(strings.Join(k.Values, ", "))
			for _, d := range k.Declarations {
				kb.AddNode(d.String())
			}
		}
	case *GenericAtRule:
		branch.AddNode(fmt.Sprintf("GenericAtRule %s", v.String()))
	}
}
