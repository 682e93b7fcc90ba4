/*
Package cssyntax implements the CSS Syntax Module Level 3 tokenizer,
syntax-level parser and CSS-stylesheet layer. It is a low-level library
for turning raw CSS text into a tree, meant as a building block for
tools that validate, transform or inspect stylesheets.

Parsing happens in three stages, one package per stage:

  - token: the lexical tokens (idents, strings, numbers, punctuators, …)
  - ast: the generic syntax tree (stylesheets, rules, component values)
    built by the parser package, with no CSS-specific interpretation
  - this package: reinterprets that generic tree as CSS (style rules,
    declarations, at-rules) via an extensible at-rule handler registry

Unlike many language parsers, the generic syntax tree preserves many of
the original tokens so they can be reparsed at a different level. An
at-rule handler that needs to interpret its block as nested rules (as
the built-in @keyframes handler does) re-parses that block's stringified contents rather than
walking raw tokens a second time; see RegisterAtRuleHandler.

This package does not understand every at-rule's grammar — only @import
and @keyframes ship built in. Rules for any other at-rule keyword are
returned as a generic, uninterpreted rule unless the embedding program
registers its own handler.
*/
package cssyntax
