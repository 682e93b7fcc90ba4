package cssyntax

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mattcaisley/cssyntax/ast"
	"github.com/mattcaisley/cssyntax/parser"
	"github.com/mattcaisley/cssyntax/scanner"
	"github.com/mattcaisley/cssyntax/token"
)

// Tokenize runs the tokenizer alone (§4) and returns every token, ending
// with the EOF token. Recoverable anomalies found along the way are
// logged through the configured logger, not returned. A fatal condition (an
// escape sequence inside an unquoted url(), §4's one unrecoverable case)
// is returned as a non-nil error instead of a partial token list.
func Tokenize(text string, opts ...Option) (toks []token.Token, err error) {
	cfg := newConfig(opts...)
	log := cfg.Logger.WithField("parse_id", uuid.New().String())

	defer func() {
		if r := recover(); r != nil {
			toks = nil
			err = wrapFatal(r)
		}
	}()

	tz := scanner.New(text)
	for {
		tok := tz.Next()
		toks = append(toks, tok)
		if tok.IsEOF() {
			break
		}
	}

	for _, e := range tz.Errors {
		logAnomaly(log, cfg, e.Message, e.Pos)
	}
	return toks, nil
}

// ParseStylesheet runs the syntax-level grammar (§5) and returns the
// generic tree, with no CSS-specific interpretation applied.
func ParseStylesheet(text string, opts ...Option) (sheet *ast.Stylesheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapFatal(r)
		}
	}()

	s := parser.New(text).ParseStylesheet()
	return &s, nil
}

// ParseCSSStylesheet runs the full pipeline (tokenizer, syntax parser,
// CSS-stylesheet layer) and returns a tree of CssRule values: style
// rules, built-in at-rules (@import, @keyframes) and generic at-rules
// for anything else, per the registry described in RegisterAtRuleHandler.
func ParseCSSStylesheet(text string, opts ...Option) (sheet *Stylesheet, err error) {
	cfg := newConfig(opts...)
	log := cfg.Logger.WithField("parse_id", uuid.New().String())

	defer func() {
		if r := recover(); r != nil {
			err = wrapFatal(r)
		}
	}()

	p := NewParser(text, opts...)
	sheet = p.ParseStylesheet()
	for _, e := range sheet.Errors {
		logAnomaly(log, cfg, e.Message, e.Pos)
	}
	return sheet, nil
}

func logAnomaly(log *logrus.Entry, cfg *Config, msg string, pos token.Position) {
	fields := log.WithField("line", pos.Line).WithField("column", pos.Column)
	if cfg.Debug {
		fields.Debug(msg)
	} else {
		fields.Warn(msg)
	}
}
