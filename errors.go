package cssyntax

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mattcaisley/cssyntax/token"
)

// Error is a recoverable parse anomaly found while interpreting a rule,
// such as a qualified rule with no block. A parse that produces Errors
// still returns a usable tree; see spec.md §3's "parsingErrors" field,
// exposed here as Stylesheet.Errors. An at-rule with no registered
// handler is returned as a GenericAtRule, not as an Error, and tokenizer
// anomalies (bad-string, bad-url) stay on scanner.Tokenizer.Errors; they
// are not copied into Stylesheet.Errors.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Pos.Line, e.Pos.Column)
}

// wrapFatal turns a recovered panic, such as the scanner's fatal
// condition (an escape inside an unquoted url), into an error carrying a
// stack trace, via github.com/pkg/errors. That condition is the only one
// that aborts a parse outright rather than being collected as a
// recoverable Error.
func wrapFatal(r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "cssyntax: fatal parse error")
	}
	return errors.Errorf("cssyntax: fatal parse error: %v", r)
}
