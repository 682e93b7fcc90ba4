// Package scanner implements the CSS Syntax Module Level 3 tokenizer
// (https://www.w3.org/TR/css-syntax-3/#tokenizing-and-parsing-css, §4).
//
// It scans a CSS source string into a lazy stream of token.Token values.
// A Tokenizer is stateless with respect to grammar: it only tracks a
// read cursor, the start of the token currently being produced, and a
// line/column bookkeeping cache. It never returns a Go error for
// malformed input (see spec.md §4.1's error policy) except for one fatal
// condition, an escape sequence inside an unquoted url(), which is
// reported by panicking with *FatalError; callers that want those reported as a normal error
// value should recover at their API boundary (the root cssyntax package
// does this for its exported entry points).
package scanner

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mattcaisley/cssyntax/token"
)

// eof is the sentinel rune returned by read past the end of input.
const eof rune = -1

// Error describes a recoverable tokenizer anomaly (bad-string, bad-url,
// an unescaped backslash before a newline, …). These never abort a parse;
// they are collected for diagnostic purposes only.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return e.Message }

// FatalError is raised (via panic) for the one fatal tokenizer
// condition: an escape sequence inside an unquoted url() value.
// Callers should recover at the API boundary.
type FatalError struct {
	Message string
	Pos     token.Position
}

func (e *FatalError) Error() string { return e.Message }

// Tokenizer scans CSS source text into tokens one at a time.
//
// A Tokenizer is reusable: calling Reset replaces the source text and
// rewinds all cursors, so a single instance can be shared across parses
// on the same goroutine. A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	// Errors accumulates recoverable anomalies encountered while scanning.
	Errors []*Error

	src     string // original source, used to slice Token.Source verbatim
	runes   []rune // src decoded and preprocessed per §3.3
	byteOff []int  // byteOff[i] is the byte offset in src where runes[i] starts

	lineStart []int // lineStart[n] is the rune index where line n+1 begins
	lineHint  int   // last line looked up, for fast sequential scans

	idx int // index into runes of the next unread code point
}

// New returns a new Tokenizer positioned at the start of text.
func New(text string) *Tokenizer {
	t := &Tokenizer{}
	t.Reset(text)
	return t
}

// Reset reinitializes the tokenizer to scan text from the beginning,
// discarding any accumulated errors.
func (t *Tokenizer) Reset(text string) {
	t.src = text
	t.runes = t.runes[:0]
	t.byteOff = t.byteOff[:0]
	t.lineStart = append(t.lineStart[:0], 0)
	t.lineHint = 0
	t.idx = 0
	t.Errors = nil

	for i := 0; i < len(text); {
		ch, size := utf8.DecodeRuneInString(text[i:])
		if ch == utf8.RuneError && size <= 1 {
			t.runes = append(t.runes, utf8.RuneError)
			t.byteOff = append(t.byteOff, i)
			i++
			continue
		}

		start := i
		i += size
		switch ch {
		case '\f':
			ch = '\n'
		case '\r':
			ch = '\n'
			if i < len(text) && text[i] == '\n' {
				i++
			}
		case 0:
			ch = utf8.RuneError
		}

		t.runes = append(t.runes, ch)
		t.byteOff = append(t.byteOff, start)
		if ch == '\n' {
			t.lineStart = append(t.lineStart, len(t.runes))
		}
	}
	t.byteOff = append(t.byteOff, len(text)) // sentinel for EOF slicing
}

// Tokenize materializes every token in text, including the trailing EOF.
func Tokenize(text string) []token.Token {
	t := New(text)
	var out []token.Token
	for {
		tok := t.Next()
		out = append(out, tok)
		if tok.IsEOF() {
			return out
		}
	}
}

// Next scans and returns the next token, or a token.EOF token once the
// source is exhausted.
func (t *Tokenizer) Next() token.Token {
	for {
		startIdx := t.idx
		pos := t.nextPos()
		ch := t.read()

		switch {
		case ch == eof:
			return t.emit(token.EOF, startIdx, pos)
		case isWhitespace(ch):
			return t.scanWhitespace(startIdx, pos)
		case ch == '"' || ch == '\'':
			return t.scanString(startIdx, pos, ch)
		case ch == '#':
			return t.scanHashToken(startIdx, pos)
		case ch == '$':
			return t.scanMatchOp(startIdx, pos, ch, token.SuffixMatch)
		case ch == '*':
			return t.scanMatchOp(startIdx, pos, ch, token.SubstringMatch)
		case ch == '^':
			return t.scanMatchOp(startIdx, pos, ch, token.PrefixMatch)
		case ch == '~':
			return t.scanMatchOp(startIdx, pos, ch, token.IncludeMatch)
		case ch == ',':
			return t.emit(token.Comma, startIdx, pos)
		case ch == '-':
			ch1, ch2 := t.peekAt(0), t.peekAt(1)
			switch {
			case isDigit(ch1) || (ch1 == '.' && isDigit(ch2)):
				t.unread()
				return t.scanNumeric(startIdx, pos)
			case t.peekIdentAt(0):
				t.unread()
				return t.scanIdentLike(startIdx, pos)
			case ch1 == '-' && ch2 == '>':
				t.read()
				t.read()
				return t.emit(token.CDC, startIdx, pos)
			default:
				return t.delim(startIdx, pos, ch)
			}
		case ch == '/':
			if t.peekAt(0) == '*' {
				t.read()
				t.scanComment()
				continue
			}
			return t.delim(startIdx, pos, ch)
		case ch == ':':
			return t.emit(token.Colon, startIdx, pos)
		case ch == ';':
			return t.emit(token.Semicolon, startIdx, pos)
		case ch == '<':
			if t.peekAt(0) == '!' && t.peekAt(1) == '-' && t.peekAt(2) == '-' {
				t.read()
				t.read()
				t.read()
				return t.emit(token.CDO, startIdx, pos)
			}
			return t.delim(startIdx, pos, ch)
		case ch == '@':
			if t.peekIdentAt(0) {
				name := t.scanName()
				return t.emitNamed(token.AtKeyword, startIdx, pos, name)
			}
			return t.delim(startIdx, pos, ch)
		case ch == '(':
			return t.emit(token.LParen, startIdx, pos)
		case ch == ')':
			return t.emit(token.RParen, startIdx, pos)
		case ch == '[':
			return t.emit(token.LBracket, startIdx, pos)
		case ch == ']':
			return t.emit(token.RBracket, startIdx, pos)
		case ch == '{':
			return t.emit(token.LBrace, startIdx, pos)
		case ch == '}':
			return t.emit(token.RBrace, startIdx, pos)
		case ch == '\\':
			t.unread()
			if t.peekValidEscapeAt(0) {
				return t.scanIdentLike(startIdx, pos)
			}
			t.read()
			t.Errors = append(t.Errors, &Error{Message: "unescaped backslash before newline", Pos: pos})
			return t.delim(startIdx, pos, ch)
		case isDigit(ch):
			t.unread()
			return t.scanNumeric(startIdx, pos)
		case ch == '.':
			if isDigit(t.peekAt(0)) {
				t.unread()
				return t.scanNumeric(startIdx, pos)
			}
			return t.delim(startIdx, pos, ch)
		case ch == '+':
			ch1, ch2 := t.peekAt(0), t.peekAt(1)
			if isDigit(ch1) || (ch1 == '.' && isDigit(ch2)) {
				t.unread()
				return t.scanNumeric(startIdx, pos)
			}
			return t.delim(startIdx, pos, ch)
		case ch == 'u' || ch == 'U':
			ch1, ch2 := t.peekAt(0), t.peekAt(1)
			if ch1 == '+' && (isHexDigit(ch2) || ch2 == '?') {
				t.read()
				return t.scanUnicodeRange(startIdx, pos)
			}
			t.unread()
			return t.scanIdentLike(startIdx, pos)
		case isNameStart(ch):
			t.unread()
			return t.scanIdentLike(startIdx, pos)
		case ch == '|':
			if t.peekAt(0) == '=' {
				t.read()
				return t.emit(token.DashMatch, startIdx, pos)
			} else if t.peekAt(0) == '|' {
				t.read()
				return t.emit(token.Column, startIdx, pos)
			}
			return t.delim(startIdx, pos, ch)
		default:
			return t.delim(startIdx, pos, ch)
		}
	}
}

// emit builds a plain punctuator token with no extra payload.
func (t *Tokenizer) emit(kind token.Kind, startIdx int, pos token.Position) token.Token {
	return token.Token{Kind: kind, Source: t.span(startIdx), Pos: pos}
}

func (t *Tokenizer) emitNamed(kind token.Kind, startIdx int, pos token.Position, value string) token.Token {
	return token.Token{Kind: kind, Source: t.span(startIdx), Value: value, Pos: pos}
}

func (t *Tokenizer) delim(startIdx int, pos token.Position, ch rune) token.Token {
	return token.Token{Kind: token.Delim, Source: t.span(startIdx), Value: string(ch), Pos: pos}
}

func (t *Tokenizer) scanMatchOp(startIdx int, pos token.Position, ch rune, kind token.Kind) token.Token {
	if t.peekAt(0) == '=' {
		t.read()
		return t.emit(kind, startIdx, pos)
	}
	return t.delim(startIdx, pos, ch)
}

// scanWhitespace consumes the current code point (already read) and all
// subsequent whitespace, collapsing the run into a single token.
func (t *Tokenizer) scanWhitespace(startIdx int, pos token.Position) token.Token {
	for isWhitespace(t.peekAt(0)) {
		t.read()
	}
	return t.emit(token.Whitespace, startIdx, pos)
}

// scanString consumes a quoted string (§4.3.4). The opening quote has
// already been read; ending holds that quote rune.
func (t *Tokenizer) scanString(startIdx int, pos token.Position, ending rune) token.Token {
	var b strings.Builder
	for {
		ch := t.read()
		switch {
		case ch == eof || ch == ending:
			return token.Token{Kind: token.String, Source: t.span(startIdx), Value: b.String(), Ending: ending, Pos: pos}
		case ch == '\n':
			t.unread()
			t.Errors = append(t.Errors, &Error{Message: "unescaped newline in string", Pos: pos})
			return token.Token{Kind: token.BadString, Source: t.span(startIdx), Ending: ending, Pos: pos}
		case ch == '\\':
			if t.peekValidEscapeAt(-1) {
				b.WriteRune(t.scanEscape())
				continue
			}
			next := t.read()
			switch next {
			case eof:
				continue
			case '\n':
				// line continuation: consumed, nothing written
			default:
				b.WriteRune(next)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

// scanNumeric consumes a numeric token (§4.3.3); the current input token
// is a +, -, . or digit that has not yet been read.
func (t *Tokenizer) scanNumeric(startIdx int, pos token.Position) token.Token {
	num, typ := t.scanNumber()

	if t.peekIdentAt(0) {
		unit := t.scanName()
		return token.Token{
			Kind: token.Dimension, Source: t.span(startIdx),
			Number: num, NumberType: typ, Unit: unit, Pos: pos,
		}
	}
	if t.peekAt(0) == '%' {
		t.read()
		return token.Token{
			Kind: token.Percentage, Source: t.span(startIdx),
			Number: num, NumberType: typ, Pos: pos,
		}
	}
	return token.Token{
		Kind: token.Number, Source: t.span(startIdx),
		Number: num, NumberType: typ, Pos: pos,
	}
}

// scanNumber consumes the numeric grammar
// [+-]?(\d+\.\d+|\d+|\.\d+)([eE][+-]?\d+)? and parses it.
func (t *Tokenizer) scanNumber() (decimal.Decimal, string) {
	var b strings.Builder
	typ := "integer"

	if ch := t.peekAt(0); ch == '+' || ch == '-' {
		b.WriteRune(t.read())
	}
	b.WriteString(t.scanDigits())

	if t.peekAt(0) == '.' && isDigit(t.peekAt(1)) {
		typ = "number"
		b.WriteRune(t.read())
		b.WriteString(t.scanDigits())
	}

	if ch := t.peekAt(0); ch == 'e' || ch == 'E' {
		ch1 := t.peekAt(1)
		if isDigit(ch1) {
			typ = "number"
			b.WriteRune(t.read())
			b.WriteString(t.scanDigits())
		} else if (ch1 == '+' || ch1 == '-') && isDigit(t.peekAt(2)) {
			typ = "number"
			b.WriteRune(t.read())
			b.WriteRune(t.read())
			b.WriteString(t.scanDigits())
		}
	}

	repr := b.String()
	num, err := decimal.NewFromString(repr)
	if err != nil {
		num = decimal.Zero
	}
	return num, typ
}

func (t *Tokenizer) scanDigits() string {
	var b strings.Builder
	for isDigit(t.peekAt(0)) {
		b.WriteRune(t.read())
	}
	return b.String()
}

// scanComment consumes up to and including the closing "*/". The opening
// "/*" has already been consumed by the caller.
func (t *Tokenizer) scanComment() {
	for {
		ch := t.read()
		if ch == eof {
			return
		}
		if ch == '*' && t.peekAt(0) == '/' {
			t.read()
			return
		}
	}
}

// scanHashToken consumes a hash token (§4.3.5); the leading '#' has
// already been read.
func (t *Tokenizer) scanHashToken(startIdx int, pos token.Position) token.Token {
	if isName(t.peekAt(0)) || t.peekValidEscapeAt(0) {
		name := t.scanName()
		return token.Token{Kind: token.Hash, Source: t.span(startIdx), Value: name, Pos: pos}
	}
	return t.delim(startIdx, pos, '#')
}

// scanName consumes a name: contiguous name code points and escapes.
func (t *Tokenizer) scanName() string {
	var b strings.Builder
	for {
		if isName(t.peekAt(0)) {
			b.WriteRune(t.read())
		} else if t.peekValidEscapeAt(0) {
			t.read() // consume the backslash
			b.WriteRune(t.scanEscape())
		} else {
			return b.String()
		}
	}
}

// scanIdentLike consumes an ident-like token: ident, function, url or
// bad-url (§4.3.3's "consume an ident-like token").
func (t *Tokenizer) scanIdentLike(startIdx int, pos token.Position) token.Token {
	name := t.scanName()

	if strings.EqualFold(name, "url") && t.peekAt(0) == '(' {
		t.read()
		return t.scanURL(startIdx, pos)
	}
	if t.peekAt(0) == '(' {
		t.read()
		return token.Token{Kind: token.Function, Source: t.span(startIdx), Value: name, Pos: pos}
	}
	return token.Token{Kind: token.Ident, Source: t.span(startIdx), Value: name, Pos: pos}
}

// scanURL consumes the contents of a url(...) token; "url(" has already
// been consumed.
func (t *Tokenizer) scanURL(startIdx int, pos token.Position) token.Token {
	for isWhitespace(t.peekAt(0)) {
		t.read()
	}

	if ch := t.peekAt(0); ch == '"' || ch == '\'' {
		t.read()
		strTok := t.scanString(t.idx-1, pos, ch)
		if strTok.Kind == token.BadString {
			t.scanBadURLRemainder()
			return token.Token{Kind: token.BadURL, Source: t.span(startIdx), Pos: pos}
		}
		for isWhitespace(t.peekAt(0)) {
			t.read()
		}
		if ch := t.peekAt(0); ch == ')' {
			t.read()
		} else if ch != eof {
			t.scanBadURLRemainder()
			return token.Token{Kind: token.BadURL, Source: t.span(startIdx), Pos: pos}
		}
		return token.Token{Kind: token.URL, Source: t.span(startIdx), Value: strTok.Value, Pos: pos}
	}

	var b strings.Builder
	for {
		ch := t.read()
		switch {
		case ch == ')' || ch == eof:
			return token.Token{Kind: token.URL, Source: t.span(startIdx), Value: b.String(), Pos: pos}
		case isWhitespace(ch):
			for isWhitespace(t.peekAt(0)) {
				t.read()
			}
			if ch0 := t.peekAt(0); ch0 == ')' || ch0 == eof {
				if ch0 == ')' {
					t.read()
				}
				return token.Token{Kind: token.URL, Source: t.span(startIdx), Value: b.String(), Pos: pos}
			}
			t.Errors = append(t.Errors, &Error{Message: "whitespace inside unquoted url", Pos: pos})
			t.scanBadURLRemainder()
			return token.Token{Kind: token.BadURL, Source: t.span(startIdx), Pos: pos}
		case ch == '"' || ch == '\'' || ch == '(' || isNonPrintable(ch):
			t.Errors = append(t.Errors, &Error{Message: "invalid url code point", Pos: pos})
			t.scanBadURLRemainder()
			return token.Token{Kind: token.BadURL, Source: t.span(startIdx), Pos: pos}
		case ch == '\\':
			if t.peekValidEscapeAt(-1) {
				panic(&FatalError{Message: "escape sequences inside an unquoted url() are not supported", Pos: pos})
			}
			t.Errors = append(t.Errors, &Error{Message: "unescaped backslash in url", Pos: pos})
			t.scanBadURLRemainder()
			return token.Token{Kind: token.BadURL, Source: t.span(startIdx), Pos: pos}
		default:
			b.WriteRune(ch)
		}
	}
}

// scanBadURLRemainder recovers from a malformed url() by consuming up to
// the closing paren or EOF, honoring escapes so an escaped ')' doesn't
// terminate recovery early.
func (t *Tokenizer) scanBadURLRemainder() {
	for {
		ch := t.read()
		if ch == ')' || ch == eof {
			return
		}
		if ch == '\\' && t.peekValidEscapeAt(-1) {
			t.scanEscape()
		}
	}
}

// scanUnicodeRange consumes a unicode-range token (§4.3.8); "U+" has
// already been consumed.
func (t *Tokenizer) scanUnicodeRange(startIdx int, pos token.Position) token.Token {
	var b strings.Builder
	for i := 0; i < 6 && isHexDigit(t.peekAt(0)); i++ {
		b.WriteRune(t.read())
	}

	n := b.Len()
	for i := 0; i < 6-n && t.peekAt(0) == '?'; i++ {
		b.WriteRune(t.read())
	}

	if b.Len() > n {
		start, _ := strconv.ParseInt(strings.ReplaceAll(b.String(), "?", "0"), 16, 0)
		end, _ := strconv.ParseInt(strings.ReplaceAll(b.String(), "?", "F"), 16, 0)
		return token.Token{Kind: token.UnicodeRange, Source: t.span(startIdx), RangeStart: int(start), RangeEnd: int(end), Pos: pos}
	}

	start, _ := strconv.ParseInt(b.String(), 16, 0)

	if t.peekAt(0) == '-' && isHexDigit(t.peekAt(1)) {
		t.read()
		var eb strings.Builder
		for i := 0; i < 6 && isHexDigit(t.peekAt(0)); i++ {
			eb.WriteRune(t.read())
		}
		end, _ := strconv.ParseInt(eb.String(), 16, 0)
		return token.Token{Kind: token.UnicodeRange, Source: t.span(startIdx), RangeStart: int(start), RangeEnd: int(end), Pos: pos}
	}

	return token.Token{Kind: token.UnicodeRange, Source: t.span(startIdx), RangeStart: int(start), RangeEnd: int(start), Pos: pos}
}

// scanEscape consumes an escaped code point; the backslash has already
// been consumed.
func (t *Tokenizer) scanEscape() rune {
	ch := t.read()
	if isHexDigit(ch) {
		var b strings.Builder
		b.WriteRune(ch)
		for i := 0; i < 5; i++ {
			next := t.peekAt(0)
			if next == eof || isWhitespace(next) {
				break
			}
			if !isHexDigit(next) {
				break
			}
			b.WriteRune(t.read())
		}
		if isWhitespace(t.peekAt(0)) {
			t.read()
		}
		v, _ := strconv.ParseInt(b.String(), 16, 32)
		if v == 0 || v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
			return utf8.RuneError
		}
		return rune(v)
	}
	if ch == eof {
		return utf8.RuneError
	}
	return ch
}

// peekValidEscapeAt reports whether the code point n positions ahead of
// the cursor is a backslash starting a valid escape (i.e. not followed by
// a newline). n=0 checks the very next code point; n=-1 checks the code
// point just read.
func (t *Tokenizer) peekValidEscapeAt(n int) bool {
	if t.peekAt(n) != '\\' {
		return false
	}
	return t.peekAt(n+1) != '\n' && t.peekAt(n+1) != eof
}

// peekIdentAt reports whether a valid identifier starts n positions ahead.
func (t *Tokenizer) peekIdentAt(n int) bool {
	ch := t.peekAt(n)
	if ch == '-' {
		ch2 := t.peekAt(n + 1)
		return isNameStart(ch2) || t.peekValidEscapeAt(n+1)
	}
	if ch == '\\' {
		return t.peekAt(n+1) != '\n' && t.peekAt(n+1) != eof
	}
	return isNameStart(ch)
}

// --- low level cursor management -------------------------------------
//
// The source is preprocessed once, up front, into a flat []rune plus a
// table of line-start indices (see Reset). This lets read/unread/peek
// operate as plain index arithmetic with no pushback bookkeeping, and
// lets positions be computed on demand from an index instead of being
// threaded through every cursor movement.

// span returns the verbatim source text covering runes [startIdx, t.idx).
func (t *Tokenizer) span(startIdx int) string {
	end := len(t.src)
	if t.idx < len(t.byteOff) {
		end = t.byteOff[t.idx]
	}
	return t.src[t.byteOff[startIdx]:end]
}

// posAt computes the 1-based line/column of rune index i, caching the
// last line looked up so sequential forward scans stay near O(1).
func (t *Tokenizer) posAt(i int) token.Position {
	n := len(t.lineStart)
	if t.lineHint >= n {
		t.lineHint = n - 1
	}
	for t.lineHint+1 < n && t.lineStart[t.lineHint+1] <= i {
		t.lineHint++
	}
	for t.lineHint > 0 && t.lineStart[t.lineHint] > i {
		t.lineHint--
	}
	return token.Position{Line: t.lineHint + 1, Column: i - t.lineStart[t.lineHint] + 1}
}

// nextPos returns the position that will be reported for the code point
// about to be read.
func (t *Tokenizer) nextPos() token.Position {
	return t.posAt(t.idx)
}

// read consumes and returns the next code point.
func (t *Tokenizer) read() rune {
	if t.idx >= len(t.runes) {
		return eof
	}
	ch := t.runes[t.idx]
	t.idx++
	return ch
}

// unread pushes the most recently read code point back onto the cursor,
// so the next read() returns it again.
func (t *Tokenizer) unread() {
	if t.idx > 0 {
		t.idx--
	}
}

// peekAt returns the code point n positions ahead of the cursor without
// consuming it (n=0 is the next unread code point).
func (t *Tokenizer) peekAt(n int) rune {
	i := t.idx + n
	if i < 0 || i >= len(t.runes) {
		return eof
	}
	return t.runes[i]
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNonASCII(ch rune) bool { return ch >= 0x80 }

func isNameStart(ch rune) bool {
	return isLetter(ch) || isNonASCII(ch) || ch == '_'
}

func isName(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

func isNonPrintable(ch rune) bool {
	return (ch >= 0x00 && ch <= 0x08) || ch == 0x0B || (ch >= 0x0E && ch <= 0x1F) || ch == 0x7F
}
