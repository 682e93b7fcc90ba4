package cssyntax

import (
	"strings"
	"sync"

	"github.com/mattcaisley/cssyntax/ast"
	"github.com/mattcaisley/cssyntax/token"
)

// AtRuleHandler interprets an already-parsed at-rule's prelude and block
// as a specific CssRule. It returns ok=false to decline the rule (e.g.
// because the prelude didn't match the shape it expects), in which case
// the caller falls back to a GenericAtRule.
type AtRuleHandler func(p *Parser, rule *ast.AtRule) (CssRule, bool)

var (
	registryMu sync.RWMutex
	registry   = map[string]AtRuleHandler{}
)

func init() {
	registry["import"] = importHandler
	registry["keyframes"] = keyframesHandler
	registry["-webkit-keyframes"] = keyframesHandler
}

// RegisterAtRuleHandler installs (or replaces) the handler used for
// at-rules named keyword (matched case-insensitively). Keywords without
// a registered handler are returned as a GenericAtRule instead of being
// dropped, so a caller can still inspect rules this package doesn't
// understand.
func RegisterAtRuleHandler(keyword string, handler AtRuleHandler) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(keyword)] = handler
}

func lookupAtRuleHandler(keyword string) (AtRuleHandler, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	h, ok := registry[strings.ToLower(keyword)]
	return h, ok
}

// importHandler interprets @import "url" media-query-fragment;. The
// media-query fragment is kept as source text: structured media-query
// parsing is out of this package's scope.
func importHandler(p *Parser, rule *ast.AtRule) (CssRule, bool) {
	prelude := rule.Prelude
	for len(prelude) > 0 {
		if tv, ok := prelude[0].(*ast.TokenValue); !ok || tv.Token.Kind != token.Whitespace {
			break
		}
		prelude = prelude[1:]
	}
	if len(prelude) == 0 {
		return nil, false
	}

	tv, ok := prelude[0].(*ast.TokenValue)
	if !ok || (tv.Token.Kind != token.String && tv.Token.Kind != token.URL) {
		return nil, false
	}

	media := strings.TrimSpace(ast.Stringify(prelude[1:]))
	return &ImportRule{URL: tv.Token.Value, Media: media}, true
}

// keyframesHandler interprets @keyframes name { 0% {...} 100% {...} }.
// Each keyframe selector list is itself a qualified rule under the
// generic grammar, so the block's contents are re-parsed with the same
// syntax parser used for a top-level stylesheet.
func keyframesHandler(p *Parser, rule *ast.AtRule) (CssRule, bool) {
	if rule.Block == nil {
		return nil, false
	}

	kr := &KeyframesRule{Name: strings.TrimSpace(ast.Stringify(rule.Prelude))}

	for _, r := range p.parseRulesFrom(rule.Block.Values) {
		qr, ok := r.(*ast.QualifiedRule)
		if !ok || qr.Block == nil {
			continue
		}
		frame := Keyframe{Values: splitSelectorGroups(qr.Prelude)}
		for _, n := range p.parseDeclarationsFrom(qr.Block.Values) {
			if d, ok := n.(*ast.Declaration); ok {
				frame.Declarations = append(frame.Declarations, declFromAST(d))
			}
		}
		kr.Keyframes = append(kr.Keyframes, frame)
	}

	return kr, true
}
