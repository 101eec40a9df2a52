package cssom

import (
	"github.com/tdewolff-labs/cqpolyfill/token"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

// ParseStylesheet implements spec.md §4.B's top-level entry point: it reads
// a component-value list as a sequence of rules, discarding stray CDO/CDC
// tokens (HTML comment delimiters, tolerated only at this level for
// historical reasons).
func ParseStylesheet(nodes []Node, skipWhitespace bool) []Compound {
	return parseRules(nodes, skipWhitespace, true)
}

// ParseRuleList implements "consume a list of rules" for a context that is
// not the stylesheet top level (an @media body, for instance): CDO/CDC are
// ordinary, rule-starting tokens rather than being discarded.
func ParseRuleList(nodes []Node, skipWhitespace bool) []Compound {
	return parseRules(nodes, skipWhitespace, false)
}

func parseRules(nodes []Node, skipWhitespace, topLevel bool) []Compound {
	it := newNodeIter(nodes)
	var out []Compound
	for it.hasNext() {
		n := it.next()
		if isWhitespace(n) {
			if !skipWhitespace {
				out = append(out, Whitespace{pos: n.Pos()})
			}
			continue
		}
		if topLevel {
			if l, ok := n.(Leaf); ok && (l.Kind == token.KindCDO || l.Kind == token.KindCDC) {
				continue
			}
		}
		out = append(out, consumeRule(n, it))
	}
	return out
}

func consumeRule(first Node, it *nodeIter) Compound {
	if l, ok := first.(Leaf); ok && l.Kind == token.KindAtKeyword {
		return consumeAtRule(l, it)
	}
	qr, ok := consumeQualifiedRule(first, it)
	if !ok {
		return Invalid{pos: first.Pos(), Message: "end of input before qualified rule's block"}
	}
	return qr
}

func consumeAtRule(name Leaf, it *nodeIter) AtRule {
	r := AtRule{Name: name.Value, pos: name.Pos()}
	for it.hasNext() {
		n := it.peek()
		if l, ok := n.(Leaf); ok && l.Kind == token.KindSemicolon {
			it.next()
			return r
		}
		if b, ok := n.(Block); ok && b.OpenKind == token.KindLeftBrace {
			it.next()
			r.Block = &b
			return r
		}
		r.Prelude = append(r.Prelude, it.next())
	}
	return r
}

func consumeQualifiedRule(first Node, it *nodeIter) (QualifiedRule, bool) {
	qr := QualifiedRule{pos: first.Pos()}
	if b, ok := first.(Block); ok && b.OpenKind == token.KindLeftBrace {
		qr.Block = b
		return qr, true
	}
	qr.Prelude = append(qr.Prelude, first)
	for it.hasNext() {
		n := it.next()
		if b, ok := n.(Block); ok && b.OpenKind == token.KindLeftBrace {
			qr.Block = b
			return qr, true
		}
		qr.Prelude = append(qr.Prelude, n)
	}
	return QualifiedRule{}, false
}

// ParseDeclarationList implements "consume a list of declarations"
// (spec.md §4.B): the body of a qualified rule, or of an at-rule like
// @font-face whose block holds declarations rather than nested rules. At
// rules nested in a declaration-list (e.g. a nested @media) are returned
// alongside the declarations, per the CSS Nesting model.
func ParseDeclarationList(nodes []Node, skipWhitespace bool) []Compound {
	it := newNodeIter(nodes)
	var out []Compound
	for it.hasNext() {
		n := it.next()
		if isWhitespace(n) {
			if !skipWhitespace {
				out = append(out, Whitespace{pos: n.Pos()})
			}
			continue
		}
		if l, ok := n.(Leaf); ok && l.Kind == token.KindSemicolon {
			continue
		}
		if l, ok := n.(Leaf); ok && l.Kind == token.KindAtKeyword {
			out = append(out, consumeAtRule(l, it))
			continue
		}
		span := consumeDeclarationSpan(n, it)
		decl, ok := parseDeclaration(span)
		if !ok {
			out = append(out, Invalid{pos: n.Pos(), Message: "malformed declaration"})
			continue
		}
		out = append(out, decl)
	}
	return out
}

// consumeDeclarationSpan collects first plus every following node up to
// (and excluding) the next top-level ';' or end of input. Because nested
// brackets were already grouped into single Block/Function nodes by
// ParseComponentValues, a ';' inside a value's parentheses can never be
// mistaken for the declaration's terminator.
func consumeDeclarationSpan(first Node, it *nodeIter) []Node {
	span := []Node{first}
	for it.hasNext() {
		n := it.peek()
		if l, ok := n.(Leaf); ok && l.Kind == token.KindSemicolon {
			it.next()
			break
		}
		span = append(span, it.next())
	}
	return span
}

// ParseOneDeclaration implements "parse a declaration", used when a host
// already knows it has exactly one "name: value" pair (a style attribute's
// single entry, say) rather than a list.
func ParseOneDeclaration(nodes []Node) Compound {
	nodes = trimWhitespace(nodes)
	if len(nodes) == 0 {
		return Invalid{Message: "empty declaration"}
	}
	decl, ok := parseDeclaration(nodes)
	if !ok {
		return Invalid{pos: nodes[0].Pos(), Message: "malformed declaration"}
	}
	return decl
}

func parseDeclaration(span []Node) (Declaration, bool) {
	it := newNodeIter(span)
	first := it.nextSignificant()
	name, ok := first.(Leaf)
	if !ok || name.Kind != token.KindIdent {
		return Declaration{}, false
	}
	colon := it.nextSignificant()
	if colon == nil {
		return Declaration{}, false
	}
	cl, ok := colon.(Leaf)
	if !ok || cl.Kind != token.KindColon {
		return Declaration{}, false
	}
	value := trimWhitespace(it.rest())

	important := false
	if v, ok := stripImportant(value); ok {
		important = true
		value = trimWhitespace(v)
	}

	// A declaration whose value is empty after trimming is a parse error
	// (CSS Syntax's "consume a declaration": "if declaration's value is
	// empty, return nothing"), not a zero-value declaration.
	if len(value) == 0 {
		return Declaration{}, false
	}

	return Declaration{Name: name.Value, Value: value, Important: important, pos: name.Pos()}, true
}

// stripImportant recognizes a trailing "!important" (case-insensitive,
// whitespace allowed around '!') and returns the value with it removed.
func stripImportant(value []Node) ([]Node, bool) {
	trimmed := trimWhitespace(value)
	if len(trimmed) == 0 {
		return value, false
	}
	last, ok := trimmed[len(trimmed)-1].(Leaf)
	if !ok || last.Kind != token.KindIdent || utils.AsciiLower(last.Value) != "important" {
		return value, false
	}
	rest := trimWhitespace(trimmed[:len(trimmed)-1])
	if len(rest) == 0 {
		return value, false
	}
	bang, ok := rest[len(rest)-1].(Leaf)
	if !ok || bang.Kind != token.KindDelim || bang.Value != "!" {
		return value, false
	}
	return rest[:len(rest)-1], true
}

// ParseStylesheetString is a convenience wrapper combining token.Tokenize,
// ParseComponentValues and ParseStylesheet; most callers want this rather
// than the three-step pipeline.
func ParseStylesheetString(src string) ([]Compound, []token.Diagnostic) {
	toks, diags := token.Tokenize(src, true)
	nodes := ParseComponentValues(toks)
	return ParseStylesheet(nodes, true), diags
}
