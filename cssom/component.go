package cssom

import "github.com/tdewolff-labs/cqpolyfill/token"

// ParseComponentValues groups a flat token stream into the component-value
// tree (spec.md §4.B "consume a list of component values"): matching
// bracket pairs become Block nodes and function-token/')' pairs become
// Function nodes, everything else passes through as a Leaf. The input is
// expected to end with a KindEOF token, as returned by token.Tokenize.
func ParseComponentValues(toks []token.Token) []Node {
	c := &cursor{toks: toks}
	var out []Node
	for !c.atEOF() {
		out = append(out, consumeComponentValue(c))
	}
	return out
}

type cursor struct {
	toks []token.Token
	i    int
}

func (c *cursor) atEOF() bool {
	return c.i >= len(c.toks) || c.toks[c.i].Kind == token.KindEOF
}

func (c *cursor) peek() token.Token {
	if c.i >= len(c.toks) {
		return token.Token{Kind: token.KindEOF}
	}
	return c.toks[c.i]
}

func (c *cursor) next() token.Token {
	t := c.peek()
	if c.i < len(c.toks) {
		c.i++
	}
	return t
}

func consumeComponentValue(c *cursor) Node {
	t := c.next()
	switch t.Kind {
	case token.KindLeftParen:
		return consumeBlock(c, token.KindLeftParen, token.KindRightParen, t.Pos)
	case token.KindLeftBrace:
		return consumeBlock(c, token.KindLeftBrace, token.KindRightBrace, t.Pos)
	case token.KindLeftBracket:
		return consumeBlock(c, token.KindLeftBracket, token.KindRightBracket, t.Pos)
	case token.KindFunction:
		return consumeFunction(c, t)
	default:
		return Leaf{t}
	}
}

// consumeBlock implements "consume a simple block": it reads component
// values until the matching close-bracket kind (or EOF, which the CSS
// Syntax algorithm tolerates rather than rejects).
func consumeBlock(c *cursor, open, closeKind token.Kind, pos token.Pos) Node {
	var children []Node
	for {
		if c.atEOF() || c.peek().Kind == closeKind {
			if !c.atEOF() {
				c.next()
			}
			break
		}
		children = append(children, consumeComponentValue(c))
	}
	return Block{OpenKind: open, Children: children, pos: pos}
}

func consumeFunction(c *cursor, fn token.Token) Node {
	var children []Node
	for {
		if c.atEOF() || c.peek().Kind == token.KindRightParen {
			if !c.atEOF() {
				c.next()
			}
			break
		}
		children = append(children, consumeComponentValue(c))
	}
	return Function{Name: fn.Value, Children: children, pos: fn.Pos}
}
