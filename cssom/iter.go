package cssom

import "github.com/tdewolff-labs/cqpolyfill/token"

// nodeIter walks a []Node one item at a time, the way the teacher's
// tokenizer walked a byte slice: a single cursor, no backtracking beyond
// one-token lookahead.
type nodeIter struct {
	nodes []Node
	i     int
}

func newNodeIter(nodes []Node) *nodeIter {
	return &nodeIter{nodes: nodes}
}

func (it *nodeIter) hasNext() bool {
	return it.i < len(it.nodes)
}

func (it *nodeIter) peek() Node {
	if !it.hasNext() {
		return nil
	}
	return it.nodes[it.i]
}

func (it *nodeIter) next() Node {
	n := it.peek()
	if n != nil {
		it.i++
	}
	return n
}

// rest returns every remaining node without advancing the cursor.
func (it *nodeIter) rest() []Node {
	return it.nodes[it.i:]
}

func isWhitespace(n Node) bool {
	l, ok := n.(Leaf)
	return ok && l.Kind == token.KindWhitespace
}

// nextSignificant advances past whitespace and returns the next
// non-whitespace node, or nil at the end of input.
func (it *nodeIter) nextSignificant() Node {
	for it.hasNext() {
		n := it.next()
		if !isWhitespace(n) {
			return n
		}
	}
	return nil
}

// trimWhitespace drops leading and trailing whitespace leaves from nodes.
func trimWhitespace(nodes []Node) []Node {
	start := 0
	for start < len(nodes) && isWhitespace(nodes[start]) {
		start++
	}
	end := len(nodes)
	for end > start && isWhitespace(nodes[end-1]) {
		end--
	}
	return nodes[start:end]
}
