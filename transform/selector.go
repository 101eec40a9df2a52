package transform

import (
	"strings"

	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
)

// singleColonPseudoElements are the historical single-colon pseudo-elements
// that partition as pseudo-elements, per spec.md §4.G "Selector
// partitioning details".
var singleColonPseudoElements = map[string]bool{
	"before": true, "after": true, "first-line": true, "first-letter": true,
}

// partitionedSelector is one comma-separated component of a selector list,
// split at the pseudo-element boundary (spec.md §4.G).
type partitionedSelector struct {
	prefix       string // "*" when empty
	pseudoSuffix string // "" when there is none
}

// splitSelectorListNodes splits a raw prelude at every top-level comma into
// its comma-separated components, each still as a node sequence so
// partitionSelector can find the pseudo-element boundary.
func splitSelectorListNodes(nodes []cssom.Node) [][]cssom.Node {
	var out [][]cssom.Node
	var current []cssom.Node
	for _, n := range nodes {
		if l, ok := n.(cssom.Leaf); ok && l.Kind == token.KindComma {
			out = append(out, current)
			current = nil
			continue
		}
		current = append(current, n)
	}
	out = append(out, current)
	return out
}

// partitionSelector splits one selector's node sequence into a non-pseudo
// prefix and an optional pseudo-element suffix (spec.md §4.G).
func partitionSelector(nodes []cssom.Node) partitionedSelector {
	trimmed := trimWhitespaceNodes(nodes)
	splitAt := len(trimmed)
	for i := 0; i < len(trimmed); i++ {
		l, ok := trimmed[i].(cssom.Leaf)
		if !ok || l.Kind != token.KindColon {
			continue
		}
		if i+1 < len(trimmed) {
			if l2, ok2 := trimmed[i+1].(cssom.Leaf); ok2 && l2.Kind == token.KindColon {
				// "::" always starts the pseudo-element suffix.
				splitAt = i
				break
			}
			if id, ok2 := trimmed[i+1].(cssom.Leaf); ok2 && id.Kind == token.KindIdent && singleColonPseudoElements[strings.ToLower(id.Value)] {
				splitAt = i
				break
			}
		}
	}

	prefix := strings.TrimSpace(serializeNodes(trimmed[:splitAt]))
	suffix := strings.TrimSpace(serializeNodes(trimmed[splitAt:]))
	if prefix == "" {
		prefix = "*"
	}
	return partitionedSelector{prefix: prefix, pseudoSuffix: suffix}
}

// sentinelPseudo is the specificity marker spec.md §4.G's :where()-unsupported
// fallback expects an author to pre-attach to a selector: it opts that
// selector into style-selector tagging without relying on :where() to zero
// the attribute check's specificity.
const sentinelPseudo = ":not(.container-query-polyfill)"

// styleSelector builds "<prefix>:where([<attr>~=\"<uid>\"])<pseudo-suffix>"
// per spec.md §4.G. When whereUnsupported is true, the attribute check is
// appended directly instead of being wrapped in :where(); ok is false when
// the prefix hasn't pre-attached sentinelPseudo, since the check would then
// change the selector's specificity.
func styleSelector(p partitionedSelector, selfAttr, uid string, whereUnsupported bool) (styled string, ok bool) {
	check := "[" + selfAttr + `~="` + uid + `"]`

	if !whereUnsupported {
		return p.prefix + ":where(" + check + ")" + p.pseudoSuffix, true
	}
	if !strings.Contains(p.prefix, sentinelPseudo) {
		return "", false
	}
	return p.prefix + check + p.pseudoSuffix, true
}

func trimWhitespaceNodes(nodes []cssom.Node) []cssom.Node {
	start := 0
	for start < len(nodes) && isWhitespaceNode(nodes[start]) {
		start++
	}
	end := len(nodes)
	for end > start && isWhitespaceNode(nodes[end-1]) {
		end--
	}
	return nodes[start:end]
}

func isWhitespaceNode(n cssom.Node) bool {
	l, ok := n.(cssom.Leaf)
	return ok && l.Kind == token.KindWhitespace
}
