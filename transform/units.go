package transform

import (
	"math"
	"strconv"

	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

// cqCustomProperty names one of the internal custom properties every
// transpile run allocates, salted per Design Note "Custom-property names".
func cqCustomProperty(kind, salt string) string {
	return "--cq-" + kind + "-" + salt
}

var cqSingleAxisUnit = map[string]string{"cqw": "w", "cqh": "h", "cqi": "i", "cqb": "b"}

// rewriteContainerUnits recursively replaces every dimension token whose
// unit is a container-relative unit with the calc()/var() form spec.md
// §4.G's declaration rewrite requires, leaving every other node untouched.
func rewriteContainerUnits(nodes []cssom.Node, salt string) []cssom.Node {
	out := make([]cssom.Node, len(nodes))
	for i, n := range nodes {
		out[i] = rewriteContainerUnitsNode(n, salt)
	}
	return out
}

func rewriteContainerUnitsNode(n cssom.Node, salt string) cssom.Node {
	switch v := n.(type) {
	case cssom.Leaf:
		if v.Kind == token.KindDimension {
			if repl, ok := containerUnitCalc(v.Token, salt); ok {
				return repl
			}
		}
		return v
	case cssom.Block:
		return cssom.Block{OpenKind: v.OpenKind, Children: rewriteContainerUnits(v.Children, salt)}
	case cssom.Function:
		return cssom.Function{Name: v.Name, Children: rewriteContainerUnits(v.Children, salt)}
	default:
		return n
	}
}

func containerUnitCalc(t token.Token, salt string) (cssom.Node, bool) {
	switch utils.AsciiLower(t.Unit) {
	case "cqw", "cqh", "cqi", "cqb":
		varName := cqCustomProperty(cqSingleAxisUnit[utils.AsciiLower(t.Unit)], salt)
		return calcVarNode(t.Number, varName), true
	case "cqmin":
		return calcMinMaxNode(t.Number, salt, "min"), true
	case "cqmax":
		return calcMinMaxNode(t.Number, salt, "max"), true
	default:
		return nil, false
	}
}

func calcVarNode(n float64, varName string) cssom.Node {
	return cssom.Function{Name: "calc", Children: []cssom.Node{
		leaf(numberToken(n)), wsLeaf(), delimLeaf("*"), wsLeaf(),
		varFunc(varName),
	}}
}

func calcMinMaxNode(n float64, salt, fn string) cssom.Node {
	inlineVar := cqCustomProperty("i", salt)
	blockVar := cqCustomProperty("b", salt)
	return cssom.Function{Name: "calc", Children: []cssom.Node{
		leaf(numberToken(n)), wsLeaf(), delimLeaf("*"), wsLeaf(),
		cssom.Function{Name: fn, Children: []cssom.Node{
			varFunc(inlineVar), leaf(token.Token{Kind: token.KindComma}), wsLeaf(), varFunc(blockVar),
		}},
	}}
}

func varFunc(name string) cssom.Node {
	return cssom.Function{Name: "var", Children: []cssom.Node{leaf(token.Token{Kind: token.KindIdent, Value: name})}}
}

func leaf(t token.Token) cssom.Node { return cssom.Leaf{Token: t} }
func wsLeaf() cssom.Node            { return leaf(token.Token{Kind: token.KindWhitespace, Value: " "}) }
func delimLeaf(v string) cssom.Node { return leaf(token.Token{Kind: token.KindDelim, Value: v}) }

func numberToken(n float64) token.Token {
	repr := strconv.FormatFloat(n, 'g', -1, 64)
	return token.Token{
		Kind:           token.KindNumber,
		Number:         n,
		Representation: repr,
		IsInteger:      n == math.Trunc(n),
	}
}
