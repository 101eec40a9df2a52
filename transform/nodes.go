package transform

import (
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
)

// flattenNodes is the inverse of cssom.ParseComponentValues: it walks a
// Node tree back into the flat token.Token stream token.Serialize expects.
func flattenNodes(nodes []cssom.Node, out *[]token.Token) {
	for _, n := range nodes {
		switch v := n.(type) {
		case cssom.Leaf:
			*out = append(*out, v.Token)
		case cssom.Block:
			*out = append(*out, token.Token{Kind: v.OpenKind, Pos: v.Pos()})
			flattenNodes(v.Children, out)
			*out = append(*out, token.Token{Kind: v.CloseKind()})
		case cssom.Function:
			*out = append(*out, token.Token{Kind: token.KindFunction, Value: v.Name, Pos: v.Pos()})
			flattenNodes(v.Children, out)
			*out = append(*out, token.Token{Kind: token.KindRightParen})
		}
	}
}

func toTokens(nodes []cssom.Node) []token.Token {
	var toks []token.Token
	flattenNodes(nodes, &toks)
	toks = append(toks, token.Token{Kind: token.KindEOF})
	return toks
}

func serializeNodes(nodes []cssom.Node) string {
	return token.Serialize(toTokens(nodes))
}

// compoundsToNodes is the inverse of cssom.ParseStylesheet/ParseRuleList/
// ParseDeclarationList: it renders a rule-tree back into the flat node
// sequence that belongs inside a containing Block (or at the top of a
// stylesheet), ready for serializeNodes.
func compoundsToNodes(compounds []cssom.Compound) []cssom.Node {
	var out []cssom.Node
	for i, c := range compounds {
		if i > 0 {
			out = append(out, wsLeaf())
		}
		out = append(out, compoundToNodes(c)...)
	}
	return out
}

func compoundToNodes(c cssom.Compound) []cssom.Node {
	switch v := c.(type) {
	case cssom.AtRule:
		out := []cssom.Node{leaf(token.Token{Kind: token.KindAtKeyword, Value: v.Name})}
		if len(v.Prelude) > 0 {
			out = append(out, wsLeaf())
			out = append(out, v.Prelude...)
		}
		if v.Block != nil {
			out = append(out, wsLeaf(), *v.Block)
		} else {
			out = append(out, leaf(token.Token{Kind: token.KindSemicolon}))
		}
		return out
	case cssom.QualifiedRule:
		out := append([]cssom.Node{}, v.Prelude...)
		out = append(out, wsLeaf(), v.Block)
		return out
	case cssom.Declaration:
		out := declarationNodes(v)
		out = append(out, leaf(token.Token{Kind: token.KindSemicolon}))
		return out
	case cssom.Whitespace:
		return []cssom.Node{wsLeaf()}
	default:
		// cssom.Invalid: the dropped sub-tree simply contributes nothing.
		return nil
	}
}

// declarationNodes renders "name: value[ !important]" without a trailing
// semicolon, for use both inside a declaration list and inside a
// "@supports (...)" parenthesized feature test.
func declarationNodes(d cssom.Declaration) []cssom.Node {
	out := []cssom.Node{leaf(token.Token{Kind: token.KindIdent, Value: d.Name}), leaf(token.Token{Kind: token.KindColon}), wsLeaf()}
	out = append(out, d.Value...)
	if d.Important {
		out = append(out, wsLeaf(), delimLeaf("!"), leaf(token.Token{Kind: token.KindIdent, Value: "important"}))
	}
	return out
}
