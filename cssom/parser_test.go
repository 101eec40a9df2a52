package cssom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
)

func parse(t *testing.T, src string) []cssom.Compound {
	toks, diags := token.Tokenize(src, true)
	require.Empty(t, diags)
	nodes := cssom.ParseComponentValues(toks)
	return cssom.ParseStylesheet(nodes, true)
}

func TestParseComponentValuesGroupsNestedBlocks(t *testing.T) {
	t.Parallel()
	toks, _ := token.Tokenize("(min-width: 400px)", true)
	nodes := cssom.ParseComponentValues(toks)
	require.Len(t, nodes, 1)
	block, ok := nodes[0].(cssom.Block)
	require.True(t, ok)
	assert.Equal(t, token.KindLeftParen, block.OpenKind)
	assert.Equal(t, token.KindRightParen, block.CloseKind())
	assert.NotEmpty(t, block.Children)
}

func TestParseComponentValuesGroupsFunction(t *testing.T) {
	t.Parallel()
	toks, _ := token.Tokenize("calc(1px + 2px)", true)
	nodes := cssom.ParseComponentValues(toks)
	require.Len(t, nodes, 1)
	fn, ok := nodes[0].(cssom.Function)
	require.True(t, ok)
	assert.Equal(t, "calc", fn.Name)
	assert.NotEmpty(t, fn.Children)
}

func TestParseStylesheetQualifiedRule(t *testing.T) {
	t.Parallel()
	rules := parse(t, ".a { color: red; width: 10px }")
	require.Len(t, rules, 1)
	qr, ok := rules[0].(cssom.QualifiedRule)
	require.True(t, ok)
	assert.NotEmpty(t, qr.Prelude)

	decls := cssom.ParseDeclarationList(qr.Block.Children, true)
	require.Len(t, decls, 2)
	d0 := decls[0].(cssom.Declaration)
	assert.Equal(t, "color", d0.Name)
	assert.False(t, d0.Important)
	d1 := decls[1].(cssom.Declaration)
	assert.Equal(t, "width", d1.Name)
}

func TestParseDeclarationImportant(t *testing.T) {
	t.Parallel()
	rules := parse(t, ".a { color: red !important; }")
	qr := rules[0].(cssom.QualifiedRule)
	decls := cssom.ParseDeclarationList(qr.Block.Children, true)
	d := decls[0].(cssom.Declaration)
	assert.True(t, d.Important)
	assert.Equal(t, "color", d.Name)
}

func TestParseDeclarationListDropsEmptyValueDeclaration(t *testing.T) {
	t.Parallel()
	// spec.md end-to-end scenario: ".x { color: ; }" must drop the malformed
	// declaration while preserving sibling rules.
	rules := parse(t, ".x { color: ; } .y { color: blue; }")
	require.Len(t, rules, 2)

	xDecls := cssom.ParseDeclarationList(rules[0].(cssom.QualifiedRule).Block.Children, true)
	require.Len(t, xDecls, 1)
	_, invalid := xDecls[0].(cssom.Invalid)
	assert.True(t, invalid)

	yDecls := cssom.ParseDeclarationList(rules[1].(cssom.QualifiedRule).Block.Children, true)
	require.Len(t, yDecls, 1)
	d := yDecls[0].(cssom.Declaration)
	assert.Equal(t, "blue", func() string {
		l := d.Value[0].(cssom.Leaf)
		return l.Value
	}())
}

func TestParseAtRuleWithoutBlock(t *testing.T) {
	t.Parallel()
	rules := parse(t, `@import "foo.css"; .a {}`)
	require.Len(t, rules, 2)
	imp, ok := rules[0].(cssom.AtRule)
	require.True(t, ok)
	assert.Equal(t, "import", imp.Name)
	assert.Nil(t, imp.Block)
}

func TestParseAtRuleWithBlockAndNestedRuleList(t *testing.T) {
	t.Parallel()
	rules := parse(t, "@container sidebar (min-width: 400px) { .a { color: red; } }")
	require.Len(t, rules, 1)
	at, ok := rules[0].(cssom.AtRule)
	require.True(t, ok)
	assert.Equal(t, "container", at.Name)
	require.NotNil(t, at.Block)

	inner := cssom.ParseRuleList(at.Block.Children, true)
	require.Len(t, inner, 1)
	_, ok = inner[0].(cssom.QualifiedRule)
	assert.True(t, ok)
}

func TestParseRuleListDropsUnterminatedQualifiedRule(t *testing.T) {
	t.Parallel()
	toks, _ := token.Tokenize(".a { color: red; } .b", true)
	nodes := cssom.ParseComponentValues(toks)
	rules := cssom.ParseStylesheet(nodes, true)
	require.Len(t, rules, 2)
	_, ok := rules[0].(cssom.QualifiedRule)
	assert.True(t, ok)
	_, ok = rules[1].(cssom.Invalid)
	assert.True(t, ok, "a qualified rule with no trailing block must recover as Invalid")
}

func TestParseOneDeclaration(t *testing.T) {
	t.Parallel()
	toks, _ := token.Tokenize("color: blue", true)
	nodes := cssom.ParseComponentValues(toks)
	c := cssom.ParseOneDeclaration(nodes)
	d, ok := c.(cssom.Declaration)
	require.True(t, ok)
	assert.Equal(t, "color", d.Name)
}

func TestParseStylesheetDiscardsCDOCDC(t *testing.T) {
	t.Parallel()
	rules := parse(t, "<!-- .a {} -->")
	require.Len(t, rules, 1)
	_, ok := rules[0].(cssom.QualifiedRule)
	assert.True(t, ok)
}
