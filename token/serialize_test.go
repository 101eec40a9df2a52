package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdewolff-labs/cqpolyfill/token"
)

func roundTrip(t *testing.T, src string) string {
	toks, diags := token.Tokenize(src, true)
	require.Empty(t, diags)
	return token.Serialize(toks)
}

func TestSerializeRoundTripsSimpleRule(t *testing.T) {
	t.Parallel()
	out := roundTrip(t, ".a { color: red; }")
	assert.Equal(t, ".a { color: red; }", out)
}

func TestSerializeEscapesIdentStartingWithDigit(t *testing.T) {
	t.Parallel()
	toks := []token.Token{
		{Kind: token.KindIdent, Value: "1a"},
		{Kind: token.KindEOF},
	}
	out := token.Serialize(toks)
	// re-tokenizing out must produce the same ident value back
	reToks, diags := token.Tokenize(out, true)
	require.Empty(t, diags)
	require.Equal(t, token.KindIdent, reToks[0].Kind)
	assert.Equal(t, "1a", reToks[0].Value)
}

func TestSerializeInsertsCommentBetweenAmbiguousTokens(t *testing.T) {
	t.Parallel()
	toks := []token.Token{
		{Kind: token.KindIdent, Value: "foo"},
		{Kind: token.KindIdent, Value: "bar"},
		{Kind: token.KindEOF},
	}
	out := token.Serialize(toks)
	reToks, diags := token.Tokenize(out, true)
	require.Empty(t, diags)
	require.Len(t, reToks, 3) // ident, ident, EOF — not merged into one ident
	assert.Equal(t, "foo", reToks[0].Value)
	assert.Equal(t, "bar", reToks[1].Value)
}

func TestSerializeDimensionDisambiguatesExponentLookingUnit(t *testing.T) {
	t.Parallel()
	toks := []token.Token{
		{Kind: token.KindDimension, Number: 3, Representation: "3", IsInteger: true, Unit: "e2x"},
		{Kind: token.KindEOF},
	}
	out := token.Serialize(toks)
	reToks, diags := token.Tokenize(out, true)
	require.Empty(t, diags)
	require.Equal(t, token.KindDimension, reToks[0].Kind)
	assert.Equal(t, "e2x", reToks[0].Unit)
}

func TestSerializePreservesNumericRepresentation(t *testing.T) {
	t.Parallel()
	out := roundTrip(t, "3.0px")
	assert.Contains(t, out, "3.0")
}

func TestSerializeStringEscapesQuotes(t *testing.T) {
	t.Parallel()
	toks := []token.Token{
		{Kind: token.KindString, Value: `say "hi"`},
		{Kind: token.KindEOF},
	}
	out := token.Serialize(toks)
	assert.Equal(t, `"say \"hi\""`, out)
}
