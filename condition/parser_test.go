package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdewolff-labs/cqpolyfill/condition"
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
)

func prelude(t *testing.T, src string) []cssom.Node {
	toks, diags := token.Tokenize(src, true)
	require.Empty(t, diags)
	return cssom.ParseComponentValues(toks)
}

func TestParseMediaFeatureBooleanForm(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(width)")
	block := nodes[0].(cssom.Block)
	n, err := condition.ParseMediaFeature(block.Children)
	require.NoError(t, err)
	ref, ok := n.(condition.FeatureRef)
	require.True(t, ok)
	assert.Equal(t, condition.FeatureWidth, ref.Feature)
}

func TestParseMediaFeaturePlainFormMinPrefix(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(min-width: 200px)")
	block := nodes[0].(cssom.Block)
	n, err := condition.ParseMediaFeature(block.Children)
	require.NoError(t, err)
	cmp, ok := n.(condition.Compare)
	require.True(t, ok)
	assert.Equal(t, condition.OpGe, cmp.Op)
	ref := cmp.Left.(condition.FeatureRef)
	assert.Equal(t, condition.FeatureWidth, ref.Feature)
	lit := cmp.Right.(condition.Literal)
	assert.Equal(t, condition.ValueDimension, lit.Value.Kind)
	assert.Equal(t, "px", lit.Value.Unit)
	assert.InDelta(t, 200.0, lit.Value.Number, 0.0001)
}

func TestParseMediaFeatureSingleSidedRangeFeatureFirst(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(width >= 10em)")
	block := nodes[0].(cssom.Block)
	n, err := condition.ParseMediaFeature(block.Children)
	require.NoError(t, err)
	cmp := n.(condition.Compare)
	assert.Equal(t, condition.OpGe, cmp.Op)
}

func TestParseMediaFeatureSingleSidedRangeValueFirst(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(400px > width)")
	block := nodes[0].(cssom.Block)
	n, err := condition.ParseMediaFeature(block.Children)
	require.NoError(t, err)
	cmp := n.(condition.Compare)
	// "400px > width" means width < 400px.
	assert.Equal(t, condition.OpLt, cmp.Op)
}

func TestParseMediaFeatureDoubleSidedRange(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(100px < width <= 400px)")
	block := nodes[0].(cssom.Block)
	n, err := condition.ParseMediaFeature(block.Children)
	require.NoError(t, err)
	and, ok := n.(condition.And)
	require.True(t, ok)
	lo := and.Left.(condition.Compare)
	hi := and.Right.(condition.Compare)
	assert.Equal(t, condition.OpGt, lo.Op)
	assert.Equal(t, condition.OpLe, hi.Op)
}

func TestParseMediaFeatureDoubleSidedRangeMismatchedDirectionsError(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(100px < width > 400px)")
	block := nodes[0].(cssom.Block)
	_, err := condition.ParseMediaFeature(block.Children)
	assert.Error(t, err)
}

func TestParseMediaFeatureRatioValue(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(aspect-ratio: 16/9)")
	block := nodes[0].(cssom.Block)
	n, err := condition.ParseMediaFeature(block.Children)
	require.NoError(t, err)
	cmp := n.(condition.Compare)
	lit := cmp.Right.(condition.Literal)
	assert.InDelta(t, 16.0/9.0, lit.Value.Number, 0.0001)
}

func TestParseMediaFeatureUnknownFeatureErrors(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(bogus-feature: 1px)")
	block := nodes[0].(cssom.Block)
	_, err := condition.ParseMediaFeature(block.Children)
	assert.Error(t, err)
}

func TestParseConditionAndOr(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(min-width: 200px) and (max-width: 400px)")
	n, err := condition.ParseCondition(nodes)
	require.NoError(t, err)
	_, ok := n.(condition.And)
	assert.True(t, ok)
}

func TestParseConditionMixedCombinatorsIsError(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "(width) and (height) or (orientation: portrait)")
	_, err := condition.ParseCondition(nodes)
	require.Error(t, err)
	assert.ErrorIs(t, err, condition.ErrMixedCombinators)
}

func TestParseConditionNot(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "not (width)")
	n, err := condition.ParseCondition(nodes)
	require.NoError(t, err)
	not, ok := n.(condition.Not)
	require.True(t, ok)
	// A lone "(width)" doesn't parse as a nested <condition>, so the
	// generic parser leaves it as an unresolved Literal; only container's
	// lowering pass reinterprets it as FeatureRef(width).
	lit, ok := not.Child.(condition.Literal)
	require.True(t, ok)
	assert.NotEmpty(t, lit.Raw)
}

func TestParseConditionNestedGrouping(t *testing.T) {
	t.Parallel()
	nodes := prelude(t, "((width) and (height))")
	n, err := condition.ParseCondition(nodes)
	require.NoError(t, err)
	_, ok := n.(condition.And)
	assert.True(t, ok)
}

func TestParseConditionUnresolvedBlockKeepsRawForRelowering(t *testing.T) {
	t.Parallel()
	// A block this generic parser can't resolve as a nested condition
	// becomes a Literal carrying the raw children for container's lowering
	// pass to retry as a feature.
	nodes := prelude(t, "(min-width: 200px)")
	n, err := condition.ParseCondition(nodes)
	require.NoError(t, err)
	lit, ok := n.(condition.Literal)
	require.True(t, ok)
	assert.Equal(t, condition.ValueUnknown, lit.Value.Kind)
	assert.NotEmpty(t, lit.Raw)
}
