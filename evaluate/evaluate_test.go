package evaluate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdewolff-labs/cqpolyfill/container"
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/evaluate"
	"github.com/tdewolff-labs/cqpolyfill/token"
)

func rule(t *testing.T, prelude string) container.Rule {
	toks, diags := token.Tokenize(prelude, true)
	require.Empty(t, diags)
	nodes := cssom.ParseComponentValues(toks)
	r, err := container.ParseContainerRule(nodes)
	require.NoError(t, err)
	return r
}

func TestEvaluateWidthCompareTrue(t *testing.T) {
	t.Parallel()
	r := rule(t, "(width >= 200px)")
	got := evaluate.Evaluate(r, evaluate.QueryContext{Width: 300, HasWidth: true, Height: 100, HasHeight: true})
	assert.Equal(t, evaluate.True, got)
}

func TestEvaluateOrientationPortrait(t *testing.T) {
	t.Parallel()
	r := rule(t, "(orientation: portrait)")
	got := evaluate.Evaluate(r, evaluate.QueryContext{Width: 100, HasWidth: true, Height: 200, HasHeight: true})
	assert.Equal(t, evaluate.True, got)
}

func TestEvaluateAspectRatio(t *testing.T) {
	t.Parallel()
	r := rule(t, "(aspect-ratio >= 2)")
	got := evaluate.Evaluate(r, evaluate.QueryContext{Width: 400, HasWidth: true, Height: 100, HasHeight: true})
	assert.Equal(t, evaluate.True, got)
}

func TestEvaluateEmCoercion(t *testing.T) {
	t.Parallel()
	r := rule(t, "(width >= 10em)")
	ctx := evaluate.QueryContext{
		Width: 200, HasWidth: true, Height: 10, HasHeight: true,
		Tree: evaluate.TreeContext{FontSize: 16, RootFontSize: 16},
	}
	got := evaluate.Evaluate(r, ctx)
	assert.Equal(t, evaluate.True, got)
}

func TestEvaluateUnknownCqwScale(t *testing.T) {
	t.Parallel()
	r := rule(t, "(width >= 50cqw)")
	ctx := evaluate.QueryContext{Width: 500, HasWidth: true, Height: 10, HasHeight: true}
	got := evaluate.Evaluate(r, ctx)
	assert.Equal(t, evaluate.Unknown, got)
}

func TestEvaluateUnknownFeaturePropagates(t *testing.T) {
	t.Parallel()
	r := rule(t, "(height >= 100px) and (width >= 10px)")
	ctx := evaluate.QueryContext{Width: 500, HasWidth: true}
	got := evaluate.Evaluate(r, ctx)
	assert.Equal(t, evaluate.Unknown, got)
}

func TestEvaluateRangeMonotonicity(t *testing.T) {
	t.Parallel()
	r := rule(t, "(100px <= width <= 400px)")
	for w := 100.0; w <= 400.0; w += 50 {
		ctx := evaluate.QueryContext{Width: w, HasWidth: true, Height: 10, HasHeight: true}
		got := evaluate.Evaluate(r, ctx)
		assert.Equalf(t, evaluate.True, got, "width=%v should be inside [100,400]", w)
	}
	outside := evaluate.QueryContext{Width: 50, HasWidth: true, Height: 10, HasHeight: true}
	assert.Equal(t, evaluate.False, evaluate.Evaluate(r, outside))
}

func TestEvaluateAndShortCircuit(t *testing.T) {
	t.Parallel()
	r := rule(t, "(width >= 999px) and (height >= 1px)")
	ctx := evaluate.QueryContext{Width: 10, HasWidth: true, Height: 10, HasHeight: true}
	assert.Equal(t, evaluate.False, evaluate.Evaluate(r, ctx))
}

func TestEvaluateOrShortCircuit(t *testing.T) {
	t.Parallel()
	r := rule(t, "(width >= 1px) or (height >= 999px)")
	ctx := evaluate.QueryContext{Width: 10, HasWidth: true, Height: 10, HasHeight: true}
	assert.Equal(t, evaluate.True, evaluate.Evaluate(r, ctx))
}

func TestTristateBool(t *testing.T) {
	t.Parallel()
	v, ok := evaluate.True.Bool()
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = evaluate.False.Bool()
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = evaluate.Unknown.Bool()
	assert.False(t, ok)
}
