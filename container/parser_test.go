package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdewolff-labs/cqpolyfill/condition"
	"github.com/tdewolff-labs/cqpolyfill/container"
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
)

func componentValues(t *testing.T, src string) []cssom.Node {
	toks, diags := token.Tokenize(src, true)
	require.Empty(t, diags)
	return cssom.ParseComponentValues(toks)
}

func TestParseContainerRuleBasicMinWidth(t *testing.T) {
	t.Parallel()
	rule, err := container.ParseContainerRule(componentValues(t, "(min-width: 200px)"))
	require.NoError(t, err)
	assert.Equal(t, "", rule.Name)
	cmp, ok := rule.Condition.(condition.Compare)
	require.True(t, ok)
	assert.Equal(t, condition.OpGe, cmp.Op)
	assert.True(t, rule.Features[condition.FeatureWidth])
}

func TestParseContainerRuleWithName(t *testing.T) {
	t.Parallel()
	rule, err := container.ParseContainerRule(componentValues(t, "sidebar (min-width: 400px)"))
	require.NoError(t, err)
	assert.Equal(t, "sidebar", rule.Name)
}

func TestParseContainerRuleReservedNameRejected(t *testing.T) {
	t.Parallel()
	_, err := container.ParseContainerRule(componentValues(t, "none (min-width: 400px)"))
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrReservedName)
}

func TestParseContainerRuleBooleanFeatureLowersFromRawBlock(t *testing.T) {
	t.Parallel()
	rule, err := container.ParseContainerRule(componentValues(t, "not (width)"))
	require.NoError(t, err)
	not, ok := rule.Condition.(condition.Not)
	require.True(t, ok)
	ref, ok := not.Child.(condition.FeatureRef)
	require.True(t, ok, "container's lowering pass must reinterpret the raw block as a feature")
	assert.Equal(t, condition.FeatureWidth, ref.Feature)
	assert.True(t, rule.Features[condition.FeatureWidth])
}

func TestParseContainerNamePropertyList(t *testing.T) {
	t.Parallel()
	v, err := container.ParseContainerNameProperty(componentValues(t, "card sidebar"), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"card", "sidebar"}, v.Names)
}

func TestParseContainerNamePropertyNone(t *testing.T) {
	t.Parallel()
	v, err := container.ParseContainerNameProperty(componentValues(t, "none"), true)
	require.NoError(t, err)
	assert.Empty(t, v.Names)
	assert.NotNil(t, v.Names)
}

func TestParseContainerNamePropertyCSSWide(t *testing.T) {
	t.Parallel()
	v, err := container.ParseContainerNameProperty(componentValues(t, "inherit"), true)
	require.NoError(t, err)
	assert.Equal(t, "inherit", v.CSSWide)
}

func TestParseContainerTypePropertyKeywords(t *testing.T) {
	t.Parallel()
	v, err := container.ParseContainerTypeProperty(componentValues(t, "size"), true)
	require.NoError(t, err)
	require.Len(t, v.Types, 1)
	assert.Equal(t, container.TypeSize, v.Types[0])
}

func TestParseContainerShorthandNamesAndTypes(t *testing.T) {
	t.Parallel()
	v, err := container.ParseContainerShorthand(componentValues(t, "card / size"))
	require.NoError(t, err)
	assert.Equal(t, []string{"card"}, v.Names.Names)
	require.Len(t, v.Types.Types, 1)
	assert.Equal(t, container.TypeSize, v.Types.Types[0])
}

func TestParseContainerShorthandNamesOnly(t *testing.T) {
	t.Parallel()
	v, err := container.ParseContainerShorthand(componentValues(t, "card"))
	require.NoError(t, err)
	assert.Equal(t, []string{"card"}, v.Names.Names)
	assert.Empty(t, v.Types.Types)
}
