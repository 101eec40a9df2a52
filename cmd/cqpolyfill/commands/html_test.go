package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspileHTMLRewritesInlineStyle(t *testing.T) {
	doc := `<html><head><style>.a { width: 10cqw; }</style></head><body></body></html>`
	var out bytes.Buffer

	descriptors, err := transpileHTML(bytes.NewReader([]byte(doc)), &out, "")
	require.NoError(t, err)
	assert.Empty(t, descriptors)
	assert.Contains(t, out.String(), "calc(10 * var(--cq-w-cq0))")
}

func TestTranspileHTMLCollectsDescriptorsAcrossStyleElements(t *testing.T) {
	doc := `<html><head>
<style>@container (min-width: 1px) { .a { color: red; } }</style>
<style>@container (min-width: 2px) { .b { color: blue; } }</style>
</head><body></body></html>`
	var out bytes.Buffer

	descriptors, err := transpileHTML(bytes.NewReader([]byte(doc)), &out, "")
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.NotEqual(t, descriptors[0].ID, descriptors[1].ID)
}
