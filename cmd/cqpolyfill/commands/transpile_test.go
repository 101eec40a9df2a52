package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdewolff-labs/cqpolyfill"
)

func TestPrintDescriptorSummaryNoDescriptors(t *testing.T) {
	var buf bytes.Buffer
	result := cqpolyfill.TranspileStyleSheet(`.a { color: red; }`, "")
	printDescriptorSummary(&buf, len(`.a { color: red; }`), len(result.Source), result.Descriptors, result.Diagnostics)
	assert.Contains(t, buf.String(), "0 descriptor(s)")
}

func TestPrintDescriptorSummaryListsDescriptorRows(t *testing.T) {
	var buf bytes.Buffer
	src := `@container card (min-width: 200px) { .a { color: red; } }`
	result := cqpolyfill.TranspileStyleSheet(src, "")
	printDescriptorSummary(&buf, len(src), len(result.Source), result.Descriptors, result.Diagnostics)
	assert.Contains(t, buf.String(), "1 descriptor(s)")
	assert.Contains(t, buf.String(), "card")
	assert.Contains(t, buf.String(), "width")
	assert.Contains(t, buf.String(), result.Descriptors[0].ID)
}

func TestIsHTMLPathDetectsExtension(t *testing.T) {
	assert.True(t, isHTMLPath("page.html"))
	assert.True(t, isHTMLPath("PAGE.HTM"))
	assert.False(t, isHTMLPath("styles.css"))
	assert.False(t, isHTMLPath(""))
}

func TestRunTranspileWritesOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.css")
	err := runTranspile([]byte(`.a { width: 10cqw; }`), "", "", out, false, false)
	require.NoError(t, err)

	written, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Contains(t, string(written), "calc(10 * var(--cq-w-cq0))")
}

func TestRunTranspileDetectsHTMLFromExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.html")
	doc := `<html><head><style>.a { width: 10cqw; }</style></head><body></body></html>`
	err := runTranspile([]byte(doc), "page.html", "", out, false, false)
	require.NoError(t, err)

	written, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Contains(t, string(written), "calc(10 * var(--cq-w-cq0))")
}

func TestRunTranspileWhereUnsupportedRequiresSentinel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.css")
	src := `@container (min-width: 1px) { .a { color: red; } }`
	err := runTranspile([]byte(src), "", "", out, false, true)
	require.NoError(t, err)

	written, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.NotContains(t, string(written), ":where(")
	assert.Contains(t, string(written), ".a {")
}

func TestRunTranspileWhereUnsupportedHonorsSentinel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.css")
	src := `@container (min-width: 1px) { .a:not(.container-query-polyfill) { color: red; } }`
	err := runTranspile([]byte(src), "", "", out, false, true)
	require.NoError(t, err)

	written, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.NotContains(t, string(written), ":where(")
	assert.Contains(t, string(written), `[data-cqpolyfill~="`)
}
