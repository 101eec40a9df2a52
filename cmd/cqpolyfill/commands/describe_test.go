package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribeCommandListsDescriptors(t *testing.T) {
	src := filepath.Join(t.TempDir(), "sheet.css")
	require.NoError(t, os.WriteFile(src, []byte(`@container card (min-width: 200px) { .a { color: red; } }`), 0o644))

	root := NewRootCommand()
	root.SetArgs([]string{"describe", src})

	require.NoError(t, root.Execute())
}

func TestDescribeCommandNoDescriptors(t *testing.T) {
	src := filepath.Join(t.TempDir(), "sheet.css")
	require.NoError(t, os.WriteFile(src, []byte(`.a { color: red; }`), 0o644))

	root := NewRootCommand()
	root.SetArgs([]string{"describe", src})

	require.NoError(t, root.Execute())
}
