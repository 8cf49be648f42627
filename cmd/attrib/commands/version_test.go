package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "attrib dev (commit: none)\n", out)
}

func TestVersionCheckDevBuild(t *testing.T) {
	out, err := execute(t, "version", "--check")
	require.NoError(t, err)
	require.Contains(t, out, "development build")
}
