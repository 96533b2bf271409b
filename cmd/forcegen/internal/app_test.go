package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forcegen.yaml")

	t.Run("init", func(t *testing.T) {
		withArgs(t, "forcegen", "init", "--config", path)
		require.NoError(t, Run(context.Background(), func(string) string { return "" }))
		assert.FileExists(t, path)
	})

	t.Run("unresolved connection", func(t *testing.T) {
		withArgs(t, "forcegen", "objects", "--config", path)
		err := Run(context.Background(), func(string) string { return "" })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FORCE_URL")
	})
}

func withArgs(t *testing.T, args ...string) {
	before := os.Args
	os.Args = args
	t.Cleanup(func() { os.Args = before })
}
