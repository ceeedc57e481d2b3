package actions_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"masterdata-monitor/core/actions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Set(t *testing.T) {
	t.Run("Stdout", func(t *testing.T) {
		var buf bytes.Buffer
		w := actions.NewWriter(actions.Config{}, &buf)
		require.NoError(t, w.SetBool("success", true))
		require.NoError(t, w.Set("title", "JP,KR"))

		out := buf.String()
		assert.Contains(t, out, "name=success::true")
		assert.Contains(t, out, "name=title::JP,KR")
	})

	t.Run("FileAppends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output")
		require.NoError(t, os.WriteFile(path, []byte("previous=1\n"), 0o644))

		var buf bytes.Buffer
		w := actions.NewWriter(actions.Config{Output: path}, &buf)
		require.NoError(t, w.SetBool("success", false))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("previous=1\n")))
		assert.Contains(t, string(data), "success<<")
		assert.Contains(t, string(data), "\nfalse\n")
		assert.Empty(t, buf.String())
	})

	t.Run("MultiLine", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output")
		w := actions.NewWriter(actions.Config{Output: path}, nil)
		require.NoError(t, w.Set("diff", "JP: abc      -> xyz1234\nKR: a        -> b"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "diff<<")
		assert.Contains(t, string(data), "\nJP: abc      -> xyz1234\nKR: a        -> b\n")
	})

	t.Run("UnwritableFile", func(t *testing.T) {
		w := actions.NewWriter(actions.Config{Output: filepath.Join(t.TempDir(), "missing", "output")}, nil)
		assert.Error(t, w.Set("success", "true"))
	})
}
