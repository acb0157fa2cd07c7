package vos

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelativeFs(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/home/tester", 0755))

	cwd := "/home/tester"
	rel := NewRelativeFs(base, func() string { return cwd })

	require.NoError(t, afero.WriteFile(rel, "notes.txt", []byte("hi"), 0644))

	got, err := afero.ReadFile(base, "/home/tester/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))

	t.Run("absolute paths are unchanged", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(rel, "/top.txt", []byte("top"), 0644))

		exists, err := afero.Exists(base, "/top.txt")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("follows the working directory", func(t *testing.T) {
		cwd = "/"
		got, err := afero.ReadFile(rel, "home/tester/notes.txt")
		require.NoError(t, err)
		assert.Equal(t, "hi", string(got))
	})

	t.Run("rename maps both paths", func(t *testing.T) {
		cwd = "/home/tester"
		require.NoError(t, rel.Rename("notes.txt", "renamed.txt"))

		exists, err := afero.Exists(base, "/home/tester/renamed.txt")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}
