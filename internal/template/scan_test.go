package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

func TestResolvePaths_WalksDirectoriesRecursively(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0o750))
	for _, name := range []string{"index.html", "pages/about.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	paths, err := ResolvePaths([]string{dir})
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

func TestResolvePaths_DeduplicatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("x"), 0o600))

	paths, err := ResolvePaths([]string{b, a, dir})
	require.NoError(t, err)
	require.Equal(t, []string{a, b}, paths)
}

func TestResolvePaths_MissingPath_Fails(t *testing.T) {
	_, err := ResolvePaths([]string{filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryTemplate))
}

func TestResolvePaths_EmptyDirectory_Fails(t *testing.T) {
	_, err := ResolvePaths([]string{t.TempDir()})
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryTemplate))
}

func TestIsHTML(t *testing.T) {
	require.True(t, IsHTML("index.html"))
	require.True(t, IsHTML("legacy.htm"))
	require.False(t, IsHTML("notes.md"))
	require.False(t, IsHTML("README"))
}
