package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/template"
)

func TestSerialize_RoundTrip(t *testing.T) {
	span := template.New("Welcome home", []string{"lead"}, []string{"keep it short"})
	span.Translated = "Kalos irthes"
	c := FromSpans([]template.Translation{span})

	data, err := Serialize(c)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	got := parsed[span.Key]
	require.Equal(t, "Welcome home", got.Original)
	require.Equal(t, "Kalos irthes", got.Translated)
	require.Equal(t, []string{"keep it short"}, got.Comments)
	require.Equal(t, []string{"lead"}, got.Classes)
}

func TestSerialize_EmptyTranslatedIsQuoted(t *testing.T) {
	c := FromSpans([]template.Translation{template.New("Hello", nil, nil)})

	data, err := Serialize(c)
	require.NoError(t, err)
	require.Contains(t, string(data), `translated: ""`)
}

func TestSerialize_MultilineUsesLiteralBlock(t *testing.T) {
	c := FromSpans([]template.Translation{template.New("line one\nline two", nil, nil)})

	data, err := Serialize(c)
	require.NoError(t, err)
	require.Contains(t, string(data), "original: |-")
}

func TestSerialize_KeysAreSorted(t *testing.T) {
	c := Catalog{
		"bbb": {Key: "bbb", Original: "b"},
		"aaa": {Key: "aaa", Original: "a"},
	}

	first, err := Serialize(c)
	require.NoError(t, err)
	second, err := Serialize(c)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Less(t, bytes.Index(first, []byte("aaa")), bytes.Index(first, []byte("bbb")))
}

func TestLoad_MissingFileYieldsEmptyCatalog(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Empty(t, c)
}

func TestLoad_InvalidYAML_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t: ["), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryCatalog))
}

func TestLoadDir_CombinesCatalogFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0o750))

	one := FromSpans([]template.Translation{template.New("one", nil, nil)})
	two := FromSpans([]template.Translation{template.New("two", nil, nil)})

	writeCatalog(t, filepath.Join(dir, "index.html.yaml"), one)
	writeCatalog(t, filepath.Join(dir, "pages", "about.html.yaml"), two)

	combined, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, combined, 2)
}

func TestLoadFiles_OneCatalogPerFile(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, filepath.Join(dir, "a.yaml"), FromSpans([]template.Translation{template.New("one", nil, nil)}))
	writeCatalog(t, filepath.Join(dir, "b.yaml"), FromSpans([]template.Translation{template.New("two", nil, nil)}))

	files, err := LoadFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestLoadDir_ConflictingNonEmptyValues_Fails(t *testing.T) {
	dir := t.TempDir()
	span := template.New("Hello", nil, nil)

	first := span
	first.Translated = "Geia"
	second := span
	second.Translated = "Kalimera"
	writeCatalog(t, filepath.Join(dir, "a.yaml"), Catalog{span.Key: first})
	writeCatalog(t, filepath.Join(dir, "b.yaml"), Catalog{span.Key: second})

	_, err := LoadDir(dir)
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryCatalog))
}

func TestLoadDir_NonEmptyValueWinsOverEmpty(t *testing.T) {
	dir := t.TempDir()
	span := template.New("Hello", nil, nil)

	filled := span
	filled.Translated = "Geia"
	writeCatalog(t, filepath.Join(dir, "a.yaml"), Catalog{span.Key: span})
	writeCatalog(t, filepath.Join(dir, "b.yaml"), Catalog{span.Key: filled})

	combined, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, "Geia", combined[span.Key].Translated)
}

func TestLoadDir_MissingDirYieldsEmptyCatalog(t *testing.T) {
	combined, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, combined)
}

func writeCatalog(t *testing.T, path string, c Catalog) {
	t.Helper()
	data, err := Serialize(c)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestCarryForward_CopiesTranslatedValues(t *testing.T) {
	span := template.New("Hello", nil, nil)
	fresh := map[string]Catalog{
		"index.html": FromSpans([]template.Translation{span}),
	}
	keyPaths := map[string][]string{span.Key: {"index.html"}}

	old := Catalog{span.Key: {Key: span.Key, Original: "Hello", Translated: "Geia"}}

	require.NoError(t, CarryForward(fresh, keyPaths, old))
	require.Equal(t, "Geia", fresh["index.html"][span.Key].Translated)
}

func TestCarryForward_KeepsFreshComments(t *testing.T) {
	span := template.New("Hello", nil, []string{"new comment"})
	fresh := map[string]Catalog{
		"index.html": FromSpans([]template.Translation{span}),
	}
	keyPaths := map[string][]string{span.Key: {"index.html"}}

	old := Catalog{span.Key: {
		Key:        span.Key,
		Original:   "Hello",
		Translated: "Geia",
		Comments:   []string{"stale comment"},
	}}

	require.NoError(t, CarryForward(fresh, keyPaths, old))
	got := fresh["index.html"][span.Key]
	require.Equal(t, "Geia", got.Translated)
	require.Equal(t, []string{"new comment"}, got.Comments)
}

func TestCarryForward_ConflictingValues_Fails(t *testing.T) {
	span := template.New("Hello", nil, nil)
	span.Translated = "Bonjour"
	fresh := map[string]Catalog{
		"index.html": FromSpans([]template.Translation{span}),
	}
	keyPaths := map[string][]string{span.Key: {"index.html"}}

	old := Catalog{span.Key: {Key: span.Key, Original: "Hello", Translated: "Salut"}}

	err := CarryForward(fresh, keyPaths, old)
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryCatalog))
}

func TestCarryForward_EmptyOldValueIsIgnored(t *testing.T) {
	span := template.New("Hello", nil, nil)
	fresh := map[string]Catalog{
		"index.html": FromSpans([]template.Translation{span}),
	}
	keyPaths := map[string][]string{span.Key: {"index.html"}}

	old := Catalog{span.Key: {Key: span.Key, Original: "Hello", Translated: ""}}

	require.NoError(t, CarryForward(fresh, keyPaths, old))
	require.Empty(t, fresh["index.html"][span.Key].Translated)
}
