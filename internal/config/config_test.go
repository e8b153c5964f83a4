package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

func writeProject(t *testing.T, configYAML string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ConfigDirName), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigDirName, ConfigFileName), []byte(configYAML), 0o600))
	return root
}

func TestFindProjectRoot_WalksUpward(t *testing.T) {
	root := writeProject(t, "languages:\n  default: en\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.Equal(t, root, found)
}

func TestFindProjectRoot_MissingRoot_ReportsSearchedPaths(t *testing.T) {
	dir := t.TempDir()

	_, err := FindProjectRoot(dir)
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryConfig))

	ge := err.(*gserrors.GosettaError)
	searched, ok := ge.Context["searched"].([]string)
	require.True(t, ok)
	require.NotEmpty(t, searched)
	require.Equal(t, filepath.Join(dir, ConfigDirName), searched[0])
}

func TestLoad_AppliesDefaults(t *testing.T) {
	root := writeProject(t, "languages:\n  default: en\n  others: [el]\n")

	project, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, "x-trans", project.Config.Tags.Translation)
	require.Equal(t, filepath.Join(root, "templates"), project.TemplatesDir)
	require.False(t, project.Config.App.Strict)
	require.Equal(t, 2*time.Second, project.WatchDebounce)
}

func TestLoad_ResolvesLanguages(t *testing.T) {
	root := writeProject(t, `
languages:
  default: en
  others: [el, fr]
paths:
  templates: tpl
  translations: i18n/{language}/catalogs
  translated: out/{language}
`)

	project, err := Load(root)
	require.NoError(t, err)
	require.Len(t, project.Languages, 3)

	def := project.Default()
	require.Equal(t, "en", def.Code)
	require.True(t, def.IsDefault)

	el := project.Languages[1]
	require.Equal(t, "el", el.Code)
	require.Equal(t, filepath.Join(root, "i18n", "el", "catalogs"), el.TranslationsDir)
	require.Equal(t, filepath.Join(root, "out", "el"), el.TranslatedDir)
}

func TestLoad_InvalidLanguageTag_Fails(t *testing.T) {
	root := writeProject(t, "languages:\n  default: en\n  others: [\"not a tag\"]\n")

	_, err := Load(root)
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryValidation))
}

func TestLoad_PathWithoutPlaceholder_Fails(t *testing.T) {
	root := writeProject(t, `
languages:
  default: en
paths:
  translations: translations
`)

	_, err := Load(root)
	require.Error(t, err)
	require.True(t, gserrors.IsCategory(err, gserrors.CategoryValidation))
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("GOSETTA_TEST_TEMPLATES", "docs")
	root := writeProject(t, "languages:\n  default: en\npaths:\n  templates: ${GOSETTA_TEST_TEMPLATES}\n")

	project, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "docs"), project.TemplatesDir)
}

func TestLoad_LoadsDotEnvFromProjectRoot(t *testing.T) {
	root := writeProject(t, "languages:\n  default: en\npaths:\n  templates: ${GOSETTA_DOTENV_TEMPLATES}\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("GOSETTA_DOTENV_TEMPLATES=docs\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GOSETTA_DOTENV_TEMPLATES") })

	// Loading from a subdirectory must still pick up the root's .env.
	nested := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	project, err := Load(nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "docs"), project.TemplatesDir)
}

func TestCatalogPath_AppendsSuffix(t *testing.T) {
	l := Language{Code: "el", TranslationsDir: "/proj/translations/el"}

	got, err := l.CatalogPath("/proj/templates/pages/index.html", "/proj/templates")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/proj/translations/el", "pages", "index.html.yaml"), got)
}

func TestTranslatedPath_PreservesRelativeLayout(t *testing.T) {
	l := Language{Code: "el", TranslatedDir: "/proj/translated/el"}

	got, err := l.TranslatedPath("/proj/templates/pages/index.html", "/proj/templates")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/proj/translated/el", "pages", "index.html"), got)
}

func TestSelect_FiltersLanguages(t *testing.T) {
	project := &Project{Languages: []Language{
		{Code: "en", IsDefault: true},
		{Code: "el"},
		{Code: "fr"},
	}}

	require.Len(t, project.Select(nil), 3)

	selected := project.Select([]string{"fr"})
	require.Len(t, selected, 1)
	require.Equal(t, "fr", selected[0].Code)
}
