package preview

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gosetta/internal/config"
)

func newPreviewProject(t *testing.T) *config.Project {
	t.Helper()
	root := t.TempDir()
	project := &config.Project{
		Root:   root,
		Config: &config.Config{},
		Languages: []config.Language{
			{Code: "en", IsDefault: true, TranslatedDir: filepath.Join(root, "translated", "en")},
			{Code: "el", TranslatedDir: filepath.Join(root, "translated", "el")},
		},
	}
	for _, l := range project.Languages {
		require.NoError(t, os.MkdirAll(l.TranslatedDir, 0o750))
	}
	return project
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServePage_RootListsLanguages(t *testing.T) {
	s := New(newPreviewProject(t), ":0", nil)

	rec := get(t, s.handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `href="/en/"`)
	require.Contains(t, rec.Body.String(), `href="/el/"`)
}

func TestServePage_ServesTranslatedFile(t *testing.T) {
	project := newPreviewProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(project.Languages[1].TranslatedDir, "index.txt"), []byte("geia"), 0o600))
	s := New(project, ":0", nil)

	rec := get(t, s.handler(), "/el/index.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "geia", rec.Body.String())
}

func TestServePage_RendersMarkdown(t *testing.T) {
	project := newPreviewProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(project.Languages[0].TranslatedDir, "page.md"), []byte("# Title"), 0o600))
	s := New(project, ":0", nil)

	rec := get(t, s.handler(), "/en/page.md")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<h1>Title</h1>")
}

func TestServePage_UnknownLanguageIs404(t *testing.T) {
	s := New(newPreviewProject(t), ":0", nil)

	rec := get(t, s.handler(), "/xx/index.txt")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServePage_PathTraversalIsRejected(t *testing.T) {
	project := newPreviewProject(t)
	secret := filepath.Join(project.Root, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("nope"), 0o600))
	s := New(project, ":0", nil)

	rec := get(t, s.handler(), "/el/../../secret.txt")
	require.NotEqual(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "nope")
}

func TestMetricsEndpoint_ServedWhenRegistryProvided(t *testing.T) {
	reg := prom.NewRegistry()
	s := New(newPreviewProject(t), ":0", reg)

	rec := get(t, s.handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint_AbsentWithoutRegistry(t *testing.T) {
	s := New(newPreviewProject(t), ":0", nil)

	rec := get(t, s.handler(), "/metrics")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
