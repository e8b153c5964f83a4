// Package preview serves the translated output trees over HTTP for local
// inspection. Markdown pages are rendered to HTML on the fly; everything
// else is served as-is. When a metrics registry is provided, /metrics
// exposes it in Prometheus format.
package preview

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/gosetta/internal/config"
)

// Server serves translated trees for every configured language.
type Server struct {
	project  *config.Project
	addr     string
	registry *prom.Registry
	md       goldmark.Markdown
}

// New creates a preview server. registry may be nil to disable /metrics.
func New(project *config.Project, addr string, registry *prom.Registry) *Server {
	return &Server{
		project:  project,
		addr:     addr,
		registry: registry,
		md:       goldmark.New(),
	}
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", "addr", s.addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	if s.registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/", s.servePage)
	return mux
}

// servePage routes /{language}/{path...} into the language's translated tree.
// The bare root lists the configured languages.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.TrimPrefix(r.URL.Path, "/")
	if trimmed == "" {
		s.serveIndex(w)
		return
	}

	code, rest, _ := strings.Cut(trimmed, "/")
	lang, ok := s.language(code)
	if !ok {
		http.NotFound(w, r)
		return
	}

	target := filepath.Join(lang.TranslatedDir, filepath.FromSlash(rest))
	clean := filepath.Clean(target)
	if clean != lang.TranslatedDir && !strings.HasPrefix(clean, lang.TranslatedDir+string(filepath.Separator)) {
		http.NotFound(w, r)
		return
	}

	if info, err := os.Stat(clean); err == nil && info.IsDir() {
		s.serveDirIndex(w, code, rest, clean)
		return
	}

	if filepath.Ext(clean) == ".md" {
		s.serveMarkdown(w, r, clean)
		return
	}
	http.ServeFile(w, r, clean)
}

func (s *Server) language(code string) (config.Language, bool) {
	for _, l := range s.project.Languages {
		if l.Code == code {
			return l, true
		}
	}
	return config.Language{}, false
}

func (s *Server) serveIndex(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html><title>gosetta preview</title><h1>Languages</h1><ul>")
	for _, l := range s.project.Languages {
		fmt.Fprintf(w, `<li><a href="/%s/">%s</a></li>`, l.Code, html.EscapeString(l.Code))
	}
	fmt.Fprint(w, "</ul>")
}

func (s *Server) serveDirIndex(w http.ResponseWriter, code, rest, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		http.Error(w, "failed to read directory", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><title>%s</title><ul>", html.EscapeString("/"+code+"/"+rest))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		href := "/" + code + "/" + strings.TrimPrefix(filepath.ToSlash(filepath.Join(rest, name)), "/")
		fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, href, html.EscapeString(name))
	}
	fmt.Fprint(w, "</ul>")
}

func (s *Server) serveMarkdown(w http.ResponseWriter, r *http.Request, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html><meta charset=\"utf-8\">")
	if err := s.md.Convert(data, w); err != nil {
		slog.Error("Markdown rendering failed", "path", path, "error", err)
	}
}
