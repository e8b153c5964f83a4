// Package engine implements the generate/translate/check pipelines over a
// loaded project: extraction of translatable spans, catalog maintenance, and
// rendering of translated template trees.
package engine

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/gosetta/internal/catalog"
	"git.home.luguber.info/inful/gosetta/internal/config"
	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/format"
	"git.home.luguber.info/inful/gosetta/internal/incremental"
	"git.home.luguber.info/inful/gosetta/internal/metrics"
	"git.home.luguber.info/inful/gosetta/internal/template"
	"git.home.luguber.info/inful/gosetta/internal/util/sets"
)

// Options configures an Engine.
type Options struct {
	// DryRun logs intended writes without touching the filesystem.
	DryRun bool

	// Force bypasses the incremental digest cache.
	Force bool

	// Languages filters the configured languages ("" selects all).
	Languages []string

	// Cache is the optional incremental digest store.
	Cache *incremental.Store

	// Recorder receives run metrics; defaults to a no-op.
	Recorder metrics.Recorder
}

// Engine runs translation pipelines over one project.
type Engine struct {
	project  *config.Project
	recorder metrics.Recorder
	cache    *incremental.Store
	dryRun   bool
	force    bool
	langs    []string

	formatter *format.Runner
}

// New builds an Engine for the project.
func New(project *config.Project, opts Options) *Engine {
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Engine{
		project:  project,
		recorder: recorder,
		cache:    opts.Cache,
		dryRun:   opts.DryRun,
		force:    opts.Force,
		langs:    opts.Languages,
		formatter: &format.Runner{
			Formatters: project.Config.Formatters,
			DryRun:     opts.DryRun,
		},
	}
}

// languages returns the selected languages, validating every filter code
// against the configuration.
func (e *Engine) languages() ([]config.Language, error) {
	configured := sets.New[string]()
	for _, l := range e.project.Languages {
		configured.Add(l.Code)
	}
	for _, code := range e.langs {
		if !configured.Has(strings.TrimSpace(code)) {
			return nil, gserrors.ValidationFailed("language", fmt.Sprintf("unknown language %q", code))
		}
	}

	selected := e.project.Select(e.langs)
	if len(selected) == 0 {
		return nil, gserrors.ValidationFailed("language", "no configured language matches the filter")
	}
	return selected, nil
}

// languageCodes returns every selected code, for digest fingerprinting.
func (e *Engine) languageCodes() []string {
	selected := e.project.Select(e.langs)
	codes := make([]string, 0, len(selected))
	for _, l := range selected {
		codes = append(codes, l.Code)
	}
	return codes
}

// readTemplate loads a template, verifying it lives under the configured
// templates directory.
func (e *Engine) readTemplate(path string) ([]byte, error) {
	if !underDir(path, e.project.TemplatesDir) {
		return nil, gserrors.TemplateOutsideRoot(path, e.project.TemplatesDir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to read template").
			WithContext("path", path)
	}
	return data, nil
}

// forEachLanguage fans work out per language. Worker errors cancel the group.
func forEachLanguage(ctx context.Context, languages []config.Language, fn func(ctx context.Context, lang config.Language) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, lang := range languages {
		g.Go(func() error {
			return fn(gctx, lang)
		})
	}
	return g.Wait()
}

// cleanedValue validates a catalog entry for rendering and unwraps its marker
// syntax. An empty translated value yields errMissing; a translated value
// that lost one of the original's literals is fatal.
func cleanedValue(tr template.Translation, lang config.Language) (string, error) {
	if tr.Translated == "" {
		return "", gserrors.MissingTranslation(tr.Key, lang.Code)
	}
	for _, literal := range tr.Literals {
		if !strings.Contains(tr.Translated, literal) {
			return "", gserrors.MissingLiteral(tr.Key, literal)
		}
	}
	return template.UnwrapMarkers(tr.Translated), nil
}

// lookupIn builds the span lookup used by both renderers for one catalog.
func lookupIn(cat catalog.Catalog, lang config.Language) func(key, original string) (string, error) {
	return func(key, original string) (string, error) {
		tr, ok := cat[key]
		if !ok {
			return "", gserrors.MissingTranslation(key, lang.Code).
				WithContext("original", original)
		}
		return cleanedValue(tr, lang)
	}
}

// lookupOriginal resolves every span to its original text (default language).
func lookupOriginal(key, original string) (string, error) {
	return original, nil
}
