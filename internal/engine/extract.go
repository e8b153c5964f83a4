package engine

import (
	"sort"

	"git.home.luguber.info/inful/gosetta/internal/catalog"
	"git.home.luguber.info/inful/gosetta/internal/template"
)

// Extracted holds every translatable span found in a set of templates.
type Extracted struct {
	// PerTemplate maps a template path to its spans, keyed for the catalog.
	PerTemplate map[string]catalog.Catalog

	// KeyPaths maps a span key to the templates containing it, sorted.
	KeyPaths map[string][]string
}

// Extract pulls translatable spans from every template. HTML templates
// contribute translation-tag elements in addition to ${...} markers.
func (e *Engine) Extract(templates []string) (*Extracted, error) {
	out := &Extracted{
		PerTemplate: make(map[string]catalog.Catalog, len(templates)),
		KeyPaths:    map[string][]string{},
	}

	tag := e.project.Config.Tags.Translation
	for _, path := range templates {
		content, err := e.readTemplate(path)
		if err != nil {
			return nil, err
		}

		spans := template.ExtractText(string(content))
		if template.IsHTML(path) {
			tagSpans, err := template.ExtractHTML(content, tag)
			if err != nil {
				return nil, err
			}
			spans = append(spans, tagSpans...)
		}

		cat := catalog.FromSpans(spans)
		out.PerTemplate[path] = cat
		for key := range cat {
			out.KeyPaths[key] = append(out.KeyPaths[key], path)
		}
	}

	for key := range out.KeyPaths {
		sort.Strings(out.KeyPaths[key])
	}
	return out, nil
}

// copyCatalogs deep-copies the per-template catalogs so each language's
// carry-forward pass works on its own state.
func (x *Extracted) copyCatalogs() map[string]catalog.Catalog {
	fresh := make(map[string]catalog.Catalog, len(x.PerTemplate))
	for path, cat := range x.PerTemplate {
		cp := make(catalog.Catalog, len(cat))
		for key, tr := range cat {
			cp[key] = tr
		}
		fresh[path] = cp
	}
	return fresh
}
