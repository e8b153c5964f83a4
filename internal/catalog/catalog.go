// Package catalog reads and writes per-language translation catalogs.
//
// A catalog is a YAML mapping from span key to entry:
//
//	<key>:
//	  original: Welcome
//	  translated: ""
//	  comments: [translators: keep it short]
//	  classes: [lead]
//	  literals: ["$5"]
//
// Serialization is deterministic: keys are sorted, multi-line strings use
// literal block style, and an empty translated value is emitted as a quoted
// empty string so translators see the field.
package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/template"
)

// Catalog maps span keys to their translations.
type Catalog map[string]template.Translation

// entry is the YAML shape of a single catalog value.
type entry struct {
	Original   string   `yaml:"original"`
	Translated string   `yaml:"translated"`
	Comments   []string `yaml:"comments,omitempty"`
	Classes    []string `yaml:"classes,omitempty"`
	Literals   []string `yaml:"literals,omitempty"`
}

// FromSpans builds a catalog from freshly extracted spans.
func FromSpans(spans []template.Translation) Catalog {
	c := make(Catalog, len(spans))
	for _, span := range spans {
		c[span.Key] = span
	}
	return c
}

// Parse decodes catalog YAML.
func Parse(data []byte) (Catalog, error) {
	var raw map[string]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, gserrors.WrapError(err, gserrors.CategoryCatalog, "failed to parse catalog")
	}

	c := make(Catalog, len(raw))
	for key, e := range raw {
		c[key] = template.Translation{
			Key:        key,
			Original:   e.Original,
			Translated: e.Translated,
			Comments:   e.Comments,
			Classes:    e.Classes,
			Literals:   e.Literals,
		}
	}
	return c, nil
}

// Load reads and parses a catalog file. A missing file is not an error; it
// yields an empty catalog.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Catalog{}, nil
		}
		return nil, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to read catalog").
			WithContext("path", path)
	}
	c, err := Parse(data)
	if err != nil {
		if ge, ok := err.(*gserrors.GosettaError); ok {
			return nil, ge.WithContext("path", path)
		}
		return nil, err
	}
	return c, nil
}

// LoadFiles parses every catalog file under dir, one catalog per file, in
// lexical path order. A missing directory yields no catalogs.
func LoadFiles(dir string) ([]Catalog, error) {
	var out []Catalog

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}
		c, err := Load(path)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		if _, ok := err.(*gserrors.GosettaError); ok {
			return nil, err
		}
		return nil, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to scan catalog directory").
			WithContext("dir", dir)
	}
	return out, nil
}

// LoadDir combines every catalog file under dir. A non-empty translated
// value wins over an empty one; two files carrying different non-empty
// values for the same key are a fatal mismatch.
func LoadDir(dir string) (Catalog, error) {
	files, err := LoadFiles(dir)
	if err != nil {
		return nil, err
	}

	combined := Catalog{}
	for _, c := range files {
		for key, tr := range c {
			existing, ok := combined[key]
			if !ok || existing.Translated == "" {
				combined[key] = tr
				continue
			}
			if tr.Translated != "" && tr.Translated != existing.Translated {
				return nil, gserrors.TranslationMismatch(key).
					WithContext("dir", dir)
			}
		}
	}
	return combined, nil
}
