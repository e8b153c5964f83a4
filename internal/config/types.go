package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Constants for project layout discovery.
const (
	ConfigDirName  = ".gosetta"
	ConfigFileName = "gosetta.yaml"

	// CatalogSuffix is appended to a template's relative path to form its
	// per-language catalog path.
	CatalogSuffix = ".yaml"
)

// Config represents the application configuration as written in
// .gosetta/gosetta.yaml. Paths are relative to the project root and the
// translations/translated entries must contain a {language} placeholder.
type Config struct {
	Languages  LanguagesConfig     `yaml:"languages"`
	Paths      PathsConfig         `yaml:"paths"`
	Tags       TagsConfig          `yaml:"tags"`
	App        AppConfig           `yaml:"app"`
	Formatters map[string][]string `yaml:"formatters,omitempty"`
	Watch      WatchConfig         `yaml:"watch"`
}

// LanguagesConfig declares the default language and the translation targets.
type LanguagesConfig struct {
	Default string   `yaml:"default"`
	Others  []string `yaml:"others"`
}

// PathsConfig declares where templates live and where generated files go.
type PathsConfig struct {
	Templates    string `yaml:"templates"`
	Translations string `yaml:"translations"`
	Translated   string `yaml:"translated"`
}

// TagsConfig names the HTML element treated as a translatable span.
type TagsConfig struct {
	Translation string `yaml:"translation"`
}

// AppConfig holds behavioral switches.
type AppConfig struct {
	// Strict turns a missing translation into a fatal error instead of an
	// under-construction page.
	Strict bool `yaml:"strict"`

	// ConstructionMessage is rendered for pages with incomplete translations.
	// A {language} placeholder is replaced by the language code.
	ConstructionMessage string `yaml:"construction_message,omitempty"`
}

// WatchConfig holds daemon-mode settings. Durations are Go duration strings
// ("2s", "1h"); they are parsed and validated during Load.
type WatchConfig struct {
	// Debounce batches rapid file events before re-running translate.
	Debounce string `yaml:"debounce,omitempty"`

	// Interval triggers a periodic full run regardless of file events.
	// Empty disables scheduled runs.
	Interval string `yaml:"interval,omitempty"`

	// Preview is the listen address for the preview server ("" disables it).
	Preview string `yaml:"preview,omitempty"`
}

// Language is a resolved translation target with absolute directories.
type Language struct {
	Code            string
	IsDefault       bool
	TranslationsDir string
	TranslatedDir   string

	// ConstructionMessage is the per-language incomplete-page content.
	ConstructionMessage string
}

// CatalogPath maps a template to the language's catalog file: the template's
// path relative to templatesDir, placed under the translations dir with the
// catalog suffix appended (index.html -> index.html.yaml).
func (l Language) CatalogPath(template, templatesDir string) (string, error) {
	rel, err := filepath.Rel(templatesDir, template)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.TranslationsDir, rel) + CatalogSuffix, nil
}

// TranslatedPath maps a template to its rendered output for this language.
func (l Language) TranslatedPath(template, templatesDir string) (string, error) {
	rel, err := filepath.Rel(templatesDir, template)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.TranslatedDir, rel), nil
}

// Project is a loaded configuration resolved against its root directory.
type Project struct {
	Root      string
	Config    *Config
	Languages []Language

	// TemplatesDir is the absolute templates directory.
	TemplatesDir string

	// WatchDebounce and WatchInterval are the parsed daemon-mode durations.
	WatchDebounce time.Duration
	WatchInterval time.Duration
}

// Default returns the default language.
func (p *Project) Default() Language {
	for _, l := range p.Languages {
		if l.IsDefault {
			return l
		}
	}
	// Validation guarantees a default exists; this is unreachable after Load.
	return Language{}
}

// Select returns the languages matching codes, or all languages when codes
// is empty. Select itself skips unknown codes; callers validate the filter
// against the configuration first.
func (p *Project) Select(codes []string) []Language {
	if len(codes) == 0 {
		return p.Languages
	}
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[strings.TrimSpace(c)] = true
	}
	var out []Language
	for _, l := range p.Languages {
		if want[l.Code] {
			out = append(out, l)
		}
	}
	return out
}
