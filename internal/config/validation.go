package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

// validate checks the configuration for structural problems. Language codes
// are required to be well-formed BCP 47 tags so catalog directories stay
// portable across tooling.
func validate(cfg *Config) error {
	if cfg.Languages.Default == "" {
		return gserrors.ConfigRequired("languages.default")
	}

	seen := map[string]bool{}
	for _, code := range append([]string{cfg.Languages.Default}, cfg.Languages.Others...) {
		if _, err := language.Parse(code); err != nil {
			return gserrors.ValidationFailed("languages", fmt.Sprintf("invalid language tag %q: %v", code, err))
		}
		if seen[code] && code != cfg.Languages.Default {
			return gserrors.ValidationFailed("languages", fmt.Sprintf("duplicate language %q", code))
		}
		seen[code] = true
	}
	if containsCode(cfg.Languages.Others, cfg.Languages.Default) {
		return gserrors.ValidationFailed("languages", "default language repeated in others")
	}

	for _, field := range []struct{ name, value string }{
		{"paths.translations", cfg.Paths.Translations},
		{"paths.translated", cfg.Paths.Translated},
	} {
		if !strings.Contains(field.value, "{language}") {
			return gserrors.ValidationFailed(field.name, "path must contain a {language} placeholder")
		}
	}

	if _, err := time.ParseDuration(cfg.Watch.Debounce); err != nil {
		return gserrors.ValidationFailed("watch.debounce", err.Error())
	}
	if cfg.Watch.Interval != "" {
		if _, err := time.ParseDuration(cfg.Watch.Interval); err != nil {
			return gserrors.ValidationFailed("watch.interval", err.Error())
		}
	}

	for suffix, command := range cfg.Formatters {
		if !strings.HasPrefix(suffix, ".") {
			return gserrors.ValidationFailed("formatters", fmt.Sprintf("formatter suffix %q must start with a dot", suffix))
		}
		if len(command) == 0 {
			return gserrors.ValidationFailed("formatters", fmt.Sprintf("formatter for %q has an empty command", suffix))
		}
	}

	return nil
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
