package config

// applyDefaults fills unset configuration fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Paths.Templates == "" {
		cfg.Paths.Templates = "templates"
	}
	if cfg.Paths.Translations == "" {
		cfg.Paths.Translations = "translations/{language}"
	}
	if cfg.Paths.Translated == "" {
		cfg.Paths.Translated = "translated/{language}"
	}
	if cfg.Tags.Translation == "" {
		cfg.Tags.Translation = "x-trans"
	}
	if cfg.App.ConstructionMessage == "" {
		cfg.App.ConstructionMessage = "This page has not been translated into {language} yet.\n"
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = "2s"
	}
}
