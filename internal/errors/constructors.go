package errors

// Convenience functions for common error patterns

// Config errors

// ProjectRootNotFound reports that no ancestor of the working directory
// contains a .gosetta directory. The searched locations are attached as
// context so the CLI can print them.
func ProjectRootNotFound(searched []string) *GosettaError {
	return New(CategoryConfig, SeverityFatal, "couldn't find a project root directory").
		WithContext("searched", searched)
}

func ConfigNotFound(path string) *GosettaError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *GosettaError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *GosettaError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Translation errors

// MissingTranslation reports a catalog entry with an empty translated value.
// It is fatal in strict mode; the engine downgrades it otherwise.
func MissingTranslation(key, language string) *GosettaError {
	return New(CategoryTranslation, SeverityError, "missing translation").
		WithContext("key", key).
		WithContext("language", language)
}

// MissingLiteral reports a translated value that lost a literal marker the
// original text carried.
func MissingLiteral(key, literal string) *GosettaError {
	return New(CategoryTranslation, SeverityFatal, "missing literal in translated text").
		WithContext("key", key).
		WithContext("literal", literal)
}

// TranslationMismatch reports two catalogs carrying different non-empty
// translated values for the same key.
func TranslationMismatch(key string) *GosettaError {
	return New(CategoryCatalog, SeverityFatal, "translation mismatch for key").
		WithContext("key", key)
}

// Template errors

func NoTemplates() *GosettaError {
	return New(CategoryTemplate, SeverityFatal, "no paths found, provide at least one template")
}

func TemplateOutsideRoot(path, templates string) *GosettaError {
	return New(CategoryTemplate, SeverityFatal, "template is outside the configured templates directory").
		WithContext("path", path).
		WithContext("templates", templates)
}
