package engine

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/gosetta/internal/catalog"
	"git.home.luguber.info/inful/gosetta/internal/config"
	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

// Check reports untranslated and orphaned catalog entries per language
// without writing anything. In strict mode an incomplete language is an
// error.
func (e *Engine) Check(ctx context.Context, templates []string) (*Report, error) {
	start := time.Now()
	collector := &reportCollector{report: newReport("check")}

	languages, err := e.languages()
	if err != nil {
		return nil, err
	}

	extracted, err := e.Extract(templates)
	if err != nil {
		return nil, err
	}

	err = forEachLanguage(ctx, languages, func(ctx context.Context, lang config.Language) error {
		if lang.IsDefault {
			return nil
		}

		missing, orphans, err := e.checkLanguage(lang, extracted)
		if err != nil {
			return err
		}
		collector.setCounts(lang.Code, missing, orphans)
		e.recorder.SetMissingTranslations(lang.Code, missing)

		slog.Info("Language checked", "language", lang.Code, "missing", missing, "orphans", orphans)
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := collector.finish(start)
	if e.project.Config.App.Strict && !report.Complete() {
		return report, gserrors.New(gserrors.CategoryTranslation, gserrors.SeverityFatal, "translations are incomplete").
			WithContext("missing", report.Missing)
	}
	return report, nil
}

// checkLanguage compares one language's catalogs against the extracted spans.
// An entry is missing when a span has no translated value; an orphan is a
// catalog entry whose span no longer exists in any template.
func (e *Engine) checkLanguage(lang config.Language, extracted *Extracted) (missing, orphans int, err error) {
	existing, err := catalog.LoadDir(lang.TranslationsDir)
	if err != nil {
		return 0, 0, err
	}

	for key := range extracted.KeyPaths {
		tr, ok := existing[key]
		if !ok || tr.Translated == "" {
			missing++
		}
	}

	for key := range existing {
		if _, ok := extracted.KeyPaths[key]; !ok {
			orphans++
		}
	}
	return missing, orphans, nil
}
