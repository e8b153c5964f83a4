package engine

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/gosetta/internal/catalog"
	"git.home.luguber.info/inful/gosetta/internal/config"
)

// Generate extracts spans from the templates and refreshes every non-default
// language's catalogs, carrying existing translated values forward.
func (e *Engine) Generate(ctx context.Context, templates []string) (*Report, error) {
	start := time.Now()
	collector := &reportCollector{report: newReport("generate")}

	languages, err := e.languages()
	if err != nil {
		return nil, err
	}

	extracted, err := e.Extract(templates)
	if err != nil {
		return nil, err
	}
	e.recorder.AddTemplatesProcessed(len(templates))

	err = forEachLanguage(ctx, languages, func(ctx context.Context, lang config.Language) error {
		if lang.IsDefault {
			return nil
		}
		written, missing, err := e.generateLanguage(ctx, lang, templates, extracted)
		if err != nil {
			return err
		}
		collector.addWritten(written)
		collector.setCounts(lang.Code, missing, 0)
		e.recorder.SetMissingTranslations(lang.Code, missing)
		return nil
	})
	if err != nil {
		e.recorder.IncRunOutcome("generate", "failed")
		return nil, err
	}

	report := collector.finish(start)
	if err := e.formatter.Run(ctx, report.FilesWritten); err != nil {
		return nil, err
	}

	e.recorder.IncRunOutcome("generate", "success")
	e.recorder.ObserveRunDuration("generate", report.Duration)
	slog.Info("Catalogs generated",
		"templates", len(templates),
		"languages", len(languages)-1,
		"files", len(report.FilesWritten),
		"duration", report.Duration)
	return report, nil
}

// generateLanguage writes one language's catalogs and counts entries still
// waiting for a translation.
func (e *Engine) generateLanguage(_ context.Context, lang config.Language, templates []string, extracted *Extracted) (written []string, missing int, err error) {
	existing, err := catalog.LoadFiles(lang.TranslationsDir)
	if err != nil {
		return nil, 0, err
	}

	// One carry-forward pass per catalog file: a key translated differently
	// in two files is a mismatch, not a silent overwrite.
	fresh := extracted.copyCatalogs()
	for _, old := range existing {
		if err := catalog.CarryForward(fresh, extracted.KeyPaths, old); err != nil {
			return nil, 0, err
		}
	}

	var data []PathData
	for _, tpl := range templates {
		path, err := lang.CatalogPath(tpl, e.project.TemplatesDir)
		if err != nil {
			return nil, 0, err
		}
		serialized, err := catalog.Serialize(fresh[tpl])
		if err != nil {
			return nil, 0, err
		}
		data = append(data, PathData{Path: path, Language: lang.Code, Content: serialized})

		for _, tr := range fresh[tpl] {
			if tr.Translated == "" {
				missing++
			}
		}
	}

	written, err = e.writePathData(data)
	return written, missing, err
}
