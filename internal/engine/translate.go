package engine

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/gosetta/internal/catalog"
	"git.home.luguber.info/inful/gosetta/internal/config"
	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/incremental"
	"git.home.luguber.info/inful/gosetta/internal/template"
)

// Translate renders every selected template for every selected language.
// The default language gets the template with marker syntax unwrapped; other
// languages substitute catalog values. In strict mode a missing translation
// aborts the run; otherwise the affected page is rendered as the language's
// under-construction message.
func (e *Engine) Translate(ctx context.Context, templates []string) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	collector := &reportCollector{report: newReport("translate")}

	languages, err := e.languages()
	if err != nil {
		return nil, err
	}

	contents, digests, active, skipped, err := e.loadActive(ctx, templates)
	if err != nil {
		return nil, err
	}
	collector.addSkipped(skipped)
	e.recorder.AddTemplatesProcessed(len(active))

	err = forEachLanguage(ctx, languages, func(ctx context.Context, lang config.Language) error {
		written, missing, err := e.translateLanguage(ctx, lang, active, contents)
		if err != nil {
			return err
		}
		collector.addWritten(written)
		collector.setCounts(lang.Code, missing, 0)
		if !lang.IsDefault {
			e.recorder.SetMissingTranslations(lang.Code, missing)
		}
		return nil
	})
	if err != nil {
		e.recorder.IncRunOutcome("translate", "failed")
		return nil, err
	}

	report := collector.finish(start)
	if err := e.formatter.Run(ctx, report.FilesWritten); err != nil {
		return nil, err
	}

	if e.cache != nil && !e.dryRun {
		for _, tpl := range active {
			if err := e.cache.Record(ctx, "translate", tpl, digests[tpl], runID); err != nil {
				return nil, gserrors.WrapError(err, gserrors.CategoryRuntime, "failed to record template digest")
			}
		}
	}

	e.recorder.IncRunOutcome("translate", "success")
	e.recorder.ObserveRunDuration("translate", report.Duration)
	slog.Info("Templates translated",
		"run_id", runID,
		"templates", len(active),
		"skipped", skipped,
		"languages", len(languages),
		"files", len(report.FilesWritten),
		"duration", report.Duration)
	return report, nil
}

// loadActive reads every template and drops the ones whose digest matches
// the incremental cache. The digest covers the template's content, the
// selected language set, and the catalogs it renders from, so a translator
// filling in a catalog re-renders the template on the next run.
func (e *Engine) loadActive(ctx context.Context, templates []string) (contents map[string][]byte, digests map[string]string, active []string, skipped int, err error) {
	selected := e.project.Select(e.langs)
	codes := e.languageCodes()
	contents = make(map[string][]byte, len(templates))
	digests = make(map[string]string, len(templates))

	for _, tpl := range templates {
		content, err := e.readTemplate(tpl)
		if err != nil {
			return nil, nil, nil, 0, err
		}
		catalogs, err := e.catalogContents(selected, tpl)
		if err != nil {
			return nil, nil, nil, 0, err
		}
		digest := incremental.Digest(content, codes, catalogs...)
		digests[tpl] = digest

		if e.cache != nil && !e.force {
			unchanged, err := e.cache.Unchanged(ctx, "translate", tpl, digest)
			if err != nil {
				return nil, nil, nil, 0, gserrors.WrapError(err, gserrors.CategoryRuntime, "failed to query template digest")
			}
			if unchanged {
				skipped++
				continue
			}
		}

		contents[tpl] = content
		active = append(active, tpl)
	}
	return contents, digests, active, skipped, nil
}

// catalogContents reads each non-default language's catalog bytes for the
// template, in configuration order. A missing catalog contributes an empty
// part.
func (e *Engine) catalogContents(languages []config.Language, tpl string) ([][]byte, error) {
	var out [][]byte
	for _, lang := range languages {
		if lang.IsDefault {
			continue
		}
		path, err := lang.CatalogPath(tpl, e.project.TemplatesDir)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to read catalog").
				WithContext("path", path)
		}
		out = append(out, data)
	}
	return out, nil
}

// translateLanguage renders one language's view of the active templates.
func (e *Engine) translateLanguage(_ context.Context, lang config.Language, templates []string, contents map[string][]byte) (written []string, missing int, err error) {
	var data []PathData
	for _, tpl := range templates {
		rendered, incomplete, err := e.renderTemplate(lang, tpl, contents[tpl])
		if err != nil {
			return nil, 0, err
		}
		if incomplete {
			missing++
		}

		out, err := lang.TranslatedPath(tpl, e.project.TemplatesDir)
		if err != nil {
			return nil, 0, err
		}
		data = append(data, PathData{Path: out, Language: lang.Code, Content: rendered})
	}

	written, err = e.writePathData(data)
	return written, missing, err
}

// renderTemplate produces one language's output for one template. incomplete
// is true when the page fell back to the under-construction message.
func (e *Engine) renderTemplate(lang config.Language, tpl string, content []byte) (rendered []byte, incomplete bool, err error) {
	lookup := lookupOriginal
	if !lang.IsDefault {
		catPath, err := lang.CatalogPath(tpl, e.project.TemplatesDir)
		if err != nil {
			return nil, false, err
		}
		cat, err := catalog.Load(catPath)
		if err != nil {
			return nil, false, err
		}
		lookup = lookupIn(cat, lang)
	}

	out := content
	if template.IsHTML(tpl) {
		out, err = template.RewriteHTML(out, e.project.Config.Tags.Translation, lookup)
		if err != nil {
			return e.incompleteFallback(lang, tpl, err)
		}
	}

	text, err := template.RenderText(string(out), lookup)
	if err != nil {
		return e.incompleteFallback(lang, tpl, err)
	}
	return []byte(text), false, nil
}

// incompleteFallback downgrades a missing translation to an
// under-construction page unless strict mode is on. Any other error, missing
// literals included, stays fatal.
func (e *Engine) incompleteFallback(lang config.Language, tpl string, err error) ([]byte, bool, error) {
	if e.project.Config.App.Strict || !isIncomplete(err) {
		if ge, ok := err.(*gserrors.GosettaError); ok {
			if isIncomplete(err) {
				// Strict mode turns a merely-missing translation fatal.
				ge = ge.WithSeverity(gserrors.SeverityFatal)
			}
			return nil, false, ge.WithContext("template", tpl)
		}
		return nil, false, err
	}
	slog.Warn("Incomplete translation, rendering construction page",
		"template", tpl, "language", lang.Code)
	return []byte(lang.ConstructionMessage), true, nil
}

// isIncomplete distinguishes a merely-missing translation (recoverable) from
// harder translation errors like lost literals (fatal severity).
func isIncomplete(err error) bool {
	ge, ok := err.(*gserrors.GosettaError)
	if !ok {
		return false
	}
	return ge.Category == gserrors.CategoryTranslation && ge.Severity != gserrors.SeverityFatal
}
