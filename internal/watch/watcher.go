// Package watch implements daemon mode: it monitors the templates tree and
// the language catalog trees and re-runs the translation pipeline when
// files change, with optional scheduled full runs.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/gosetta/internal/config"
	"git.home.luguber.info/inful/gosetta/internal/engine"
	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/template"
)

// Watcher re-runs generate+translate whenever the templates tree changes.
type Watcher struct {
	project  *config.Project
	engine   *engine.Engine
	watcher  *fsnotify.Watcher
	debounce time.Duration
	interval time.Duration

	triggerChan chan struct{}
}

// New creates a watcher over the project's templates directory.
func New(project *config.Project, eng *engine.Engine) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, gserrors.WrapError(err, gserrors.CategoryWatch, "failed to create file watcher")
	}

	return &Watcher{
		project:     project,
		engine:      eng,
		watcher:     fsWatcher,
		debounce:    project.WatchDebounce,
		interval:    project.WatchInterval,
		triggerChan: make(chan struct{}, 1),
	}, nil
}

// Run blocks until ctx is canceled, syncing on template changes. An initial
// full sync runs before watching starts so the translated tree is current.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addRecursive(w.project.TemplatesDir); err != nil {
		return err
	}
	w.watchTranslations()
	slog.Info("Watching templates", "dir", w.project.TemplatesDir, "debounce", w.debounce)

	w.sync(ctx)

	var scheduler gocron.Scheduler
	if w.interval > 0 {
		var err error
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return gserrors.WrapError(err, gserrors.CategoryWatch, "failed to create scheduler")
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(w.interval),
			gocron.NewTask(func() { w.trigger() }),
		)
		if err != nil {
			return gserrors.WrapError(err, gserrors.CategoryWatch, "failed to schedule periodic run")
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("Scheduled periodic runs", "interval", w.interval)
	}

	go w.watchLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case <-w.triggerChan:
			w.waitForQuiet(ctx)
			w.sync(ctx)
		}
	}
}

// watchLoop converts raw filesystem events into debounced triggers and keeps
// the recursive watch up to date when directories appear.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories need their own watch.
				_ = w.addRecursive(event.Name)
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Template change detected", "path", event.Name, "op", event.Op.String())
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

// trigger coalesces bursts of events into a single pending sync.
func (w *Watcher) trigger() {
	select {
	case w.triggerChan <- struct{}{}:
	default:
	}
}

// waitForQuiet blocks until no new trigger has arrived for the debounce
// window, batching rapid saves into one run.
func (w *Watcher) waitForQuiet(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.triggerChan:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			return
		}
	}
}

// sync runs generate then translate over the whole templates tree. Errors are
// logged, not fatal: the daemon keeps watching.
func (w *Watcher) sync(ctx context.Context) {
	templates, err := template.ResolvePaths([]string{w.project.TemplatesDir})
	if err != nil {
		if gserrors.IsCategory(err, gserrors.CategoryTemplate) {
			slog.Warn("No templates to sync")
			return
		}
		slog.Error("Failed to resolve templates", "error", err)
		return
	}

	if _, err := w.engine.Generate(ctx, templates); err != nil {
		slog.Error("Generate failed", "category", gserrors.GetCategory(err), "error", err)
		return
	}
	// Generate may have just created the catalog directories.
	w.watchTranslations()

	if _, err := w.engine.Translate(ctx, templates); err != nil {
		slog.Error("Translate failed", "category", gserrors.GetCategory(err), "error", err)
	}
}

// watchTranslations registers each language's catalog tree, so translator
// edits re-render the affected templates. Directories that do not exist yet
// are skipped; sync re-registers after every generate.
func (w *Watcher) watchTranslations() {
	for _, lang := range w.project.Languages {
		if lang.IsDefault {
			continue
		}
		_ = w.addRecursive(lang.TranslationsDir)
	}
}

// addRecursive registers dir and every subdirectory with the watcher.
// Non-directories are ignored.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may have vanished between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return gserrors.WrapError(err, gserrors.CategoryWatch, "failed to watch directory").
				WithContext("path", path)
		}
		return nil
	})
}
