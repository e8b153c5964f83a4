package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/gosetta/internal/config"
	"git.home.luguber.info/inful/gosetta/internal/engine"
	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/incremental"
	"git.home.luguber.info/inful/gosetta/internal/metrics"
	"git.home.luguber.info/inful/gosetta/internal/preview"
	"git.home.luguber.info/inful/gosetta/internal/template"
	"git.home.luguber.info/inful/gosetta/internal/watch"
)

func runGenerate(ctx context.Context) error {
	project, err := loadProject()
	if err != nil {
		return err
	}
	templates, err := template.ResolvePaths(CLI.Generate.Paths)
	if err != nil {
		return err
	}

	eng := engine.New(project, engine.Options{
		DryRun:    CLI.Generate.DryRun,
		Languages: CLI.Generate.Languages,
	})
	report, err := eng.Generate(ctx, templates)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d catalog file(s) from %d template(s)\n", len(report.FilesWritten), len(templates))
	for code, missing := range report.Missing {
		if missing > 0 {
			fmt.Printf("  %s: %d translation(s) still missing\n", code, missing)
		}
	}
	return nil
}

func runTranslate(ctx context.Context) error {
	project, err := loadProject()
	if err != nil {
		return err
	}
	templates, err := template.ResolvePaths(CLI.Translate.Paths)
	if err != nil {
		return err
	}

	cache, err := openCache(project)
	if err != nil {
		return err
	}
	defer cache.Close()

	// A forced run drops the recorded digests so later runs start fresh.
	if CLI.Translate.Force {
		if err := cache.Reset(ctx); err != nil {
			return gserrors.WrapError(err, gserrors.CategoryRuntime, "failed to reset incremental cache")
		}
	}

	eng := engine.New(project, engine.Options{
		DryRun:    CLI.Translate.DryRun,
		Force:     CLI.Translate.Force,
		Languages: CLI.Translate.Languages,
		Cache:     cache,
	})
	report, err := eng.Translate(ctx, templates)
	if err != nil {
		return err
	}

	fmt.Printf("Translated %d template(s), wrote %d file(s), skipped %d unchanged\n",
		len(templates)-report.Skipped, len(report.FilesWritten), report.Skipped)
	return nil
}

func runCheck(ctx context.Context) error {
	project, err := loadProject()
	if err != nil {
		return err
	}

	paths := CLI.Check.Paths
	if len(paths) == 0 {
		paths = []string{project.TemplatesDir}
	}
	templates, err := template.ResolvePaths(paths)
	if err != nil {
		return err
	}

	eng := engine.New(project, engine.Options{Languages: CLI.Check.Languages})
	report, err := eng.Check(ctx, templates)
	if report != nil {
		for code, missing := range report.Missing {
			fmt.Printf("%s: %d missing, %d orphaned\n", code, missing, report.Orphans[code])
		}
	}
	return err
}

// defaultConfig is the scaffold written by init.
const defaultConfig = `# gosetta configuration
languages:
  default: en
  others: []
  # others: [el, fr]

paths:
  templates: templates
  translations: translations/{language}
  translated: translated/{language}

tags:
  translation: x-trans

app:
  strict: false
  # construction_message: "This page has not been translated into {language} yet.\n"

# formatters:
#   .html: [prettier, --write]

watch:
  debounce: 2s
  # interval: 1h
  # preview: 127.0.0.1:8800
`

func runInit(force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return gserrors.WrapError(err, gserrors.CategoryRuntime, "failed to determine working directory")
	}

	configDir := filepath.Join(cwd, config.ConfigDirName)
	configPath := filepath.Join(configDir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		return gserrors.New(gserrors.CategoryConfig, gserrors.SeverityFatal, "configuration already exists, use --force to overwrite").
			WithContext("path", configPath)
	}

	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to create configuration directory")
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to write configuration file")
	}

	fmt.Printf("Initialized %s\n", configPath)
	return nil
}

func runWatch(ctx context.Context) error {
	project, err := loadProject()
	if err != nil {
		return err
	}

	cache, err := openCache(project)
	if err != nil {
		return err
	}
	defer cache.Close()

	previewAddr := CLI.Watch.Preview
	if previewAddr == "" {
		previewAddr = project.Config.Watch.Preview
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prom.Registry
	if previewAddr != "" {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	eng := engine.New(project, engine.Options{Cache: cache, Recorder: recorder})
	watcher, err := watch.New(project, eng)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watcher.Run(gctx) })
	if previewAddr != "" {
		server := preview.New(project, previewAddr, registry)
		g.Go(func() error { return server.Run(gctx) })
	}
	return g.Wait()
}

// openCache opens the incremental digest store under .gosetta.
func openCache(project *config.Project) (*incremental.Store, error) {
	path := filepath.Join(project.Root, config.ConfigDirName, incremental.CacheFileName)
	store, err := incremental.NewStore(path)
	if err != nil {
		return nil, gserrors.WrapError(err, gserrors.CategoryRuntime, "failed to open incremental cache")
	}
	return store, nil
}
