package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

// FindProjectRoot walks upward from startDir looking for a .gosetta directory.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	var searched []string
	for {
		candidate := filepath.Join(dir, ConfigDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return dir, nil
		}
		searched = append(searched, candidate)

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", gserrors.ProjectRootNotFound(searched)
		}
		dir = parent
	}
}

// Load locates the project root starting at startDir, reads
// .gosetta/gosetta.yaml, applies defaults, validates, and resolves the
// configured languages against the root.
func Load(startDir string) (*Project, error) {
	root, err := FindProjectRoot(startDir)
	if err != nil {
		return nil, err
	}

	// Load the root's .env before expanding ${VAR} references in the config
	// file, so invocations from subdirectories see the same environment.
	loadEnvFiles(root)

	configPath := filepath.Join(root, ConfigDirName, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gserrors.ConfigNotFound(configPath)
		}
		return nil, gserrors.WrapError(err, gserrors.CategoryConfig, "failed to read config file")
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, gserrors.WrapError(err, gserrors.CategoryConfig, "failed to unmarshal config")
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	project := &Project{
		Root:         root,
		Config:       &cfg,
		TemplatesDir: filepath.Join(root, cfg.Paths.Templates),
	}

	// Validation already vetted the duration strings.
	project.WatchDebounce, _ = time.ParseDuration(cfg.Watch.Debounce)
	if cfg.Watch.Interval != "" {
		project.WatchInterval, _ = time.ParseDuration(cfg.Watch.Interval)
	}

	for _, code := range append([]string{cfg.Languages.Default}, cfg.Languages.Others...) {
		project.Languages = append(project.Languages, Language{
			Code:                code,
			IsDefault:           code == cfg.Languages.Default,
			TranslationsDir:     filepath.Join(root, expandLanguage(cfg.Paths.Translations, code)),
			TranslatedDir:       filepath.Join(root, expandLanguage(cfg.Paths.Translated, code)),
			ConstructionMessage: expandLanguage(cfg.App.ConstructionMessage, code),
		})
	}

	return project, nil
}

func expandLanguage(pattern, code string) string {
	return strings.ReplaceAll(pattern, "{language}", code)
}
