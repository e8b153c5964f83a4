// Package format runs the configured formatter commands over written files,
// grouped by suffix (e.g. prettier for .html, gofmt-style tools for others).
package format

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

// Runner invokes formatter commands for files matching their suffix.
type Runner struct {
	// Formatters maps a file suffix (".html") to the command invoked with
	// the matching paths appended.
	Formatters map[string][]string

	// DryRun logs the commands without executing them.
	DryRun bool
}

// Run groups paths by suffix and executes each configured formatter once
// with all of its matching paths. Suffixes without a formatter are ignored.
func (r *Runner) Run(ctx context.Context, paths []string) error {
	if len(r.Formatters) == 0 || len(paths) == 0 {
		return nil
	}

	groups := map[string][]string{}
	for _, path := range paths {
		groups[filepath.Ext(path)] = append(groups[filepath.Ext(path)], path)
	}

	// Deterministic execution order across runs.
	suffixes := make([]string, 0, len(groups))
	for suffix := range groups {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	for _, suffix := range suffixes {
		command, ok := r.Formatters[suffix]
		if !ok {
			continue
		}
		if err := r.runOne(ctx, command, groups[suffix]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, command, paths []string) error {
	args := append(append([]string(nil), command[1:]...), paths...)
	slog.Debug("Running formatter", "command", command[0], "files", len(paths))

	if r.DryRun {
		return nil
	}

	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return gserrors.WrapError(err, gserrors.CategoryFormat, "formatter command failed").
			WithContext("command", command[0])
	}
	return nil
}
