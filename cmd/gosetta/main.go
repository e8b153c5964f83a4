package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gosetta/internal/config"
	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/version"
)

var CLI struct {
	Dir     string           `short:"C" help:"Run as if started in this directory" default:"." type:"existingdir"`
	Verbose int              `short:"v" type:"counter" help:"Increase the level of verbosity"`
	Version kong.VersionFlag `short:"V" help:"Print the version and exit"`

	Generate struct {
		DryRun    bool     `short:"d" help:"Do not write to the output files"`
		Languages []string `short:"l" name:"language" help:"Languages to use (default: all languages in the config)"`
		Paths     []string `arg:"" help:"Template files or directories"`
	} `cmd:"" help:"Extract translatable spans and refresh the per-language catalogs"`

	Translate struct {
		DryRun    bool     `short:"d" help:"Do not write to the output files"`
		Languages []string `short:"l" name:"language" help:"Languages to use (default: all languages in the config)"`
		Force     bool     `short:"f" help:"Ignore the incremental cache and re-render everything"`
		Paths     []string `arg:"" help:"Template files or directories"`
	} `cmd:"" help:"Render translated copies of the templates for every language"`

	Check struct {
		Languages []string `short:"l" name:"language" help:"Languages to check (default: all languages in the config)"`
		Paths     []string `arg:"" optional:"" help:"Template files or directories (default: the templates directory)"`
	} `cmd:"" help:"Report missing and orphaned translations without writing"`

	Init struct {
		Force bool `help:"Overwrite an existing configuration file"`
	} `cmd:"" help:"Initialize a new .gosetta configuration"`

	Watch struct {
		Preview string `short:"p" help:"Preview server listen address (overrides the config)"`
	} `cmd:"" help:"Watch the templates tree and re-run translate on changes"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("gosetta"),
		kong.Description("Universal translator for template trees"),
		kong.Vars{"version": fmt.Sprintf("gosetta %s (%s)", version.Version, version.GitCommit)},
	)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose > 0 {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := gserrors.NewCLIErrorAdapter(CLI.Verbose > 0, logger)

	if CLI.Dir != "." {
		if err := os.Chdir(CLI.Dir); err != nil {
			adapter.HandleError(gserrors.WrapError(err, gserrors.CategoryValidation, "failed to change directory"))
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch ctx.Command() {
	case "generate <paths>":
		err = runGenerate(runCtx)
	case "translate <paths>":
		err = runTranslate(runCtx)
	case "check <paths>", "check":
		err = runCheck(runCtx)
	case "init":
		err = runInit(CLI.Init.Force)
	case "watch":
		err = runWatch(runCtx)
	default:
		err = gserrors.New(gserrors.CategoryInternal, gserrors.SeverityFatal, "unknown command").
			WithContext("command", ctx.Command())
	}

	adapter.HandleError(err)
}

// loadProject discovers and loads the project from the working directory.
func loadProject() (*config.Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, gserrors.WrapError(err, gserrors.CategoryRuntime, "failed to determine working directory")
	}
	return config.Load(cwd)
}
