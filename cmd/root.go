// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/form"
	"github.com/nibzard/todo-go/internal/hooks"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrFailed reports that a command already printed why it failed. Callers
// should exit non-zero without printing it again.
var ErrFailed = errors.New("command failed")

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// With no arguments, list tasks.
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	err = dispatch(ctx, cws, fs, subcommand, remainingArgs)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func dispatch(ctx context.Context, cws *config.ConfigWithSources, fs *flag.FlagSet, subcommand string, args []string) error {
	cfg := cws.Config
	switch subcommand {
	case "add":
		return withApp(ctx, cfg, false, func(a *app) error { return addCommand(a, args) })
	case "ls", "list":
		return withApp(ctx, cfg, false, func(a *app) error { return lsCommand(a, args) })
	case "update":
		return withApp(ctx, cfg, false, func(a *app) error { return updateCommand(a, args) })
	case "rm", "delete":
		return withApp(ctx, cfg, false, func(a *app) error { return deleteCommand(a, args) })
	case "done":
		return withApp(ctx, cfg, false, func(a *app) error { return doneCommand(a, args) })
	case "overdue":
		return withApp(ctx, cfg, false, func(a *app) error { return overdueCommand(a, args) })
	case "tui":
		return withApp(ctx, cfg, true, func(a *app) error { return tuiCommand(ctx, a, args) })
	case "doctor":
		return doctorCommand(cws, args)
	case "config":
		return configCommand(cws, args)
	case "completion":
		return completionCommand(args)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// app bundles what the task commands need: the store behind its form
// service and the logger shared with hooks.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	svc    *form.Service
	close  func() error
}

// openApp opens the task file named by cfg. Interactive sessions keep
// log and hook output off the terminal.
func openApp(ctx context.Context, cfg *config.Config, interactive bool) (*app, error) {
	var console io.Writer = os.Stderr
	if interactive {
		console = nil
	}
	logger, closeLog, err := logging.Open(cfg, console)
	if err != nil {
		return nil, err
	}

	store, err := todo.Open(cfg.TodoFile,
		todo.WithLogger(logger),
		todo.WithObserver(hooks.Notifier(ctx, cfg.HookCommand, cfg.WorkDir, interactive, logger)),
	)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	logger.Debug("opened todo file", "path", store.Path(), "tasks", store.Len())

	return &app{
		cfg:    cfg,
		logger: logger,
		svc:    form.New(store),
		close:  closeLog,
	}, nil
}

func withApp(ctx context.Context, cfg *config.Config, interactive bool, fn func(*app) error) error {
	a, err := openApp(ctx, cfg, interactive)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

func versionCommand() error {
	fmt.Printf("todo version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [global options] [command] [options] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <name> [-due YYYY-MM-DD]   Add a task")
	fmt.Fprintln(w, "  ls                             List all tasks (default command)")
	fmt.Fprintln(w, "  update <id> [options]          Change a task's name, due date or status")
	fmt.Fprintln(w, "  rm <id>                        Delete a task (alias: delete)")
	fmt.Fprintln(w, "  done <id>                      Mark a task as done")
	fmt.Fprintln(w, "  overdue                        List tasks past their due date")
	fmt.Fprintln(w, "  tui                            Launch the terminal form interface")
	fmt.Fprintln(w, "  doctor                         Check config and task file validity")
	fmt.Fprintln(w, "  config [-example]              Show effective configuration")
	fmt.Fprintln(w, "  completion <bash|zsh|fish>     Print a shell completion script")
	fmt.Fprintln(w, "  version                        Show version information")
	fmt.Fprintln(w, "  help                           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Update Options (use with 'update' command):")
	fmt.Fprintln(w, "  -name string")
	fmt.Fprintln(w, "        New task name")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        New due date (YYYY-MM-DD)")
	fmt.Fprintln(w, "  -clear-due")
	fmt.Fprintln(w, "        Remove the due date")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        New status (not started|done)")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Config files: %s, ./todo.toml\n", strings.TrimSpace(config.UserConfigPath()))
}
