// Package hooks invokes the external command configured to run after each
// saved change to the task file.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/todo"
)

// Options configures a hook invocation.
type Options struct {
	Command  string
	Event    string
	TaskID   int
	TodoFile string
	WorkDir  string
	// Quiet connects the hook's output to the null device and ignores
	// Stdout and Stderr.
	Quiet bool
	// Stdout and Stderr default to the process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// waitDelay bounds how long Invoke waits for the hook's output to close
// after the context is done. Children the hook started may keep it open.
const waitDelay = 500 * time.Millisecond

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as: <command> <event> <id> <todo-file>.
// An empty command is a no-op.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if opts.Event == "" {
		return Result{}, fmt.Errorf("hook event is empty")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	args := []string{opts.Event, strconv.Itoa(opts.TaskID), opts.TodoFile}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.WaitDelay = waitDelay
	if !opts.Quiet {
		cmd.Stdout = opts.Stdout
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		cmd.Stderr = opts.Stderr
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
	}

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

// Notifier returns a store observer that invokes command for every saved
// change. Failures are logged at warn and never propagate to the store.
func Notifier(ctx context.Context, command, workDir string, quiet bool, logger *log.Logger) func(todo.Event) {
	if command == "" {
		return nil
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(ev todo.Event) {
		opts := Options{
			Command:  command,
			Event:    string(ev.Kind),
			TaskID:   ev.ID,
			TodoFile: ev.Path,
			WorkDir:  workDir,
			Quiet:    quiet,
		}
		result, err := Invoke(ctx, opts)
		if err != nil {
			logger.Warn("hook failed", "command", command, "event", ev.Kind, "id", ev.ID, "exit_code", result.ExitCode, "err", err)
			return
		}
		logger.Debug("hook ran", "command", command, "event", ev.Kind, "id", ev.ID)
	}
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
