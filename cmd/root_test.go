// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nibzard/todo-go/internal/config"
)

// isolate runs the test in a fresh directory with no user config and no
// TODO_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{
		config.EnvTodoFile, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvLogTimestamps, config.EnvLogCaller, config.EnvLogFile, config.EnvHook,
	} {
		t.Setenv(env, "")
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return work
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		return Run(context.Background(), args)
	})
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}, {"--version"}, {"-v"}, {"version"}} {
		if _, err := run(t, args...); err != nil {
			t.Errorf("%v: expected no error, got %v", args, err)
		}
	}

	t.Run("version output", func(t *testing.T) {
		out, _ := run(t, "version")
		if !strings.Contains(out, "todo version "+Version) {
			t.Errorf("unexpected version output %q", out)
		}
	})

	t.Run("help lists commands", func(t *testing.T) {
		out, _ := run(t, "help")
		for _, name := range []string{"add", "overdue", "doctor", "-file"} {
			if !strings.Contains(out, name) {
				t.Errorf("help output missing %q", name)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, err := run(t, "unknown-command")
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("default command lists tasks", func(t *testing.T) {
		out, err := run(t)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(out) != "No tasks." {
			t.Errorf("got %q, want No tasks.", out)
		}
	})

	t.Run("bad global flag", func(t *testing.T) {
		if _, err := run(t, "--log-level", "loud", "ls"); err == nil {
			t.Fatal("expected config error")
		}
	})
}

func TestTaskCommands(t *testing.T) {
	work := isolate(t)
	file := filepath.Join(work, "tasks.json")

	steps := []struct {
		args    []string
		want    string
		wantErr error
	}{
		{[]string{"add", "Buy", "milk", "-due", "2000-01-01"}, "Task 'Buy milk' added with ID 1", nil},
		{[]string{"add", "-due", "2999-01-01", "Plan trip"}, "Task 'Plan trip' added with ID 2", nil},
		{[]string{"add", "Someday"}, "Task 'Someday' added with ID 3", nil},
		{[]string{"add", "Bad", "-due", "01/01/2000"}, "Invalid due date. Please enter a date in the format YYYY-MM-DD.", ErrFailed},
		{[]string{"overdue"}, "Task Name: Buy milk\nDue Date: 2000-01-01\nStatus: Not Started", nil},
		{[]string{"done", "1"}, "Task 1 marked as done", nil},
		{[]string{"update", "2", "-name", "Plan holiday", "-status", "done"}, "Task 2 updated", nil},
		{[]string{"update", "2", "-clear-due"}, "Task 2 updated", nil},
		{[]string{"update", "x"}, "Invalid task ID or due date.", ErrFailed},
		{[]string{"rm", "3"}, "Task 3 deleted", nil},
		{[]string{"delete", "3"}, "Task not found", ErrFailed},
		{[]string{"done", "abc"}, "Invalid task ID. Please enter a number.", ErrFailed},
	}
	for _, step := range steps {
		args := append([]string{"--file", file}, step.args...)
		out, err := run(t, args...)
		if !errors.Is(err, step.wantErr) {
			t.Fatalf("%v: error = %v, want %v", step.args, err, step.wantErr)
		}
		if !strings.HasPrefix(out, step.want) {
			t.Errorf("%v: output %q, want prefix %q", step.args, out, step.want)
		}
	}

	out, err := run(t, "--file", file, "ls")
	if err != nil {
		t.Fatal(err)
	}
	want := "Task ID: 1\nTask Name: Buy milk\nDue Date: 2000-01-01\nStatus: Done\n\n" +
		"Task ID: 2\nTask Name: Plan holiday\nDue Date: None\nStatus: Done\n\n"
	if out != want {
		t.Errorf("ls output:\n%q\nwant:\n%q", out, want)
	}
}

func TestTaskCommandUsageErrors(t *testing.T) {
	isolate(t)

	tests := [][]string{
		{"add"},
		{"rm"},
		{"done", "1", "2"},
		{"update"},
		{"update", "1", "-due", "2025-01-01", "-clear-due"},
		{"ls", "extra"},
		{"overdue", "extra"},
	}
	for _, args := range tests {
		_, err := run(t, args...)
		if err == nil || errors.Is(err, ErrFailed) {
			t.Errorf("%v: expected usage error, got %v", args, err)
		}
	}

	if _, err := run(t, "add", "-h"); err != nil {
		t.Errorf("subcommand -h should not be an error, got %v", err)
	}
}

func TestMalformedTodoFile(t *testing.T) {
	work := isolate(t)
	if err := os.WriteFile(filepath.Join(work, "todo.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "ls")
	if err == nil || !strings.Contains(err.Error(), "parse todo file") {
		t.Errorf("expected parse error, got %v", err)
	}

	_, err = run(t, "doctor")
	if err == nil || !strings.Contains(err.Error(), "doctor checks failed") {
		t.Errorf("expected doctor failure, got %v", err)
	}
}

func TestDoctorCommand(t *testing.T) {
	work := isolate(t)

	t.Run("missing file passes", func(t *testing.T) {
		out, err := run(t, "doctor")
		if err != nil {
			t.Fatalf("doctor failed: %v\n%s", err, out)
		}
		if !strings.Contains(out, "Not found") || !strings.Contains(out, "All checks passed") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("valid file reports counts", func(t *testing.T) {
		content := `{"1": {"task_name": "Old", "due_date": "2000-01-01", "status": "Not Started"}}`
		if err := os.WriteFile(filepath.Join(work, "todo.json"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		out, err := run(t, "doctor", "-v")
		if err != nil {
			t.Fatalf("doctor failed: %v\n%s", err, out)
		}
		if !strings.Contains(out, "Valid (1 tasks, 1 overdue)") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if !strings.Contains(out, "1: Old") {
			t.Errorf("verbose listing missing:\n%s", out)
		}
	})

	t.Run("schema violation fails", func(t *testing.T) {
		content := `{"1": {"task_name": 5, "due_date": null}}`
		if err := os.WriteFile(filepath.Join(work, "todo.json"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		out, err := run(t, "doctor")
		if err == nil {
			t.Fatal("expected doctor failure")
		}
		if !strings.Contains(out, "Validation failed") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("missing hook fails", func(t *testing.T) {
		_ = os.Remove(filepath.Join(work, "todo.json"))
		_, err := run(t, "--hook", filepath.Join(work, "no-such-hook"), "doctor")
		if err == nil {
			t.Fatal("expected doctor failure for missing hook")
		}
	})
}

func TestConfigCommand(t *testing.T) {
	work := isolate(t)
	if err := os.WriteFile(filepath.Join(work, "todo.toml"), []byte("log_level = \"debug\"\nbogus = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--file", "mine.json", "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	for _, want := range []string{
		"mine.json (flag)",
		"log_level      = debug (project file)",
		"log_format     = text (default)",
		"Unknown keys (ignored):",
		"bogus",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "config", "-example")
	if err != nil {
		t.Fatal(err)
	}
	if out != config.ExampleConfig() {
		t.Errorf("example output differs from ExampleConfig")
	}
}

func TestHookRunsAfterSave(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	work := isolate(t)
	events := filepath.Join(work, "events.txt")
	hook := filepath.Join(work, "hook.sh")
	if err := os.WriteFile(hook, []byte("#!/bin/sh\necho \"$1 $2\" >> "+events+"\n"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "--hook", hook, "add", "watered plants"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--hook", hook, "done", "1"); err != nil {
		t.Fatal(err)
	}
	// Rejected input never reaches the store, so no event.
	if _, err := run(t, "--hook", hook, "done", "x"); !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}

	data, err := os.ReadFile(events)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "add 1\ndone 1\n" {
		t.Errorf("events: got %q", data)
	}
}

func TestParseInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	due := fs.String("due", "", "")
	clearFlag := fs.Bool("clear", false, "")

	got, err := parseInterspersed(fs, []string{"a", "-due", "2025-01-01", "b", "-clear", "--", "-c", "-due", "x"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "a,b,-c,-due,x" {
		t.Errorf("positional: got %v", got)
	}
	if *due != "2025-01-01" || !*clearFlag {
		t.Errorf("flags: due=%q clear=%v", *due, *clearFlag)
	}
}

func TestIsWindowsExecutable(t *testing.T) {
	t.Setenv("PATHEXT", ".EXE;.CMD")
	tests := []struct {
		path string
		want bool
	}{
		{`C:\tools\hook.exe`, true},
		{`C:\tools\hook.CMD`, true},
		{`C:\tools\hook.sh`, false},
		{`C:\tools\hook`, false},
	}
	for _, tt := range tests {
		if got := isWindowsExecutable(tt.path); got != tt.want {
			t.Errorf("isWindowsExecutable(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWindowsExecutableExts(t *testing.T) {
	t.Setenv("PATHEXT", "")
	exts := windowsExecutableExts()
	for _, ext := range []string{".com", ".exe", ".bat", ".cmd"} {
		if !exts[ext] {
			t.Errorf("default PATHEXT missing %s", ext)
		}
	}

	t.Setenv("PATHEXT", "PS1; .Py ;")
	exts = windowsExecutableExts()
	if !exts[".ps1"] || !exts[".py"] || len(exts) != 2 {
		t.Errorf("unexpected exts %v", exts)
	}
}

func TestCheckBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on windows")
	}
	dir := t.TempDir()
	exe := filepath.Join(dir, "hook")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(plain, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		binary   string
		required bool
		want     bool
	}{
		{"executable file", exe, true, true},
		{"not executable required", plain, true, false},
		{"not executable optional", plain, false, true},
		{"directory required", dir, true, false},
		{"empty required", "", true, false},
		{"missing optional", filepath.Join(dir, "missing"), false, true},
		{"missing required", filepath.Join(dir, "missing"), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			_, _ = captureStdout(t, func() error {
				got = checkBinary("hook", tt.binary, tt.required)
				return nil
			})
			if got != tt.want {
				t.Errorf("checkBinary(%q, %v) = %v, want %v", tt.binary, tt.required, got, tt.want)
			}
		})
	}
}
