package cmd

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/todo"
)

// doctorCommand checks config, the task file and the hook command.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	cfg := cws.Config

	fmt.Println("todo doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	fmt.Println("Config:")
	if active := cws.ActiveConfigFile(); active != "" {
		fmt.Printf("  ✅ Config file: %s\n", active)
	} else {
		fmt.Println("  ✅ Config file: none (using defaults)")
	}
	for _, key := range cws.Unknown {
		fmt.Printf("  ⚠️  Unknown key: %s\n", key)
	}
	fmt.Printf("  ✅ Log level: %s (%s)\n", cfg.LogLevel, cws.Sources["log_level"])
	fmt.Println()

	fmt.Printf("Todo file: %s\n", cfg.TodoFile)
	if !checkTodoFile(cfg.TodoFile, *verbose) {
		allOK = false
	}
	fmt.Println()

	if cfg.LogFile != "" {
		fmt.Printf("Log file: %s\n", cfg.LogFile)
		dir := filepath.Dir(cfg.LogFile)
		if info, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ⚠️  Directory not found (will be created)")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if !info.IsDir() {
			fmt.Printf("  ❌ Error: %s is not a directory\n", dir)
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
		fmt.Println()
	}

	fmt.Println("Hook:")
	if cfg.HookCommand == "" {
		fmt.Println("  ✅ Not configured")
	} else if !checkBinary("hook_command", cfg.HookCommand, true) {
		allOK = false
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. todo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func checkTodoFile(path string, verbose bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created by the first add)")
			return true
		}
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		return false
	}
	fmt.Println("  ✅ OK")

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("  ❌ Read error: %v\n", err)
		return false
	}
	result := todo.Validate(data)
	if !result.Valid {
		fmt.Println("  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Printf("     - %v\n", e)
		}
		return false
	}

	store, err := todo.Open(path)
	if err != nil {
		fmt.Printf("  ❌ Load error: %v\n", err)
		return false
	}
	fmt.Printf("  ✅ Valid (%d tasks, %d overdue)\n", store.Len(), len(store.Overdue()))
	if verbose {
		for _, e := range store.Tasks() {
			due := "None"
			if e.Task.HasDue() {
				due = e.Task.Due.String()
			}
			fmt.Printf("    - [%s] %d: %s (due %s)\n", e.Task.Status, e.ID, e.Task.Name, due)
		}
	}
	return true
}

func checkBinary(label, binary string, required bool) bool {
	fmt.Printf("  %s: %s\n", label, binary)
	if strings.TrimSpace(binary) == "" {
		if required {
			fmt.Println("  ❌ Not configured")
			return false
		}
		fmt.Println("  ⚠️  Not configured")
		return true
	}
	if info, err := os.Stat(binary); err == nil {
		if info.IsDir() {
			return checkFailed(required, "Path is a directory")
		}
		if !isExecutablePath(binary, info) {
			return checkFailed(required, "Not executable")
		}
		fmt.Println("  ✅ OK")
		return true
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return checkFailed(required, fmt.Sprintf("Not found: %v", err))
	}
	fmt.Printf("  ✅ OK (found in PATH: %s)\n", resolved)
	return true
}

func checkFailed(required bool, msg string) bool {
	if required {
		fmt.Printf("  ❌ %s\n", msg)
		return false
	}
	fmt.Printf("  ⚠️  %s\n", msg)
	return true
}

func isExecutablePath(path string, info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return isWindowsExecutable(path)
	}
	return info.Mode().Perm()&0111 != 0
}

func isWindowsExecutable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return windowsExecutableExts()[ext]
}

func windowsExecutableExts() map[string]bool {
	exts := map[string]bool{}
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	for _, ext := range strings.Split(pathext, ";") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	return exts
}
