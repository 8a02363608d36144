package config

import "flag"

// flagFields maps global flag names to config field names.
var flagFields = map[string]string{
	"file":           "todo_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"log-file":       "log_file",
	"hook":           "hook_command",
}

// parseFlags defines the global flags on fs, parses args and applies only
// the flags that were explicitly set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	var (
		todoFile      = cfg.TodoFile
		logLevel      = cfg.LogLevel
		logFormat     = cfg.LogFormat
		logTimestamps = cfg.LogTimestamps
		logCaller     = cfg.LogCaller
		logFile       = cfg.LogFile
		hook          = cfg.HookCommand
	)

	fs.StringVar(&todoFile, "file", todoFile, "Path to task file (env: TODO_FILE)")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug|info|warn|error|fatal")
	fs.StringVar(&logFormat, "log-format", logFormat, "Log format: text|json|logfmt")
	fs.BoolVar(&logTimestamps, "log-timestamps", logTimestamps, "Include timestamps in log output")
	fs.BoolVar(&logCaller, "log-caller", logCaller, "Include caller location in log output")
	fs.StringVar(&logFile, "log-file", logFile, "Also append logs to this file")
	fs.StringVar(&hook, "hook", hook, "Command to run after each saved change")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagFields[f.Name]
		if !ok {
			return
		}
		switch field {
		case "todo_file":
			cfg.TodoFile = todoFile
		case "log_level":
			cfg.LogLevel = logLevel
		case "log_format":
			cfg.LogFormat = logFormat
		case "log_timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log_caller":
			cfg.LogCaller = logCaller
		case "log_file":
			cfg.LogFile = logFile
		case "hook_command":
			cfg.HookCommand = hook
		}
		sources[field] = SourceFlag
	})
	return nil
}
