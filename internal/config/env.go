package config

import (
	"os"

	"github.com/nibzard/todo-go/internal/utils"
)

// Environment variable names.
const (
	EnvTodoFile      = "TODO_FILE"
	EnvLogLevel      = "TODO_LOG_LEVEL"
	EnvLogFormat     = "TODO_LOG_FORMAT"
	EnvLogTimestamps = "TODO_LOG_TIMESTAMPS"
	EnvLogCaller     = "TODO_LOG_CALLER"
	EnvLogFile       = "TODO_LOG_FILE"
	EnvHook          = "TODO_HOOK"
)

// loadFromEnv overrides config from environment variables and records
// SourceEnv for every field it touches.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = utils.ParseBool(v)
			sources[field] = SourceEnv
		}
	}

	setString(EnvTodoFile, "todo_file", &cfg.TodoFile)
	setString(EnvLogLevel, "log_level", &cfg.LogLevel)
	setString(EnvLogFormat, "log_format", &cfg.LogFormat)
	setBool(EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps)
	setBool(EnvLogCaller, "log_caller", &cfg.LogCaller)
	setString(EnvLogFile, "log_file", &cfg.LogFile)
	setString(EnvHook, "hook_command", &cfg.HookCommand)
}
