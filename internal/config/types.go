package config

import (
	"fmt"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Unknown lists keys present in config files that no field consumed.
	Unknown []string
}

// Default values.
const (
	DefaultTodoFile   = "todo.json"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultAccent     = "#66ccff"
	DefaultBackground = "#2b2b2b"
	DefaultInput      = "#3b3b3b"
)

// Config holds the full configuration for todo.
type Config struct {
	// Paths
	TodoFile string `toml:"todo_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogFile       string `toml:"log_file"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Terminal UI palette
	TUI TUIConfig `toml:"tui"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// TUIConfig holds the terminal UI colours as hex strings.
type TUIConfig struct {
	Accent     string `toml:"accent"`
	Background string `toml:"background"`
	Input      string `toml:"input"`
}

// configFields returns the list of configurable field names for source tracking.
// Dotted names address keys inside TOML tables.
func configFields() []string {
	return []string{
		"todo_file",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
		"hook_command",
		"tui.accent",
		"tui.background",
		"tui.input",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TodoFile = DefaultTodoFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.LogFile = ""
	cfg.HookCommand = ""
	cfg.TUI = TUIConfig{
		Accent:     DefaultAccent,
		Background: DefaultBackground,
		Input:      DefaultInput,
	}
}

// Value returns the effective value of a field named as in configFields.
func (c *Config) Value(field string) string {
	switch field {
	case "todo_file":
		return c.TodoFile
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	case "log_file":
		return c.LogFile
	case "hook_command":
		return c.HookCommand
	case "tui.accent":
		return c.TUI.Accent
	case "tui.background":
		return c.TUI.Background
	case "tui.input":
		return c.TUI.Input
	default:
		return ""
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func validLogFormat(format string) bool {
	switch format {
	case "text", "json", "logfmt":
		return true
	}
	return false
}

// splitField turns "tui.accent" into the TOML key path ["tui", "accent"].
func splitField(field string) []string {
	return strings.Split(field, ".")
}
