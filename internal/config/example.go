package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by environment variables (TODO_*) or CLI flags.

# Task file (relative paths resolve against the working directory)
todo_file = "todo.json"

# Logging: debug, info, warn, error or fatal
log_level = "info"

# Log format: text, json or logfmt
log_format = "text"

log_timestamps = false
log_caller = false

# Also append logs to this file (supports ~ expansion)
# log_file = "~/.todo/todo.log"

# Command run after every saved change as: <hook> <event> <id> <todo-file>
# hook_command = "/path/to/hook.sh"

# Terminal UI palette
[tui]
accent = "#66ccff"
background = "#2b2b2b"
input = "#3b3b3b"
`
}
