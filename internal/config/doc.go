// Package config resolves the settings of the todo command.
//
// A Config names the task file (todo_file), the logger (log_level,
// log_format, log_timestamps, log_caller, log_file), the hook_command run
// after every saved change and the terminal UI colours in the [tui] table
// (accent, background, input). For example:
//
//	todo_file = "~/notes/todo.json"
//	hook_command = "./scripts/on-change.sh"
//
//	[tui]
//	accent = "#ff8800"
//
// Load starts from the built-in defaults and overlays, in order, the user
// file (~/.todo/todo.toml, else todo/todo.toml under APPDATA, Application
// Support or XDG_CONFIG_HOME depending on the platform), the
// first of todo.toml or .todo.toml in the working directory, the TODO_*
// environment variables (TODO_FILE, TODO_LOG_LEVEL, TODO_HOOK and the other
// log settings) and finally flags the user actually passed. A relative
// todo_file or log_file is resolved against the working directory.
//
// LoadWithSources additionally records which layer set each field, the
// files that were read and any keys no field consumed; the config
// subcommand prints them.
package config
