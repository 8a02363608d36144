package cmd

import (
	"fmt"
	"strings"
)

var completionCommands = []string{
	"add", "ls", "update", "rm", "delete", "done", "overdue",
	"tui", "doctor", "config", "completion", "version", "help",
}

// completionCommand prints a completion script for the named shell.
func completionCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: todo completion <bash|zsh|fish|powershell>")
	}
	words := strings.Join(completionCommands, " ")

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Printf(bashCompletion, words)
	case "zsh":
		fmt.Printf(zshCompletion, words)
	case "fish":
		fmt.Printf(fishCompletion, words)
	case "powershell", "pwsh":
		fmt.Printf(powershellCompletion, strings.Join(completionCommands, "','"))
	default:
		return fmt.Errorf("unsupported shell: %s", args[0])
	}
	return nil
}

const bashCompletion = `# todo bash completion
_todo() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
    fi
}
complete -F _todo todo
`

const zshCompletion = `#compdef todo
_todo() {
    local -a commands
    commands=(%s)
    if (( CURRENT == 2 )); then
        _describe 'command' commands
    fi
}
compdef _todo todo
`

const fishCompletion = `# todo fish completion
complete -c todo -f -n '__fish_use_subcommand' -a '%s'
`

const powershellCompletion = `# todo PowerShell completion
Register-ArgumentCompleter -Native -CommandName todo -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    @('%s') | Where-Object { $_ -like "$wordToComplete*" } |
        ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }
}
`
