package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/todo-go/internal/config"
)

// configCommand prints the effective configuration and where each value
// came from, or an example config file with -example.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todo config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example todo.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	width := 0
	for _, field := range config.Fields() {
		if len(field) > width {
			width = len(field)
		}
	}
	for _, field := range config.Fields() {
		value := cws.Config.Value(field)
		if value == "" {
			value = `""`
		}
		fmt.Printf("%-*s = %s (%s)\n", width, field, value, cws.Sources[field])
	}

	if len(cws.Files) > 0 {
		fmt.Println()
		fmt.Println("Files read:")
		for _, f := range cws.Files {
			fmt.Printf("  %s\n", f)
		}
	}
	if len(cws.Unknown) > 0 {
		fmt.Println()
		fmt.Println("Unknown keys (ignored):")
		for _, key := range cws.Unknown {
			fmt.Printf("  %s\n", key)
		}
	}
	return nil
}
