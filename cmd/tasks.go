package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/todo-go/internal/form"
	"github.com/nibzard/todo-go/internal/ui"
)

// parseInterspersed parses flags that may appear before, between or after
// positional arguments and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if n := len(args) - len(rest); n > 0 && args[n-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// report prints a form result. Persistence failures are returned as
// errors; rejected input and unknown ids yield ErrFailed.
func report(res form.Result, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	if !res.OK() {
		return ErrFailed
	}
	return nil
}

func addCommand(a *app, args []string) error {
	fs := flag.NewFlagSet("todo add", flag.ContinueOnError)
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("usage: todo add <name> [-due YYYY-MM-DD]")
	}
	return report(a.svc.Add(strings.Join(positional, " "), *due))
}

func lsCommand(a *app, args []string) error {
	fs := flag.NewFlagSet("todo ls", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return report(a.svc.View())
}

func updateCommand(a *app, args []string) error {
	fs := flag.NewFlagSet("todo update", flag.ContinueOnError)
	name := fs.String("name", "", "New task name")
	due := fs.String("due", "", "New due date (YYYY-MM-DD)")
	clearDue := fs.Bool("clear-due", false, "Remove the due date")
	status := fs.String("status", "", "New status (not started|done)")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: todo update <id> [-name N] [-due D | -clear-due] [-status S]")
	}
	if *clearDue {
		if *due != "" {
			return fmt.Errorf("-due and -clear-due are mutually exclusive")
		}
		*due = "-"
	}
	return report(a.svc.Update(positional[0], *name, *due, *status))
}

func deleteCommand(a *app, args []string) error {
	id, err := singleID("todo rm", args)
	if err != nil {
		return err
	}
	return report(a.svc.Delete(id))
}

func doneCommand(a *app, args []string) error {
	id, err := singleID("todo done", args)
	if err != nil {
		return err
	}
	return report(a.svc.MarkDone(id))
}

func singleID(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return "", err
	}
	if len(positional) != 1 {
		return "", fmt.Errorf("usage: %s <id>", name)
	}
	return positional[0], nil
}

func overdueCommand(a *app, args []string) error {
	fs := flag.NewFlagSet("todo overdue", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return report(a.svc.Overdue())
}

func tuiCommand(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("todo tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	a.logger.Debug("starting tui", "path", a.svc.Store().Path())
	return ui.RunTUI(ctx, a.cfg, a.svc)
}
