// Package form turns the raw text of each screen into a single store call
// and renders the outcome as a user-facing message. The terminal UI and the
// CLI subcommands both go through it.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/todo-go/internal/todo"
)

// Kind classifies a Result.
type Kind int

const (
	KindOK Kind = iota
	KindInvalidInput
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// User-facing messages.
const (
	MsgInvalidDue     = "Invalid due date. Please enter a date in the format YYYY-MM-DD."
	MsgInvalidUpdate  = "Invalid task ID or due date. Please enter a number for the task ID and a date in the format YYYY-MM-DD for the due date."
	MsgInvalidID      = "Invalid task ID. Please enter a number."
	MsgInvalidStatus  = "Invalid status. Please enter 'Not Started' or 'Done'."
	MsgNotFound       = "Task not found"
	MsgNoTasks        = "No tasks."
	MsgNoOverdueTasks = "No overdue tasks."
)

// Result is the rendered outcome of one screen action.
type Result struct {
	Message string
	Kind    Kind
}

// OK reports whether the action succeeded.
func (r Result) OK() bool { return r.Kind == KindOK }

func ok(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...), Kind: KindOK}
}

func invalid(msg string) Result {
	return Result{Message: msg, Kind: KindInvalidInput}
}

// Service binds the screens to a store. The returned error is reserved for
// persistence failures; input and lookup problems are reported in Result.
type Service struct {
	store *todo.Store
}

// New returns a Service over store.
func New(store *todo.Store) *Service {
	return &Service{store: store}
}

// Store returns the underlying store.
func (s *Service) Store() *todo.Store {
	return s.store
}

// Add creates a task. An empty due text means no deadline.
func (s *Service) Add(name, due string) (Result, error) {
	date, err := parseOptionalDate(due)
	if err != nil {
		return invalid(MsgInvalidDue), nil
	}
	id, err := s.store.AddTask(name, date)
	if err != nil {
		return Result{}, err
	}
	return ok("Task '%s' added with ID %d", name, id), nil
}

// View lists every task.
func (s *Service) View() (Result, error) {
	if s.store.Len() == 0 {
		return ok(MsgNoTasks), nil
	}
	return ok("%s", s.store.ViewTasks()), nil
}

// Update changes the fields whose text is non-empty. A due text of "-" or
// "none" removes the deadline.
func (s *Service) Update(id, name, due, status string) (Result, error) {
	taskID, err := parseID(id)
	if err != nil {
		return invalid(MsgInvalidUpdate), nil
	}

	var u todo.Update
	if name != "" {
		u = u.SetName(name)
	}

	switch d := strings.TrimSpace(due); {
	case d == "":
	case d == "-" || strings.EqualFold(d, "none"):
		u.Due = todo.ClearDue()
	default:
		date, err := todo.ParseDate(d)
		if err != nil {
			return invalid(MsgInvalidUpdate), nil
		}
		u.Due = todo.SetDue(date)
	}

	if strings.TrimSpace(status) != "" {
		st, err := todo.ParseStatus(status)
		if err != nil {
			return invalid(MsgInvalidStatus), nil
		}
		u = u.SetStatus(st)
	}

	if err := s.store.UpdateTask(taskID, u); err != nil {
		return storeResult(err)
	}
	return ok("Task %d updated", taskID), nil
}

// Delete removes a task.
func (s *Service) Delete(id string) (Result, error) {
	taskID, err := parseID(id)
	if err != nil {
		return invalid(MsgInvalidID), nil
	}
	if err := s.store.DeleteTask(taskID); err != nil {
		return storeResult(err)
	}
	return ok("Task %d deleted", taskID), nil
}

// MarkDone completes a task.
func (s *Service) MarkDone(id string) (Result, error) {
	taskID, err := parseID(id)
	if err != nil {
		return invalid(MsgInvalidID), nil
	}
	if err := s.store.MarkDone(taskID); err != nil {
		return storeResult(err)
	}
	return ok("Task %d marked as done", taskID), nil
}

// Overdue lists tasks due before today.
func (s *Service) Overdue() (Result, error) {
	text := s.store.OverdueTasks()
	if text == "" {
		return ok(MsgNoOverdueTasks), nil
	}
	return ok("%s", text), nil
}

func storeResult(err error) (Result, error) {
	if errors.Is(err, todo.ErrNotFound) {
		return Result{Message: MsgNotFound, Kind: KindNotFound}, nil
	}
	return Result{}, err
}

func parseID(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseOptionalDate(s string) (*todo.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := todo.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
