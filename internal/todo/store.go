package todo

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned when an operation names an id the store does not hold.
var ErrNotFound = errors.New("task not found")

// EventKind names a persisted mutation.
type EventKind string

const (
	EventAdd    EventKind = "add"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
	EventDone   EventKind = "done"
)

// Event describes a mutation that has been written to disk.
type Event struct {
	Kind EventKind
	ID   int
	Path string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to decide what is overdue.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver registers fn to run after every successful save.
func WithObserver(fn func(Event)) Option {
	return func(s *Store) {
		s.observer = fn
	}
}

// Store owns every task and the file that shadows them.
// It is not safe for concurrent use.
type Store struct {
	path     string
	tasks    map[int]Task
	logger   *log.Logger
	now      func() time.Time
	observer func(Event)
}

// Open loads the task file at path. A missing file yields an empty store;
// unreadable, malformed or invalid files are returned as errors.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("todo file path is empty")
	}

	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, exists, err := readTasks(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s.tasks = tasks
	if exists {
		s.logger.Debug("loaded tasks", "path", path, "count", len(tasks))
	} else {
		s.logger.Debug("no todo file yet, starting empty", "path", path)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	task, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return task.clone(), true
}

// Tasks returns every task in ascending id order.
func (s *Store) Tasks() []Entry {
	entries := make([]Entry, 0, len(s.tasks))
	for _, id := range sortedIDs(s.tasks) {
		entries = append(entries, Entry{ID: id, Task: s.tasks[id].clone()})
	}
	return entries
}

// NextID returns the id the next AddTask will assign.
func (s *Store) NextID() int {
	next := 1
	for id := range s.tasks {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// AddTask stores a new not-started task and returns its id.
func (s *Store) AddTask(name string, due *Date) (int, error) {
	id := s.NextID()
	s.tasks[id] = NewTask(name, due)
	if err := s.save(); err != nil {
		delete(s.tasks, id)
		return 0, err
	}
	s.notify(EventAdd, id)
	return id, nil
}

// ViewTasks renders every task, keyed by id.
func (s *Store) ViewTasks() string {
	parts := make([]string, 0, len(s.tasks))
	for _, e := range s.Tasks() {
		parts = append(parts, fmt.Sprintf("Task ID: %d\n%s\n", e.ID, e.Task))
	}
	return strings.Join(parts, "\n")
}

// UpdateTask applies the fields present in u. An empty update is still a
// successful write.
func (s *Store) UpdateTask(id int, u Update) error {
	prev, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}

	s.tasks[id] = u.apply(prev.clone())
	if err := s.save(); err != nil {
		s.tasks[id] = prev
		return err
	}
	s.notify(EventUpdate, id)
	return nil
}

// DeleteTask removes the task with the given id.
func (s *Store) DeleteTask(id int) error {
	prev, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.tasks, id)
	if err := s.save(); err != nil {
		s.tasks[id] = prev
		return err
	}
	s.notify(EventDelete, id)
	return nil
}

// MarkDone sets the task's status to done. Marking a done task again is
// not an error.
func (s *Store) MarkDone(id int) error {
	prev, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}

	task := prev.clone()
	task.Status = StatusDone
	s.tasks[id] = task
	if err := s.save(); err != nil {
		s.tasks[id] = prev
		return err
	}
	s.notify(EventDone, id)
	return nil
}

// Today returns the current calendar date according to the store's clock.
func (s *Store) Today() Date {
	return DateOf(s.now())
}

// Overdue returns tasks due strictly before today, in ascending id order.
func (s *Store) Overdue() []Entry {
	today := s.Today()
	var overdue []Entry
	for _, e := range s.Tasks() {
		if e.Task.IsOverdue(today) {
			overdue = append(overdue, e)
		}
	}
	return overdue
}

// OverdueTasks renders the overdue tasks separated by blank lines.
func (s *Store) OverdueTasks() string {
	overdue := s.Overdue()
	parts := make([]string, 0, len(overdue))
	for _, e := range overdue {
		parts = append(parts, e.Task.String())
	}
	return strings.Join(parts, "\n\n")
}

func (s *Store) save() error {
	data, err := encodeTasks(s.tasks)
	if err != nil {
		return fmt.Errorf("marshal todo file: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		s.logger.Error("save failed", "path", s.path, "err", err)
		return fmt.Errorf("write todo file: %w", err)
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

func (s *Store) notify(kind EventKind, id int) {
	s.logger.Debug("task "+string(kind), "id", id)
	if s.observer != nil {
		s.observer(Event{Kind: kind, ID: id, Path: s.path})
	}
}
