package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusDone       Status = "Done"
)

// ParseStatus parses user text such as "done" or "not-started".
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)
	switch strings.Join(strings.Fields(normalized), " ") {
	case "done":
		return StatusDone, nil
	case "not started", "notstarted", "todo":
		return StatusNotStarted, nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: not started, done", s)
	}
}

// DateLayout is the canonical due date format.
const DateLayout = "2006-01-02"

// inputDateLayout accepts single-digit months and days as well.
const inputDateLayout = "2006-1-2"

// storedDateLayouts are tried in order when reading due dates from disk.
// Older files may carry a time part; only the date is kept.
var storedDateLayouts = []string{
	DateLayout,
	inputDateLayout,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD date. Surrounding whitespace is ignored.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(inputDateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func parseStoredDate(s string) (Date, error) {
	for _, layout := range storedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid due date %q", s)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a date string, dropping any time part.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("due date must be a string: %w", err)
	}
	parsed, err := parseStoredDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task represents a single to-do item.
type Task struct {
	Name   string `json:"task_name"`
	Due    *Date  `json:"due_date"`
	Status Status `json:"status"`
}

// NewTask returns a not-started task. Nothing is validated.
func NewTask(name string, due *Date) Task {
	return Task{
		Name:   name,
		Due:    copyDate(due),
		Status: StatusNotStarted,
	}
}

// UnmarshalJSON decodes a task record; a missing status means not started.
func (t *Task) UnmarshalJSON(data []byte) error {
	type rawTask Task
	var raw rawTask
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Status == "" {
		raw.Status = StatusNotStarted
	}
	*t = Task(raw)
	return nil
}

// HasDue reports whether the task has a deadline.
func (t Task) HasDue() bool {
	return t.Due != nil
}

// IsOverdue reports whether the task's due date is strictly before today.
// Status is not considered: a finished task past its date is still overdue.
func (t Task) IsOverdue(today Date) bool {
	return t.Due != nil && t.Due.Before(today)
}

// String renders the task the way listings show it.
func (t Task) String() string {
	due := "None"
	if t.Due != nil {
		due = t.Due.String()
	}
	return fmt.Sprintf("Task Name: %s\nDue Date: %s\nStatus: %s", t.Name, due, t.Status)
}

// clone returns a copy that shares no pointers with t.
func (t Task) clone() Task {
	t.Due = copyDate(t.Due)
	return t
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Entry pairs a task with its id.
type Entry struct {
	ID   int
	Task Task
}
