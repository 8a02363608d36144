// Package ui provides the terminal form interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/form"
)

// RunTUI starts the form interface over svc.
func RunTUI(ctx context.Context, cfg *config.Config, svc *form.Service) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(cfg, svc)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type screenID int

const (
	screenAdd screenID = iota
	screenView
	screenUpdate
	screenDelete
	screenDone
	screenOverdue
)

// screen describes one tab: its input labels, its button and the service
// call behind the button.
type screen struct {
	title  string
	fields []string
	button string
	color  string
	submit func(svc *form.Service, values []string) (form.Result, error)
}

var screens = []screen{
	screenAdd: {
		title:  "Add Task",
		fields: []string{"Task Name:", "Due Date (YYYY-MM-DD):"},
		button: "Add Task",
		color:  "#4CAF50",
		submit: func(svc *form.Service, v []string) (form.Result, error) { return svc.Add(v[0], v[1]) },
	},
	screenView: {
		title:  "View Tasks",
		button: "View Tasks",
		color:  "#0099ff",
		submit: func(svc *form.Service, _ []string) (form.Result, error) { return svc.View() },
	},
	screenUpdate: {
		title:  "Update Task",
		fields: []string{"Task ID:", "Task Name:", "Due Date (YYYY-MM-DD, - to clear):", "Status (Not Started/Done):"},
		button: "Update Task",
		color:  "#0099ff",
		submit: func(svc *form.Service, v []string) (form.Result, error) { return svc.Update(v[0], v[1], v[2], v[3]) },
	},
	screenDelete: {
		title:  "Delete Task",
		fields: []string{"Task ID:"},
		button: "Delete Task",
		color:  "#ff3333",
		submit: func(svc *form.Service, v []string) (form.Result, error) { return svc.Delete(v[0]) },
	},
	screenDone: {
		title:  "Mark as Done",
		fields: []string{"Task ID:"},
		button: "Mark as Done",
		color:  "#33cc33",
		submit: func(svc *form.Service, v []string) (form.Result, error) { return svc.MarkDone(v[0]) },
	},
	screenOverdue: {
		title:  "Overdue Tasks",
		button: "View Overdue Tasks",
		color:  "#ff9900",
		submit: func(svc *form.Service, _ []string) (form.Result, error) { return svc.Overdue() },
	},
}

type styles struct {
	app      lipgloss.Style
	label    lipgloss.Style
	input    lipgloss.Style
	focused  lipgloss.Style
	tab      lipgloss.Style
	result   lipgloss.Style
	errorMsg lipgloss.Style
	help     lipgloss.Style
}

func newStyles(palette config.TUIConfig) styles {
	accent := lipgloss.Color(palette.Accent)
	bg := lipgloss.Color(palette.Background)
	input := lipgloss.Color(palette.Input)
	return styles{
		app:      lipgloss.NewStyle().Background(bg).Padding(1, 2),
		label:    lipgloss.NewStyle().Foreground(accent),
		input:    lipgloss.NewStyle().Background(input).Foreground(lipgloss.Color("#ffffff")).Width(40),
		focused:  lipgloss.NewStyle().Background(input).Foreground(lipgloss.Color("#ffffff")).Width(40).Underline(true),
		tab:      lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1),
		result:   lipgloss.NewStyle().Foreground(accent),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3333")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func buttonStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 2)
}

type tuiModel struct {
	svc      *form.Service
	styles   styles
	active   screenID
	focus    int
	values   [][]string
	results  []form.Result
	errs     []error
	quitting bool
}

func newTUIModel(cfg *config.Config, svc *form.Service) *tuiModel {
	palette := config.TUIConfig{
		Accent:     config.DefaultAccent,
		Background: config.DefaultBackground,
		Input:      config.DefaultInput,
	}
	if cfg != nil {
		palette = cfg.TUI
	}
	m := &tuiModel{
		svc:     svc,
		styles:  newStyles(palette),
		values:  make([][]string, len(screens)),
		results: make([]form.Result, len(screens)),
		errs:    make([]error, len(screens)),
	}
	for i, s := range screens {
		m.values[i] = make([]string, len(s.fields))
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyRunes {
		text := string(key.Runes)
		m.editField(func(v string) string { return v + text })
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "left", "ctrl+p":
		m.switchTo((m.active + screenID(len(screens)) - 1) % screenID(len(screens)))
		return m, nil
	case "right", "ctrl+n":
		m.switchTo((m.active + 1) % screenID(len(screens)))
		return m, nil
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		m.submit()
		return m, nil
	case "backspace":
		m.editField(func(v string) string {
			r := []rune(v)
			if len(r) == 0 {
				return v
			}
			return string(r[:len(r)-1])
		})
		return m, nil
	case "ctrl+u":
		m.editField(func(string) string { return "" })
		return m, nil
	}

	if key.Type == tea.KeySpace {
		m.editField(func(v string) string { return v + " " })
	}
	return m, nil
}

func (m *tuiModel) switchTo(id screenID) {
	m.active = id
	m.focus = 0
	// Listing screens show fresh data as soon as they are opened.
	if len(screens[id].fields) == 0 {
		m.submit()
	}
}

func (m *tuiModel) moveFocus(delta int) {
	n := len(screens[m.active].fields)
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
}

func (m *tuiModel) editField(fn func(string) string) {
	values := m.values[m.active]
	if len(values) == 0 {
		return
	}
	values[m.focus] = fn(values[m.focus])
}

func (m *tuiModel) submit() {
	s := screens[m.active]
	res, err := s.submit(m.svc, m.values[m.active])
	m.results[m.active] = res
	m.errs[m.active] = err
}

func (m *tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	s := screens[m.active]
	for i, label := range s.fields {
		b.WriteString(m.styles.label.Render(label))
		b.WriteString("\n")
		value := m.values[m.active][i]
		if i == m.focus {
			b.WriteString(m.styles.focused.Render(value + "█"))
		} else {
			b.WriteString(m.styles.input.Render(value))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(buttonStyle(s.color).Render(s.button))
	b.WriteString("\n\n")

	if err := m.errs[m.active]; err != nil {
		b.WriteString(m.styles.errorMsg.Render("Error: " + err.Error()))
		b.WriteString("\n\n")
	} else if msg := m.results[m.active].Message; msg != "" {
		b.WriteString(m.styles.result.Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.help.Render("←/→ switch tab | tab next field | enter submit | ctrl+u clear | esc quit"))
	return m.styles.app.Render(b.String())
}

func (m *tuiModel) renderTabs() string {
	tabs := make([]string, len(screens))
	for i, s := range screens {
		if screenID(i) == m.active {
			tabs[i] = buttonStyle(s.color).Bold(true).Render(s.title)
			continue
		}
		tabs[i] = m.styles.tab.Render(s.title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
