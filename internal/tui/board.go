// Package tui renders the read-only task board. The board groups tasks
// by status column, highlights the selector's current pick, and
// reloads when the snapshot file changes on disk.
package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/taskmill/internal/selector"
	"github.com/Iron-Ham/taskmill/internal/store"
	"github.com/Iron-Ham/taskmill/internal/task"
	"github.com/Iron-Ham/taskmill/internal/util"
)

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA"))

	nextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171"))
)

// storeChangedMsg signals that the snapshot file was written.
type storeChangedMsg struct{}

// watchErrMsg carries a watcher failure; the board keeps running
// without live reload.
type watchErrMsg struct{ err error }

// Model is the bubbletea model for the board.
type Model struct {
	path    string
	watcher *fsnotify.Watcher

	snapshot *store.Store
	next     selector.Candidate
	hasNext  bool

	width  int
	height int
	err    error
}

// NewModel builds a board over the snapshot file at path. The snapshot
// is re-read from disk on every change event, so the board never holds
// the store open for writing.
func NewModel(path string, watch bool) Model {
	m := Model{path: absPath(path)}
	m.reload()

	if watch {
		// Watch the directory: the store writes via tmp+rename, so
		// the file itself is replaced on every save.
		if watcher, err := fsnotify.NewWatcher(); err == nil {
			if err := watcher.Add(filepath.Dir(m.path)); err == nil {
				m.watcher = watcher
			} else {
				watcher.Close()
			}
		}
	}
	return m
}

func (m *Model) reload() {
	s, err := store.Load(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s = store.New()
		} else {
			m.err = err
			return
		}
	}
	m.err = nil
	m.snapshot = s
	m.next, m.hasNext = selector.Next(s)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// Init starts waiting on the file watcher when live reload is enabled.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChange(m.watcher, m.path)
}

func waitForChange(watcher *fsnotify.Watcher, target string) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return watchErrMsg{fmt.Errorf("watcher closed")}
				}
				if event.Name == target && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return storeChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return watchErrMsg{fmt.Errorf("watcher closed")}
				}
				return watchErrMsg{err}
			}
		}
	}
}

// Update handles input and reload events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.watcher != nil {
				m.watcher.Close()
			}
			return m, tea.Quit
		case "r":
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case storeChangedMsg:
		m.reload()
		if m.watcher != nil {
			return m, waitForChange(m.watcher, m.path)
		}
		return m, nil

	case watchErrMsg:
		// Live reload is best effort; manual refresh still works.
		if m.watcher != nil {
			m.watcher.Close()
			m.watcher = nil
		}
		return m, nil
	}
	return m, nil
}

// boardColumns is the display order. Custom statuses collect under
// deferred.
var boardColumns = []task.Status{
	task.StatusPending,
	task.StatusInProgress,
	task.StatusDone,
	task.StatusDeferred,
}

// View renders the status columns side by side.
func (m Model) View() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("cannot read %s: %v", m.path, m.err)) + "\n\nq to quit, r to retry\n"
	}
	if m.snapshot == nil || m.snapshot.Len() == 0 {
		return mutedStyle.Render("No tasks yet") + "\n\nq to quit\n"
	}

	byStatus := make(map[task.Status][]task.Task)
	var custom []task.Task
	for _, t := range m.snapshot.List(store.Filter{}) {
		if t.Status.Known() {
			byStatus[t.Status] = append(byStatus[t.Status], t)
		} else {
			custom = append(custom, t)
		}
	}

	var columns []string
	for _, st := range boardColumns {
		tasks := byStatus[st]
		if st == task.StatusDeferred && len(custom) > 0 {
			tasks = append(tasks, custom...)
			sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
		}
		columns = append(columns, m.renderColumn(string(st), tasks))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	footer := mutedStyle.Render("q quit · r refresh")
	if m.hasNext {
		footer = nextStyle.Render(fmt.Sprintf("next: %s %s", m.next.Ref, m.next.Title)) + "\n" + footer
	}
	return board + "\n" + footer + "\n"
}

func (m Model) renderColumn(name string, tasks []task.Task) string {
	width := 28
	if m.width > 0 {
		if w := m.width/len(boardColumns) - 4; w > 16 {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", name, len(tasks))))
	for _, t := range tasks {
		line := util.TruncateANSI(fmt.Sprintf("%d %s", t.ID, t.Title), width)
		if m.hasNext && !m.next.Ref.IsSubtask() && m.next.Ref.Task == t.ID {
			line = nextStyle.Render(line)
		}
		b.WriteString("\n" + line)
		if n := len(t.Subtasks); n > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf(" %d/%d", t.SubtasksDone(), n)))
		}
	}
	return columnStyle.Width(width + 2).Render(b.String())
}

// Run starts the board program in the alternate screen.
func Run(storePath string, watch bool) error {
	program := tea.NewProgram(NewModel(storePath, watch), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
