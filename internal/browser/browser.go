// Package browser implements an interactive snapshot-log viewer used by
// "patchloom log --interactive".
package browser

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/patchloom/patchloom/internal/snapshot"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	detailStyle  = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	diffAddStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	diffDelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type snapshotItem struct{ snap *snapshot.Snapshot }

func (i snapshotItem) Title() string {
	return fmt.Sprintf("#%d  %s", i.snap.SequenceNumber, i.snap.Tool)
}

func (i snapshotItem) Description() string {
	files := strings.Join(i.snap.AffectedFiles, ", ")
	if i.snap.Goal != "" {
		return fmt.Sprintf("%s — %s", files, i.snap.Goal)
	}
	return files
}

func (i snapshotItem) FilterValue() string {
	return i.snap.Tool + " " + strings.Join(i.snap.AffectedFiles, " ")
}

// Model is the bubbletea model backing the snapshot browser.
type Model struct {
	list  list.Model
	snaps []*snapshot.Snapshot
}

// New builds a browser over snaps, most recent last (as returned by Log.List).
func New(snaps []*snapshot.Snapshot) Model {
	items := make([]list.Item, len(snaps))
	for i, s := range snaps {
		items[i] = snapshotItem{snap: s}
	}

	width, height, ok := detectTerminalSize()
	if !ok {
		width, height = 80, 24
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height-4)
	l.Title = "Snapshot log"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)

	return Model{list: l, snaps: snaps}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var detail string
	if item, ok := m.list.SelectedItem().(snapshotItem); ok {
		detail = renderDetail(item.snap)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		detail,
		helpStyle.Render("↑/↓ navigate • / filter • q quit"),
	)
}

func renderDetail(s *snapshot.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tool: %s\n", s.Tool)
	if s.Goal != "" {
		fmt.Fprintf(&b, "goal: %s\n", s.Goal)
	}
	fmt.Fprintf(&b, "files: %s\n", strings.Join(s.AffectedFiles, ", "))
	if s.Diff != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(s.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				b.WriteString(diffAddStyle.Render(line) + "\n")
			case strings.HasPrefix(line, "-"):
				b.WriteString(diffDelStyle.Render(line) + "\n")
			default:
				b.WriteString(line + "\n")
			}
		}
	}
	return detailStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func detectTerminalSize() (int, int, bool) {
	candidates := []*os.File{os.Stdout, os.Stdin, os.Stderr}
	for _, f := range candidates {
		if f == nil {
			continue
		}
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		if width, height, err := term.GetSize(fd); err == nil && width > 0 && height > 0 {
			return width, height, true
		}
	}
	return 0, 0, false
}

// Run launches the interactive browser over snaps and blocks until the user quits.
func Run(snaps []*snapshot.Snapshot) error {
	p := tea.NewProgram(New(snaps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
