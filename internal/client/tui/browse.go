// Package tui is the full-screen browse view: a search box over the contact
// list that narrows the results as the user types.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/gophcontacts/internal/client/contacts"
)

// Source is the contact list being browsed.
type Source interface {
	Search(query string) []contacts.Match
	DirtyIndices() []int
}

// Notices supplies the current notification line.
type Notices interface {
	Current() string
}

const refreshEvery = 500 * time.Millisecond

type tickMsg time.Time

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	dirtyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

type Model struct {
	src     Source
	notices Notices

	input    textinput.Model
	matches  []contacts.Match
	dirty    map[int]bool
	cursor   int
	selected int
	height   int
}

func New(src Source, notices Notices) Model {
	in := textinput.New()
	in.Placeholder = "type to search"
	in.Prompt = "search: "
	in.Focus()

	m := Model{src: src, notices: notices, input: in, selected: -1}
	m.reload()
	return m
}

// reload re-runs the search so edits made elsewhere show up.
func (m *Model) reload() {
	m.matches = m.src.Search(m.input.Value())
	m.dirty = make(map[int]bool)
	for _, i := range m.src.DirtyIndices() {
		m.dirty[i] = true
	}
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.reload()
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if len(m.matches) > 0 {
				m.selected = m.matches[m.cursor].Index
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		m.reload()
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Contacts"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(hintStyle.Render("no matches"))
		b.WriteString("\n")
	}

	for pos, match := range m.visible() {
		c := match.Contact
		line := fmt.Sprintf("%3d  %-20s %-20s %-14s %s", match.Index+1, c.Company, c.ContactName, c.PhoneNumber, c.Email)
		if m.dirty[match.Index] {
			line += dirtyStyle.Render("  (unsaved)")
		}
		if pos == m.cursor-m.offset() {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if n := m.notices.Current(); n != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(n))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("%d match(es) · ↑/↓ move · enter select · esc leave", len(m.matches))))
	return b.String()
}

// rows is how many results fit; everything fits until a size is known.
// Never less than one, so an empty list still has a window to scroll.
func (m Model) rows() int {
	const chrome = 8
	if m.height <= chrome {
		return max(len(m.matches), 1)
	}
	return m.height - chrome
}

func (m Model) offset() int {
	if rows := m.rows(); m.cursor >= rows {
		return m.cursor - rows + 1
	}
	return 0
}

func (m Model) visible() []contacts.Match {
	off := m.offset()
	end := min(len(m.matches), off+m.rows())
	return m.matches[off:end]
}

// Selected returns the working-set index picked with enter.
func (m Model) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// Run shows the browse view until the user leaves it and returns the
// working-set index of the record picked with enter, if any.
func Run(ctx context.Context, src Source, notices Notices, in io.Reader, out io.Writer) (int, bool, error) {
	p := tea.NewProgram(New(src, notices),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return -1, false, err
	}
	idx, ok := final.(Model).Selected()
	return idx, ok, nil
}
