package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophcontacts/internal/client/contacts"
	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
)

type fakeSource struct {
	list  []models.Contact
	dirty []int
}

func (f *fakeSource) Search(q string) []contacts.Match {
	var out []contacts.Match
	for i, c := range f.list {
		if strings.Contains(strings.ToLower(c.Company), strings.ToLower(q)) {
			out = append(out, contacts.Match{Index: i, Contact: c})
		}
	}
	return out
}

func (f *fakeSource) DirtyIndices() []int { return f.dirty }

type fixedNotice string

func (n fixedNotice) Current() string { return string(n) }

func newSource() *fakeSource {
	return &fakeSource{list: []models.Contact{
		{ContactID: 1, Company: "Acme"},
		{ContactID: 2, Company: "Globex"},
		{ContactID: 3, Company: "Acme Labs"},
	}}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestTypingFiltersLive(t *testing.T) {
	m := New(newSource(), fixedNotice(""))
	require.Len(t, m.matches, 3)

	m = typeText(t, m, "acme")

	require.Len(t, m.matches, 2)
	assert.Equal(t, 0, m.matches[0].Index)
	assert.Equal(t, 2, m.matches[1].Index)
	assert.Contains(t, m.View(), "Acme Labs")
	assert.NotContains(t, m.View(), "Globex")
}

func TestCursorAndSelect(t *testing.T) {
	m := New(newSource(), fixedNotice(""))
	m = typeText(t, m, "acme")

	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, 1, m.cursor, "cursor stops at the last match")

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	idx, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestEscLeavesWithoutSelection(t *testing.T) {
	m := New(newSource(), fixedNotice(""))

	m, cmd := press(t, m, tea.KeyEsc)

	require.NotNil(t, cmd)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestEnterWithoutMatches(t *testing.T) {
	m := New(newSource(), fixedNotice(""))
	m = typeText(t, m, "zzz")
	assert.Contains(t, m.View(), "no matches")

	m, _ = press(t, m, tea.KeyEnter)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestViewOnEmptyList(t *testing.T) {
	src := newSource()
	src.list = nil
	m := New(src, fixedNotice(""))

	var view string
	require.NotPanics(t, func() { view = m.View() })
	assert.Contains(t, view, "no matches")
	assert.Contains(t, view, "0 match(es)")

	m, _ = press(t, m, tea.KeyDown)
	require.NotPanics(t, func() { _ = m.View() })
}

func TestViewMarksDirtyAndShowsNotice(t *testing.T) {
	src := newSource()
	src.dirty = []int{1}
	m := New(src, fixedNotice("Changes saved!"))

	v := m.View()
	assert.Contains(t, v, "(unsaved)")
	assert.Contains(t, v, "Changes saved!")
	assert.Equal(t, 1, strings.Count(v, "(unsaved)"))
}

func TestTickPicksUpChanges(t *testing.T) {
	src := newSource()
	m := New(src, fixedNotice(""))

	src.list = src.list[:1]
	next, cmd := m.Update(tickMsg{})
	m = next.(Model)

	assert.Len(t, m.matches, 1)
	assert.NotNil(t, cmd)
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 30; i++ {
		src.list = append(src.list, models.Contact{ContactID: int64(i + 1), Company: "Co"})
	}
	m := New(src, fixedNotice(""))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 13})
	m = next.(Model)

	for i := 0; i < 10; i++ {
		m, _ = press(t, m, tea.KeyDown)
	}

	vis := m.visible()
	assert.Len(t, vis, 5)
	assert.Equal(t, 10, vis[len(vis)-1].Index)
}
