package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/gophcontacts/internal/client/contacts"
	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
	"github.com/dmitrijs2005/gophcontacts/internal/client/tui"
)

// runBrowse is a test seam for the full-screen view.
var runBrowse = tui.Run

var fieldLabels = map[string]string{
	models.FieldCompany:     "Company",
	models.FieldContactName: "Name",
	models.FieldPhoneNumber: "Phone",
	models.FieldEmail:       "Email",
	models.FieldNote:        "Note",
}

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// parseIndex reads the 1-based contact number at args[0] and returns the
// working-set position.
func parseIndex(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, usageError("Usage: " + usage)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || n < 1 {
		return 0, usageError("Usage: " + usage)
	}
	return n - 1, nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.contacts.Refresh(ctx); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d contact(s) loaded.", a.contacts.Len()))
	return nil
}

// List prints the working copy, with the latest failure above it.
func (a *App) List(ctx context.Context) error {
	if err := a.contacts.LastError(); err != nil {
		printlnFn(errorStyle.Render(userMessage(err)))
	}
	a.printMatches(a.contacts.Search(""))
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	a.printMatches(a.contacts.Search(strings.Join(args, " ")))
	return nil
}

func (a *App) printMatches(matches []contacts.Match) {
	if len(matches) == 0 {
		printlnFn("No contacts.")
		return
	}
	printlnFn(renderTable(matches, a.dirtySet()))
}

func (a *App) dirtySet() map[int]bool {
	dirty := make(map[int]bool)
	for _, i := range a.contacts.DirtyIndices() {
		dirty[i] = true
	}
	return dirty
}

func renderTable(matches []contacts.Match, dirty map[int]bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Company", "Name", "Phone", "Email", "Note", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, m := range matches {
		c := m.Contact
		mark := ""
		if dirty[m.Index] {
			mark = "unsaved"
		}
		t.Row(strconv.Itoa(m.Index+1), c.Company, c.ContactName, c.PhoneNumber, c.Email, c.Note, mark)
	}
	return t.String()
}

func (a *App) Show(ctx context.Context, args []string) error {
	i, err := parseIndex(args, "show <n>")
	if err != nil {
		return err
	}
	working := a.contacts.Working()
	if i >= len(working) {
		return fmt.Errorf("%w: %d", contacts.ErrIndexOutOfRange, i+1)
	}
	a.printContact(i, working[i])
	return nil
}

func (a *App) printContact(i int, c models.Contact) {
	printlnFn(fmt.Sprintf("#%d (id %d)", i+1, c.ContactID))
	for _, f := range models.EditableFields {
		v, _ := c.Field(f)
		printlnFn(fmt.Sprintf("  %-8s %s", fieldLabels[f]+":", v))
	}
	printlnFn(fmt.Sprintf("  %-8s %s", "Created:", orDash(c.CreatedAt)))
	if a.contacts.IsDirty(i) {
		printlnFn("  (unsaved changes: 'save " + strconv.Itoa(i+1) + "' or 'discard " + strconv.Itoa(i+1) + "')")
	}
}

// Edit changes one field locally; nothing is sent until save.
func (a *App) Edit(ctx context.Context, args []string) error {
	const usage = "edit <n> <field> <value>"
	i, err := parseIndex(args, usage)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError("Usage: " + usage)
	}
	value := strings.Join(args[2:], " ")

	if err := a.contacts.Edit(i, args[1], value); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("#%d edited, 'save %d' to keep it or 'discard %d' to undo.", i+1, i+1, i+1))
	return nil
}

func (a *App) Save(ctx context.Context, args []string) error {
	i, err := parseIndex(args, "save <n>")
	if err != nil {
		return err
	}
	return a.contacts.Save(ctx, i)
}

func (a *App) Discard(ctx context.Context, args []string) error {
	i, err := parseIndex(args, "discard <n>")
	if err != nil {
		return err
	}
	if err := a.contacts.Discard(i); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("#%d restored.", i+1))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	i, err := parseIndex(args, "delete <n>")
	if err != nil {
		return err
	}
	return a.contacts.Remove(ctx, i)
}

// New walks through the editable fields, pre-filled with whatever the draft
// already holds, and creates the contact. A failed attempt keeps the draft.
func (a *App) New(ctx context.Context) error {
	draft := a.contacts.Draft()
	for _, f := range models.EditableFields {
		v, err := getTextWithDefault(a.reader, fieldLabels[f], draft[f], a.out)
		if err != nil {
			return err
		}
		if err := a.contacts.SetDraftField(f, v); err != nil {
			return err
		}
	}

	if err := a.contacts.Create(ctx); err != nil {
		if contacts.IsFailure(err) {
			printlnFn("Your input is kept, run 'new' to try again.")
		}
		return err
	}
	return nil
}

// Browse opens the full-screen search and prints the record picked there.
func (a *App) Browse(ctx context.Context) error {
	i, ok, err := runBrowse(ctx, a.contacts, a.notifier, a.in, a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	working := a.contacts.Working()
	if i < len(working) {
		a.printContact(i, working[i])
	}
	return nil
}
