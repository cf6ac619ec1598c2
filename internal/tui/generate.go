package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsynth/internal/hierarchy"
	"github.com/zarlcorp/zsynth/internal/record"
	"github.com/zarlcorp/zsynth/internal/store"
)

// recordField is a labeled field for display and selection.
type recordField struct {
	label string
	value string
}

// generateModel displays a freshly generated record with actions.
type generateModel struct {
	batch    store.Batch
	record   record.Record
	fields   []recordField
	cursor   int
	showTree bool
	flash    string
	flashAt  time.Time
}

// saveBatchMsg requests saving the current batch.
type saveBatchMsg struct {
	batch store.Batch
}

// batchSavedMsg confirms the batch was saved.
type batchSavedMsg struct{}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newGenerateModel(b store.Batch) generateModel {
	m := generateModel{batch: b, showTree: true}
	if len(b.Records) > 0 {
		m.record = b.Records[0]
		m.fields = recordFields(m.record)
	}
	return m
}

func recordFields(r record.Record) []recordField {
	phones := make([]string, len(r.ContactNumbers))
	for i, p := range r.ContactNumbers {
		phones[i] = fmt.Sprintf("%s %s", p.Type, p.Number)
	}
	contacts := make([]string, len(r.EmergencyContacts))
	for i, c := range r.EmergencyContacts {
		contacts[i] = fmt.Sprintf("%s (%s)", c.Name, c.Relation)
	}
	a := r.Address

	return []recordField{
		{"uid", r.UID},
		{"name", r.Name},
		{"sex", string(r.Sex)},
		{"born", r.DateOfBirth},
		{"birthplace", r.BirthLocation.City + ", " + r.BirthLocation.Country},
		{"nationality", string(r.Nationality)},
		{"phones", strings.Join(phones, "; ")},
		{"emergency", strings.Join(contacts, "; ")},
		{"address", fmt.Sprintf("%s %s, %s, %s %s", a.StreetAddressNumber, a.StreetName, a.City, a.State, a.PostCode)},
		{"sort code", r.BankDetails.SortCode},
		{"account", r.BankDetails.AccountNumber},
		{"tax code", r.TaxCode},
		{"hired", r.HireDate},
		{"grade", string(r.Grade)},
		{"unit", string(r.Unit)},
		{"amount", fmt.Sprintf("%d", r.Amount)},
		{"bonus", fmt.Sprintf("%d", r.Bonus)},
	}
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case batchSavedMsg:
		return m.setFlash("saved " + m.batch.ShortID()), clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if len(m.fields) == 0 {
			return m, nil
		}
		if err := copyToClipboard(m.fields[m.cursor].value); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied!"), clearFlashAfter()
	}

	switch msg.String() {
	case "s":
		b := m.batch
		return m, func() tea.Msg { return saveBatchMsg{batch: b} }

	case "c":
		if err := copyToClipboard(m.record.String()); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied all!"), clearFlashAfter()

	case "t":
		m.showTree = !m.showTree
		return m, nil

	case "n":
		kind := m.batch.Kind
		return m, func() tea.Msg { return generateMsg{kind: kind} }
	}

	return m, nil
}

func (m generateModel) setFlash(msg string) generateModel {
	m.flash = msg
	m.flashAt = time.Now()
	return m
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

// renderFields draws the field list with the cursor row highlighted.
func renderFields(fields []recordField, cursor int) string {
	var s string
	for i, f := range fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-12s", f.label))
		if i == cursor {
			s += zstyle.ActiveBorder.Render(fmt.Sprintf("  > %s %s", label, f.value)) + "\n"
		} else {
			s += fmt.Sprintf("    %s %s\n", label, f.value)
		}
	}
	return s
}

// renderTree draws the managers outline under a heading.
func renderTree(nodes []hierarchy.Node) string {
	s := "  " + zstyle.Subtitle.Render(fmt.Sprintf("hierarchy (depth %d, %d leaves)",
		hierarchy.Depth(nodes), hierarchy.CountLeaves(nodes))) + "\n"
	for _, line := range strings.Split(strings.TrimSuffix(hierarchy.Render(nodes), "\n"), "\n") {
		s += "    " + line + "\n"
	}
	return s
}

func (m generateModel) View() string {
	title := zstyle.Title.Render("generated " + string(m.batch.Kind))
	seed := zstyle.MutedText.Render(fmt.Sprintf("seed %d", m.batch.Seed))
	s := fmt.Sprintf("\n  %s  %s\n\n", title, seed)

	s += renderFields(m.fields, m.cursor)

	if m.showTree && len(m.record.Managers) > 0 {
		s += "\n" + renderTree(m.record.Managers)
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
