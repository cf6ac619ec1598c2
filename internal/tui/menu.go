package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsynth/internal/record"
)

type menuChoice int

const (
	menuEmployee menuChoice = iota
	menuStudent
	menuBrowse
	menuQuit
)

var menuItems = []string{
	"Generate employee",
	"Generate student",
	"Browse saved batches",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor     int
	version    string
	batchCount int
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// generateMsg asks the root model for a fresh record of the given kind.
type generateMsg struct {
	kind record.Kind
}

func newMenuModel(version string) menuModel {
	return menuModel{version: version}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuEmployee:
		return func() tea.Msg { return generateMsg{kind: record.KindEmployee} }
	case menuStudent:
		return func() tea.Msg { return generateMsg{kind: record.KindStudent} }
	case menuBrowse:
		return func() tea.Msg { return navigateMsg{view: viewList} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("zsynth")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n\n", title, ver)

	for i, item := range menuItems {
		if menuChoice(i) == menuBrowse && m.batchCount > 0 {
			item += zstyle.MutedText.Render(fmt.Sprintf(" (%d)", m.batchCount))
		}
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  > %s", item)) + "\n"
		} else {
			s += fmt.Sprintf("    %s\n", item)
		}
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
