// Package tui implements the root Bubble Tea model for zsynth.
package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsynth/internal/record"
	"github.com/zarlcorp/zsynth/internal/store"
)

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewGenerate
	viewList
	viewDetail
)

// accent colours cursors, the header and the logo. zstyle has no zsynth
// entry yet, so zsynth borrows the shared zarlcorp palette colour.
var accent = zstyle.ZburnAccent

// Options controls how the TUI generates records.
type Options struct {
	// Seeds hands out the seed for each generated record.
	Seeds     func() (uint64, error)
	Reference time.Time
	Ranges    record.Ranges
}

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	opts     Options
	store    *store.Store
	firstRun bool

	active   viewID
	password passwordModel
	menu     menuModel
	generate generateModel
	list     listModel
	detail   detailModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version, dataDir string, opts Options, firstRun bool) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		opts:     opts,
		firstRun: firstRun,
		active:   viewPassword,
		password: newPasswordModel(firstRun),
		menu:     newMenuModel(version),
	}
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case generateMsg:
		return m.handleGenerate(msg.kind)

	case saveBatchMsg:
		return m.handleSave(msg.batch)

	case deleteBatchMsg:
		return m.handleDelete(msg.id)

	case viewBatchMsg:
		m.detail = newDetailModel(msg.batch)
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// password and menu include the logo and render directly
	switch m.active {
	case viewPassword:
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	}

	header := zstyle.RenderHeader("zsynth", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Generate Record"
	case viewList:
		return "Saved Batches"
	case viewDetail:
		return "Batch"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "s", Desc: "save"},
			{Key: "c", Desc: "copy all"},
			{Key: "enter", Desc: "copy field"},
			{Key: "t", Desc: "tree"},
			{Key: "n", Desc: "new"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "n/p", Desc: "next/prev"},
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "v", Desc: "verify"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	s, err := store.Open(m.dataDir, password)
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = s
	return m.navigate(viewMenu)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version)
		if m.store != nil {
			if batches, err := m.store.List(); err == nil {
				mm.batchCount = len(batches)
			}
		}
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewList:
		m, cmd := m.loadList()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) loadList() (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.list = newListModel(nil)
		m.active = viewList
		return m, nil
	}

	batches, err := m.store.List()
	if err != nil {
		// show empty list with error flash
		m.list = newListModel(nil)
		m.list.flash = "load: " + err.Error()
		m.active = viewList
		return m, clearFlashAfter()
	}

	m.list = newListModel(batches)
	m.active = viewList
	return m, nil
}

func (m Model) handleGenerate(kind record.Kind) (tea.Model, tea.Cmd) {
	seed, err := m.opts.Seeds()
	if err != nil {
		m.generate = newGenerateModel(store.Batch{Kind: kind}).setFlash("seed: " + err.Error())
		m.active = viewGenerate
		return m, clearFlashAfter()
	}

	b, err := store.Generate(kind, 1, seed, m.opts.Reference, m.opts.Ranges)
	if err != nil {
		m.generate = newGenerateModel(store.Batch{Kind: kind}).setFlash("generate: " + err.Error())
		m.active = viewGenerate
		return m, clearFlashAfter()
	}

	m.generate = newGenerateModel(b)
	m.active = viewGenerate
	return m, tea.ClearScreen
}

func (m Model) handleSave(b store.Batch) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}

	if err := m.store.Save(b); err != nil {
		m.generate.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	slog.Debug("saved batch", "id", b.ID, "kind", b.Kind, "seed", b.Seed)
	m.generate, _ = m.generate.Update(batchSavedMsg{})
	return m, clearFlashAfter()
}

func (m Model) handleDelete(id string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}

	if err := m.store.Delete(id); err != nil {
		if m.active == viewDetail {
			m.detail.flash = "delete: " + err.Error()
			m.detail.failed = true
			return m, clearFlashAfter()
		}
		m.list.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	// back to the refreshed list from either view
	return m.loadList()
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
