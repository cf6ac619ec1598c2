package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsynth/internal/store"
)

// detailModel pages through the records of a saved batch.
type detailModel struct {
	batch  store.Batch
	index  int
	fields []recordField
	cursor int
	flash  string
	failed bool
}

func newDetailModel(b store.Batch) detailModel {
	m := detailModel{batch: b}
	return m.show(0)
}

// show selects the record at i and resets the field cursor.
func (m detailModel) show(i int) detailModel {
	m.index = i
	m.cursor = 0
	m.fields = nil
	if i < len(m.batch.Records) {
		m.fields = recordFields(m.batch.Records[i])
	}
	return m
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		m.failed = false
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
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
		return m.copy(m.fields[m.cursor].value, "copied!")
	}

	switch msg.String() {
	case "n":
		if m.index < len(m.batch.Records)-1 {
			m = m.show(m.index + 1)
		}
		return m, nil

	case "p":
		if m.index > 0 {
			m = m.show(m.index - 1)
		}
		return m, nil

	case "c":
		if len(m.batch.Records) == 0 {
			return m, nil
		}
		return m.copy(m.batch.Records[m.index].String(), "copied all!")

	case "v":
		return m.verify()

	case "d":
		id := m.batch.ID
		return m, func() tea.Msg { return deleteBatchMsg{id: id} }
	}

	return m, nil
}

func (m detailModel) copy(text, done string) (detailModel, tea.Cmd) {
	if err := copyToClipboard(text); err != nil {
		m.flash = "copy: " + err.Error()
		m.failed = true
		return m, clearFlashAfter()
	}
	m.flash = done
	return m, clearFlashAfter()
}

func (m detailModel) verify() (detailModel, tea.Cmd) {
	ok, err := m.batch.Verify()
	switch {
	case err != nil:
		m.flash = "verify: " + err.Error()
		m.failed = true
	case !ok:
		m.flash = "records do not match seed"
		m.failed = true
	default:
		m.flash = fmt.Sprintf("reproduces from seed %d", m.batch.Seed)
	}
	return m, clearFlashAfter()
}

func (m detailModel) View() string {
	b := m.batch
	head := zstyle.Subtitle.Render(fmt.Sprintf("%s  %s %d/%d", b.ShortID(), b.Kind, m.index+1, len(b.Records)))
	meta := zstyle.MutedText.Render(fmt.Sprintf("seed %d  reference %s", b.Seed, b.ReferenceDate))
	s := "\n  " + head + "  " + meta + "\n\n"

	s += renderFields(m.fields, m.cursor)

	if m.index < len(b.Records) {
		s += "\n" + renderTree(b.Records[m.index].Managers)
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	switch {
	case m.flash == "":
		s += "\n"
	case m.failed:
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	default:
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	}

	return s
}
