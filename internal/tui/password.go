package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type pwField int

const (
	pwFieldPassword pwField = iota
	pwFieldConfirm
)

// passwordModel unlocks the batch store, or creates it on first run.
type passwordModel struct {
	password textinput.Model
	confirm  textinput.Model
	focused  pwField
	firstRun bool
	errMsg   string
}

// passwordSubmitMsg is sent when the user submits a password.
type passwordSubmitMsg struct {
	password string
}

// passwordErrMsg is sent when the store refuses the password.
type passwordErrMsg struct {
	err error
}

func newPasswordInput() textinput.Model {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

func newPasswordModel(firstRun bool) passwordModel {
	pw := newPasswordInput()
	pw.Focus()

	return passwordModel{
		password: pw,
		confirm:  newPasswordInput(),
		firstRun: firstRun,
	}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab {
			if m.firstRun {
				m = m.focus(1 - m.focused)
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}

		m.errMsg = ""

	case passwordErrMsg:
		m.errMsg = msg.err.Error()
		m.password.SetValue("")
		m.confirm.SetValue("")
		m = m.focus(pwFieldPassword)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == pwFieldConfirm {
		m.confirm, cmd = m.confirm.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m passwordModel) focus(f pwField) passwordModel {
	m.focused = f
	if f == pwFieldConfirm {
		m.password.Blur()
		m.confirm.Focus()
	} else {
		m.confirm.Blur()
		m.password.Focus()
	}
	return m
}

func (m passwordModel) handleSubmit() (passwordModel, tea.Cmd) {
	pass := m.password.Value()
	if pass == "" {
		m.errMsg = "password cannot be empty"
		return m.focus(pwFieldPassword), nil
	}

	if m.firstRun {
		// enter on the first field moves to confirm
		if m.focused == pwFieldPassword {
			return m.focus(pwFieldConfirm), nil
		}
		if m.confirm.Value() != pass {
			m.errMsg = "passwords do not match"
			m.confirm.SetValue("")
			return m, nil
		}
	}

	m.errMsg = ""
	return m, func() tea.Msg {
		return passwordSubmitMsg{password: pass}
	}
}

func (m passwordModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(
		zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)),
	)
	toolName := indent.Render(zstyle.MutedText.Render("zsynth"))

	var title, desc string
	if m.firstRun {
		title = "create new store"
		desc = "choose a master password for saved batches"
	} else {
		title = "unlock store"
		desc = "enter your master password"
	}

	s := fmt.Sprintf("\n%s\n%s\n\n  %s\n  %s\n\n", logo, toolName,
		zstyle.Subtitle.Render(title), zstyle.MutedText.Render(desc))

	s += "  password\n  " + m.password.View() + "\n"
	if m.firstRun {
		s += "\n  confirm\n  " + m.confirm.View() + "\n"
	}

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg)
	}

	s += "\n"
	return s
}
