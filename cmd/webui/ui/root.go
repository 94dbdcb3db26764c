package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateEntries
	stateDetail
	stateForm
)

type RootModel struct {
	State    state
	Client   *Client
	Login    LoginModel
	Entries  EntriesModel
	Detail   DetailModel
	Form     FormModel
	Quitting bool
	width    int
	height   int
}

func NewRootModel() RootModel {
	c := NewClient()
	return RootModel{
		State:  stateLogin,
		Client: c,
		Login:  NewLoginModel(c),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.State == stateEntries {
			m.Entries.Table.SetHeight(max(msg.Height-10, 5))
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case loginDoneMsg:
		m.State = stateEntries
		m.Entries = NewEntriesModel(m.Client, m.width, m.height)
		return m, m.Entries.Init()

	case entrySelectedMsg:
		m.State = stateDetail
		m.Detail = NewDetailModel(m.Client, msg.ID)
		return m, m.Detail.Init()

	case newEntryMsg:
		m.State = stateForm
		m.Form = NewFormModel(m.Client, nil)
		return m, m.Form.Init()

	case editEntryMsg:
		m.State = stateForm
		m.Form = NewFormModel(m.Client, msg.Entry)
		return m, m.Form.Init()

	case backToListMsg, entryDeletedMsg, entrySavedMsg:
		m.State = stateEntries
		m.Entries = NewEntriesModel(m.Client, m.width, m.height)
		return m, m.Entries.Init()
	}

	switch m.State {
	case stateLogin:
		newLogin, cmd := m.Login.Update(msg)
		m.Login = newLogin
		cmds = append(cmds, cmd)
	case stateEntries:
		newEntries, cmd := m.Entries.Update(msg)
		m.Entries = newEntries
		cmds = append(cmds, cmd)
	case stateDetail:
		newDetail, cmd := m.Detail.Update(msg)
		m.Detail = newDetail
		cmds = append(cmds, cmd)
	case stateForm:
		newForm, cmd := m.Form.Update(msg)
		m.Form = newForm
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateEntries:
		return m.Entries.View()
	case stateDetail:
		return m.Detail.View()
	case stateForm:
		return m.Form.View()
	}
	return "Unknown state"
}
