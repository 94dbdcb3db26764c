package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type entryLoadedMsg struct{ Entry *Entry }

type entryDeletedMsg struct{}

type editEntryMsg struct{ Entry *Entry }

type backToListMsg struct{}

type DetailModel struct {
	Client  *Client
	EntryID uint
	Entry   *Entry
	Err     error
}

func NewDetailModel(c *Client, id uint) DetailModel {
	return DetailModel{Client: c, EntryID: id}
}

func (m DetailModel) Init() tea.Cmd {
	return func() tea.Msg {
		e, err := m.Client.GetEntry(m.EntryID)
		if err != nil {
			return errMsg(err)
		}
		return entryLoadedMsg{Entry: e}
	}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entryLoadedMsg:
		m.Entry = msg.Entry
		m.Err = nil

	case errMsg:
		m.Err = msg

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return m, func() tea.Msg { return backToListMsg{} }
		case "e":
			if m.Entry != nil {
				entry := m.Entry
				return m, func() tea.Msg { return editEntryMsg{Entry: entry} }
			}
		case "d":
			if m.Entry != nil {
				return m, m.deleteCmd
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DetailModel) deleteCmd() tea.Msg {
	if err := m.Client.DeleteEntry(m.EntryID); err != nil {
		return errMsg(err)
	}
	return entryDeletedMsg{}
}

func (m DetailModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Entry Detail") + "\n\n")
	if m.Entry != nil {
		b.WriteString(fmt.Sprintf("#%d %s\n", m.Entry.ID, focusedStyle.Render(m.Entry.Title)))
		b.WriteString(blurredStyle.Render("Category: "+m.Entry.Category) + "\n\n")
		b.WriteString(m.Entry.Content)
		b.WriteString("\n")
	} else if m.Err == nil {
		b.WriteString("loading...\n")
	}
	b.WriteString("\n")
	b.WriteString(blurredStyle.Render("e: edit, d: delete, esc: back, q: quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
