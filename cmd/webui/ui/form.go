package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type entrySavedMsg struct{}

// FormModel handles create and edit: EntryID zero means create.
type FormModel struct {
	Client   *Client
	EntryID  uint
	Title    textinput.Model
	Category textinput.Model
	Content  textarea.Model
	FocusIdx int
	Err      error
}

func NewFormModel(c *Client, entry *Entry) FormModel {
	title := textinput.New()
	title.Prompt = "Title: "
	title.Focus()

	category := textinput.New()
	category.Prompt = "Category: "

	content := textarea.New()
	content.Placeholder = "Write the entry content..."
	content.SetHeight(8)

	m := FormModel{Client: c, Title: title, Category: category, Content: content}
	if entry != nil {
		m.EntryID = entry.ID
		m.Title.SetValue(entry.Title)
		m.Category.SetValue(entry.Category)
		m.Content.SetValue(entry.Content)
	}
	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return backToListMsg{} }
		case tea.KeyTab:
			m.nextField()
			return m, nil
		case tea.KeyShiftTab:
			m.prevField()
			return m, nil
		case tea.KeyCtrlS:
			return m, m.saveCmd
		case tea.KeyEnter:
			// enter moves on from the single-line fields, the
			// textarea keeps it as a newline
			if m.FocusIdx < 2 {
				m.nextField()
				return m, nil
			}
		}
	case errMsg:
		m.Err = msg
	}

	var cmd tea.Cmd
	switch m.FocusIdx {
	case 0:
		m.Title, cmd = m.Title.Update(msg)
	case 1:
		m.Category, cmd = m.Category.Update(msg)
	case 2:
		m.Content, cmd = m.Content.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *FormModel) nextField() { m.setFocus((m.FocusIdx + 1) % 3) }

func (m *FormModel) prevField() { m.setFocus((m.FocusIdx + 2) % 3) }

func (m *FormModel) setFocus(idx int) {
	m.FocusIdx = idx
	m.Title.Blur()
	m.Category.Blur()
	m.Content.Blur()
	switch idx {
	case 0:
		m.Title.Focus()
	case 1:
		m.Category.Focus()
	case 2:
		m.Content.Focus()
	}
}

func (m FormModel) saveCmd() tea.Msg {
	title := m.Title.Value()
	category := m.Category.Value()
	content := m.Content.Value()

	var err error
	if m.EntryID == 0 {
		err = m.Client.CreateEntry(title, category, content)
	} else {
		err = m.Client.UpdateEntry(m.EntryID, title, category, content)
	}
	if err != nil {
		return errMsg(err)
	}
	return entrySavedMsg{}
}

func (m FormModel) View() string {
	var b strings.Builder
	if m.EntryID == 0 {
		b.WriteString(titleStyle.Render("New Entry") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("Edit Entry") + "\n\n")
	}
	b.WriteString(m.Title.View() + "\n")
	b.WriteString(m.Category.View() + "\n\n")
	b.WriteString(m.Content.View() + "\n\n")
	b.WriteString(blurredStyle.Render("Tab: next field, Ctrl+S: save, Esc: cancel"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
