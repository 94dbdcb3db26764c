package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type entriesLoadedMsg []Entry

type entrySelectedMsg struct{ ID uint }

type newEntryMsg struct{}

type EntriesModel struct {
	Client  *Client
	Table   table.Model
	Entries []Entry
	Status  string
	Err     error
}

func NewEntriesModel(c *Client, width, height int) EntriesModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 32},
		{Title: "Category", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 5)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return EntriesModel{Client: c, Table: t}
}

func (m EntriesModel) Init() tea.Cmd {
	return m.RefreshCmd
}

func (m EntriesModel) RefreshCmd() tea.Msg {
	entries, err := m.Client.ListEntries()
	if err != nil {
		return errMsg(err)
	}
	return entriesLoadedMsg(entries)
}

func (m EntriesModel) Update(msg tea.Msg) (EntriesModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.Status = "refreshing..."
			return m, m.RefreshCmd
		case "n":
			return m, func() tea.Msg { return newEntryMsg{} }
		case "enter":
			selected := m.Table.SelectedRow()
			if len(selected) > 0 {
				id, err := strconv.ParseUint(selected[0], 10, 64)
				if err == nil {
					return m, func() tea.Msg { return entrySelectedMsg{ID: uint(id)} }
				}
			}
		case "q":
			return m, tea.Quit
		}

	case entriesLoadedMsg:
		m.Err = nil
		m.Status = ""
		m.Entries = msg
		rows := make([]table.Row, 0, len(msg))
		for _, e := range msg {
			rows = append(rows, table.Row{strconv.FormatUint(uint64(e.ID), 10), e.Title, e.Category})
		}
		m.Table.SetRows(rows)

	case errMsg:
		m.Err = msg
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m EntriesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Knowledge Base - Entries") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("enter: view, n: new, r: refresh, q: quit"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
