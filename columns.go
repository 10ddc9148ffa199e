package main

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type column interface {
	SetSize(width, height int)
	Update(msg tea.Msg) (column, tea.Cmd)
	View(s styles, focused bool) string
	Title() string
}

type listEntry struct {
	title   string
	desc    string
	payload any
}

func (e listEntry) Title() string       { return e.title }
func (e listEntry) Description() string { return e.desc }
func (e listEntry) FilterValue() string { return e.title }

// pickerColumn is a plain selectable list used for the option pickers of
// the configuration panel.
type pickerColumn struct {
	title    string
	model    list.Model
	width    int
	height   int
	onSelect func(entry listEntry) tea.Cmd
}

func newPickerColumn(title string, entries []listEntry, width int, s styles, onSelect func(listEntry) tea.Cmd) *pickerColumn {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = s.listSel
	delegate.Styles.SelectedDesc = s.listSel
	delegate.Styles.NormalTitle = s.listItem
	delegate.Styles.NormalDesc = s.statusHint

	items := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entry)
	}
	m := list.New(items, delegate, width, 20)
	m.Title = title
	m.SetShowStatusBar(false)
	m.SetFilteringEnabled(false)
	m.SetShowHelp(false)
	m.SetShowPagination(true)

	return &pickerColumn{
		title:    title,
		model:    m,
		width:    width,
		onSelect: onSelect,
	}
}

func (c *pickerColumn) SetSize(width, height int) {
	c.width = width
	if height < 4 {
		height = 4
	}
	c.height = height
	c.model.SetSize(width, height-2)
}

func (c *pickerColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && c.onSelect != nil {
		if entry, ok := c.model.SelectedItem().(listEntry); ok {
			return c, c.onSelect(entry)
		}
	}
	var cmd tea.Cmd
	c.model, cmd = c.model.Update(msg)
	return c, cmd
}

func (c *pickerColumn) View(s styles, focused bool) string {
	body := lipgloss.JoinVertical(lipgloss.Left, s.columnTitle.Render(c.title), c.model.View())
	if focused {
		return s.panelFocused.Width(c.width).Render(body)
	}
	return s.panel.Width(c.width).Render(body)
}

func (c *pickerColumn) Title() string {
	return c.title
}
