package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// detailColumn shows the hovered (or selected) item in full, with the
// description rendered as markdown.
type detailColumn struct {
	width  int
	height int
	view   viewport.Model
	item   *timelineItem
	theme  themeState
}

func newDetailColumn(theme themeState) *detailColumn {
	vp := viewport.New(36, 20)
	return &detailColumn{width: 38, view: vp, theme: theme}
}

func (c *detailColumn) Title() string { return "Details" }

func (c *detailColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.view.Width = width - 2
	c.view.Height = height - 4
	setMarkdownWordWrap(width - 4)
}

func (c *detailColumn) SetTheme(theme themeState) {
	c.theme = theme
}

func (c *detailColumn) SetItem(item *timelineItem, s styles) {
	c.item = item
	c.view.SetContent(c.renderItem(s))
	c.view.GotoTop()
}

func (c *detailColumn) Item() *timelineItem {
	return c.item
}

func (c *detailColumn) renderItem(s styles) string {
	if c.item == nil {
		return s.emptyState.Render("Hover a timeline entry to inspect it.")
	}
	item := *c.item

	var b strings.Builder
	b.WriteString(s.itemTitle.Render(item.Title))
	b.WriteString("\n")
	b.WriteString(s.itemMeta.Render(formatDate(item.Date, dateFormatFull)))
	b.WriteString("\n\n")

	writeField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(s.formLabel.Render(label + ": "))
		b.WriteString(s.formValue.Render(value))
		b.WriteString("\n")
	}
	groupValue := item.Group
	if groupValue != "" {
		color := c.theme.GroupColor(item.Group, 0)
		groupValue = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(item.Group)
	}
	writeField("Group", groupValue)
	writeField("Status", string(item.Status))
	writeField("Priority", string(item.Priority))
	writeField("Assignee", item.Assignee)
	if item.Milestone {
		writeField("Milestone", "yes ★")
	}
	if len(item.Tags) > 0 {
		writeField("Tags", strings.Join(item.Tags, ", "))
	}
	if item.Color != "" {
		writeField("Color", item.Color)
	}

	if item.Description != "" {
		b.WriteString("\n")
		b.WriteString(renderMarkdown(item.Description))
	}
	return b.String()
}

// summary is the plain-text form copied to the clipboard.
func (c *detailColumn) summary() string {
	if c.item == nil {
		return ""
	}
	item := *c.item
	parts := []string{item.Title, formatDate(item.Date, dateFormatFull)}
	if item.Group != "" {
		parts = append(parts, "Group: "+item.Group)
	}
	if item.Assignee != "" {
		parts = append(parts, "Assignee: "+item.Assignee)
	}
	if item.Description != "" {
		parts = append(parts, item.Description)
	}
	return strings.Join(parts, "\n")
}

func (c *detailColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	var cmd tea.Cmd
	c.view, cmd = c.view.Update(msg)
	return c, cmd
}

func (c *detailColumn) View(s styles, focused bool) string {
	body := lipgloss.JoinVertical(lipgloss.Left, s.columnTitle.Render(c.Title()), c.view.View())
	if focused {
		return s.panelFocused.Width(c.width).Render(body)
	}
	return s.panel.Width(c.width).Render(body)
}
