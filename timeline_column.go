package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type itemHoveredMsg struct {
	prev *timelineItem
	next *timelineItem
}

type itemClickedMsg struct {
	item     timelineItem
	selected bool
}

// timelineColumn renders the filtered, date-sorted items as a vertical
// timeline. The cursor doubles as the hover affordance; selection is an
// independent toggle keyed by item id.
type timelineColumn struct {
	width  int
	height int

	items      []timelineItem
	cursor     int
	selectedID string

	showLabels     bool
	showMilestones bool

	theme themeState

	topLine int
}

func newTimelineColumn(theme themeState) *timelineColumn {
	return &timelineColumn{
		width:          48,
		theme:          theme,
		showLabels:     true,
		showMilestones: true,
	}
}

func (c *timelineColumn) Title() string { return "Timeline" }

func (c *timelineColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
}

func (c *timelineColumn) SetTheme(theme themeState) {
	c.theme = theme
}

func (c *timelineColumn) SetDisplay(labels, stars bool) {
	c.showLabels = labels
	c.showMilestones = stars
}

// SetItems swaps in a freshly computed view set. Selection survives by id;
// the cursor clamps into range.
func (c *timelineColumn) SetItems(items []timelineItem) {
	c.items = items
	if c.cursor >= len(items) {
		c.cursor = len(items) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.topLine = 0
}

func (c *timelineColumn) hovered() *timelineItem {
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return nil
	}
	item := c.items[c.cursor]
	return &item
}

func (c *timelineColumn) selected() *timelineItem {
	if c.selectedID == "" {
		return nil
	}
	for _, item := range c.items {
		if item.ID == c.selectedID {
			item := item
			return &item
		}
	}
	return nil
}

func (c *timelineColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			return c, c.moveCursor(-1)
		case "down", "j":
			return c, c.moveCursor(1)
		case "enter", " ":
			return c, c.clickCursor()
		}
	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			return c, c.moveCursor(-1)
		case tea.MouseWheelDown:
			return c, c.moveCursor(1)
		}
	}
	return c, nil
}

func (c *timelineColumn) moveCursor(delta int) tea.Cmd {
	if len(c.items) == 0 {
		return nil
	}
	next := c.cursor + delta
	if next < 0 || next >= len(c.items) {
		return nil
	}
	prev := c.hovered()
	c.cursor = next
	entered := c.hovered()
	return func() tea.Msg { return itemHoveredMsg{prev: prev, next: entered} }
}

// clickCursor toggles selection of the hovered item and reports the click.
func (c *timelineColumn) clickCursor() tea.Cmd {
	item := c.hovered()
	if item == nil {
		return nil
	}
	if c.selectedID == item.ID {
		c.selectedID = ""
	} else {
		c.selectedID = item.ID
	}
	clicked := *item
	nowSelected := c.selectedID == item.ID
	return func() tea.Msg { return itemClickedMsg{item: clicked, selected: nowSelected} }
}

func (c *timelineColumn) statusColor(status itemStatus) string {
	switch status {
	case statusCompleted:
		return c.theme.Colors.Success
	case statusInProgress:
		return c.theme.Colors.Warning
	case statusImportant:
		return c.theme.Colors.Error
	default:
		return c.theme.Colors.Primary
	}
}

func (c *timelineColumn) priorityBadge(s styles, priority itemPriority) string {
	var bg string
	switch priority {
	case priorityHigh:
		bg = c.theme.Colors.Error
	case priorityMedium:
		bg = c.theme.Colors.Warning
	case priorityLow:
		bg = c.theme.Colors.Success
	default:
		bg = c.theme.Colors.Border
	}
	return s.badge.
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color("#ffffff")).
		Render(strings.ToUpper(string(priority)))
}

func (c *timelineColumn) renderItem(s styles, item timelineItem, index int, contentWidth int) string {
	groupColor := c.theme.GroupColor(item.Group, index)
	if item.Group == "" && item.Color != "" {
		groupColor = item.Color
	}
	isSelected := c.selectedID != "" && c.selectedID == item.ID
	isHovered := index == c.cursor
	isMilestone := item.Milestone && c.showMilestones

	dot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.statusColor(item.Status))).
		Render("●")
	marker := dot
	if isMilestone {
		marker = dot + lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.theme.Colors.Warning)).
			Render("★")
	}

	title := s.itemTitle.Render(item.Title)
	if isSelected {
		title = s.itemTitle.Foreground(lipgloss.Color(groupColor)).Render(item.Title)
	}

	header := marker + " " + title
	if c.showLabels && item.Priority != "" {
		header += " " + c.priorityBadge(s, item.Priority)
	}
	if isMilestone {
		header += " " + s.badge.
			Background(lipgloss.Color(c.theme.Colors.Warning)).
			Foreground(lipgloss.Color("#ffffff")).
			Render("MILESTONE")
	}

	var lines []string
	lines = append(lines, header)
	lines = append(lines, "  "+s.itemMeta.Render(formatDate(item.Date, dateFormatShort)))
	if item.Group != "" {
		lines = append(lines, "  "+s.itemMeta.Foreground(lipgloss.Color(groupColor)).Render(item.Group))
	}
	if item.Description != "" {
		lines = append(lines, "  "+s.itemMeta.Render(truncateLine(item.Description, contentWidth-2)))
	}
	if item.Assignee != "" {
		lines = append(lines, "  "+s.itemMeta.Render("Assignee: "+item.Assignee))
	}
	if len(item.Tags) > 0 {
		tagStyle := s.tag.Foreground(lipgloss.Color(groupColor))
		rendered := make([]string, 0, len(item.Tags))
		for _, tag := range item.Tags {
			rendered = append(rendered, tagStyle.Render("#"+tag))
		}
		lines = append(lines, "  "+strings.Join(rendered, ""))
	}

	block := strings.Join(lines, "\n")
	blockStyle := lipgloss.NewStyle().Width(contentWidth).PaddingBottom(1)
	if isHovered {
		blockStyle = blockStyle.Background(lipgloss.Color(c.theme.hoverTint(groupColor)))
	}
	if isSelected {
		blockStyle = blockStyle.
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(groupColor))
	}
	return blockStyle.Render(block)
}

func (c *timelineColumn) View(s styles, focused bool) string {
	contentWidth := c.width - 4
	if contentWidth < 16 {
		contentWidth = 16
	}

	var body string
	if len(c.items) == 0 {
		body = s.emptyState.Render("No timeline items to display")
	} else {
		blocks := make([]string, 0, len(c.items))
		cursorStart := 0
		lineCount := 0
		for i, item := range c.items {
			block := c.renderItem(s, item, i, contentWidth)
			if i == c.cursor {
				cursorStart = lineCount
			}
			lineCount += lipgloss.Height(block)
			blocks = append(blocks, block)
		}
		body = strings.Join(blocks, "\n")
		body = c.clipToViewport(body, cursorStart)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, s.columnTitle.Render(c.Title()), body)
	if focused {
		return s.panelFocused.Width(c.width).Render(view)
	}
	return s.panel.Width(c.width).Render(view)
}

// clipToViewport keeps the cursor block on screen by sliding a line window
// over the rendered timeline.
func (c *timelineColumn) clipToViewport(body string, cursorStart int) string {
	visible := c.height - 4
	if visible < 3 {
		return body
	}
	lines := strings.Split(body, "\n")
	if len(lines) <= visible {
		c.topLine = 0
		return body
	}
	if cursorStart < c.topLine {
		c.topLine = cursorStart
	}
	if cursorStart >= c.topLine+visible {
		c.topLine = cursorStart - visible + 1
	}
	if c.topLine+visible > len(lines) {
		c.topLine = len(lines) - visible
	}
	if c.topLine < 0 {
		c.topLine = 0
	}
	return strings.Join(lines[c.topLine:c.topLine+visible], "\n")
}

func truncateLine(s string, width int) string {
	if width < 4 {
		width = 4
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
