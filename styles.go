package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	app, topBar                      lipgloss.Style
	panel, panelFocused, columnTitle lipgloss.Style
	listItem, listSel                lipgloss.Style
	statusBar, statusSeg, statusHint lipgloss.Style
	banner, toast                    lipgloss.Style
	itemTitle, itemMeta              lipgloss.Style
	badge, tag                       lipgloss.Style
	emptyState                       lipgloss.Style
	formLabel, formValue             lipgloss.Style
}

// newStyles derives the style set from the active palette so a host theme
// push restyles the whole widget.
func newStyles(colors themeColors) styles {
	base := lipgloss.NewStyle()
	text := lipgloss.Color(colors.TextPrimary)
	muted := lipgloss.Color(colors.TextSecondary)
	border := lipgloss.Color(colors.Border)

	return styles{
		app:          base,
		topBar:       base.Padding(0, 1).Bold(true).Foreground(text),
		panel:        base.BorderStyle(lipgloss.NormalBorder()).BorderForeground(border),
		panelFocused: base.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(colors.Primary)),
		columnTitle:  base.Bold(true).Padding(0, 1).Foreground(text),
		listItem:     base.Padding(0, 1).Foreground(text),
		listSel:      base.Padding(0, 1).Bold(true).Foreground(lipgloss.Color(colors.Primary)),
		statusBar:    base.Padding(0, 1).Foreground(muted),
		statusSeg:    base.Padding(0, 1).MarginRight(1).Foreground(muted),
		statusHint:   base.Foreground(muted),
		banner: base.Padding(0, 1).
			Foreground(lipgloss.Color(colors.Error)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.Error)),
		toast:      base.Padding(0, 1).Foreground(lipgloss.Color(colors.Warning)),
		itemTitle:  base.Bold(true).Foreground(text),
		itemMeta:   base.Foreground(muted),
		badge:      base.Padding(0, 1).Bold(true),
		tag:        base.Padding(0, 1),
		emptyState: base.Padding(1, 2).Foreground(muted).Italic(true),
		formLabel:  base.Foreground(muted),
		formValue:  base.Foreground(text),
	}
}
