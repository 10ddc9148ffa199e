package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pickerTarget int

const (
	pickTable pickerTarget = iota
	pickTitleField
	pickDateField
	pickGroupField
	pickDescriptionField
	pickColorField
	pickGroupFilter
)

type openPickerMsg struct {
	target  pickerTarget
	title   string
	entries []listEntry
}

type pickerChosenMsg struct {
	target pickerTarget
	value  string
	table  tableDescriptor
}

type displayToggledMsg struct {
	labels bool
	stars  bool
}

func fieldsOfType(fields []fieldDescriptor, types ...string) []fieldDescriptor {
	var matched []fieldDescriptor
	for _, f := range fields {
		for _, t := range types {
			if f.Type == t {
				matched = append(matched, f)
				break
			}
		}
	}
	return matched
}

func titleFieldCandidates(fields []fieldDescriptor) []fieldDescriptor {
	return fieldsOfType(fields, "text", "title")
}

func dateFieldCandidates(fields []fieldDescriptor) []fieldDescriptor {
	return fieldsOfType(fields, "date", "datetime")
}

func groupFieldCandidates(fields []fieldDescriptor) []fieldDescriptor {
	return fieldsOfType(fields, "select")
}

func descriptionFieldCandidates(fields []fieldDescriptor) []fieldDescriptor {
	return fieldsOfType(fields, "text")
}

// colorFieldCandidates falls back to every field when none declare a color
// type, mirroring the host widget's picker.
func colorFieldCandidates(fields []fieldDescriptor) []fieldDescriptor {
	if colors := fieldsOfType(fields, "color"); len(colors) > 0 {
		return colors
	}
	return fields
}

// applyTableSelection binds a new table and resets every role mapping.
func applyTableSelection(cfg widgetConfig, table tableDescriptor) widgetConfig {
	cfg.AppToken = table.AppToken
	cfg.TableID = table.TableID
	cfg.ViewID = ""
	cfg.fieldMapping = fieldMapping{}
	cfg.SelectedGroup = ""
	return cfg
}

// applyFieldRole updates exactly the chosen role, leaving the rest alone.
// An empty value clears the role.
func applyFieldRole(cfg widgetConfig, target pickerTarget, value string) widgetConfig {
	switch target {
	case pickTitleField:
		cfg.TitleField = value
	case pickDateField:
		cfg.DateField = value
	case pickGroupField:
		cfg.GroupField = value
	case pickDescriptionField:
		cfg.DescriptionField = value
	case pickColorField:
		cfg.ColorField = value
	case pickGroupFilter:
		cfg.SelectedGroup = value
	}
	return cfg
}

type panelRow struct {
	label     string
	target    pickerTarget
	clearable bool
	toggle    bool
}

// configPanel is the form column: pure function of the config, the
// available tables/fields, and the loading flags. Enter opens a picker for
// the highlighted row.
type configPanel struct {
	width  int
	height int
	cursor int

	cfg    widgetConfig
	tables []tableDescriptor
	fields []fieldDescriptor
	groups []string

	tablesLoading bool
	fieldsLoading bool
	fieldsErr     string

	showLabels     bool
	showMilestones bool
}

func newConfigPanel() *configPanel {
	return &configPanel{width: 34, showLabels: true, showMilestones: true}
}

func (p *configPanel) Title() string { return "Configuration" }

func (p *configPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *configPanel) SetState(cfg widgetConfig, tables []tableDescriptor, fields []fieldDescriptor, groups []string, tablesLoading, fieldsLoading bool, fieldsErr string) {
	p.cfg = cfg
	p.tables = tables
	p.fields = fields
	p.groups = groups
	p.tablesLoading = tablesLoading
	p.fieldsLoading = fieldsLoading
	p.fieldsErr = fieldsErr
	if p.cursor >= len(p.rows()) {
		p.cursor = 0
	}
}

func (p *configPanel) rows() []panelRow {
	rows := []panelRow{{label: "Table", target: pickTable}}
	if p.cfg.complete() {
		rows = append(rows,
			panelRow{label: "Title field", target: pickTitleField},
			panelRow{label: "Date field", target: pickDateField},
			panelRow{label: "Group field", target: pickGroupField, clearable: true},
			panelRow{label: "Description field", target: pickDescriptionField, clearable: true},
			panelRow{label: "Color field", target: pickColorField, clearable: true},
		)
	}
	rows = append(rows,
		panelRow{label: "Group filter", target: pickGroupFilter, clearable: true},
		panelRow{label: "Labels", toggle: true},
		panelRow{label: "Milestones", toggle: true},
	)
	return rows
}

func (p *configPanel) Update(msg tea.Msg) (column, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	rows := p.rows()
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(rows)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p, p.activate(rows[p.cursor])
	case "backspace", "delete":
		row := rows[p.cursor]
		if row.clearable {
			target := row.target
			return p, func() tea.Msg { return pickerChosenMsg{target: target, value: ""} }
		}
	}
	return p, nil
}

func (p *configPanel) activate(row panelRow) tea.Cmd {
	if row.toggle {
		labels, stars := p.showLabels, p.showMilestones
		if row.label == "Labels" {
			labels = !labels
		} else {
			stars = !stars
		}
		return func() tea.Msg { return displayToggledMsg{labels: labels, stars: stars} }
	}
	title, entries := p.pickerEntries(row.target)
	if len(entries) == 0 {
		return nil
	}
	target := row.target
	return func() tea.Msg { return openPickerMsg{target: target, title: title, entries: entries} }
}

func (p *configPanel) pickerEntries(target pickerTarget) (string, []listEntry) {
	switch target {
	case pickTable:
		entries := make([]listEntry, 0, len(p.tables))
		for _, t := range p.tables {
			entries = append(entries, listEntry{
				title:   t.TableName,
				desc:    t.AppToken + "|" + t.TableID,
				payload: t,
			})
		}
		return "Select a table", entries
	case pickTitleField:
		return "Select the title field", fieldEntries(titleFieldCandidates(p.fields))
	case pickDateField:
		return "Select the date field", fieldEntries(dateFieldCandidates(p.fields))
	case pickGroupField:
		return "Select the group field", fieldEntries(groupFieldCandidates(p.fields))
	case pickDescriptionField:
		return "Select the description field", fieldEntries(descriptionFieldCandidates(p.fields))
	case pickColorField:
		return "Select the color field", fieldEntries(colorFieldCandidates(p.fields))
	case pickGroupFilter:
		entries := make([]listEntry, 0, len(p.groups))
		for _, g := range p.groups {
			entries = append(entries, listEntry{title: g, payload: g})
		}
		return "Filter by group", entries
	}
	return "", nil
}

func fieldEntries(fields []fieldDescriptor) []listEntry {
	entries := make([]listEntry, 0, len(fields))
	for _, f := range fields {
		entries = append(entries, listEntry{title: f.Name, desc: f.Type, payload: f.Name})
	}
	return entries
}

func (p *configPanel) rowValue(row panelRow) string {
	switch {
	case row.toggle && row.label == "Labels":
		return onOff(p.showLabels)
	case row.toggle:
		return onOff(p.showMilestones)
	}
	switch row.target {
	case pickTable:
		for _, t := range p.tables {
			if t.AppToken == p.cfg.AppToken && t.TableID == p.cfg.TableID {
				return t.TableName
			}
		}
		if p.cfg.complete() {
			return p.cfg.TableID
		}
		return "(none)"
	case pickTitleField:
		return valueOrDash(p.cfg.TitleField)
	case pickDateField:
		return valueOrDash(p.cfg.DateField)
	case pickGroupField:
		return valueOrDash(p.cfg.GroupField)
	case pickDescriptionField:
		return valueOrDash(p.cfg.DescriptionField)
	case pickColorField:
		return valueOrDash(p.cfg.ColorField)
	case pickGroupFilter:
		if p.cfg.SelectedGroup == "" {
			return "(all groups)"
		}
		return p.cfg.SelectedGroup
	}
	return ""
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func valueOrDash(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}

func (p *configPanel) View(s styles, focused bool) string {
	var b strings.Builder
	b.WriteString(s.columnTitle.Render(p.Title()))
	b.WriteString("\n")

	rows := p.rows()
	for i, row := range rows {
		label := s.formLabel.Render(row.label + ":")
		value := s.formValue.Render(p.rowValue(row))
		line := fmt.Sprintf("%s %s", label, value)
		if i == p.cursor && focused {
			line = s.listSel.Render("› " + row.label + ": " + p.rowValue(row))
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if p.tablesLoading {
		b.WriteString(s.statusHint.Render("loading tables…"))
		b.WriteString("\n")
	}
	if p.fieldsLoading {
		b.WriteString(s.statusHint.Render("loading fields…"))
		b.WriteString("\n")
	}
	if p.fieldsErr != "" {
		b.WriteString(s.statusHint.Render("! " + p.fieldsErr))
		b.WriteString("\n")
	}

	body := lipgloss.NewStyle().Width(p.width - 2).Render(b.String())
	if focused {
		return s.panelFocused.Width(p.width).Render(body)
	}
	return s.panel.Width(p.width).Render(body)
}
