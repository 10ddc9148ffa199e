package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panelFields() []fieldDescriptor {
	return []fieldDescriptor{
		{Name: "name", Type: "text"},
		{Name: "headline", Type: "title"},
		{Name: "due", Type: "date"},
		{Name: "created", Type: "datetime"},
		{Name: "phase", Type: "select"},
		{Name: "note", Type: "text"},
		{Name: "attachment", Type: "attachment"},
	}
}

func fieldNames(fields []fieldDescriptor) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestFieldCandidates(t *testing.T) {
	fields := panelFields()

	assert.Equal(t, []string{"name", "headline", "note"}, fieldNames(titleFieldCandidates(fields)))
	assert.Equal(t, []string{"due", "created"}, fieldNames(dateFieldCandidates(fields)))
	assert.Equal(t, []string{"phase"}, fieldNames(groupFieldCandidates(fields)))
	assert.Equal(t, []string{"name", "note"}, fieldNames(descriptionFieldCandidates(fields)))

	// no dedicated color fields: every field qualifies
	assert.Len(t, colorFieldCandidates(fields), len(fields))
	withColor := append(fields, fieldDescriptor{Name: "hue", Type: "color"})
	assert.Equal(t, []string{"hue"}, fieldNames(colorFieldCandidates(withColor)))
}

func TestApplyTableSelectionResetsMapping(t *testing.T) {
	cfg := widgetConfig{
		tableRef:      tableRef{AppToken: "old_app", TableID: "old_tbl", ViewID: "old_view"},
		fieldMapping:  fieldMapping{TitleField: "name", DateField: "due", GroupField: "phase"},
		SelectedGroup: "Development",
	}
	next := applyTableSelection(cfg, tableDescriptor{AppToken: "new_app", TableID: "new_tbl"})

	assert.Equal(t, "new_app", next.AppToken)
	assert.Equal(t, "new_tbl", next.TableID)
	assert.Empty(t, next.ViewID)
	assert.Equal(t, fieldMapping{}, next.fieldMapping)
	assert.Empty(t, next.SelectedGroup)
	assert.False(t, next.ready())
}

func TestApplyFieldRoleTouchesOneRole(t *testing.T) {
	cfg := widgetConfig{
		tableRef:     tableRef{AppToken: "app", TableID: "tbl"},
		fieldMapping: fieldMapping{TitleField: "name", DateField: "due"},
	}

	next := applyFieldRole(cfg, pickGroupField, "phase")
	assert.Equal(t, "phase", next.GroupField)
	assert.Equal(t, "name", next.TitleField)
	assert.Equal(t, "due", next.DateField)

	next = applyFieldRole(next, pickGroupField, "")
	assert.Empty(t, next.GroupField)

	next = applyFieldRole(next, pickGroupFilter, "Testing")
	assert.Equal(t, "Testing", next.SelectedGroup)
}

func TestConfigReadiness(t *testing.T) {
	var cfg widgetConfig
	assert.False(t, cfg.ready())

	cfg.AppToken = "app"
	cfg.TableID = "tbl"
	assert.True(t, cfg.complete())
	assert.False(t, cfg.ready())

	cfg.TitleField = "name"
	cfg.DateField = "due"
	assert.True(t, cfg.ready())
}

func TestPanelRowsFollowBinding(t *testing.T) {
	p := newConfigPanel()

	p.SetState(widgetConfig{}, nil, nil, nil, false, false, "")
	unbound := p.rows()
	require.Len(t, unbound, 4)
	assert.Equal(t, "Table", unbound[0].label)

	bound := widgetConfig{tableRef: tableRef{AppToken: "app", TableID: "tbl"}}
	p.SetState(bound, nil, panelFields(), nil, false, false, "")
	assert.Len(t, p.rows(), 9)
}

func TestPanelCursorClampsOnShrink(t *testing.T) {
	p := newConfigPanel()
	bound := widgetConfig{tableRef: tableRef{AppToken: "app", TableID: "tbl"}}
	p.SetState(bound, nil, panelFields(), nil, false, false, "")
	p.cursor = 8

	p.SetState(widgetConfig{}, nil, nil, nil, false, false, "")
	assert.Equal(t, 0, p.cursor)
}
