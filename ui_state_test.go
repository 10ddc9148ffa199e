package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.yaml")
	labels := false
	cfg := &uiConfig{
		Theme:      "dark",
		ShowLabels: &labels,
		LastSource: &storedSource{
			AppToken:   "app",
			TableID:    "tbl",
			TitleField: "name",
			DateField:  "due",
		},
	}
	require.NoError(t, saveUIConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: dark")
	assert.Contains(t, string(data), "app_token: app")
	// unset pointers are omitted entirely
	assert.NotContains(t, string(data), "show_milestones")
}

func TestStoredSourceConversion(t *testing.T) {
	cfg := widgetConfig{
		tableRef: tableRef{AppToken: "app", TableID: "tbl", ViewID: "viw"},
		fieldMapping: fieldMapping{
			TitleField: "name", DateField: "due",
			GroupField: "phase", DescriptionField: "note", ColorField: "hue",
		},
		SelectedGroup: "Design",
	}
	assert.Equal(t, cfg, storedFromWidgetConfig(cfg).toWidgetConfig())

	var missing *storedSource
	assert.Equal(t, widgetConfig{}, missing.toWidgetConfig())
}

func TestSaveUIConfigNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.yaml")
	require.NoError(t, saveUIConfig(nil, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}
