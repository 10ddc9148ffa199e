package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type storedSource struct {
	AppToken         string `yaml:"app_token,omitempty"`
	TableID          string `yaml:"table_id,omitempty"`
	ViewID           string `yaml:"view_id,omitempty"`
	TitleField       string `yaml:"title_field,omitempty"`
	DateField        string `yaml:"date_field,omitempty"`
	GroupField       string `yaml:"group_field,omitempty"`
	DescriptionField string `yaml:"description_field,omitempty"`
	ColorField       string `yaml:"color_field,omitempty"`
	SelectedGroup    string `yaml:"selected_group,omitempty"`
}

type uiConfig struct {
	Theme          string        `yaml:"theme,omitempty"`
	ShowLabels     *bool         `yaml:"show_labels,omitempty"`
	ShowMilestones *bool         `yaml:"show_milestones,omitempty"`
	LastSource     *storedSource `yaml:"last_source,omitempty"`
}

func loadUIConfig() (*uiConfig, string) {
	configDir := resolveConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return &uiConfig{}, filepath.Join(configDir, "ui.yaml")
	}
	path := filepath.Join(configDir, "ui.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return &uiConfig{}, path
	}
	var cfg uiConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &uiConfig{}, path
	}
	return &cfg, path
}

func saveUIConfig(cfg *uiConfig, path string) error {
	if cfg == nil {
		cfg = &uiConfig{}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func resolveConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "bitline")
}

func (s *storedSource) toWidgetConfig() widgetConfig {
	if s == nil {
		return widgetConfig{}
	}
	return widgetConfig{
		tableRef: tableRef{AppToken: s.AppToken, TableID: s.TableID, ViewID: s.ViewID},
		fieldMapping: fieldMapping{
			TitleField:       s.TitleField,
			DateField:        s.DateField,
			GroupField:       s.GroupField,
			DescriptionField: s.DescriptionField,
			ColorField:       s.ColorField,
		},
		SelectedGroup: s.SelectedGroup,
	}
}

func storedFromWidgetConfig(cfg widgetConfig) *storedSource {
	return &storedSource{
		AppToken:         cfg.AppToken,
		TableID:          cfg.TableID,
		ViewID:           cfg.ViewID,
		TitleField:       cfg.TitleField,
		DateField:        cfg.DateField,
		GroupField:       cfg.GroupField,
		DescriptionField: cfg.DescriptionField,
		ColorField:       cfg.ColorField,
		SelectedGroup:    cfg.SelectedGroup,
	}
}
