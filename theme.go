package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type themeMode string

const (
	themeModeLight themeMode = "light"
	themeModeDark  themeMode = "dark"
)

// themeColors is the derived secondary palette. Two fixed palettes selected
// by mode, no interpolation.
type themeColors struct {
	Primary       string
	Success       string
	Warning       string
	Error         string
	TextPrimary   string
	TextSecondary string
	Border        string
	Background    string
	Card          string
}

var lightColors = themeColors{
	Primary:       "#1890ff",
	Success:       "#52c41a",
	Warning:       "#faad14",
	Error:         "#f5222d",
	TextPrimary:   "#333333",
	TextSecondary: "#666666",
	Border:        "#e8e8e8",
	Background:    "#ffffff",
	Card:          "#ffffff",
}

var darkColors = themeColors{
	Primary:       "#40a9ff",
	Success:       "#73d13d",
	Warning:       "#ffc53d",
	Error:         "#ff4d4f",
	TextPrimary:   "#ffffff",
	TextSecondary: "#cccccc",
	Border:        "#333333",
	Background:    "#141414",
	Card:          "#1f1f1f",
}

func paletteFor(mode themeMode) themeColors {
	if mode == themeModeDark {
		return darkColors
	}
	return lightColors
}

// themeState is the session-scoped theme: initialized from the host (or
// the terminal background when bridgeless) and updated on every host push.
type themeState struct {
	Mode    themeMode
	BgColor string
	Colors  themeColors
}

func newThemeState(mode themeMode) themeState {
	colors := paletteFor(mode)
	return themeState{Mode: mode, BgColor: colors.Background, Colors: colors}
}

func detectThemeMode(override string) themeMode {
	switch strings.ToLower(strings.TrimSpace(override)) {
	case "light":
		return themeModeLight
	case "dark":
		return themeModeDark
	}
	if lipgloss.HasDarkBackground() {
		return themeModeDark
	}
	return themeModeLight
}

// Apply folds a host theme notification into the state. Unknown theme tags
// leave the mode untouched.
func (t *themeState) Apply(notice themeNotice) {
	switch strings.ToUpper(strings.TrimSpace(notice.Theme)) {
	case "DARK":
		t.Mode = themeModeDark
	case "LIGHT":
		t.Mode = themeModeLight
	}
	t.Colors = paletteFor(t.Mode)
	if notice.ChartBgColor != "" {
		t.BgColor = notice.ChartBgColor
	} else {
		t.BgColor = t.Colors.Background
	}
}

func (t themeState) groupPalette() []string {
	return []string{t.Colors.Primary, t.Colors.Success, t.Colors.Warning, t.Colors.Error}
}

// GroupColor assigns the same hue to the same group name for the whole
// session. Only four hues exist, so distinct groups may collide. An empty
// name falls back to the item's ordinal position.
func (t themeState) GroupColor(name string, ordinal int) string {
	palette := t.groupPalette()
	if name == "" {
		if ordinal < 0 {
			ordinal = -ordinal
		}
		return palette[ordinal%len(palette)]
	}
	return palette[hashGroupName(name)%len(palette)]
}

// hashGroupName folds character codes through a 5-bit shift mix.
func hashGroupName(name string) int {
	hash := 0
	for _, r := range name {
		hash = int(r) + ((hash << 5) - hash)
	}
	if hash < 0 {
		hash = -hash
	}
	return hash
}

// hoverTint blends a group color over the card background at low opacity,
// the highlight used behind a hovered entry.
func (t themeState) hoverTint(group string) string {
	base, err := colorful.Hex(t.Colors.Card)
	if err != nil {
		return t.Colors.Card
	}
	tint, err := colorful.Hex(group)
	if err != nil {
		return t.Colors.Card
	}
	return base.BlendRgb(tint, 0.1).Hex()
}
