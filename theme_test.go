package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, "#1890ff", paletteFor(themeModeLight).Primary)
	assert.Equal(t, "#40a9ff", paletteFor(themeModeDark).Primary)
	assert.Equal(t, "#141414", paletteFor(themeModeDark).Background)
}

func TestDetectThemeModeOverride(t *testing.T) {
	assert.Equal(t, themeModeLight, detectThemeMode("light"))
	assert.Equal(t, themeModeDark, detectThemeMode("DARK"))
	assert.Equal(t, themeModeDark, detectThemeMode("  dark  "))
}

func TestThemeApply(t *testing.T) {
	theme := newThemeState(themeModeLight)
	require.Equal(t, "#ffffff", theme.BgColor)

	theme.Apply(themeNotice{Theme: "DARK", ChartBgColor: "#101010"})
	assert.Equal(t, themeModeDark, theme.Mode)
	assert.Equal(t, "#101010", theme.BgColor)
	assert.Equal(t, darkColors, theme.Colors)

	// unknown tag keeps the mode, missing background reverts to the palette
	theme.Apply(themeNotice{Theme: "SEPIA"})
	assert.Equal(t, themeModeDark, theme.Mode)
	assert.Equal(t, "#141414", theme.BgColor)

	theme.Apply(themeNotice{Theme: "light"})
	assert.Equal(t, themeModeLight, theme.Mode)
}

func TestGroupColorDeterministic(t *testing.T) {
	theme := newThemeState(themeModeLight)
	palette := theme.groupPalette()

	first := theme.GroupColor("Development", 0)
	assert.Equal(t, first, theme.GroupColor("Development", 3))
	assert.Contains(t, palette, first)
	assert.Contains(t, palette, theme.GroupColor("Design", 0))

	// empty names fall back to the ordinal
	assert.Equal(t, palette[1], theme.GroupColor("", 1))
	assert.Equal(t, palette[1], theme.GroupColor("", 5))
	assert.Equal(t, palette[3], theme.GroupColor("", -3))
}

func TestHashGroupName(t *testing.T) {
	assert.Equal(t, 0, hashGroupName(""))
	assert.Equal(t, int('a'), hashGroupName("a"))
	assert.Equal(t, hashGroupName("Testing"), hashGroupName("Testing"))
	assert.GreaterOrEqual(t, hashGroupName("一个很长的分组名称用来翻转符号"), 0)
}

func TestHoverTint(t *testing.T) {
	theme := newThemeState(themeModeDark)

	tinted := theme.hoverTint(theme.Colors.Primary)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, tinted)
	assert.NotEqual(t, theme.Colors.Card, tinted)

	// invalid input keeps the plain card background
	assert.Equal(t, theme.Colors.Card, theme.hoverTint("not-a-color"))
	assert.Equal(t, theme.Colors.Card, theme.hoverTint(""))
}
