package main

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour renderer shared by the detail pane. Rebuilt lazily whenever the
// theme mode or wrap width changes.
var (
	markdownMu       sync.Mutex
	markdownRenderer *glamour.TermRenderer
	markdownMode     = themeModeLight
	markdownWordWrap = 60
)

func renderMarkdown(content string) string {
	renderer := ensureMarkdownRenderer()
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func ensureMarkdownRenderer() *glamour.TermRenderer {
	markdownMu.Lock()
	defer markdownMu.Unlock()
	if markdownRenderer != nil {
		return markdownRenderer
	}
	style := "light"
	if markdownMode == themeModeDark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(markdownWordWrap),
	)
	if err != nil {
		return nil
	}
	markdownRenderer = renderer
	return markdownRenderer
}

func setMarkdownMode(mode themeMode) {
	markdownMu.Lock()
	if markdownMode != mode {
		markdownMode = mode
		markdownRenderer = nil
	}
	markdownMu.Unlock()
}

func setMarkdownWordWrap(width int) {
	markdownMu.Lock()
	if width < 20 {
		width = 20
	}
	if markdownWordWrap != width {
		markdownWordWrap = width
		markdownRenderer = nil
	}
	markdownMu.Unlock()
}
