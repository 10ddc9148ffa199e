package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	theme := flag.String("theme", "", "Palette override: light or dark (default: detect)")
	host := flag.String("host", "", "Bitable open API base URL (default: $BITLINE_HOST)")
	token := flag.String("token", "", "Bearer token (default: $BITLINE_TOKEN)")
	flag.Parse()

	link := detectHost(*host, *token)

	if _, err := tea.NewProgram(
		initialModel(link, *theme),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
