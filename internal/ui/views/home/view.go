package home

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"drill/internal/ui/components"
	"drill/internal/ui/theme"
)

type entry struct {
	key, icon, label string
}

var entries = []entry{
	{"u", "upload", "Upload exercises"},
	{"p", "practice", "Practice code exercises"},
	{"d", "diagrams", "Drill pattern diagrams"},
	{"?", "help", "Help"},
	{"a", "about", "About"},
}

// Render draws the start screen. exercises is the size of the active
// catalog.
func Render(width, height, exercises int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(components.Icon("home")+" drill") + "\n")
	b.WriteString(theme.Muted.Render("Refactoring and design pattern practice") + "\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("  %s  %s %s\n", theme.Hot.Render(e.key), components.Icon(e.icon), e.label))
	}
	b.WriteString("\n")
	if exercises == 0 {
		b.WriteString(theme.Muted.Render("No exercises loaded yet. Upload a folder to start practising."))
	} else {
		b.WriteString(theme.Ok.Render(fmt.Sprintf("%d exercises ready", exercises)))
	}
	box := theme.PaneActive.Render(b.String())
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
