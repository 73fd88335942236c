// Package info renders the static screens: help, about and the end of a
// session.
package info

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"drill/internal/ui/components"
	"drill/internal/ui/theme"
)

const aboutMarkdown = `# drill

Practise refactoring exercises against the clock and rehearse the classic
design pattern class diagrams.

## Exercises

Each exercise is a pair of plain text files in the same upload:

| file | role |
|---|---|
| ` + "`ejN.txt`" + ` | problem |
| ` + "`ejN_sol.txt`" + ` | solution |

Numbers may be zero padded (` + "`ej01_sol.txt`" + ` pairs with ` + "`ej1.txt`" + `).
Names are matched case-insensitively and other files are ignored.

## Diagrams

Twelve patterns are built in: Strategy, Factory Method, Abstract Factory,
Composite, State, Decorator, Observer, Prototype, Visitor, Adapter,
Template Method and Command.
`

// About renders the about page with glamour, falling back to raw markdown.
func About(width int) string {
	r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(width))
	if err == nil {
		if out, err := r.Render(aboutMarkdown); err == nil {
			return out
		}
	}
	return aboutMarkdown
}

// Help frames the key binding overview produced by bubbles/help.
func Help(bindings string) string {
	return theme.Title.Render(components.Icon("help")+" Keys") + "\n\n" + bindings + "\n\n" +
		theme.Muted.Render("Press : for the command palette; tab completes commands.")
}

// Finished summarises a completed session. flow is "practice" or
// "diagrams".
func Finished(flow string, total int) string {
	var msg string
	switch flow {
	case "practice":
		msg = fmt.Sprintf("You worked through all %d exercises.", total)
	case "diagrams":
		msg = fmt.Sprintf("You reviewed all %d pattern diagrams.", total)
	default:
		msg = "Session complete."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Ok.Render(components.Icon("finished")+" Finished"),
		"",
		msg,
		"",
		theme.Muted.Render("p: practice again  d: diagrams again  h: home"),
	)
}
