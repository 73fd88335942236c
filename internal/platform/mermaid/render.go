package mermaid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultWidth = 100
	boxGap       = 2
)

var arrowGlyphs = map[RelationKind]string{
	Inheritance: "──▷",
	Realization: "┄┄▷",
	Association: "──>",
	Dependency:  "┄┄>",
	Aggregation: "◇──",
	Composition: "◆──",
	Link:        "───",
	DashedLink:  "┄┄┄",
}

// Style groups the lipgloss styles used by Render. The zero value is not
// usable; start from DefaultStyle.
type Style struct {
	Box        lipgloss.Style
	Title      lipgloss.Style
	Stereotype lipgloss.Style
	Member     lipgloss.Style
	Heading    lipgloss.Style
	Note       lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Box:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
		Stereotype: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Member:     lipgloss.NewStyle(),
		Heading:    lipgloss.NewStyle().Bold(true).Underline(true),
		Note:       lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	}
}

// Render lays the classes out as bordered boxes packed into rows no wider
// than width, followed by the relation and note listings.
func Render(d Diagram, width int, style Style) string {
	if width <= 0 {
		width = DefaultWidth
	}
	boxes := make([]string, 0, len(d.Classes))
	for _, c := range d.Classes {
		boxes = append(boxes, renderClass(c, style))
	}

	var sections []string
	if rows := packRows(boxes, width); len(rows) > 0 {
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	if len(d.Relations) > 0 {
		lines := []string{style.Heading.Render("Relations")}
		for _, r := range d.Relations {
			lines = append(lines, "  "+DescribeRelation(r))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if len(d.Notes) > 0 {
		lines := []string{style.Heading.Render("Notes")}
		for _, n := range d.Notes {
			text := n.Text
			if n.For != "" {
				text = n.For + ": " + text
			}
			lines = append(lines, "  "+style.Note.Render(text))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// DescribeRelation renders one relation as plain text with the arrow
// pointing from the dependent class, e.g.
// "ConcreteStrategyA ┄┄▷ Strategy (realization)". Aggregation and
// composition put the diamond next to the whole.
func DescribeRelation(r Relation) string {
	from, to := r.From, r.To
	if strings.HasPrefix(r.Arrow, "<") || strings.HasSuffix(r.Arrow, "o") || strings.HasSuffix(r.Arrow, "*") {
		from, to = to, from
	}
	out := from + " " + arrowGlyphs[r.Kind] + " " + to + " (" + string(r.Kind) + ")"
	if r.Label != "" {
		out += " : " + r.Label
	}
	return out
}

func renderClass(c Class, style Style) string {
	lines := []string{}
	if c.Stereotype != "" {
		lines = append(lines, style.Stereotype.Render("«"+c.Stereotype+"»"))
	}
	lines = append(lines, style.Title.Render(c.Name))
	if len(c.Members) > 0 {
		rule := strings.Repeat("─", maxWidth(append([]string{c.Name}, c.Members...)))
		lines = append(lines, rule)
		for _, m := range c.Members {
			lines = append(lines, style.Member.Render(m))
		}
	}
	return style.Box.Render(strings.Join(lines, "\n"))
}

func packRows(boxes []string, width int) []string {
	var (
		rows    []string
		current []string
		used    int
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
		current, used = nil, 0
	}
	spacer := strings.Repeat(" ", boxGap)
	for _, box := range boxes {
		w := lipgloss.Width(box)
		if len(current) > 0 && used+boxGap+w > width {
			flush()
		}
		if len(current) > 0 {
			current = append(current, spacer)
			used += boxGap
		}
		current = append(current, box)
		used += w
	}
	flush()
	return rows
}

func maxWidth(lines []string) int {
	n := 0
	for _, l := range lines {
		if w := lipgloss.Width(l); w > n {
			n = w
		}
	}
	return n
}
