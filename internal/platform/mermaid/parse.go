// Package mermaid reads the subset of Mermaid class diagrams used by the
// built-in pattern catalog and lays it out as terminal text.
package mermaid

import (
	"fmt"
	"regexp"
	"strings"
)

type RelationKind string

const (
	Inheritance RelationKind = "inheritance"
	Realization RelationKind = "realization"
	Association RelationKind = "association"
	Dependency  RelationKind = "dependency"
	Aggregation RelationKind = "aggregation"
	Composition RelationKind = "composition"
	Link        RelationKind = "link"
	DashedLink  RelationKind = "dashed-link"
)

type Class struct {
	Name       string
	Stereotype string
	Members    []string
}

// Relation keeps the orientation written in the source: From is the left
// operand, To the right one.
type Relation struct {
	From  string
	To    string
	Arrow string
	Kind  RelationKind
	Label string
}

type Note struct {
	For  string
	Text string
}

type Diagram struct {
	Classes   []Class
	Relations []Relation
	Notes     []Note
}

// Class returns the named class.
func (d Diagram) Class(name string) (Class, bool) {
	for _, c := range d.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return Class{}, false
}

var arrowKinds = map[string]RelationKind{
	"<|--": Inheritance, "--|>": Inheritance,
	"<|..": Realization, "..|>": Realization,
	"-->": Association, "<--": Association,
	"..>": Dependency, "<..": Dependency,
	"o--": Aggregation, "--o": Aggregation, "o-->": Aggregation,
	"*--": Composition, "--*": Composition, "*-->": Composition,
	"--": Link,
	"..": DashedLink,
}

const identifier = `[A-Za-z_][\w]*`

var (
	classOpenPattern = regexp.MustCompile(`^class\s+(` + identifier + `)\s*\{\s*$`)
	classPattern     = regexp.MustCompile(`^class\s+(` + identifier + `)\s*$`)
	memberPattern    = regexp.MustCompile(`^(` + identifier + `)\s*:\s*(.+)$`)
	notePattern      = regexp.MustCompile(`^note\s+(?:for\s+(` + identifier + `)\s+)?"(.*)"\s*$`)
	relationPattern  = regexp.MustCompile(`^(` + identifier + `)\s*(?:"[^"]*"\s*)?` +
		`(<\|--|<\|\.\.|--\|>|\.\.\|>|o-->|\*-->|-->|\.\.>|<--|<\.\.|\*--|o--|--\*|--o|--|\.\.)` +
		`\s*(?:"[^"]*"\s*)?(` + identifier + `)\s*(?::\s*(.*))?$`)
	stereotypePattern = regexp.MustCompile(`^<<\s*(.+?)\s*>>$`)
)

// Parse reads a classDiagram definition. Classes appear in the order they
// are first mentioned.
func Parse(definition string) (Diagram, error) {
	p := parser{index: map[string]int{}}
	lines := strings.Split(strings.ReplaceAll(definition, "\r\n", "\n"), "\n")
	header := false
	open := ""
	for n, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if !header {
			if line != "classDiagram" {
				return Diagram{}, fmt.Errorf("line %d: expected classDiagram header, got %q", n+1, line)
			}
			header = true
			continue
		}
		if open != "" {
			if line == "}" {
				open = ""
				continue
			}
			if m := stereotypePattern.FindStringSubmatch(line); m != nil {
				p.class(open).Stereotype = m[1]
				continue
			}
			c := p.class(open)
			c.Members = append(c.Members, line)
			continue
		}
		if err := p.line(line); err != nil {
			return Diagram{}, fmt.Errorf("line %d: %w", n+1, err)
		}
		if m := classOpenPattern.FindStringSubmatch(line); m != nil {
			open = m[1]
		}
	}
	if !header {
		return Diagram{}, fmt.Errorf("empty diagram definition")
	}
	if open != "" {
		return Diagram{}, fmt.Errorf("class %s is not closed", open)
	}
	return p.diagram, nil
}

type parser struct {
	diagram Diagram
	index   map[string]int
}

func (p *parser) class(name string) *Class {
	idx, ok := p.index[name]
	if !ok {
		idx = len(p.diagram.Classes)
		p.index[name] = idx
		p.diagram.Classes = append(p.diagram.Classes, Class{Name: name})
	}
	return &p.diagram.Classes[idx]
}

func (p *parser) line(line string) error {
	switch {
	case classOpenPattern.MatchString(line):
		p.class(classOpenPattern.FindStringSubmatch(line)[1])
	case classPattern.MatchString(line):
		p.class(classPattern.FindStringSubmatch(line)[1])
	case notePattern.MatchString(line):
		m := notePattern.FindStringSubmatch(line)
		if m[1] != "" {
			p.class(m[1])
		}
		p.diagram.Notes = append(p.diagram.Notes, Note{For: m[1], Text: m[2]})
	case relationPattern.MatchString(line):
		m := relationPattern.FindStringSubmatch(line)
		p.class(m[1])
		p.class(m[3])
		p.diagram.Relations = append(p.diagram.Relations, Relation{
			From:  m[1],
			To:    m[3],
			Arrow: m[2],
			Kind:  arrowKinds[m[2]],
			Label: strings.TrimSpace(m[4]),
		})
	case memberPattern.MatchString(line):
		m := memberPattern.FindStringSubmatch(line)
		c := p.class(m[1])
		member := strings.TrimSpace(m[2])
		if s := stereotypePattern.FindStringSubmatch(member); s != nil {
			c.Stereotype = s[1]
			return nil
		}
		c.Members = append(c.Members, member)
	default:
		return fmt.Errorf("unsupported statement %q", line)
	}
	return nil
}
