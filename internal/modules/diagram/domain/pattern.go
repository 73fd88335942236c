package domain

import (
	"errors"
	"strings"
)

// Pattern is one entry of the built-in catalog: a design pattern name and
// its class diagram in Mermaid syntax.
type Pattern struct {
	Name       string `yaml:"name"`
	Definition string `yaml:"definition"`
}

func (p Pattern) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("pattern name is required")
	}
	if strings.TrimSpace(p.Definition) == "" {
		return errors.New("pattern " + p.Name + " has no diagram definition")
	}
	return nil
}
