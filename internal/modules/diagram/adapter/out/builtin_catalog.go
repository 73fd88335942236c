package out

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"drill/internal/modules/diagram/domain"
	diagramout "drill/internal/modules/diagram/port/out"
)

//go:embed patterns.yaml
var builtinPatterns []byte

type catalogFile struct {
	Patterns []domain.Pattern `yaml:"patterns"`
}

// BuiltinCatalog serves the pattern diagrams compiled into the binary.
type BuiltinCatalog struct {
	patterns []domain.Pattern
}

func NewBuiltinCatalog() (diagramout.PatternCatalog, error) {
	patterns, err := DecodeCatalog(builtinPatterns)
	if err != nil {
		return nil, err
	}
	return &BuiltinCatalog{patterns: patterns}, nil
}

// DecodeCatalog parses a patterns document, rejecting unknown keys, blank
// entries and duplicate names.
func DecodeCatalog(raw []byte) ([]domain.Pattern, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	file := catalogFile{}
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode pattern catalog: %w", err)
	}
	seen := map[string]struct{}{}
	for _, p := range file.Patterns {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("duplicate pattern: %s", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return file.Patterns, nil
}

func (c *BuiltinCatalog) Patterns(_ context.Context) ([]domain.Pattern, error) {
	return append([]domain.Pattern(nil), c.patterns...), nil
}
