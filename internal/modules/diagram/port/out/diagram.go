package out

import (
	"context"

	"drill/internal/modules/diagram/domain"
)

type PatternCatalog interface {
	Patterns(ctx context.Context) ([]domain.Pattern, error)
}

// Renderer turns a diagram definition into something displayable. It may be
// slow; callers run it off the UI loop.
type Renderer interface {
	Render(ctx context.Context, request domain.RenderRequest) (domain.Artifact, error)
}

type ArtifactOpener interface {
	Open(ctx context.Context, path string) error
}
