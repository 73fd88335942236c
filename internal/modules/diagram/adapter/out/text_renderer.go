package out

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"drill/internal/modules/diagram/domain"
	diagramout "drill/internal/modules/diagram/port/out"
	apperrors "drill/internal/platform/errors"
	"drill/internal/platform/mermaid"
)

const defaultCacheSize = 64

// TextRenderer draws class diagrams as terminal boxes. Output is cached by
// render id.
type TextRenderer struct {
	width int
	style mermaid.Style
	cache *lru.Cache[string, string]
}

func NewTextRenderer(width, cacheSize int) (diagramout.Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create render cache: %w", err)
	}
	return &TextRenderer{width: width, style: mermaid.DefaultStyle(), cache: cache}, nil
}

func (r *TextRenderer) Render(ctx context.Context, request domain.RenderRequest) (domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Artifact{}, err
	}
	if text, ok := r.cache.Get(request.ID); ok {
		return domain.Artifact{Text: text}, nil
	}
	d, err := mermaid.Parse(request.Definition)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("%w: %v", apperrors.ErrRenderFailed, err)
	}
	text := mermaid.Render(d, r.width, r.style)
	r.cache.Add(request.ID, text)
	return domain.Artifact{Text: text}, nil
}
