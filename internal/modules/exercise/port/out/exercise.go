package out

import (
	"context"

	"drill/internal/modules/exercise/domain"
)

// FileSource turns user-supplied paths (files or folders) into uploads.
type FileSource interface {
	Expand(ctx context.Context, paths []string) ([]domain.Upload, error)
}

type FileReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// CatalogStore holds the active catalog. Replace swaps it wholesale.
type CatalogStore interface {
	Replace(ctx context.Context, catalog domain.Catalog) error
	Load(ctx context.Context) (domain.Catalog, error)
}
