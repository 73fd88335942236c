package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"drill/internal/modules/exercise/domain"
	exerciseout "drill/internal/modules/exercise/port/out"
	"drill/internal/platform/logging"
)

const defaultParallelReads = 8

type IngestService struct {
	source        exerciseout.FileSource
	reader        exerciseout.FileReader
	store         exerciseout.CatalogStore
	parallelReads int
	logger        *zap.Logger
}

func NewIngestService(source exerciseout.FileSource, reader exerciseout.FileReader, store exerciseout.CatalogStore, parallelReads int, logger *zap.Logger) *IngestService {
	if parallelReads < 1 {
		parallelReads = defaultParallelReads
	}
	return &IngestService{
		source:        source,
		reader:        reader,
		store:         store,
		parallelReads: parallelReads,
		logger:        logging.OrNop(logger),
	}
}

// Ingest expands paths into uploads and ingests them. Unreadable paths only
// leave their exercise side missing, and an empty path list replaces the
// catalog with an empty one. Cancellation is the only error that leaves the
// previous catalog in place.
func (s *IngestService) Ingest(ctx context.Context, paths []string) (domain.Catalog, []string, error) {
	if s.source == nil {
		return domain.Catalog{}, nil, fmt.Errorf("file source is not configured")
	}
	if len(paths) == 0 {
		return s.IngestUploads(ctx, nil)
	}
	uploads, err := s.source.Expand(ctx, paths)
	if err != nil {
		return domain.Catalog{}, nil, err
	}
	return s.IngestUploads(ctx, uploads)
}

type readResult struct {
	ref     domain.FileRef
	content string
	ok      bool
}

// IngestUploads reads every recognized upload, waits for all reads to
// settle, pairs the sides and replaces the active catalog.
func (s *IngestService) IngestUploads(ctx context.Context, uploads []domain.Upload) (domain.Catalog, []string, error) {
	type match struct {
		upload domain.Upload
		ref    domain.FileRef
	}
	matches := make([]match, 0, len(uploads))
	for _, u := range uploads {
		ref, ok := domain.ParseFileName(u.Name)
		if !ok {
			continue
		}
		matches = append(matches, match{upload: u, ref: ref})
	}

	results := make([]readResult, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelReads)
	for i, m := range matches {
		results[i].ref = m.ref
		g.Go(func() error {
			content, err := s.reader.Read(gctx, m.upload.Path)
			if err != nil {
				s.logger.Warn("read exercise file",
					zap.String("name", m.upload.Name),
					zap.String("exercise", m.ref.ID),
					zap.Error(err))
				return nil
			}
			results[i].content = content
			results[i].ok = true
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, nil, err
	}

	pairing := domain.NewPairing()
	for _, r := range results {
		if !r.ok {
			pairing.Reserve(r.ref)
			continue
		}
		pairing.Fill(r.ref, r.content)
	}
	catalog, errs := pairing.Build()
	if err := s.store.Replace(ctx, catalog); err != nil {
		return domain.Catalog{}, nil, err
	}
	s.logger.Info("ingested exercises",
		zap.Int("uploads", len(uploads)),
		zap.Int("recognized", len(matches)),
		zap.Int("exercises", catalog.Len()),
		zap.Int("errors", len(errs)))
	return catalog, errs, nil
}

func (s *IngestService) Catalog(ctx context.Context) (domain.Catalog, error) {
	return s.store.Load(ctx)
}
