package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"drill/internal/modules/diagram/domain"
	diagramout "drill/internal/modules/diagram/port/out"
	apperrors "drill/internal/platform/errors"
	"drill/internal/platform/logging"
	"drill/internal/platform/shuffle"
	"drill/internal/platform/slug"
)

type DrillService struct {
	mu       sync.Mutex
	catalog  diagramout.PatternCatalog
	renderer diagramout.Renderer
	opener   diagramout.ArtifactOpener
	shuffler shuffle.Shuffler
	logger   *zap.Logger
	seq      uint64
	session  domain.Session
}

func NewDrillService(catalog diagramout.PatternCatalog, renderer diagramout.Renderer, opener diagramout.ArtifactOpener, shuffler shuffle.Shuffler, logger *zap.Logger) *DrillService {
	return &DrillService{
		catalog:  catalog,
		renderer: renderer,
		opener:   opener,
		shuffler: shuffler,
		logger:   logging.OrNop(logger),
		session:  domain.Session{Phase: domain.PhaseIdle},
	}
}

// Start always begins a fresh drill over a new permutation of the catalog.
func (s *DrillService) Start(ctx context.Context) error {
	patterns, err := s.catalog.Patterns(ctx)
	if err != nil {
		return fmt.Errorf("load pattern catalog: %w", err)
	}
	order := shuffle.Apply(s.shuffler, patterns)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Start(order); err != nil {
		return err
	}
	s.logger.Info("diagram drill started", zap.Int("patterns", len(order)))
	return nil
}

func (s *DrillService) Reveal(context.Context) (domain.RenderRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Phase != domain.PhaseQuestion {
		return domain.RenderRequest{}, false
	}
	s.seq++
	return s.session.Reveal(s.seq)
}

// Render runs the renderer for request and records the outcome. The result
// is dropped when the learner has moved on in the meantime. A panicking
// renderer counts as a failed render.
func (s *DrillService) Render(ctx context.Context, request domain.RenderRequest) bool {
	artifact, err := s.runRenderer(ctx, request)
	return s.complete(request.ID, artifact, err)
}

func (s *DrillService) runRenderer(ctx context.Context, request domain.RenderRequest) (artifact domain.Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact = domain.Artifact{}
			err = fmt.Errorf("%w: renderer panicked: %v", apperrors.ErrRenderFailed, r)
		}
	}()
	return s.renderer.Render(ctx, request)
}

func (s *DrillService) complete(id string, artifact domain.Artifact, renderErr error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := s.session.Complete(id, artifact, renderErr)
	switch {
	case !applied:
		s.logger.Debug("stale render result dropped", zap.String("render_id", id))
	case renderErr != nil:
		s.logger.Warn("render diagram", zap.String("render_id", id), zap.Error(renderErr))
	}
	return applied
}

func (s *DrillService) Advance(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Advance() {
		return false
	}
	if s.session.Phase == domain.PhaseFinished {
		s.logger.Info("diagram drill finished", zap.Int("patterns", len(s.session.Order)))
	}
	return true
}

func (s *DrillService) Snapshot(context.Context) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.session
	snap.Order = append([]domain.Pattern(nil), s.session.Order...)
	return snap
}

// OpenArtifact hands the current diagram file to the system viewer.
func (s *DrillService) OpenArtifact(ctx context.Context) error {
	s.mu.Lock()
	path := s.session.Artifact.Path
	s.mu.Unlock()
	if path == "" {
		return fmt.Errorf("%w: no diagram file to open", apperrors.ErrNotFound)
	}
	if s.opener == nil {
		return fmt.Errorf("artifact opener is not configured")
	}
	return s.opener.Open(ctx, path)
}

func (s *DrillService) Patterns(ctx context.Context) ([]domain.Pattern, error) {
	return s.catalog.Patterns(ctx)
}

// Preview renders a pattern by name outside any session. Names match
// case-insensitively.
func (s *DrillService) Preview(ctx context.Context, name string) (domain.Pattern, domain.Artifact, error) {
	patterns, err := s.catalog.Patterns(ctx)
	if err != nil {
		return domain.Pattern{}, domain.Artifact{}, err
	}
	for _, p := range patterns {
		if !strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			continue
		}
		id := "preview-" + slug.Make(p.Name)
		artifact, err := s.renderer.Render(ctx, domain.RenderRequest{ID: id, Pattern: p.Name, Definition: p.Definition})
		if err != nil {
			return domain.Pattern{}, domain.Artifact{}, err
		}
		return p, artifact, nil
	}
	return domain.Pattern{}, domain.Artifact{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownPattern, name)
}
