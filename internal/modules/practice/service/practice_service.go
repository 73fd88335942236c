package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"drill/internal/modules/practice/domain"
	practiceout "drill/internal/modules/practice/port/out"
	"drill/internal/platform/clock"
	"drill/internal/platform/id"
	"drill/internal/platform/logging"
	"drill/internal/platform/shuffle"
)

// PracticeService owns the single practice session of the process.
type PracticeService struct {
	mu        sync.Mutex
	clock     clock.Clock
	idGen     id.Generator
	shuffler  shuffle.Shuffler
	catalog   practiceout.CatalogSource
	logger    *zap.Logger
	session   domain.Session
	exercises map[string]domain.Exercise
}

func NewPracticeService(clk clock.Clock, idGen id.Generator, shuffler shuffle.Shuffler, catalog practiceout.CatalogSource, logger *zap.Logger) *PracticeService {
	return &PracticeService{
		clock:    clk,
		idGen:    idGen,
		shuffler: shuffler,
		catalog:  catalog,
		logger:   logging.OrNop(logger),
		session:  domain.Session{Phase: domain.PhaseIdle},
	}
}

// Start begins a fresh session over the current catalog. An empty catalog
// leaves the session as it was and reports false.
func (s *PracticeService) Start(ctx context.Context) (bool, error) {
	exercises, err := s.catalog.Exercises(ctx)
	if err != nil {
		return false, fmt.Errorf("load practice catalog: %w", err)
	}
	if len(exercises) == 0 {
		s.logger.Debug("practice start ignored, catalog is empty")
		return false, nil
	}
	byID := make(map[string]domain.Exercise, len(exercises))
	ids := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
		ids = append(ids, ex.ID)
	}
	order := shuffle.Apply(s.shuffler, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	sessionID := s.idGen.New()
	if err := s.session.Start(sessionID, order, s.clock.Now()); err != nil {
		return false, err
	}
	s.exercises = byID
	s.logger.Info("practice session started",
		zap.String("session", sessionID),
		zap.Int("exercises", len(order)))
	return true, nil
}

func (s *PracticeService) Reveal(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := s.session.Current()
	if !s.session.Reveal(s.clock.Now()) {
		return false
	}
	s.logger.Debug("solution revealed",
		zap.String("session", s.session.ID),
		zap.String("exercise", id),
		zap.String("elapsed", s.session.RevealedAt))
	return true
}

func (s *PracticeService) Advance(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Advance(s.clock.Now()) {
		return false
	}
	if s.session.Phase == domain.PhaseFinished {
		s.logger.Info("practice session finished",
			zap.String("session", s.session.ID),
			zap.Int("exercises", len(s.session.Order)))
	}
	return true
}

func (s *PracticeService) ExitToHome(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Exit(s.clock.Now())
}

func (s *PracticeService) Tick(_ context.Context, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Timer.Live(generation)
}

// Snapshot copies the session state under the lock along with the exercise
// under study.
func (s *PracticeService) Snapshot(context.Context) (domain.Session, domain.Exercise, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	snap := s.session
	snap.Order = append([]string(nil), s.session.Order...)
	var current domain.Exercise
	if id, ok := s.session.Current(); ok {
		current = s.exercises[id]
	}
	return snap, current, domain.FormatElapsed(s.session.Timer.Elapsed(now))
}
