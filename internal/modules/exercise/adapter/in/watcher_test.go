package in_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	exercisein "drill/internal/modules/exercise/adapter/in"
	"drill/internal/modules/exercise/dto"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingUsecase struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recordingUsecase) Ingest(_ context.Context, input dto.IngestInput) (dto.IngestOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, input.Paths)
	return dto.IngestOutput{Count: len(r.calls)}, nil
}

func (r *recordingUsecase) Catalog(context.Context) (dto.CatalogOutput, error) {
	return dto.CatalogOutput{}, nil
}

func (r *recordingUsecase) Get(context.Context, string) (dto.ExerciseOutput, error) {
	return dto.ExerciseOutput{}, errors.New("not used")
}

func TestFolderWatcherCoalescesBurstIntoOneIngest(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	uc := &recordingUsecase{}
	w, err := exercisein.NewFolderWatcher(uc, dir, 150*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := make(chan dto.IngestOutput, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(out dto.IngestOutput, _ error) { results <- out })
	}()

	for _, name := range []string{"ej1.txt", "ej1_sol.txt", "ej2.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a re-ingest after the burst")
	}
	select {
	case extra := <-results:
		t.Fatalf("burst should trigger one ingest, got another: %+v", extra)
	case <-time.After(400 * time.Millisecond):
	}

	uc.mu.Lock()
	if len(uc.calls) != 1 || len(uc.calls[0]) != 1 || uc.calls[0][0] != dir {
		t.Fatalf("expected one ingest of %s, got %v", dir, uc.calls)
	}
	uc.mu.Unlock()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestFolderWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	uc := &recordingUsecase{}
	w, err := exercisein.NewFolderWatcher(uc, dir, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, nil) }()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done
	_ = w.Close()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if len(uc.calls) != 0 {
		t.Fatalf("non-exercise files must not trigger ingest: %v", uc.calls)
	}
}

func TestNewFolderWatcherRejectsFiles(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "ej1.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := exercisein.NewFolderWatcher(&recordingUsecase{}, file, 0, nil); err == nil {
		t.Fatalf("expected error for non-directory")
	}
}
