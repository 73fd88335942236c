package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	exerciseout "drill/internal/modules/exercise/adapter/out"
	"drill/internal/modules/exercise/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestExpandWalksFoldersWithRelativeNames(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	folder := filepath.Join(root, "exercises")
	writeFile(t, filepath.Join(folder, "ej1.txt"), "A")
	writeFile(t, filepath.Join(folder, "week2", "ej2_sol.txt"), "B")
	single := filepath.Join(root, "ej3.txt")
	writeFile(t, single, "C")

	uploads, err := exerciseout.NewLocalFileSource(nil).Expand(context.Background(), []string{folder, single})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := []domain.Upload{
		{Name: "exercises/ej1.txt", Path: filepath.Join(folder, "ej1.txt")},
		{Name: "exercises/week2/ej2_sol.txt", Path: filepath.Join(folder, "week2", "ej2_sol.txt")},
		{Name: filepath.ToSlash(single), Path: single},
	}
	if diff := cmp.Diff(want, uploads); diff != "" {
		t.Fatalf("unexpected uploads (-want +got):\n%s", diff)
	}
}

func TestExpandKeepsMissingFileAsUpload(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	present := filepath.Join(root, "ej1.txt")
	writeFile(t, present, "A")
	gone := filepath.Join(root, "ej1_sol.txt")

	uploads, err := exerciseout.NewLocalFileSource(nil).Expand(context.Background(), []string{present, gone})
	if err != nil {
		t.Fatalf("a missing file must not fail the expansion: %v", err)
	}
	want := []domain.Upload{
		{Name: filepath.ToSlash(present), Path: present},
		{Name: filepath.ToSlash(gone), Path: gone},
	}
	if diff := cmp.Diff(want, uploads); diff != "" {
		t.Fatalf("unexpected uploads (-want +got):\n%s", diff)
	}
	if _, err := exerciseout.NewLocalFileReader().Read(context.Background(), gone); err == nil {
		t.Fatalf("reading the missing upload should fail")
	}
}

func TestExpandStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exerciseout.NewLocalFileSource(nil).Expand(ctx, []string{t.TempDir()}); err == nil {
		t.Fatalf("cancelled expansion should fail")
	}
}

func TestLocalFileReaderAndStore(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ej1.txt")
	writeFile(t, path, "class Smelly {}")

	content, err := exerciseout.NewLocalFileReader().Read(context.Background(), path)
	if err != nil || content != "class Smelly {}" {
		t.Fatalf("unexpected read: %q %v", content, err)
	}
	if _, err := exerciseout.NewLocalFileReader().Read(context.Background(), path+".missing"); err == nil {
		t.Fatalf("missing file should fail")
	}

	store := exerciseout.NewMemoryCatalogStore()
	empty, err := store.Load(context.Background())
	if err != nil || empty.Len() != 0 {
		t.Fatalf("fresh store should be empty: %d %v", empty.Len(), err)
	}
	next := domain.NewCatalog(domain.Exercise{ID: "1", Problem: "p", Solution: "s"})
	if err := store.Replace(context.Background(), next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	loaded, _ := store.Load(context.Background())
	if loaded.Len() != 1 {
		t.Fatalf("expected replaced catalog, got %d entries", loaded.Len())
	}
}
