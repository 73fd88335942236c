package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	diagramout "drill/internal/modules/diagram/adapter/out"
	"drill/internal/modules/diagram/domain"
	"drill/internal/modules/diagram/dto"
	diagramin "drill/internal/modules/diagram/port/in"
	diagramport "drill/internal/modules/diagram/port/out"
	"drill/internal/modules/diagram/service"
	"drill/internal/modules/diagram/usecase"
	apperrors "drill/internal/platform/errors"
	"drill/internal/platform/shuffle"
)

type scriptedRenderer struct {
	failFor map[string]bool
	path    string
}

func (r scriptedRenderer) Render(_ context.Context, req domain.RenderRequest) (domain.Artifact, error) {
	if r.failFor[req.Pattern] {
		return domain.Artifact{}, errors.New("syntax error in diagram")
	}
	return domain.Artifact{Text: "rendered " + req.Pattern, Path: r.path}, nil
}

type recordingOpener struct {
	mu     sync.Mutex
	opened []string
}

func (o *recordingOpener) Open(_ context.Context, path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	return nil
}

// gatedRenderer holds its first render until release is closed.
type gatedRenderer struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (r *gatedRenderer) Render(_ context.Context, req domain.RenderRequest) (domain.Artifact, error) {
	if r.calls.Add(1) == 1 {
		close(r.entered)
		<-r.release
	}
	return domain.Artifact{Text: "rendered " + req.Pattern}, nil
}

type panickingRenderer struct{}

func (panickingRenderer) Render(context.Context, domain.RenderRequest) (domain.Artifact, error) {
	panic("mermaid parser blew up")
}

func newDrill(t *testing.T, renderer diagramport.Renderer, opener *recordingOpener) diagramin.Usecase {
	t.Helper()
	catalog, err := diagramout.NewBuiltinCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return usecase.NewInteractor(service.NewDrillService(catalog, renderer, opener, shuffle.New(7), nil))
}

func TestDrillVisitsAllTwelvePatternsWithUniqueRenderIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newDrill(t, scriptedRenderer{}, nil)

	ids := map[string]bool{}
	for round := 0; round < 2; round++ {
		out, err := uc.Start(ctx)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if out.View.Total != 12 || out.View.Position != 1 {
			t.Fatalf("unexpected start view: %+v", out.View)
		}
		seen := map[string]bool{}
		view := out.View
		for view.Phase != string(domain.PhaseFinished) {
			seen[view.Pattern] = true
			reveal, _ := uc.Reveal(ctx)
			if !reveal.Applied || reveal.View.RenderStatus != string(domain.RenderPending) {
				t.Fatalf("reveal should apply with a pending render: %+v", reveal)
			}
			if ids[reveal.Request.ID] {
				t.Fatalf("render id %s reused", reveal.Request.ID)
			}
			ids[reveal.Request.ID] = true
			rendered, _ := uc.Render(ctx, reveal.Request)
			if !rendered.Applied || rendered.View.Diagram != "rendered "+view.Pattern {
				t.Fatalf("unexpected render outcome: %+v", rendered)
			}
			next, _ := uc.Advance(ctx)
			view = next.View
		}
		if len(seen) != 12 {
			t.Fatalf("round %d: expected 12 distinct patterns, saw %d", round, len(seen))
		}
	}
}

func TestRenderFailureShowsMarkerAndAllowsAdvance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	failing := map[string]bool{}
	catalog, _ := diagramout.NewBuiltinCatalog()
	patterns, _ := catalog.Patterns(ctx)
	for _, p := range patterns {
		failing[p.Name] = true
	}
	uc := newDrill(t, scriptedRenderer{failFor: failing}, nil)

	_, _ = uc.Start(ctx)
	reveal, _ := uc.Reveal(ctx)
	out, _ := uc.Render(ctx, reveal.Request)
	if out.View.Diagram != domain.FailureMarker || out.View.RenderStatus != string(domain.RenderFailed) {
		t.Fatalf("expected failure marker, got %+v", out.View)
	}
	if out.View.Phase != string(domain.PhaseRevealed) {
		t.Fatalf("failure must keep the drill revealed, got %s", out.View.Phase)
	}
	if next, _ := uc.Advance(ctx); !next.Applied {
		t.Fatalf("advance after failed render should apply")
	}
}

func TestLateRenderForPreviousRevealIsDropped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	renderer := &gatedRenderer{entered: make(chan struct{}), release: make(chan struct{})}
	uc := newDrill(t, renderer, nil)

	_, _ = uc.Start(ctx)
	first, _ := uc.Reveal(ctx)
	done := make(chan dto.TransitionOutput, 1)
	go func() {
		out, _ := uc.Render(ctx, first.Request)
		done <- out
	}()
	<-renderer.entered
	_, _ = uc.Advance(ctx)
	second, _ := uc.Reveal(ctx)
	close(renderer.release)

	late := <-done
	if late.Applied || late.View.Diagram != "" || late.View.RenderStatus != string(domain.RenderPending) {
		t.Fatalf("late result must not be shown: %+v", late.View)
	}
	current, _ := uc.Render(ctx, second.Request)
	if !current.Applied || current.View.Diagram != "rendered "+second.Request.Pattern {
		t.Fatalf("current result should be shown: %+v", current.View)
	}
}

func TestPanickingRendererCountsAsFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newDrill(t, panickingRenderer{}, nil)

	_, _ = uc.Start(ctx)
	reveal, _ := uc.Reveal(ctx)
	out, _ := uc.Render(ctx, reveal.Request)
	if !out.Applied || out.View.Diagram != domain.FailureMarker || out.View.RenderStatus != string(domain.RenderFailed) {
		t.Fatalf("expected failure marker after a renderer panic, got %+v", out)
	}
	if next, _ := uc.Advance(ctx); !next.Applied {
		t.Fatalf("advance after a renderer panic should apply")
	}
}

func TestRestartDuringRenderDropsResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newDrill(t, scriptedRenderer{}, nil)

	_, _ = uc.Start(ctx)
	reveal, _ := uc.Reveal(ctx)
	_, _ = uc.Start(ctx)
	out, _ := uc.Render(ctx, reveal.Request)
	if out.Applied || out.View.Phase != string(domain.PhaseQuestion) {
		t.Fatalf("render from an abandoned drill must be dropped: %+v", out)
	}
}

func TestOpenArtifactUsesRenderedPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	opener := &recordingOpener{}
	uc := newDrill(t, scriptedRenderer{path: "/tmp/diagram.svg"}, opener)

	_, _ = uc.Start(ctx)
	if err := uc.OpenArtifact(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("nothing to open before a render, got %v", err)
	}
	reveal, _ := uc.Reveal(ctx)
	_, _ = uc.Render(ctx, reveal.Request)
	if err := uc.OpenArtifact(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opener.opened) != 1 || opener.opened[0] != "/tmp/diagram.svg" {
		t.Fatalf("unexpected opened paths: %v", opener.opened)
	}
}

func TestPreviewByName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	renderer, err := diagramout.NewTextRenderer(100, 8)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	catalog, _ := diagramout.NewBuiltinCatalog()
	uc := usecase.NewInteractor(service.NewDrillService(catalog, renderer, nil, shuffle.Identity{}, nil))

	preview, err := uc.Preview(ctx, "template method")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.Name != "Template Method" || preview.Diagram == "" {
		t.Fatalf("unexpected preview: %+v", preview)
	}
	if _, err := uc.Preview(ctx, "Singleton"); !errors.Is(err, apperrors.ErrUnknownPattern) {
		t.Fatalf("expected unknown pattern, got %v", err)
	}
	list, _ := uc.Patterns(ctx)
	if len(list) != 12 || list[0].Name != "Strategy" {
		t.Fatalf("patterns should list the catalog in order: %d", len(list))
	}
}
