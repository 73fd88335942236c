package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	diagraminadapter "drill/internal/modules/diagram/adapter/in"
	diagramoutadapter "drill/internal/modules/diagram/adapter/out"
	diagramout "drill/internal/modules/diagram/port/out"
	diagramservice "drill/internal/modules/diagram/service"
	diagramusecase "drill/internal/modules/diagram/usecase"
	exerciseinadapter "drill/internal/modules/exercise/adapter/in"
	exerciseoutadapter "drill/internal/modules/exercise/adapter/out"
	exercisedto "drill/internal/modules/exercise/dto"
	exercisein "drill/internal/modules/exercise/port/in"
	exerciseservice "drill/internal/modules/exercise/service"
	exerciseusecase "drill/internal/modules/exercise/usecase"
	practiceinadapter "drill/internal/modules/practice/adapter/in"
	practiceoutadapter "drill/internal/modules/practice/adapter/out"
	practiceservice "drill/internal/modules/practice/service"
	practiceusecase "drill/internal/modules/practice/usecase"
	"drill/internal/platform/clock"
	"drill/internal/platform/config"
	"drill/internal/platform/id"
	"drill/internal/platform/logging"
	"drill/internal/platform/mermaid"
	"drill/internal/platform/shuffle"
	uiapp "drill/internal/ui/app"
)

type App struct {
	Config      config.Config
	Logger      *zap.Logger
	ExerciseCLI exerciseinadapter.CLIHandler
	PracticeTUI practiceinadapter.TUIHandler
	Diagrams    diagraminadapter.Handler

	exercises exercisein.Usecase
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	clk := clock.SystemClock{}
	ids := id.UUID{}
	shuffler := shuffle.New(cfg.ShuffleSeed)

	exerciseUC := exerciseusecase.NewInteractor(exerciseservice.NewIngestService(
		exerciseoutadapter.NewLocalFileSource(logger.Named("exercise")),
		exerciseoutadapter.NewLocalFileReader(),
		exerciseoutadapter.NewMemoryCatalogStore(),
		cfg.MaxParallelReads,
		logger.Named("exercise"),
	))

	practiceUC := practiceusecase.NewInteractor(practiceservice.NewPracticeService(
		clk,
		ids,
		shuffler,
		practiceoutadapter.NewExerciseCatalog(exerciseUC),
		logger.Named("practice"),
	))

	catalog, err := diagramoutadapter.NewBuiltinCatalog()
	if err != nil {
		return nil, fmt.Errorf("load pattern catalog: %w", err)
	}
	renderer, err := newRenderer(cfg, logger.Named("render"))
	if err != nil {
		return nil, err
	}
	diagramUC := diagramusecase.NewInteractor(diagramservice.NewDrillService(
		catalog,
		renderer,
		diagramoutadapter.NewDiagramViewer(cfg.Viewer, logger.Named("viewer")),
		shuffler,
		logger.Named("diagram"),
	))

	return &App{
		Config:      cfg,
		Logger:      logger,
		ExerciseCLI: exerciseinadapter.NewCLIHandler(exerciseUC),
		PracticeTUI: practiceinadapter.NewTUIHandler(practiceUC),
		Diagrams:    diagraminadapter.NewHandler(diagramUC),
		exercises:   exerciseUC,
	}, nil
}

func newRenderer(cfg config.Config, logger *zap.Logger) (diagramout.Renderer, error) {
	switch cfg.RenderMode {
	case config.RenderModePlugin:
		return diagramoutadapter.NewPluginRenderer(cfg.PluginBinary, mermaid.DefaultWidth, logger), nil
	default:
		renderer, err := diagramoutadapter.NewTextRenderer(mermaid.DefaultWidth, cfg.RenderCacheSize)
		if err != nil {
			return nil, fmt.Errorf("new text renderer: %w", err)
		}
		return renderer, nil
	}
}

// RunTUI starts the interactive shell. When dir is set it is ingested
// before the first frame, and with watch it is re-ingested whenever its
// exercise files change.
func RunTUI(ctx context.Context, app *App, dir string, watch bool) error {
	if dir != "" {
		out, err := app.ExerciseCLI.Ingest(ctx, []string{dir})
		if err != nil {
			return fmt.Errorf("ingest %s: %w", dir, err)
		}
		app.Logger.Info("initial ingest",
			zap.String("dir", dir),
			zap.Int("exercises", out.Count),
			zap.Int("errors", len(out.Errors)))
	}

	model := uiapp.NewModel(app.ExerciseCLI, app.PracticeTUI, app.Diagrams, app.Logger.Named("ui"))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if !watch || dir == "" {
		_, err := program.Run()
		return ignoreKilled(err)
	}

	watcher, err := exerciseinadapter.NewFolderWatcher(app.exercises, dir, app.Config.WatchDebounce, app.Logger.Named("watch"))
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	g.Go(func() error {
		err := watcher.Run(watchCtx, func(out exercisedto.IngestOutput, err error) {
			program.Send(uiapp.IngestedMsg(out, err))
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		program.Quit()
		return err
	})
	g.Go(func() error {
		defer stopWatch()
		_, err := program.Run()
		return ignoreKilled(err)
	})
	return g.Wait()
}

func ignoreKilled(err error) error {
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
