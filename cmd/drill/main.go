package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"drill/internal/bootstrap"
	"drill/internal/platform/config"
	"drill/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options carries the state shared by every subcommand.
type options struct {
	configPath string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:           "drill",
		Short:         "Refactoring exercise and design pattern drills",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to "+config.FileName)
	root.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	_ = opts.v.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newIngestCmd(opts))
	root.AddCommand(newPatternsCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func loadConfig(opts *options) (config.Config, error) {
	return config.Load(opts.v, opts.configPath)
}

// loadApp builds the application graph. logFile overrides log.file when the
// config leaves it empty.
func loadApp(opts *options, logFile string) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	path := cfg.LogFile
	if path == "" {
		path = logFile
	}
	logger, err := logging.New(cfg.LogLevel, path)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Debug("config loaded", zap.String("source", cfg.Source), zap.String("render_mode", cfg.RenderMode))
	return app, nil
}

func runTUI(ctx context.Context, opts *options) error {
	app, err := loadApp(opts, logging.DefaultTUIFile())
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()
	return bootstrap.RunTUI(ctx, app, app.Config.ExercisesDir, app.Config.Watch)
}

func newTUICmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive study terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	cmd.Flags().String("dir", "", "exercise folder to ingest on start")
	cmd.Flags().Bool("watch", false, "re-ingest the folder when its exercise files change")
	_ = opts.v.BindPFlag(config.KeyExercisesDir, cmd.Flags().Lookup("dir"))
	_ = opts.v.BindPFlag(config.KeyExercisesWatch, cmd.Flags().Lookup("watch"))
	return cmd
}

func newIngestCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <paths...>",
		Short: "Pair ejN.txt / ejN_sol.txt files and report the resulting catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, "")
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()

			out, err := app.ExerciseCLI.Ingest(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "ingested %d exercises\n", out.Count)
			if len(out.IDs) > 0 {
				_, _ = fmt.Fprintf(w, "ids: %s\n", strings.Join(out.IDs, " "))
			}
			for _, msg := range out.Errors {
				_, _ = fmt.Fprintf(w, "error: %s\n", msg)
			}
			if !out.Ready {
				return errors.New("no complete exercises found")
			}

			show, _ := cmd.Flags().GetString("show")
			if show == "" {
				return nil
			}
			ex, err := app.ExerciseCLI.Get(cmd.Context(), show)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "\n== exercise %s ==\n%s\n\n== solution ==\n%s\n", ex.ID, ex.Problem, ex.Solution)
			return nil
		},
	}
	cmd.Flags().String("show", "", "print the problem and solution of one ingested exercise")
	return cmd
}

func newPatternsCmd(opts *options) *cobra.Command {
	patterns := &cobra.Command{Use: "patterns", Short: "Browse the built-in pattern diagrams"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List pattern names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, "")
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()
			items, err := app.Diagrams.Patterns(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range items {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p.Name)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Render one pattern diagram",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, "")
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()
			preview, err := app.Diagrams.Preview(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writePreview(cmd.OutOrStdout(), preview.Name, preview.Diagram)
		},
	}

	patterns.AddCommand(list, show)
	return patterns
}

func writePreview(w io.Writer, name, diagram string) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", name); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(diagram, "\n"))
	return err
}

func newConfigCmd(opts *options) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Manage " + config.FileName}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.FileName
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Clean(path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			source := cfg.Source
			if source == "" {
				source = "(defaults)"
			}
			_, _ = fmt.Fprintf(w, "source: %s\n", source)
			_, _ = fmt.Fprintf(w, "%s = %q\n", config.KeyExercisesDir, cfg.ExercisesDir)
			_, _ = fmt.Fprintf(w, "%s = %t\n", config.KeyExercisesWatch, cfg.Watch)
			_, _ = fmt.Fprintf(w, "%s = %d\n", config.KeyMaxParallelReads, cfg.MaxParallelReads)
			_, _ = fmt.Fprintf(w, "%s = %s\n", config.KeyWatchDebounce, cfg.WatchDebounce)
			_, _ = fmt.Fprintf(w, "%s = %d\n", config.KeyShuffleSeed, cfg.ShuffleSeed)
			_, _ = fmt.Fprintf(w, "%s = %q\n", config.KeyRenderMode, cfg.RenderMode)
			_, _ = fmt.Fprintf(w, "%s = %d\n", config.KeyRenderCacheSize, cfg.RenderCacheSize)
			_, _ = fmt.Fprintf(w, "%s = %q\n", config.KeyViewer, cfg.Viewer)
			_, _ = fmt.Fprintf(w, "%s = %q\n", config.KeyLogLevel, cfg.LogLevel)
			return nil
		},
	}

	cfgCmd.AddCommand(initCmd, show)
	return cfgCmd
}
