// Package cli provides the command-line interface for the page toolkit.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wudi/pagekit/codec/pdfcpucodec"
	"github.com/wudi/pagekit/config"
	"github.com/wudi/pagekit/export"
	"github.com/wudi/pagekit/loader"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/ocr"
	"github.com/wudi/pagekit/pipeline"
	"github.com/wudi/pagekit/raster/fitzraster"
	"github.com/wudi/pagekit/workspace"

	_ "github.com/wudi/pagekit/ocr/tesseract"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App is the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	configPath string
	outDir     string
	verbose    bool

	cfg    config.Config
	logger observability.Logger
}

// New creates the CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: observability.NopLogger{},
	}

	app.root = &cobra.Command{
		Use:   "pagekit",
		Short: "Page-level toolkit for PDF documents",
		Long: `pagekit is a suite of small document tools sharing one engine: merge,
extract, burst, rotate, thumbnails, OCR, ID photos and AI-drafted text.

Each command loads its inputs, applies one transform and writes the result
next to the source (or into --out). Multiple outputs are packaged as a zip.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.configPath)
			if err != nil {
				return err
			}
			app.cfg = cfg
			if app.outDir != "" {
				app.cfg.Export.Dir = app.outDir
			}
			if app.verbose {
				logger, err := observability.NewProduction()
				if err != nil {
					return err
				}
				app.logger = logger
			}
			return nil
		},
	}

	app.root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "pagekit.yaml", "Path to configuration file")
	app.root.PersistentFlags().StringVarP(&app.outDir, "out", "o", "", "Output directory (default: current directory)")
	app.root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable structured logging")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newMergeCmd(),
		app.newExtractCmd(),
		app.newBurstCmd(),
		app.newRotateCmd(),
		app.newThumbsCmd(),
		app.newOCRCmd(),
		app.newPassportCmd(),
		app.newDraftCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "pagekit version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}

// newSession wires a workspace over the real codec and rasterizer.
func (a *App) newSession() *workspace.Workspace {
	c := pdfcpucodec.New()
	l := loader.New(c, fitzraster.New(), loader.Config{
		MaxFileSize:      a.cfg.Loader.MaxFileSize,
		ThumbnailLimit:   a.cfg.Loader.ThumbnailLimit,
		ThumbnailWidth:   a.cfg.Loader.ThumbnailWidth,
		ThumbnailQuality: a.cfg.Loader.ThumbnailQuality,
		Logger:           a.logger,
	})
	r := pipeline.NewRunner(c).
		WithRaster(fitzraster.New()).
		WithOCR(ocr.DefaultEngine()).
		WithLogger(a.logger)
	return workspace.New(l, r, a.cfg.Loader.MaxFileSize, a.logger)
}

// loadFile reads path into the workspace.
func (a *App) loadFile(ctx context.Context, w *workspace.Workspace, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.Load(ctx, path, data, a.progress())
}

// enqueue reads path into the workspace merge queue, subject to the same
// size ceiling as a load.
func (a *App) enqueue(w *workspace.Workspace, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := w.Queue().Add(path, data); err != nil {
		return fmt.Errorf("enqueue %q: %w", path, err)
	}
	return nil
}

// progress returns a percentage printer, or nil when not verbose.
func (a *App) progress() func(int) {
	if !a.verbose {
		return nil
	}
	last := -1
	return func(pct int) {
		if pct != last {
			fmt.Fprintf(a.stderr, "\r%3d%%", pct)
			last = pct
		}
		if pct == 100 {
			fmt.Fprintln(a.stderr)
		}
	}
}

// deliver writes artifacts through the export sink and reports the path.
func (a *App) deliver(artifacts []export.Artifact, archiveBase, suffix string) error {
	sink := export.NewSink(a.cfg.Export.Dir)
	sink.Logger = a.logger
	path, err := sink.Deliver(artifacts, archiveBase, suffix)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, path)
	return nil
}
