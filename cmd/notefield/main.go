// Command notefield opens an infinite note canvas window.
//
// Usage:
//
//	notefield [-config path] [-script session.json] [-version]
//
// Click anywhere to drop a text box, hold space (or the middle button) and
// drag to pan, scroll to zoom, and press Ctrl/Cmd+0 to return to the origin.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/notefield"
	"github.com/phanxgames/notefield/internal/config"
	"github.com/phanxgames/notefield/internal/crash"
	applog "github.com/phanxgames/notefield/internal/log"
	"github.com/phanxgames/notefield/internal/version"
)

func main() {
	configPath := flag.String("config", "", "config file (default: per-user config dir)")
	scriptPath := flag.String("script", "", "JSON session script to replay")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "notefield:", err)
		os.Exit(1)
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	defer applog.Close()
	l := applog.WithComponent("cli")

	if err := run(cfg, *scriptPath, l); err != nil {
		l.Error("exit", slog.Any("err", err))
		_ = applog.Close()
		os.Exit(1)
	}
}

func run(cfg config.AppConfig, scriptPath string, l *slog.Logger) error {
	board, err := newBoard(cfg)
	if err != nil {
		return err
	}
	defer board.Close()

	var runner *notefield.ScriptRunner
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err = notefield.LoadScript(data)
		if err != nil {
			return err
		}
		board.SetScriptRunner(runner)
		l.Info("script loaded", slog.String("path", scriptPath))
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	l.Info("starting", slog.String("ver", version.String()),
		slog.Int("width", cfg.Window.Width), slog.Int("height", cfg.Window.Height))
	return ebiten.RunGame(&guardedGame{Board: board, runner: runner})
}

func newBoard(cfg config.AppConfig) (*notefield.Board, error) {
	fit := fitOptions(cfg.Canvas)

	opts := notefield.Options{
		Fit:           &fit,
		MinScale:      cfg.Canvas.MinScale,
		MaxScale:      cfg.Canvas.MaxScale,
		ScaleStep:     cfg.Canvas.ScaleStep,
		Logger:        applog.WithComponent("board"),
		ScreenshotDir: cfg.Debug.ScreenshotDir,
	}
	if cfg.Canvas.FontFile != "" {
		data, err := os.ReadFile(cfg.Canvas.FontFile)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		face, err := notefield.LoadTTFTypeface(data)
		if err != nil {
			return nil, err
		}
		opts.Typeface = face
	}

	board, err := notefield.NewBoard(opts)
	if err != nil {
		return nil, err
	}
	board.SetHUD(cfg.Debug.HUD)
	return board, nil
}

// fitOptions carries the canvas.* sizing constants into the board.
func fitOptions(c config.CanvasConfig) notefield.FitOptions {
	fit := notefield.DefaultFitOptions()
	fit.BaseFontSize = c.BaseFontSize
	fit.WidthSlack = c.WidthSlack
	fit.MinWidthChars = c.MinWidthChars
	fit.MinVisibleHeight = c.MinVisibleHeight
	if c.SampleText != "" {
		fit.SampleText = c.SampleText
	}
	return fit
}

// guardedGame recovers panics raised inside the game loop, which may run
// on a goroutine other than main's, and ends the run once a script is done.
type guardedGame struct {
	*notefield.Board
	runner   *notefield.ScriptRunner
	finished bool
}

func (g *guardedGame) Update() error {
	defer crash.Recover()
	if err := g.Board.Update(); err != nil {
		return err
	}
	if g.finished {
		return ebiten.Termination
	}
	// Stop one tick later so a final screenshot step still gets drawn.
	g.finished = g.runner != nil && g.runner.Done()
	return nil
}

func (g *guardedGame) Draw(screen *ebiten.Image) {
	defer crash.Recover()
	g.Board.Draw(screen)
}
