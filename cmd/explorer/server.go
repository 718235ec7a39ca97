package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/canvas"
	"github.com/marben/mandel_explorer/config"
	"github.com/marben/mandel_explorer/explorer"
	"github.com/marben/mandel_explorer/internal/logging"
	"github.com/marben/mandel_explorer/journal"
)

// main is the entry point for the Mandelbrot explorer.
// Note: all state lives in one explorer goroutine; browsers only send input and receive frames.
func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse("explorer", args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	logger.Info("starting mandelbrot explorer", "config", cfg)

	// hub fans every presented frame out to the connected browsers
	hub := newFrameHub()
	cv := canvas.New(cfg.CanvasSize, cfg.CanvasSize, hub.publish, canvas.WithFrameScale(cfg.FrameScale))
	defer cv.Close()

	opts := []explorer.Option{explorer.WithLogger(logger), explorer.WithHUD(cfg.HUD)}
	var prior []mandel.Event
	if cfg.Journal != "" {
		store, err := journal.Open(cfg.Journal)
		if err != nil {
			return fmt.Errorf("journal.Open: %w", err)
		}
		defer store.Close()
		// without replay the journal restarts with this run
		prior, err = store.Session(cfg.Replay)
		if err != nil {
			return fmt.Errorf("journal.Session: %w", err)
		}
		opts = append(opts, explorer.WithRecorder(store))
	}

	ex := explorer.New(cv, cfg.Samples, opts...)
	if cfg.Replay {
		ex.Replay(prior)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// events is the single input queue; only ex.Run consumes it
	events := make(chan mandel.Event, 64)

	wsListener, httpServer := webServer(ctx, cfg.Listen, cfg.StaticDir, logger)
	defer wsListener.Close()

	// httpServer provides index.html along with the websocket endpoint
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("httpServer", "err", err)
			stop()
		}
	}()
	w, h := cv.Size()
	go acceptSessions(ctx, wsListener, events, hub, w, h, logger)

	logger.Info("explorer waiting for websocket connections")
	runErr := ex.Run(ctx, events)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("httpServer shutdown", "err", err)
	}
	if runErr != nil {
		return fmt.Errorf("explorer: %w", runErr)
	}
	logger.Info("explorer stopped")
	return nil
}
