package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/charts"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/cli"
	apphttp "github.com/nayanchhabhaiya/Expense-Tracker/internal/http"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/ledger"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/persist"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/view"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	kv := cli.OpenStore(logger, cfg)
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	store := ledger.NewStore(persist.NewAdapter(kv, ""))
	if err := store.LoadInitial(context.Background()); err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	renderer, err := view.NewRenderer(cfg.CardBreakpointPx)
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, renderer, charts.NewDonut(), cfg.ChartWidth, cfg.ChartHeight)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", "addr", srv.Addr, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
