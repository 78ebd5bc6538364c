package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/eurokeys/config"
	"github.com/alejandrodnm/eurokeys/internal/adapters/charts"
	"github.com/alejandrodnm/eurokeys/internal/adapters/notify"
	"github.com/alejandrodnm/eurokeys/internal/adapters/storage"
	"github.com/alejandrodnm/eurokeys/internal/dashboard"
	"github.com/alejandrodnm/eurokeys/internal/history"
	"github.com/alejandrodnm/eurokeys/internal/server"
)

const shutdownTimeout = 5 * time.Second

func runServer(ctx context.Context, cfg *config.Config, svc *dashboard.Service, watcher *storage.JSONStore) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.New(svc, cfg.Server.WebDir, cfg.Log.Level == "debug").Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "addr", "http://"+cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("runServer: listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("runServer: shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return svc.Run(gctx, cfg.RefreshInterval())
	})

	if watcher != nil {
		g.Go(func() error {
			err := watcher.Watch(gctx, func() { svc.Invalidate(gctx) })
			if err != nil {
				// sin watcher el servidor sigue funcionando, solo sin invalidación
				slog.Warn("draw cache watcher stopped", "err", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func runUpdate(ctx context.Context, svc *dashboard.Service) error {
	total, err := svc.Update(ctx)
	if err != nil {
		return err
	}
	slog.Info("draw history updated", "draws", total)
	return nil
}

func runKeys(ctx context.Context, svc *dashboard.Service, notifier *notify.Console) error {
	d, err := svc.Analysis(ctx)
	if err != nil {
		return err
	}
	return notifier.NotifyDashboard(ctx, d)
}

func runBacktest(ctx context.Context, hist *history.Service, notifier *notify.Console, window int) error {
	slog.Info("=== BACKTEST MODE: replaying suggested keys against past draws ===", "window", window)

	h, err := hist.Get(ctx, false)
	if err != nil {
		return err
	}

	result, err := dashboard.Backtest(h.Draws, window)
	if err != nil {
		return err
	}

	notifier.PrintBacktest(result)
	slog.Info("backtest complete", "rounds", len(result.Rounds), "source", h.Source)
	return nil
}

func runChart(ctx context.Context, svc *dashboard.Service, path string) error {
	d, err := svc.Analysis(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("runChart: create %q: %w", path, err)
	}
	defer f.Close()

	if err := charts.RenderFrequencies(f, d); err != nil {
		return err
	}
	slog.Info("chart written", "path", path)
	return nil
}
