package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/eurokeys/config"
	"github.com/alejandrodnm/eurokeys/internal/adapters/euromillions"
	"github.com/alejandrodnm/eurokeys/internal/adapters/notify"
	"github.com/alejandrodnm/eurokeys/internal/dashboard"
	"github.com/alejandrodnm/eurokeys/internal/history"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	serve := flag.Bool("serve", false, "run the web dashboard (default mode)")
	update := flag.Bool("update", false, "force a draw history refresh and exit")
	keys := flag.Bool("keys", false, "print suggested keys and statistics and exit")
	backtest := flag.Int("backtest", 0, "replay the last N draws against the generated keys")
	chart := flag.String("chart", "", "write the frequency charts HTML to this file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("eurokeys starting",
		"config", *configPath,
		"storage", cfg.Storage.Driver,
		"cache", cfg.Cache.Driver,
		"refresh", cfg.RefreshInterval(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, watcher, err := openStore(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "driver", cfg.Storage.Driver)
		os.Exit(1)
	}
	defer store.Close()

	analysisCache, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		slog.Error("failed to open analysis cache", "err", err, "driver", cfg.Cache.Driver)
		os.Exit(1)
	}
	defer closeCache()

	scraper := euromillions.NewScraper(euromillions.Config{
		BaseURL:           cfg.Scraper.BaseURL,
		ChromePath:        cfg.Scraper.ChromePath,
		PageTimeout:       cfg.PageTimeout(),
		RequestsPerSecond: cfg.Scraper.RequestsPerSecond,
		Retries:           cfg.ScraperRetries(),
	})

	hist := history.New(history.Config{
		StartYear:      cfg.History.StartYear,
		SimulatedDraws: cfg.History.SimulatedDraws,
	}, scraper, store)

	notifier := notify.NewConsole(true)

	svc := dashboard.New(dashboard.Config{CacheTTL: cfg.CacheTTL()}, hist, analysisCache, notifier)

	switch selectMode(*serve, *update, *keys, *backtest, *chart) {
	case modeUpdate:
		err = runUpdate(ctx, svc)
	case modeKeys:
		err = runKeys(ctx, svc, notifier)
	case modeBacktest:
		err = runBacktest(ctx, hist, notifier, *backtest)
	case modeChart:
		err = runChart(ctx, svc, *chart)
	default:
		err = runServer(ctx, cfg, svc, watcher)
	}
	if err != nil {
		slog.Error("eurokeys exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("eurokeys stopped cleanly")
}

type mode string

const (
	modeServe    mode = "serve"
	modeUpdate   mode = "update"
	modeKeys     mode = "keys"
	modeBacktest mode = "backtest"
	modeChart    mode = "chart"
)

// selectMode elige el modo de ejecución. -serve gana sobre los demás; sin flags
// se sirve el dashboard.
func selectMode(serve, update, keys bool, backtest int, chart string) mode {
	switch {
	case serve:
		return modeServe
	case update:
		return modeUpdate
	case keys:
		return modeKeys
	case backtest > 0:
		return modeBacktest
	case chart != "":
		return modeChart
	default:
		return modeServe
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
