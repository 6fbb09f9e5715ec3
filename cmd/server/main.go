package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_tracker/internal/app/di"
	"stock_tracker/internal/app/router"
	"stock_tracker/internal/config"
	markethandler "stock_tracker/internal/feature/market/transport/handler"
	portfolioentity "stock_tracker/internal/feature/portfolio/domain/entity"
	portfoliohandler "stock_tracker/internal/feature/portfolio/transport/handler"
	watchlistentity "stock_tracker/internal/feature/watchlist/domain/entity"
	watchlisthandler "stock_tracker/internal/feature/watchlist/transport/handler"
	platformhandler "stock_tracker/internal/platform/http/handler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("failed to close resources", "error", err)
		}
	}()

	app.Portfolio.OnChange(func(positions []portfolioentity.Position) {
		slog.Info("portfolio updated", "positions", len(positions))
	})
	app.Watchlist.OnChange(func(items []watchlistentity.WatchlistItem) {
		slog.Info("watchlist updated", "items", len(items))
	})

	r := router.NewRouter(
		platformhandler.NewHealth(app.HealthChecks()),
		markethandler.NewMarketHandler(app.Market),
		portfoliohandler.NewPortfolioHandler(app.Portfolio),
		watchlisthandler.NewWatchlistHandler(app.Watchlist),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("server listening", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend, "storage", cfg.Storage.Driver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
