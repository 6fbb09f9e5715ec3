package di

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stock_tracker/internal/config"
	portfoliousecase "stock_tracker/internal/feature/portfolio/usecase"
	watchlistusecase "stock_tracker/internal/feature/watchlist/usecase"
	"stock_tracker/internal/platform/db"
	"stock_tracker/internal/platform/kvstore"
)

// OpenDB opens and migrates the database selected by cfg.Storage.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	return db.Open(db.Config{
		Driver:     cfg.Storage.Driver,
		SQLitePath: cfg.Storage.SQLitePath,
		Host:       cfg.Storage.Host,
		Port:       cfg.Storage.Port,
		User:       cfg.Storage.User,
		Password:   cfg.Storage.Password,
		Name:       cfg.Storage.Name,
	})
}

// NewLedgers loads both ledgers from the state store. A malformed document fails construction.
func NewLedgers(ctx context.Context, store *kvstore.Store) (*portfoliousecase.PortfolioLedger, *watchlistusecase.WatchlistLedger, error) {
	portfolio, err := portfoliousecase.NewPortfolioLedger(ctx, store)
	if err != nil {
		return nil, nil, fmt.Errorf("portfolio ledger: %w", err)
	}
	watchlist, err := watchlistusecase.NewWatchlistLedger(ctx, store)
	if err != nil {
		return nil, nil, fmt.Errorf("watchlist ledger: %w", err)
	}
	return portfolio, watchlist, nil
}
