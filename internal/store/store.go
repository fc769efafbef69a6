// Package store provides data persistence interfaces and implementations.
// The analytics engine never touches storage directly; the store is the
// external collaborator that supplies candle series and keeps backtest runs.
package store

import (
	"context"
	"time"

	"options-analytics/internal/backtest"
	"options-analytics/internal/models"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Candle data operations
	SaveCandles(ctx context.Context, symbol string, candles []models.Candle) error
	GetCandles(ctx context.Context, symbol string, from, to time.Time) ([]models.Candle, error)
	GetAllCandles(ctx context.Context, symbol string) ([]models.Candle, error)

	// Backtest run operations
	SaveBacktestRun(ctx context.Context, symbol, strategyName string, result *backtest.Result) error

	// Close releases the underlying resources.
	Close() error
}
