package collector

import (
	"context"

	"CoinSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchMarket returns the coin snapshot ranked by market cap, descending.
	FetchMarket(ctx context.Context) ([]model.Coin, error)
	// FetchHistory returns candles covering the horizon, oldest first. The
	// synthetic source emits horizonDays*24 hourly candles; remote providers
	// return their own bar spacing.
	FetchHistory(ctx context.Context, coinID string, horizon model.Horizon) (model.CandleSeries, error)
	// FetchNews returns news items for a coin in no particular order.
	FetchNews(ctx context.Context, coinID string) ([]model.NewsItem, error)
	Name() string
}
