package collector

import (
	"context"
	"sort"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

const (
	priceJitter  = 0.005 // +-0.5%
	changeJitter = 0.25  // +-0.25 percentage points
)

// SyntheticFetcher serves the reference listings with small random moves,
// generated candle history and templated news.
type SyntheticFetcher struct {
	Generator *synth.Generator
	Rand      synth.Rand
}

// NewSyntheticFetcher creates a SyntheticFetcher drawing from r.
func NewSyntheticFetcher(r synth.Rand) *SyntheticFetcher {
	return &SyntheticFetcher{Generator: synth.NewGenerator(r), Rand: r}
}

func (f *SyntheticFetcher) Name() string { return "synthetic" }

// FetchMarket jitters each reference price and 24h change.
func (f *SyntheticFetcher) FetchMarket(ctx context.Context) ([]model.Coin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	coins := make([]model.Coin, len(listings))
	for i, c := range listings {
		c.CurrentPrice *= 1 + synth.Uniform(f.Rand, -priceJitter, priceJitter)
		c.PriceChangePct24h += synth.Uniform(f.Rand, -changeJitter, changeJitter)
		coins[i] = c
	}
	sort.SliceStable(coins, func(i, j int) bool { return coins[i].MarketCap > coins[j].MarketCap })
	return coins, nil
}

func (f *SyntheticFetcher) FetchHistory(ctx context.Context, coinID string, horizon model.Horizon) (model.CandleSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.CandleSeries{}, err
	}
	return f.Generator.Generate(coinID, horizon.Days()), nil
}

func (f *SyntheticFetcher) FetchNews(ctx context.Context, coinID string) ([]model.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return GenerateNews(coinID, f.Rand), nil
}
