package model

import (
	"fmt"
	"strings"
)

// Coin is one entry of a market snapshot.
type Coin struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	TotalVolume24h    float64 `json:"total_volume"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	ImageRef          string  `json:"image"`
}

// Candle is a single hourly OHLC bar. Timestamp is epoch milliseconds.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

// Bullish reports whether the candle closed at or above its open.
func (c Candle) Bullish() bool { return c.Close >= c.Open }

// CandleSeries holds the candles of one coin over one horizon.
type CandleSeries struct {
	CoinID      string   `json:"coin_id"`
	HorizonDays int      `json:"horizon_days"`
	Candles     []Candle `json:"candles"`
}

// Len returns the number of candles.
func (s CandleSeries) Len() int { return len(s.Candles) }

// Closes extracts the close prices in order.
func (s CandleSeries) Closes() []float64 {
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	return closes
}

// Tuples converts the series to [timestamp, open, high, low, close] rows.
func (s CandleSeries) Tuples() [][5]float64 {
	rows := make([][5]float64, len(s.Candles))
	for i, c := range s.Candles {
		rows[i] = [5]float64{float64(c.Timestamp), c.Open, c.High, c.Low, c.Close}
	}
	return rows
}

// SeriesFromTuples builds a series from [timestamp, open, high, low, close] rows.
func SeriesFromTuples(coinID string, horizonDays int, rows [][5]float64) CandleSeries {
	candles := make([]Candle, len(rows))
	for i, r := range rows {
		candles[i] = Candle{Timestamp: int64(r[0]), Open: r[1], High: r[2], Low: r[3], Close: r[4]}
	}
	return CandleSeries{CoinID: coinID, HorizonDays: horizonDays, Candles: candles}
}

// Horizon is a lookback window in days.
type Horizon int

const (
	Horizon24h Horizon = 1
	Horizon7d  Horizon = 7
	Horizon30d Horizon = 30
	Horizon1y  Horizon = 365
)

// Horizons lists the supported horizons, shortest first.
var Horizons = []Horizon{Horizon24h, Horizon7d, Horizon30d, Horizon1y}

// Days returns the horizon length in days.
func (h Horizon) Days() int { return int(h) }

// Valid reports whether h is one of the supported horizons.
func (h Horizon) Valid() bool {
	for _, v := range Horizons {
		if v == h {
			return true
		}
	}
	return false
}

// Label returns the short display label, e.g. "7d".
func (h Horizon) Label() string {
	switch h {
	case Horizon24h:
		return "24h"
	case Horizon7d:
		return "7d"
	case Horizon30d:
		return "30d"
	case Horizon1y:
		return "1y"
	default:
		return fmt.Sprintf("%dd", int(h))
	}
}

// ParseHorizon accepts "24h", "7d", "30d", "1y" (case-insensitive).
func ParseHorizon(s string) (Horizon, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "24h", "1d":
		return Horizon24h, nil
	case "7d":
		return Horizon7d, nil
	case "30d":
		return Horizon30d, nil
	case "1y", "365d":
		return Horizon1y, nil
	}
	return 0, fmt.Errorf("unsupported horizon %q", s)
}

// NewsItem is one entry of a coin news feed.
type NewsItem struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Source       string   `json:"source"`
	Time         string   `json:"time"`
	Tags         []string `json:"tags"`
	RelatedCoins []string `json:"related_coins"`
}

// RelatesTo reports whether coinID is among the related coins.
func (n NewsItem) RelatesTo(coinID string) bool {
	for _, c := range n.RelatedCoins {
		if c == coinID {
			return true
		}
	}
	return false
}

// FindCoin returns the coin with the given id from a snapshot.
func FindCoin(coins []Coin, id string) (Coin, bool) {
	for _, c := range coins {
		if c.ID == id {
			return c, true
		}
	}
	return Coin{}, false
}

// PriceIndex maps coin id to current price.
func PriceIndex(coins []Coin) map[string]float64 {
	idx := make(map[string]float64, len(coins))
	for _, c := range coins {
		idx[c.ID] = c.CurrentPrice
	}
	return idx
}
