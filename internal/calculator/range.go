package calculator

import (
	"math"

	"github.com/pkg/errors"

	"CoinSentinel/internal/model"
)

// SeriesRange scans the series and returns its highest high and lowest low.
func SeriesRange(candles []model.Candle) (high, low float64, err error) {
	if len(candles) == 0 {
		return 0, 0, errors.New("no candles provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, c := range candles {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low, nil
}

// PeriodChangePct returns the percentage change from the first open to the last close.
func PeriodChangePct(candles []model.Candle) float64 {
	if len(candles) == 0 {
		return 0
	}
	return FractionalChange(candles[0].Open, candles[len(candles)-1].Close) * 100
}

// RangePosition returns where price sits within [low, high] (0.0~1.0).
func RangePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (price - low) / (high - low)
	return math.Max(0, math.Min(1, pos)), nil
}

// Stats bundles the chart header numbers. Empty input yields zero stats.
func Stats(series model.CandleSeries) model.SeriesStats {
	high, low, err := SeriesRange(series.Candles)
	if err != nil {
		return model.SeriesStats{}
	}
	return model.SeriesStats{High: high, Low: low, ChangePct: PeriodChangePct(series.Candles)}
}
