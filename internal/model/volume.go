package model

import "math"

// VolumePoint is the synthetic volume derived from one candle.
type VolumePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
	IsSpike   bool    `json:"is_spike"`
}

// VolumeAnomaly is a point whose volume is well above the series average.
type VolumeAnomaly struct {
	Timestamp       int64   `json:"timestamp"`
	Volume          float64 `json:"volume"`
	PctAboveAverage float64 `json:"pct_above_average"`
}

// VolumeMetrics summarizes a volume series.
type VolumeMetrics struct {
	AverageVolume          float64         `json:"average_volume"`
	VolumeChangePct        float64         `json:"volume_change_pct"`
	Anomalies              []VolumeAnomaly `json:"anomalies"`
	PriceVolumeCorrelation float64         `json:"price_volume_correlation"` // -1 ~ 1
}

// CorrelationStrength labels the magnitude of the price/volume correlation.
func (m VolumeMetrics) CorrelationStrength() string {
	r := math.Abs(m.PriceVolumeCorrelation)
	switch {
	case r > 0.7:
		return "Strong"
	case r > 0.3:
		return "Moderate"
	default:
		return "Weak"
	}
}

// SeriesStats holds the chart header numbers for a candle series.
type SeriesStats struct {
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	ChangePct float64 `json:"change_pct"`
}

// CoinDetail is everything shown for the selected coin and horizon.
type CoinDetail struct {
	Coin      Coin
	Horizon   Horizon
	Series    CandleSeries
	Stats     SeriesStats
	Volume    []VolumePoint
	Metrics   VolumeMetrics
	RSI       float64
	News      []NewsItem
	Sentiment Sentiment
	Signal    TradingSignal
}
