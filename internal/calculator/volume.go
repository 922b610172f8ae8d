package calculator

import (
	"math"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

const (
	// AnomalyThreshold flags points above this multiple of the average volume.
	AnomalyThreshold = 1.8

	spikeProbability  = 0.05
	volatilityWeight  = 10
	jitterRange       = 0.5
	spikeMultiplierLo = 2.0
	spikeMultiplierHi = 5.0
)

// AnalyzeVolume synthesizes an hourly volume series correlated with price
// movement and computes its metrics. An empty series yields zero metrics.
func AnalyzeVolume(totalVolume24h float64, series model.CandleSeries, r synth.Rand) ([]model.VolumePoint, model.VolumeMetrics) {
	points := SynthesizeVolume(totalVolume24h, series.Candles, r)
	return points, ComputeVolumeMetrics(points)
}

// SynthesizeVolume derives one volume point per candle from its close price.
func SynthesizeVolume(totalVolume24h float64, candles []model.Candle, r synth.Rand) []model.VolumePoint {
	points := make([]model.VolumePoint, len(candles))
	baseHourly := totalVolume24h / 24

	for i, c := range candles {
		priceVolatility := 0.0
		if i > 0 {
			priceVolatility = math.Abs(FractionalChange(candles[i-1].Close, c.Close))
		}
		multiplier := 1 + priceVolatility*volatilityWeight + r.Float64()*jitterRange

		isSpike := r.Float64() > 1-spikeProbability
		spike := 1.0
		if isSpike {
			spike = synth.Uniform(r, spikeMultiplierLo, spikeMultiplierHi)
		}

		points[i] = model.VolumePoint{
			Timestamp: c.Timestamp,
			Price:     c.Close,
			Volume:    baseHourly * multiplier * spike,
			IsSpike:   isSpike,
		}
	}
	return points
}

// ComputeVolumeMetrics computes average, half-over-half change, anomalies and
// the price/volume change correlation.
func ComputeVolumeMetrics(points []model.VolumePoint) model.VolumeMetrics {
	if len(points) == 0 {
		return model.VolumeMetrics{Anomalies: []model.VolumeAnomaly{}}
	}

	volumes := make([]float64, len(points))
	for i, p := range points {
		volumes[i] = p.Volume
	}
	avg := Mean(volumes)

	return model.VolumeMetrics{
		AverageVolume:          avg,
		VolumeChangePct:        VolumeChangePct(volumes),
		Anomalies:              DetectAnomalies(points, avg, AnomalyThreshold),
		PriceVolumeCorrelation: PriceVolumeCorrelation(points),
	}
}

// VolumeChangePct compares the second half of the series to the first,
// split at floor(n/2). Returns 0 when the first half sums to 0.
func VolumeChangePct(volumes []float64) float64 {
	half := len(volumes) / 2
	first := Sum(volumes[:half])
	second := Sum(volumes[half:])
	if first == 0 {
		return 0
	}
	return (second - first) / first * 100
}

// DetectAnomalies returns every point whose volume exceeds threshold*avg.
func DetectAnomalies(points []model.VolumePoint, avg, threshold float64) []model.VolumeAnomaly {
	anomalies := []model.VolumeAnomaly{}
	if avg <= 0 {
		return anomalies
	}
	limit := avg * threshold
	for _, p := range points {
		if p.Volume > limit {
			anomalies = append(anomalies, model.VolumeAnomaly{
				Timestamp:       p.Timestamp,
				Volume:          p.Volume,
				PctAboveAverage: (p.Volume - avg) / avg * 100,
			})
		}
	}
	return anomalies
}

// PriceVolumeCorrelation correlates the step-wise fractional price change
// with the fractional volume change.
func PriceVolumeCorrelation(points []model.VolumePoint) float64 {
	if len(points) < 3 {
		return 0
	}
	priceChanges := make([]float64, 0, len(points)-1)
	volumeChanges := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		priceChanges = append(priceChanges, FractionalChange(points[i-1].Price, points[i].Price))
		volumeChanges = append(volumeChanges, FractionalChange(points[i-1].Volume, points[i].Volume))
	}
	return PearsonCorrelation(priceChanges, volumeChanges)
}
