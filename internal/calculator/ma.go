package calculator

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/pkg/errors"

	"CoinSentinel/internal/model"
)

// RollingAverage computes the simple moving average of values over period.
// The result has len(values)-period+1 entries; entry i covers values[i:i+period].
func RollingAverage(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(values) < period {
		return nil, errors.Errorf("not enough data for SMA: need %d, got %d", period, len(values))
	}

	sma := trend.NewSmaWithPeriod[float64](period)
	out := helper.ChanToSlice(sma.Compute(helper.SliceToChan(values)))
	return out, nil
}

// VolumeMovingAverage returns the rolling average of the point volumes.
func VolumeMovingAverage(points []model.VolumePoint, period int) ([]float64, error) {
	volumes := make([]float64, len(points))
	for i, p := range points {
		volumes[i] = p.Volume
	}
	return RollingAverage(volumes, period)
}

// CloseMovingAverage returns the rolling average of the candle closes.
func CloseMovingAverage(series model.CandleSeries, period int) ([]float64, error) {
	return RollingAverage(series.Closes(), period)
}
