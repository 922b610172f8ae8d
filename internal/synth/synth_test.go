package synth

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(seed uint64) *Generator {
	g := NewGenerator(NewRand(seed))
	g.Now = func() time.Time { return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC) }
	g.Location = time.UTC
	return g
}

func TestGenerate_CandleInvariants(t *testing.T) {
	coins := []string{"bitcoin", "solana", "dogecoin", "cardano", "unknown-coin"}
	for _, coin := range coins {
		for _, days := range []int{1, 7, 30} {
			series := fixedGenerator(42).Generate(coin, days)
			require.Len(t, series.Candles, days*24, "coin=%s days=%d", coin, days)

			for i, c := range series.Candles {
				assert.LessOrEqual(t, c.Low, math.Min(c.Open, c.Close), "coin=%s i=%d", coin, i)
				assert.GreaterOrEqual(t, c.High, math.Max(c.Open, c.Close), "coin=%s i=%d", coin, i)
				if i > 0 {
					assert.Less(t, series.Candles[i-1].Timestamp, c.Timestamp)
				}
			}
		}
	}
}

func TestGenerate_TimestampsEndBeforeNow(t *testing.T) {
	g := fixedGenerator(1)
	series := g.Generate("ethereum", 1)
	now := g.Now().UnixMilli()

	require.NotEmpty(t, series.Candles)
	assert.Equal(t, now-24*time.Hour.Milliseconds(), series.Candles[0].Timestamp)
	assert.Equal(t, now-time.Hour.Milliseconds(), series.Candles[len(series.Candles)-1].Timestamp)
}

func TestGenerate_Reproducible(t *testing.T) {
	a := fixedGenerator(7).Generate("bitcoin", 7)
	b := fixedGenerator(7).Generate("bitcoin", 7)
	assert.Equal(t, a, b)

	c := fixedGenerator(8).Generate("bitcoin", 7)
	assert.NotEqual(t, a.Candles[0].Close, c.Candles[0].Close)
}

func TestGenerate_UnknownCoinUsesDefaultProfile(t *testing.T) {
	series := fixedGenerator(3).Generate("not-listed", 1)
	require.Len(t, series.Candles, 24)
	for _, c := range series.Candles {
		// default base 63852 with trend/noise/volatility well inside +-30%
		assert.InDelta(t, DefaultProfile.BasePrice, c.Open, DefaultProfile.BasePrice*0.3)
	}
}

func TestGenerate_NonPositiveHorizon(t *testing.T) {
	series := fixedGenerator(3).Generate("bitcoin", 0)
	assert.Empty(t, series.Candles)
}

func TestSessionModifier(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"weekday trading hours", time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC), 1.005},
		{"weekday night", time.Date(2024, 5, 15, 3, 0, 0, 0, time.UTC), 1.0},
		{"weekday hour 17", time.Date(2024, 5, 15, 17, 0, 0, 0, time.UTC), 1.005},
		{"saturday night", time.Date(2024, 5, 18, 22, 0, 0, 0, time.UTC), 0.997},
		{"sunday trading hours", time.Date(2024, 5, 19, 12, 0, 0, 0, time.UTC), 1.002},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SessionModifier(tt.at), 1e-12)
		})
	}
}

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestTrend(t *testing.T) {
	assert.InDelta(t, 0.0, Trend(TrendLargeCap, 0, constRand(0)), 1e-12)
	assert.InDelta(t, 0.025, Trend(TrendLargeCap, 0.5, constRand(0)), 1e-12)
	assert.InDelta(t, 0.0, Trend(TrendVolatile, 0.5, constRand(0)), 1e-12)
	assert.InDelta(t, 0.2, Trend(TrendMeme, 0.25, constRand(0)), 1e-12)
	assert.InDelta(t, 0.3, Trend(TrendMeme, 0.25, constRand(0.99)), 1e-12)
	assert.InDelta(t, 0.1, Trend(TrendCyclical, 0.25, constRand(0)), 1e-12)
}

func TestProfiles_Lookup(t *testing.T) {
	p := DefaultProfiles()
	assert.Equal(t, Profile{BasePrice: 137, Volatility: 0.025}, p.Lookup("solana"))
	assert.Equal(t, DefaultProfile, p.Lookup("nope"))
	assert.Equal(t, TrendMeme, p.Trend("shiba-inu"))
	assert.Equal(t, TrendCyclical, p.Trend("cardano"))
}
