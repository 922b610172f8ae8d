package synth

import (
	"math"
	"time"

	"CoinSentinel/internal/model"
)

const (
	sessionBoost   = 0.005 // local hours 9..17
	weekendPenalty = 0.003
	noiseRange     = 0.03 // uniform noise of +-1.5%
	bodyFactor     = 0.8
)

// Generator synthesizes hourly candle series.
type Generator struct {
	Profiles Profiles
	Rand     Rand
	Now      func() time.Time
	Location *time.Location // session hours are evaluated in this zone
}

// NewGenerator creates a Generator with the default profiles and clock.
func NewGenerator(r Rand) *Generator {
	return &Generator{
		Profiles: DefaultProfiles(),
		Rand:     r,
		Now:      time.Now,
		Location: time.Local,
	}
}

// Generate returns horizonDays*24 hourly candles ending just before now.
// Unknown coins use DefaultProfile; the call never fails.
func (g *Generator) Generate(coinID string, horizonDays int) model.CandleSeries {
	if horizonDays <= 0 {
		return model.CandleSeries{CoinID: coinID, HorizonDays: horizonDays}
	}
	prof := g.Profiles.Lookup(coinID)
	trendClass := g.Profiles.Trend(coinID)
	loc := g.Location
	if loc == nil {
		loc = time.UTC
	}

	n := horizonDays * 24
	nowMs := g.Now().UnixMilli()
	candles := make([]model.Candle, 0, n)

	for i := 0; i < n; i++ {
		ts := nowMs - int64(n-i)*time.Hour.Milliseconds()
		local := time.UnixMilli(ts).In(loc)

		modifier := SessionModifier(local)
		progress := float64(i) / float64(n)
		trend := Trend(trendClass, progress, g.Rand)
		noise := (g.Rand.Float64() - 0.5) * noiseRange

		base := prof.BasePrice * (1 + trend + noise) * modifier
		candleVol := prof.Volatility * (1 + g.Rand.Float64())

		open := base
		var close float64
		if g.Rand.Float64() > 0.5 {
			close = base * (1 + g.Rand.Float64()*candleVol*bodyFactor)
		} else {
			close = base * (1 - g.Rand.Float64()*candleVol*bodyFactor)
		}
		high := math.Max(open, close) + g.Rand.Float64()*candleVol*base
		low := math.Min(open, close) - g.Rand.Float64()*candleVol*base

		candles = append(candles, model.Candle{
			Timestamp: ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
		})
	}

	return model.CandleSeries{CoinID: coinID, HorizonDays: horizonDays, Candles: candles}
}

// SessionModifier returns the price multiplier for the given local time.
func SessionModifier(t time.Time) float64 {
	m := 1.0
	if h := t.Hour(); h >= 9 && h <= 17 {
		m += sessionBoost
	}
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		m -= weekendPenalty
	}
	return m
}

// Trend returns the trend term for normalized progress t in [0, 1).
// Only TrendMeme consumes randomness.
func Trend(class TrendClass, t float64, r Rand) float64 {
	switch class {
	case TrendLargeCap:
		return t*0.15 + math.Sin(t*math.Pi*3)*0.05
	case TrendVolatile:
		return math.Sin(t*math.Pi*4) * 0.15
	case TrendMeme:
		spike := 0.0
		if r.Float64() > 0.95 {
			spike = 0.1
		}
		return math.Sin(t*math.Pi*2)*0.2 + spike
	default:
		return math.Sin(t*math.Pi*2) * 0.1
	}
}
