package insight

import (
	"fmt"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

// Signals are simulated readings biased by the 24h price change. They are
// random draws for display, not computed indicators.

// minVotes is the number of agreeing indicators needed for a buy or sell.
const minVotes = 2

// macdSignal leans bullish when the coin is up on the day.
func macdSignal(up bool, r synth.Rand) model.IndicatorSignal {
	threshold := 0.7
	if up {
		threshold = 0.3
	}
	if r.Float64() > threshold {
		return model.IndicatorSignal{
			Name: "MACD", Value: "Bullish", Action: model.ActionBuy,
			Description: "MACD line is above the signal line, indicating upward momentum",
		}
	}
	return model.IndicatorSignal{
		Name: "MACD", Value: "Bearish", Action: model.ActionSell,
		Description: "MACD line is below the signal line, indicating downward momentum",
	}
}

// rsiSignal draws from 30~70 on up days and 40~80 otherwise.
func rsiSignal(up bool, r synth.Rand) model.IndicatorSignal {
	lo := 40.0
	if up {
		lo = 30
	}
	rsi := synth.Uniform(r, lo, lo+40)

	sig := model.IndicatorSignal{Name: "RSI", Value: fmt.Sprintf("%.2f", rsi)}
	switch {
	case rsi < 30:
		sig.Action = model.ActionBuy
		sig.Description = "RSI indicates oversold conditions"
	case rsi > 70:
		sig.Action = model.ActionSell
		sig.Description = "RSI indicates overbought conditions"
	default:
		sig.Action = model.ActionHold
		sig.Description = "RSI is in neutral territory"
	}
	return sig
}

func movingAverageSignal(up bool, r synth.Rand) model.IndicatorSignal {
	threshold := 0.6
	if up {
		threshold = 0.4
	}
	if r.Float64() > threshold {
		return model.IndicatorSignal{
			Name: "Moving Averages", Value: "Bullish", Action: model.ActionBuy,
			Description: "Price is above key moving averages, suggesting uptrend",
		}
	}
	return model.IndicatorSignal{
		Name: "Moving Averages", Value: "Bearish", Action: model.ActionSell,
		Description: "Price is below key moving averages, suggesting downtrend",
	}
}

// volumeSignal is independent of the price change.
func volumeSignal(r synth.Rand) model.IndicatorSignal {
	sig := model.IndicatorSignal{Name: "Volume Analysis", Value: "Low", Action: model.ActionHold}
	if r.Float64() > 0.5 {
		sig.Value = "High"
	}
	if r.Float64() > 0.5 {
		sig.Action = model.ActionBuy
	}
	sig.Description = "Low volume suggests weak conviction"
	if r.Float64() > 0.5 {
		sig.Description = "Increasing volume supports price movement"
	}
	return sig
}

// TradingSignals simulates the indicator panel for a coin and votes on an
// overall action.
func TradingSignals(coin model.Coin, r synth.Rand) model.TradingSignal {
	up := coin.PriceChangePct24h > 0
	indicators := []model.IndicatorSignal{
		macdSignal(up, r),
		rsiSignal(up, r),
		movingAverageSignal(up, r),
		volumeSignal(r),
	}
	action, confidence := vote(indicators, r)
	return model.TradingSignal{
		CoinID:     coin.ID,
		Indicators: indicators,
		Action:     action,
		Confidence: confidence,
	}
}

// vote picks the majority of buy/sell when it has at least minVotes;
// otherwise hold with a confidence drawn from 50~70.
func vote(indicators []model.IndicatorSignal, r synth.Rand) (model.SignalAction, float64) {
	var buys, sells int
	for _, ind := range indicators {
		switch ind.Action {
		case model.ActionBuy:
			buys++
		case model.ActionSell:
			sells++
		}
	}
	n := float64(len(indicators))
	switch {
	case buys > sells && buys >= minVotes:
		return model.ActionBuy, float64(buys) / n * 100
	case sells > buys && sells >= minVotes:
		return model.ActionSell, float64(sells) / n * 100
	default:
		return model.ActionHold, synth.Uniform(r, 50, 70)
	}
}
