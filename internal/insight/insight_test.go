package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

// seq replays fixed draws.
type seq struct {
	values []float64
	i      int
}

func (s *seq) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestSimulateSentiment_Ranges(t *testing.T) {
	r := synth.NewRand(5)
	for i := 0; i < 200; i++ {
		s := SimulateSentiment("bitcoin", r)
		assert.GreaterOrEqual(t, s.Positive, 20)
		assert.Less(t, s.Positive, 60)
		assert.GreaterOrEqual(t, s.Negative, 10)
		assert.Less(t, s.Negative, 40)
		assert.Equal(t, 100, s.Positive+s.Neutral+s.Negative)
		assert.Equal(t, s.Positive-s.Negative, s.Score)
		require.Len(t, s.Posts, 3)
		for _, p := range s.Posts {
			assert.Contains(t, p.Content, "bitcoin")
			assert.Contains(t, []string{"Twitter", "Reddit"}, p.Platform)
		}
	}
}

func TestSentimentLabel(t *testing.T) {
	assert.Equal(t, "Bullish", model.Sentiment{Score: 21}.Label())
	assert.Equal(t, "Neutral", model.Sentiment{Score: 20}.Label())
	assert.Equal(t, "Bearish", model.Sentiment{Score: -21}.Label())
}

func TestTradingSignals_AllBullish(t *testing.T) {
	// macd > 0.3, rsi draw, ma > 0.4, volume value/action/description
	r := &seq{values: []float64{0.9, 0.5, 0.9, 0.9, 0.9, 0.9}}
	sig := TradingSignals(model.Coin{ID: "bitcoin", PriceChangePct24h: 1.25}, r)

	require.Len(t, sig.Indicators, 4)
	assert.Equal(t, model.ActionBuy, sig.Indicators[0].Action)
	assert.Equal(t, "50.00", sig.Indicators[1].Value)
	assert.Equal(t, model.ActionHold, sig.Indicators[1].Action)
	assert.Equal(t, model.ActionBuy, sig.Indicators[2].Action)
	assert.Equal(t, model.ActionBuy, sig.Indicators[3].Action)
	assert.Equal(t, model.ActionBuy, sig.Action)
	assert.InDelta(t, 75.0, sig.Confidence, 1e-9)
}

func TestTradingSignals_Bearish(t *testing.T) {
	// down day: macd <= 0.7, rsi 40+0.95*40 = 78, ma <= 0.6, volume hold
	r := &seq{values: []float64{0.5, 0.95, 0.5, 0.1, 0.1, 0.1}}
	sig := TradingSignals(model.Coin{ID: "solana", PriceChangePct24h: -1.42}, r)

	assert.Equal(t, model.ActionSell, sig.Indicators[0].Action)
	assert.Equal(t, model.ActionSell, sig.Indicators[1].Action)
	assert.Equal(t, model.ActionSell, sig.Indicators[2].Action)
	assert.Equal(t, model.ActionHold, sig.Indicators[3].Action)
	assert.Equal(t, model.ActionSell, sig.Action)
	assert.InDelta(t, 75.0, sig.Confidence, 1e-9)
}

func TestVote_Hold(t *testing.T) {
	indicators := []model.IndicatorSignal{
		{Action: model.ActionBuy},
		{Action: model.ActionSell},
		{Action: model.ActionHold},
		{Action: model.ActionHold},
	}
	action, confidence := vote(indicators, &seq{values: []float64{0.5}})
	assert.Equal(t, model.ActionHold, action)
	assert.InDelta(t, 60.0, confidence, 1e-9)
}
