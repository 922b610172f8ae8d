package model

// SignalAction is the vote of an indicator or the overall signal.
type SignalAction string

const (
	ActionBuy  SignalAction = "buy"
	ActionSell SignalAction = "sell"
	ActionHold SignalAction = "hold"
)

// IndicatorSignal is a single simulated indicator reading.
type IndicatorSignal struct {
	Name        string
	Value       string
	Action      SignalAction
	Description string
}

// TradingSignal is the simulated signal panel for a coin.
type TradingSignal struct {
	CoinID     string
	Indicators []IndicatorSignal
	Action     SignalAction
	Confidence float64 // 0 ~ 100
}

// SocialPost is a sample post shown in the sentiment panel.
type SocialPost struct {
	Platform  string
	User      string
	Content   string
	Sentiment string
	Time      string
}

// Sentiment is the simulated social sentiment of a coin.
type Sentiment struct {
	CoinID   string
	Score    int // -100 ~ 100
	Positive int
	Neutral  int
	Negative int
	Posts    []SocialPost
}

// Label maps the score to Bullish / Bearish / Neutral.
func (s Sentiment) Label() string {
	switch {
	case s.Score > 20:
		return "Bullish"
	case s.Score < -20:
		return "Bearish"
	default:
		return "Neutral"
	}
}
