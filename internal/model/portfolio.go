package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Holding is one user position.
type Holding struct {
	ID            string    `json:"id"`
	CoinID        string    `json:"coin"`
	Symbol        string    `json:"symbol,omitempty"`
	Amount        float64   `json:"amount"`
	PurchasePrice float64   `json:"purchasePrice"`
	PurchaseDate  time.Time `json:"purchaseDate"`
}

// purchaseDateLayouts are tried in order. Lists saved by the web dashboard
// carry the bare value of a date input.
var purchaseDateLayouts = []string{time.RFC3339Nano, time.DateOnly}

// UnmarshalJSON accepts purchaseDate as RFC 3339 or as YYYY-MM-DD.
func (h *Holding) UnmarshalJSON(data []byte) error {
	type plain Holding
	aux := struct {
		*plain
		PurchaseDate string `json:"purchaseDate"`
	}{plain: (*plain)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	h.PurchaseDate = time.Time{}
	if aux.PurchaseDate == "" {
		return nil
	}
	for _, layout := range purchaseDateLayouts {
		if t, err := time.Parse(layout, aux.PurchaseDate); err == nil {
			h.PurchaseDate = t
			return nil
		}
	}
	return fmt.Errorf("holding %s: unrecognized purchaseDate %q", h.ID, aux.PurchaseDate)
}

// AlertCondition is the direction of a price alert.
type AlertCondition string

const (
	ConditionAbove AlertCondition = "above"
	ConditionBelow AlertCondition = "below"
)

// Valid reports whether c is a known condition.
func (c AlertCondition) Valid() bool {
	return c == ConditionAbove || c == ConditionBelow
}

// PriceAlert is a user-defined threshold. Triggered is a latch: it is only
// cleared by an explicit reset.
type PriceAlert struct {
	ID          string         `json:"id"`
	CoinID      string         `json:"coin"`
	Symbol      string         `json:"symbol,omitempty"`
	Condition   AlertCondition `json:"condition"`
	TargetPrice float64        `json:"price"`
	CreatedAt   time.Time      `json:"createdAt"`
	Triggered   bool           `json:"triggered"`
	TriggeredAt *time.Time     `json:"triggeredAt,omitempty"`
}

// AlertEvent records one ARMED -> TRIGGERED transition.
type AlertEvent struct {
	AlertID     string         `json:"alert_id"`
	CoinID      string         `json:"coin_id"`
	CoinName    string         `json:"coin_name"`
	Condition   AlertCondition `json:"condition"`
	TargetPrice float64        `json:"target_price"`
	Price       float64        `json:"price"`
	TriggeredAt time.Time      `json:"triggered_at"`
}

// AlertEventRecord pairs an event with its journal index.
type AlertEventRecord struct {
	Index uint64
	Event AlertEvent
}

// Position is the valuation of a single holding.
type Position struct {
	HoldingID    string  `json:"holding_id"`
	CoinID       string  `json:"coin_id"`
	Symbol       string  `json:"symbol"`
	Amount       float64 `json:"amount"`
	CurrentPrice float64 `json:"current_price"`
	Value        float64 `json:"value"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	ProfitPct    float64 `json:"profit_pct"`
}

// PortfolioSummary is the valuation of all holdings against a snapshot.
type PortfolioSummary struct {
	PortfolioValue    float64    `json:"portfolio_value"`
	InitialInvestment float64    `json:"initial_investment"`
	TotalProfit       float64    `json:"total_profit"`
	ProfitPercentage  float64    `json:"profit_percentage"`
	Positions         []Position `json:"positions"`
}

// CategoryAllocation is the share of the portfolio held in one category.
type CategoryAllocation struct {
	Category           string   `json:"category"`
	ValueUSD           float64  `json:"value_usd"`
	PercentOfPortfolio float64  `json:"percent_of_portfolio"`
	RiskScore          int      `json:"risk_score"`
	CoinIDs            []string `json:"coin_ids"`
}

// RecommendationKind tags a diversification recommendation.
type RecommendationKind string

const (
	RecHighConcentration RecommendationKind = "high_concentration"
	RecMissingCategories RecommendationKind = "missing_categories"
	RecHighRisk          RecommendationKind = "high_risk"
	RecHighCorrelation   RecommendationKind = "high_correlation"
	RecFewAssets         RecommendationKind = "few_assets"
)

// Recommendation is a tagged advisory message.
type Recommendation struct {
	Kind    RecommendationKind `json:"type"`
	Message string             `json:"message"`
}

// DiversificationResult is the output of the diversification scorer.
type DiversificationResult struct {
	ByCategory           []CategoryAllocation `json:"by_category"`
	RiskScore            float64              `json:"risk_score"`            // 1 ~ 10
	CorrelationScore     float64              `json:"correlation_score"`     // 0 ~ 1
	DiversificationScore float64              `json:"diversification_score"` // 0 ~ 100
	Recommendations      []Recommendation     `json:"recommendations"`
}
