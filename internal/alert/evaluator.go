package alert

import (
	"time"

	"CoinSentinel/internal/model"
)

// Crossed reports whether price satisfies the alert condition.
func Crossed(a model.PriceAlert, price float64) bool {
	switch a.Condition {
	case model.ConditionAbove:
		return price >= a.TargetPrice
	case model.ConditionBelow:
		return price <= a.TargetPrice
	}
	return false
}

// Evaluate applies one price observation to an alert. The transition from
// armed to triggered happens at most once; a triggered alert stays triggered
// whatever the price does until Reset.
func Evaluate(a model.PriceAlert, price float64) (next model.PriceAlert, fired bool) {
	if a.Triggered || !Crossed(a, price) {
		return a, false
	}
	a.Triggered = true
	return a, true
}

// Reset re-arms an alert.
func Reset(a model.PriceAlert) model.PriceAlert {
	a.Triggered = false
	a.TriggeredAt = nil
	return a
}

// EvaluateAll evaluates every alert against the snapshot and returns the
// updated list plus one event per newly fired alert. Alerts whose coin is
// missing from the snapshot are left untouched.
func EvaluateAll(alerts []model.PriceAlert, coins []model.Coin, now time.Time) ([]model.PriceAlert, []model.AlertEvent) {
	byID := make(map[string]model.Coin, len(coins))
	for _, c := range coins {
		byID[c.ID] = c
	}

	updated := make([]model.PriceAlert, len(alerts))
	var events []model.AlertEvent
	for i, a := range alerts {
		updated[i] = a
		coin, ok := byID[a.CoinID]
		if !ok {
			continue
		}
		next, fired := Evaluate(a, coin.CurrentPrice)
		if !fired {
			continue
		}
		at := now
		next.TriggeredAt = &at
		updated[i] = next
		events = append(events, model.AlertEvent{
			AlertID:     a.ID,
			CoinID:      a.CoinID,
			CoinName:    coin.Name,
			Condition:   a.Condition,
			TargetPrice: a.TargetPrice,
			Price:       coin.CurrentPrice,
			TriggeredAt: now,
		})
	}
	return updated, events
}
