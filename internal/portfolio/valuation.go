package portfolio

import (
	"github.com/shopspring/decimal"

	"CoinSentinel/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Summarize values holdings against a market snapshot. Holdings whose coin
// is not in the snapshot are skipped entirely, cost included.
func Summarize(holdings []model.Holding, coins []model.Coin) model.PortfolioSummary {
	prices := model.PriceIndex(coins)

	totalValue, totalCost := decimal.Zero, decimal.Zero
	positions := make([]model.Position, 0, len(holdings))
	for _, h := range holdings {
		price, ok := prices[h.CoinID]
		if !ok {
			continue
		}
		amount := decimal.NewFromFloat(h.Amount)
		value := amount.Mul(decimal.NewFromFloat(price))
		cost := amount.Mul(decimal.NewFromFloat(h.PurchasePrice))
		profit := value.Sub(cost)

		totalValue = totalValue.Add(value)
		totalCost = totalCost.Add(cost)

		positions = append(positions, model.Position{
			HoldingID:    h.ID,
			CoinID:       h.CoinID,
			Symbol:       h.Symbol,
			Amount:       h.Amount,
			CurrentPrice: price,
			Value:        value.InexactFloat64(),
			Cost:         cost.InexactFloat64(),
			Profit:       profit.InexactFloat64(),
			ProfitPct:    percentOf(profit, cost),
		})
	}

	totalProfit := totalValue.Sub(totalCost)
	return model.PortfolioSummary{
		PortfolioValue:    totalValue.InexactFloat64(),
		InitialInvestment: totalCost.InexactFloat64(),
		TotalProfit:       totalProfit.InexactFloat64(),
		ProfitPercentage:  percentOf(totalProfit, totalCost),
		Positions:         positions,
	}
}

// percentOf returns part/whole*100, or 0 when whole is zero.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
