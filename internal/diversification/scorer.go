package diversification

import (
	"fmt"
	"sort"
	"strings"

	"CoinSentinel/internal/model"
)

const (
	concentrationLimit = 50.0 // percent
	highRiskLimit      = 7.0
	highCorrLimit      = 0.7
	minAssets          = 3
	maxSuggestions     = 3
)

// Scorer rates how well a portfolio is spread across categories.
type Scorer struct {
	Taxonomy Taxonomy
}

// NewScorer returns a Scorer over the default taxonomy.
func NewScorer() *Scorer {
	return &Scorer{Taxonomy: DefaultTaxonomy()}
}

// Score groups holdings by category and derives risk, correlation and the
// overall diversification score. Holdings whose coin is missing from the
// snapshot are skipped. Empty input yields a zero result.
func (s *Scorer) Score(holdings []model.Holding, coins []model.Coin) model.DiversificationResult {
	empty := model.DiversificationResult{
		ByCategory:      []model.CategoryAllocation{},
		Recommendations: []model.Recommendation{},
	}
	if len(holdings) == 0 || len(coins) == 0 {
		return empty
	}

	prices := model.PriceIndex(coins)
	allocs, total := s.allocate(holdings, prices)
	if total <= 0 {
		return empty
	}

	var risk float64
	for i := range allocs {
		allocs[i].PercentOfPortfolio = allocs[i].ValueUSD / total * 100
		allocs[i].RiskScore = s.Taxonomy.Risk(allocs[i].Category)
		risk += float64(allocs[i].RiskScore) * allocs[i].PercentOfPortfolio / 100
	}

	corr := s.correlationScore(allocs)
	score := 100 - (risk/10*50 + corr*50)

	sort.SliceStable(allocs, func(i, j int) bool {
		if allocs[i].PercentOfPortfolio != allocs[j].PercentOfPortfolio {
			return allocs[i].PercentOfPortfolio > allocs[j].PercentOfPortfolio
		}
		return allocs[i].Category < allocs[j].Category
	})

	return model.DiversificationResult{
		ByCategory:           allocs,
		RiskScore:            risk,
		CorrelationScore:     corr,
		DiversificationScore: score,
		Recommendations:      s.recommend(allocs, risk, corr, holdings),
	}
}

// allocate sums holding values per category in first-seen order.
func (s *Scorer) allocate(holdings []model.Holding, prices map[string]float64) ([]model.CategoryAllocation, float64) {
	var allocs []model.CategoryAllocation
	index := map[string]int{}
	total := 0.0

	for _, h := range holdings {
		price, ok := prices[h.CoinID]
		if !ok {
			continue
		}
		value := price * h.Amount
		total += value

		cat := s.Taxonomy.CategoryOf(h.CoinID)
		i, ok := index[cat]
		if !ok {
			i = len(allocs)
			index[cat] = i
			allocs = append(allocs, model.CategoryAllocation{Category: cat, CoinIDs: []string{}})
		}
		allocs[i].ValueUSD += value
		if !contains(allocs[i].CoinIDs, h.CoinID) {
			allocs[i].CoinIDs = append(allocs[i].CoinIDs, h.CoinID)
		}
	}
	return allocs, total
}

// correlationScore averages the pairwise category correlation weighted by
// the pair's combined share. Fewer than two categories score DefaultCorrelation.
func (s *Scorer) correlationScore(allocs []model.CategoryAllocation) float64 {
	sum := 0.0
	pairs := 0
	for i := 0; i < len(allocs); i++ {
		for j := i + 1; j < len(allocs); j++ {
			c := s.Taxonomy.Correlation(allocs[i].Category, allocs[j].Category)
			sum += c * (allocs[i].PercentOfPortfolio + allocs[j].PercentOfPortfolio) / 200
			pairs++
		}
	}
	if pairs == 0 {
		return DefaultCorrelation
	}
	return sum / float64(pairs)
}

// recommend expects allocs sorted by descending share.
func (s *Scorer) recommend(allocs []model.CategoryAllocation, risk, corr float64, holdings []model.Holding) []model.Recommendation {
	recs := []model.Recommendation{}

	if len(allocs) > 0 && allocs[0].PercentOfPortfolio > concentrationLimit {
		recs = append(recs, model.Recommendation{
			Kind: model.RecHighConcentration,
			Message: fmt.Sprintf("Your portfolio is heavily concentrated in %s (%.1f%%). Consider diversifying into other categories.",
				allocs[0].Category, allocs[0].PercentOfPortfolio),
		})
	}

	present := map[string]bool{}
	for _, a := range allocs {
		present[a.Category] = true
	}
	var missing []string
	for _, name := range s.Taxonomy.Names() {
		if !present[name] && s.Taxonomy.Suggestable(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		if len(missing) > maxSuggestions {
			missing = missing[:maxSuggestions]
		}
		recs = append(recs, model.Recommendation{
			Kind:    model.RecMissingCategories,
			Message: "Consider adding exposure to these categories: " + strings.Join(missing, ", "),
		})
	}

	if risk > highRiskLimit {
		recs = append(recs, model.Recommendation{
			Kind:    model.RecHighRisk,
			Message: "Your portfolio has a high risk profile. Consider adding some lower-risk assets for balance.",
		})
	}

	if corr > highCorrLimit {
		recs = append(recs, model.Recommendation{
			Kind:    model.RecHighCorrelation,
			Message: "Your assets are highly correlated. Consider adding uncorrelated assets to reduce overall portfolio risk.",
		})
	}

	// Counts coins, not holding rows: three lots of bitcoin are still one
	// asset. The web dashboard counted rows.
	if distinctCoins(holdings) < minAssets {
		recs = append(recs, model.Recommendation{
			Kind:    model.RecFewAssets,
			Message: "Your portfolio contains few assets. Consider adding more diverse cryptocurrencies.",
		})
	}
	return recs
}

func distinctCoins(holdings []model.Holding) int {
	seen := map[string]struct{}{}
	for _, h := range holdings {
		seen[h.CoinID] = struct{}{}
	}
	return len(seen)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
