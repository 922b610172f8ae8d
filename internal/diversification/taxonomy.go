package diversification

// Category names used by the default taxonomy.
const (
	Layer1         = "Layer 1"
	Layer2         = "Layer 2"
	DeFi           = "DeFi"
	Stablecoins    = "Stablecoins"
	ExchangeTokens = "Exchange Tokens"
	MemeCoins      = "Meme Coins"
	Privacy        = "Privacy"
	Metaverse      = "Metaverse & Gaming"
	Storage        = "Storage & Computing"
	Other          = "Other"
)

const (
	// DefaultRisk applies to categories absent from the risk table.
	DefaultRisk = 8
	// DefaultCorrelation applies to category pairs absent from the matrix.
	// It is a placeholder, not a measured correlation.
	DefaultCorrelation = 0.5
)

// CategoryDef is one taxonomy bucket and its member coins.
type CategoryDef struct {
	Name  string
	Coins []string
}

// Taxonomy is the immutable lookup data used by the scorer.
type Taxonomy struct {
	categories  []CategoryDef
	fallback    string
	risk        map[string]int
	correlation map[string]map[string]float64
	optional    map[string]bool
}

// TaxonomyOption customizes a taxonomy built by NewTaxonomy.
type TaxonomyOption func(*Taxonomy)

// WithRisk sets the risk score (1 ~ 10) of a category.
func WithRisk(category string, risk int) TaxonomyOption {
	return func(t *Taxonomy) { t.risk[category] = risk }
}

// WithCorrelation sets the symmetric correlation of two categories.
func WithCorrelation(a, b string, c float64) TaxonomyOption {
	return func(t *Taxonomy) {
		if t.correlation[a] == nil {
			t.correlation[a] = map[string]float64{}
		}
		t.correlation[a][b] = c
	}
}

// WithOptional excludes categories from the missing-category suggestion.
func WithOptional(categories ...string) TaxonomyOption {
	return func(t *Taxonomy) {
		for _, c := range categories {
			t.optional[c] = true
		}
	}
}

// NewTaxonomy builds a taxonomy. The first matching category wins; coins in
// none of them map to fallback.
func NewTaxonomy(categories []CategoryDef, fallback string, opts ...TaxonomyOption) Taxonomy {
	t := Taxonomy{
		categories:  make([]CategoryDef, len(categories)),
		fallback:    fallback,
		risk:        map[string]int{},
		correlation: map[string]map[string]float64{},
		optional:    map[string]bool{fallback: true},
	}
	for i, c := range categories {
		t.categories[i] = CategoryDef{Name: c.Name, Coins: append([]string(nil), c.Coins...)}
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// CategoryOf returns the category of coinID.
func (t Taxonomy) CategoryOf(coinID string) string {
	for _, c := range t.categories {
		for _, id := range c.Coins {
			if id == coinID {
				return c.Name
			}
		}
	}
	return t.fallback
}

// Risk returns the category risk score, DefaultRisk when unlisted.
func (t Taxonomy) Risk(category string) int {
	if r, ok := t.risk[category]; ok {
		return r
	}
	return DefaultRisk
}

// Correlation looks up a pair in either order, DefaultCorrelation when absent.
func (t Taxonomy) Correlation(a, b string) float64 {
	if c, ok := t.correlation[a][b]; ok {
		return c
	}
	if c, ok := t.correlation[b][a]; ok {
		return c
	}
	return DefaultCorrelation
}

// Names returns the category names in taxonomy order, fallback last.
func (t Taxonomy) Names() []string {
	names := make([]string, 0, len(t.categories)+1)
	seenFallback := false
	for _, c := range t.categories {
		names = append(names, c.Name)
		if c.Name == t.fallback {
			seenFallback = true
		}
	}
	if !seenFallback {
		names = append(names, t.fallback)
	}
	return names
}

// Suggestable reports whether a missing category should be recommended.
func (t Taxonomy) Suggestable(category string) bool {
	return !t.optional[category]
}

// DefaultTaxonomy returns the built-in category, risk and correlation tables.
// Only the Layer 1 and Layer 2 rows of the correlation matrix are populated.
func DefaultTaxonomy() Taxonomy {
	categories := []CategoryDef{
		{Layer1, []string{"bitcoin", "ethereum", "solana", "cardano", "avalanche", "near", "polkadot"}},
		{Layer2, []string{"polygon", "arbitrum", "optimism"}},
		{DeFi, []string{"uniswap", "aave", "maker", "chainlink", "the-graph"}},
		{Stablecoins, []string{"tether", "usd-coin", "binance-usd", "dai"}},
		{ExchangeTokens, []string{"binancecoin", "ftx-token", "kucoin-shares"}},
		{MemeCoins, []string{"dogecoin", "shiba-inu", "pepe", "floki"}},
		{Privacy, []string{"monero", "zcash", "dash"}},
		{Metaverse, []string{"decentraland", "the-sandbox", "apecoin", "axie-infinity"}},
		{Storage, []string{"filecoin", "arweave", "theta-network"}},
	}

	opts := []TaxonomyOption{
		WithRisk(Layer1, 6),
		WithRisk(Layer2, 7),
		WithRisk(DeFi, 8),
		WithRisk(Stablecoins, 3),
		WithRisk(ExchangeTokens, 6),
		WithRisk(MemeCoins, 10),
		WithRisk(Privacy, 7),
		WithRisk(Metaverse, 9),
		WithRisk(Storage, 7),
		WithRisk(Other, 8),
		WithOptional(MemeCoins, Privacy),
	}

	rows := map[string][]float64{
		Layer1: {1.0, 0.8, 0.7, 0.3, 0.6, 0.5, 0.4, 0.6, 0.5, 0.5},
		Layer2: {0.8, 1.0, 0.7, 0.3, 0.5, 0.4, 0.3, 0.5, 0.4, 0.4},
	}
	columns := []string{Layer1, Layer2, DeFi, Stablecoins, ExchangeTokens, MemeCoins, Privacy, Metaverse, Storage, Other}
	for _, row := range []string{Layer1, Layer2} {
		for i, col := range columns {
			opts = append(opts, WithCorrelation(row, col, rows[row][i]))
		}
	}

	return NewTaxonomy(categories, Other, opts...)
}
