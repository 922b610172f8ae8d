package synth

// Profile is the base price and hourly volatility used to synthesize a coin's candles.
type Profile struct {
	BasePrice  float64
	Volatility float64
}

// TrendClass selects the trend function applied over the horizon.
type TrendClass int

const (
	TrendCyclical TrendClass = iota
	TrendLargeCap
	TrendVolatile
	TrendMeme
)

// DefaultProfile is used for coins missing from the profile table.
var DefaultProfile = Profile{BasePrice: 63852, Volatility: 0.01}

// Profiles is an immutable coin -> profile table.
type Profiles struct {
	byCoin map[string]Profile
	trends map[string]TrendClass
}

// Lookup returns the profile for coinID, falling back to DefaultProfile.
func (p Profiles) Lookup(coinID string) Profile {
	if prof, ok := p.byCoin[coinID]; ok {
		return prof
	}
	return DefaultProfile
}

// Trend returns the trend class for coinID.
func (p Profiles) Trend(coinID string) TrendClass {
	if tc, ok := p.trends[coinID]; ok {
		return tc
	}
	return TrendCyclical
}

// NewProfiles builds a table from the given maps. The maps are copied.
func NewProfiles(byCoin map[string]Profile, trends map[string]TrendClass) Profiles {
	p := Profiles{
		byCoin: make(map[string]Profile, len(byCoin)),
		trends: make(map[string]TrendClass, len(trends)),
	}
	for k, v := range byCoin {
		p.byCoin[k] = v
	}
	for k, v := range trends {
		p.trends[k] = v
	}
	return p
}

// DefaultProfiles returns the built-in table for the reference coin set.
func DefaultProfiles() Profiles {
	return NewProfiles(map[string]Profile{
		"bitcoin":      {63852, 0.01},
		"ethereum":     {3078, 0.015},
		"solana":       {137, 0.025},
		"cardano":      {0.45, 0.02},
		"binancecoin":  {552, 0.012},
		"ripple":       {0.51, 0.018},
		"polkadot":     {6.23, 0.022},
		"dogecoin":     {0.14, 0.035},
		"shiba-inu":    {0.000023, 0.04},
		"avalanche":    {33.76, 0.023},
		"chainlink":    {13.92, 0.019},
		"polygon":      {0.58, 0.021},
		"uniswap":      {7.76, 0.017},
		"litecoin":     {72.9, 0.014},
		"tron":         {0.11, 0.02},
		"stellar":      {0.1, 0.016},
		"bitcoin-cash": {362.48, 0.018},
		"monero":       {163.21, 0.02},
		"cosmos":       {8.42, 0.022},
		"filecoin":     {4.87, 0.025},
		"near":         {5.76, 0.023},
		"aave":         {92.34, 0.02},
		"maker":        {1876.23, 0.015},
		"algorand":     {0.17, 0.025},
		"vechain":      {0.026, 0.03},
		"apecoin":      {1.42, 0.035},
		"the-graph":    {0.14, 0.028},
		"decentraland": {0.42, 0.03},
		"the-sandbox":  {0.46, 0.032},
		"optimism":     {2.34, 0.025},
		"arbitrum":     {1.12, 0.027},
	}, map[string]TrendClass{
		"bitcoin":   TrendLargeCap,
		"ethereum":  TrendLargeCap,
		"solana":    TrendVolatile,
		"avalanche": TrendVolatile,
		"dogecoin":  TrendMeme,
		"shiba-inu": TrendMeme,
	})
}
