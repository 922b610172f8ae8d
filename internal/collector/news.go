package collector

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

var (
	newsSources = []string{"CryptoNews", "CoinDesk", "Cointelegraph", "Bloomberg", "CNBC", "Reuters", "The Block"}

	newsTimes = []string{
		"10 minutes ago",
		"30 minutes ago",
		"1 hour ago",
		"2 hours ago",
		"3 hours ago",
		"5 hours ago",
		"8 hours ago",
		"12 hours ago",
		"Yesterday",
		"2 days ago",
	}

	// extraRelated may be attached to general stories at random.
	extraRelated = []string{
		"bitcoin", "ethereum", "solana", "cardano", "binancecoin", "ripple", "polkadot", "dogecoin",
		"shiba-inu", "avalanche", "chainlink", "polygon", "uniswap", "litecoin", "tron", "stellar",
	}
)

const (
	coinRelatedChance  = 0.3
	extraRelatedChance = 0.1
)

type coinStory struct {
	title, description string
	recentTimes        int // how many of the newest time labels may be used, 0 = any
	tags               []string
}

var coinStories = []coinStory{
	{
		title:       "%s Price Analysis: Technical Indicators Point to Potential Breakout",
		description: "Recent price action for %s shows a consolidation pattern that could lead to a significant move. Technical analysts are closely watching key support and resistance levels.",
		recentTimes: 3,
		tags:        []string{"Technical Analysis", "Price Prediction", "Trading"},
	},
	{
		title:       "Major Exchange Announces New %s Trading Pairs",
		description: "One of the leading cryptocurrency exchanges has announced the addition of new trading pairs for %s, potentially increasing liquidity and accessibility for traders.",
		recentTimes: 5,
		tags:        []string{"Exchange", "Trading Pairs", "Liquidity"},
	},
	{
		title:       "%s Development Team Announces Major Protocol Upgrade",
		description: "The development team behind %s has announced a significant protocol upgrade scheduled for next month, promising improved scalability and new features.",
		tags:        []string{"Development", "Protocol", "Technology", "Upgrade"},
	},
}

var generalStories = []model.NewsItem{
	{
		Title:        "Regulatory Developments: New Cryptocurrency Framework Proposed by G20 Nations",
		Description:  "G20 nations are working on a comprehensive regulatory framework for cryptocurrencies, aiming to establish global standards for digital asset oversight while balancing innovation and consumer protection.",
		Tags:         []string{"Regulation", "G20", "Policy", "Global"},
		RelatedCoins: []string{"bitcoin", "ethereum"},
	},
	{
		Title:        "Institutional Adoption: Major Investment Firm Allocates $500M to Crypto Assets",
		Description:  "A leading investment management firm has announced a $500 million allocation to cryptocurrency assets, citing long-term growth potential and portfolio diversification benefits.",
		Tags:         []string{"Institutional", "Investment", "Adoption"},
		RelatedCoins: []string{"bitcoin", "ethereum", "solana"},
	},
	{
		Title:        "DeFi Market Cap Surpasses $100 Billion as New Projects Gain Traction",
		Description:  "The total market capitalization of decentralized finance (DeFi) protocols has exceeded $100 billion, driven by growing user adoption and innovative new projects entering the space.",
		Tags:         []string{"DeFi", "Market Cap", "Growth"},
		RelatedCoins: []string{"ethereum", "solana", "avalanche", "polygon"},
	},
	{
		Title:        "NFT Sales Volume Reaches New Monthly High Despite Market Volatility",
		Description:  "Non-fungible token (NFT) sales have reached a new monthly high, demonstrating resilience in the face of broader cryptocurrency market volatility and suggesting continued strong demand.",
		Tags:         []string{"NFT", "Sales", "Digital Art", "Collectibles"},
		RelatedCoins: []string{"ethereum", "solana"},
	},
	{
		Title:        "Central Bank Digital Currencies: Five More Countries Begin CBDC Pilot Programs",
		Description:  "Five additional countries have announced pilot programs for central bank digital currencies (CBDCs), joining the growing global trend of exploring government-backed digital money.",
		Tags:         []string{"CBDC", "Central Bank", "Digital Currency", "Government"},
		RelatedCoins: []string{"ripple", "stellar"},
	},
	{
		Title:        "Crypto Mining Industry Shifts Toward Renewable Energy Sources",
		Description:  "The cryptocurrency mining industry is increasingly adopting renewable energy sources, with several major mining operations announcing transitions to solar, wind, and hydroelectric power.",
		Tags:         []string{"Mining", "Renewable Energy", "Sustainability", "ESG"},
		RelatedCoins: []string{"bitcoin", "ethereum", "litecoin"},
	},
	{
		Title:        "Layer 2 Solutions See Record User Growth as Gas Fees Remain High",
		Description:  "Layer 2 scaling solutions for Ethereum and other blockchains are experiencing record user growth as high gas fees on mainnet continue to drive users toward more cost-effective alternatives.",
		Tags:         []string{"Layer 2", "Scaling", "Gas Fees", "Adoption"},
		RelatedCoins: []string{"ethereum", "polygon", "arbitrum"},
	},
}

// GenerateNews builds the templated feed for coinID: three coin stories and
// the general stories with randomly attached related coins, shuffled.
func GenerateNews(coinID string, r synth.Rand) []model.NewsItem {
	name := capitalize(coinID)
	items := make([]model.NewsItem, 0, len(coinStories)+len(generalStories))

	for _, s := range coinStories {
		times := newsTimes
		if s.recentTimes > 0 {
			times = newsTimes[:s.recentTimes]
		}
		items = append(items, model.NewsItem{
			Title:        strings.ReplaceAll(s.title, "%s", name),
			Description:  strings.ReplaceAll(s.description, "%s", name),
			Source:       pick(r, newsSources),
			Time:         pick(r, times),
			Tags:         append([]string(nil), s.tags...),
			RelatedCoins: []string{coinID},
		})
	}

	for _, g := range generalStories {
		item := g
		item.Source = pick(r, newsSources)
		item.Time = pick(r, newsTimes)
		item.Tags = append([]string(nil), g.Tags...)
		item.RelatedCoins = append([]string(nil), g.RelatedCoins...)

		if !item.RelatesTo(coinID) && r.Float64() > 1-coinRelatedChance {
			item.RelatedCoins = append(item.RelatedCoins, coinID)
		}
		for _, c := range extraRelated {
			if !item.RelatesTo(c) && r.Float64() > 1-extraRelatedChance {
				item.RelatedCoins = append(item.RelatedCoins, c)
			}
		}
		items = append(items, item)
	}

	shuffle(items, r)
	return items
}

func pick(r synth.Rand, options []string) string {
	return options[synth.Intn(r, len(options))]
}

// shuffle is a Fisher-Yates shuffle.
func shuffle(items []model.NewsItem, r synth.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := synth.Intn(r, i+1)
		items[i], items[j] = items[j], items[i]
	}
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
