package collector

import "CoinSentinel/internal/model"

// listings is the reference snapshot served by the synthetic source.
var listings = []model.Coin{
	{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 63852.41, MarketCap: 1254678901234, TotalVolume24h: 32456789012, PriceChangePct24h: 1.25,
		ImageRef: "https://assets.coingecko.com/coins/images/1/large/bitcoin.png"},
	{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3078.92, MarketCap: 369890123456, TotalVolume24h: 15678901234, PriceChangePct24h: 0.83,
		ImageRef: "https://assets.coingecko.com/coins/images/279/large/ethereum.png"},
	{ID: "solana", Symbol: "sol", Name: "Solana", CurrentPrice: 137.65, MarketCap: 62345678901, TotalVolume24h: 3456789012, PriceChangePct24h: -1.42,
		ImageRef: "https://assets.coingecko.com/coins/images/4128/large/solana.png"},
	{ID: "cardano", Symbol: "ada", Name: "Cardano", CurrentPrice: 0.45, MarketCap: 15678901234, TotalVolume24h: 789012345, PriceChangePct24h: -0.76,
		ImageRef: "https://assets.coingecko.com/coins/images/975/large/cardano.png"},
	{ID: "binancecoin", Symbol: "bnb", Name: "Binance Coin", CurrentPrice: 552.37, MarketCap: 84654321098, TotalVolume24h: 2345678901, PriceChangePct24h: 0.24,
		ImageRef: "https://assets.coingecko.com/coins/images/825/large/bnb-icon2_2x.png"},
	{ID: "ripple", Symbol: "xrp", Name: "XRP", CurrentPrice: 0.51, MarketCap: 29876543210, TotalVolume24h: 1234567890, PriceChangePct24h: -0.33,
		ImageRef: "https://assets.coingecko.com/coins/images/44/large/xrp-symbol-white-128.png"},
	{ID: "polkadot", Symbol: "dot", Name: "Polkadot", CurrentPrice: 6.23, MarketCap: 8765432109, TotalVolume24h: 567890123, PriceChangePct24h: 2.15,
		ImageRef: "https://assets.coingecko.com/coins/images/12171/large/polkadot.png"},
	{ID: "dogecoin", Symbol: "doge", Name: "Dogecoin", CurrentPrice: 0.14, MarketCap: 16789012345, TotalVolume24h: 987654321, PriceChangePct24h: 3.27,
		ImageRef: "https://assets.coingecko.com/coins/images/5/large/dogecoin.png"},
	{ID: "shiba-inu", Symbol: "shib", Name: "Shiba Inu", CurrentPrice: 0.000023, MarketCap: 13567890123, TotalVolume24h: 876543210, PriceChangePct24h: 2.32,
		ImageRef: "https://assets.coingecko.com/coins/images/11939/large/shiba.png"},
	{ID: "avalanche", Symbol: "avax", Name: "Avalanche", CurrentPrice: 33.76, MarketCap: 12345678901, TotalVolume24h: 765432109, PriceChangePct24h: 1.87,
		ImageRef: "https://assets.coingecko.com/coins/images/12559/large/Avalanche_Circle_RedWhite_Trans.png"},
	{ID: "chainlink", Symbol: "link", Name: "Chainlink", CurrentPrice: 13.92, MarketCap: 8765432109, TotalVolume24h: 543210987, PriceChangePct24h: 0.98,
		ImageRef: "https://assets.coingecko.com/coins/images/877/large/chainlink-new-logo.png"},
	{ID: "polygon", Symbol: "matic", Name: "Polygon", CurrentPrice: 0.58, MarketCap: 5654321098, TotalVolume24h: 432109876, PriceChangePct24h: -0.45,
		ImageRef: "https://assets.coingecko.com/coins/images/4713/large/matic-token-icon.png"},
	{ID: "uniswap", Symbol: "uni", Name: "Uniswap", CurrentPrice: 7.76, MarketCap: 4543210987, TotalVolume24h: 321098765, PriceChangePct24h: -1.23,
		ImageRef: "https://assets.coingecko.com/coins/images/12504/large/uniswap-uni.png"},
	{ID: "litecoin", Symbol: "ltc", Name: "Litecoin", CurrentPrice: 72.9, MarketCap: 5432109876, TotalVolume24h: 210987654, PriceChangePct24h: 0.89,
		ImageRef: "https://assets.coingecko.com/coins/images/2/large/litecoin.png"},
	{ID: "tron", Symbol: "trx", Name: "TRON", CurrentPrice: 0.11, MarketCap: 7765432109, TotalVolume24h: 654321098, PriceChangePct24h: 1.45,
		ImageRef: "https://assets.coingecko.com/coins/images/1094/large/tron-logo.png"},
	{ID: "stellar", Symbol: "xlm", Name: "Stellar", CurrentPrice: 0.1, MarketCap: 3010987654, TotalVolume24h: 109876543, PriceChangePct24h: -0.67,
		ImageRef: "https://assets.coingecko.com/coins/images/100/large/Stellar_symbol_black_RGB.png"},
	{ID: "bitcoin-cash", Symbol: "bch", Name: "Bitcoin Cash", CurrentPrice: 362.48, MarketCap: 7123456789, TotalVolume24h: 198765432, PriceChangePct24h: 0.53,
		ImageRef: "https://assets.coingecko.com/coins/images/780/large/bitcoin-cash-circle.png"},
	{ID: "monero", Symbol: "xmr", Name: "Monero", CurrentPrice: 163.21, MarketCap: 2987654321, TotalVolume24h: 87654321, PriceChangePct24h: 1.12,
		ImageRef: "https://assets.coingecko.com/coins/images/69/large/monero_logo.png"},
	{ID: "cosmos", Symbol: "atom", Name: "Cosmos", CurrentPrice: 8.42, MarketCap: 3245678901, TotalVolume24h: 123456789, PriceChangePct24h: -0.89,
		ImageRef: "https://assets.coingecko.com/coins/images/1481/large/cosmos_hub.png"},
	{ID: "filecoin", Symbol: "fil", Name: "Filecoin", CurrentPrice: 4.87, MarketCap: 2345678901, TotalVolume24h: 98765432, PriceChangePct24h: -1.34,
		ImageRef: "https://assets.coingecko.com/coins/images/12817/large/filecoin.png"},
	{ID: "near", Symbol: "near", Name: "NEAR Protocol", CurrentPrice: 5.76, MarketCap: 5876543210, TotalVolume24h: 234567890, PriceChangePct24h: 2.45,
		ImageRef: "https://assets.coingecko.com/coins/images/10365/large/near.jpg"},
	{ID: "aave", Symbol: "aave", Name: "Aave", CurrentPrice: 92.34, MarketCap: 1345678901, TotalVolume24h: 76543210, PriceChangePct24h: 0.76,
		ImageRef: "https://assets.coingecko.com/coins/images/12645/large/AAVE.png"},
	{ID: "maker", Symbol: "mkr", Name: "Maker", CurrentPrice: 1876.23, MarketCap: 1687654321, TotalVolume24h: 54321098, PriceChangePct24h: 1.23,
		ImageRef: "https://assets.coingecko.com/coins/images/1364/large/Mark_Maker.png"},
	{ID: "algorand", Symbol: "algo", Name: "Algorand", CurrentPrice: 0.17, MarketCap: 1345678901, TotalVolume24h: 65432109, PriceChangePct24h: -0.54,
		ImageRef: "https://assets.coingecko.com/coins/images/4380/large/download.png"},
	{ID: "vechain", Symbol: "vet", Name: "VeChain", CurrentPrice: 0.026, MarketCap: 1876543210, TotalVolume24h: 87654321, PriceChangePct24h: 0.32,
		ImageRef: "https://assets.coingecko.com/coins/images/1167/large/VeChain-Logo-768x725.png"},
	{ID: "apecoin", Symbol: "ape", Name: "ApeCoin", CurrentPrice: 1.42, MarketCap: 876543210, TotalVolume24h: 43210987, PriceChangePct24h: -2.13,
		ImageRef: "https://assets.coingecko.com/coins/images/24383/large/apecoin.jpg"},
	{ID: "the-graph", Symbol: "grt", Name: "The Graph", CurrentPrice: 0.14, MarketCap: 1345678901, TotalVolume24h: 54321098, PriceChangePct24h: -0.87,
		ImageRef: "https://assets.coingecko.com/coins/images/13397/large/Graph_Token.png"},
	{ID: "decentraland", Symbol: "mana", Name: "Decentraland", CurrentPrice: 0.42, MarketCap: 987654321, TotalVolume24h: 43210987, PriceChangePct24h: -1.23,
		ImageRef: "https://assets.coingecko.com/coins/images/878/large/decentraland-mana.png"},
	{ID: "the-sandbox", Symbol: "sand", Name: "The Sandbox", CurrentPrice: 0.46, MarketCap: 876543210, TotalVolume24h: 32109876, PriceChangePct24h: -0.76,
		ImageRef: "https://assets.coingecko.com/coins/images/12129/large/sandbox_logo.jpg"},
	{ID: "optimism", Symbol: "op", Name: "Optimism", CurrentPrice: 2.34, MarketCap: 2345678901, TotalVolume24h: 98765432, PriceChangePct24h: 1.45,
		ImageRef: "https://assets.coingecko.com/coins/images/25244/large/Optimism.png"},
	{ID: "arbitrum", Symbol: "arb", Name: "Arbitrum", CurrentPrice: 1.12, MarketCap: 3456789012, TotalVolume24h: 123456789, PriceChangePct24h: 0.87,
		ImageRef: "https://assets.coingecko.com/coins/images/16547/large/photo_2023-03-29_21.47.00.jpeg"},
}
