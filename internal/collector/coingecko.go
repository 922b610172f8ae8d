package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

// DefaultCoinGeckoURL is the public API base.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

const marketPageSize = 50

// CoinGeckoFetcher implements Fetcher using the CoinGecko REST API.
// CoinGecko has no news endpoint, so news comes from the templated feed.
type CoinGeckoFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Retry   RetryConfig
	Rand    synth.Rand
	Logger  *zap.Logger
}

// NewCoinGeckoFetcher creates a new fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, apiKey, proxyURL string, r synth.Rand, logger *zap.Logger) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoinGeckoFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Retry:  DefaultRetry,
		Rand:   r,
		Logger: logger.Named("coingecko"),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

func (f *CoinGeckoFetcher) getJSON(ctx context.Context, endpoint string, dst any) error {
	resp, err := doWithRetry(ctx, f.Client, f.Retry, f.Logger, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if f.APIKey != "" {
			req.Header.Set("x-cg-demo-api-key", f.APIKey)
		}
		return req, nil
	})
	if err != nil {
		return errors.Wrap(err, "coingecko fetch")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "coingecko read body")
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.Wrap(err, "coingecko decode")
	}
	return nil
}

// FetchMarket reads the first page of /coins/markets ordered by market cap.
func (f *CoinGeckoFetcher) FetchMarket(ctx context.Context) ([]model.Coin, error) {
	endpoint := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1",
		f.BaseURL, marketPageSize)

	var coins []model.Coin
	if err := f.getJSON(ctx, endpoint, &coins); err != nil {
		return nil, err
	}
	sort.SliceStable(coins, func(i, j int) bool { return coins[i].MarketCap > coins[j].MarketCap })
	return coins, nil
}

// FetchHistory reads /coins/{id}/ohlc rows of [timestamp, open, high, low, close].
// Bars keep CoinGecko's spacing, which follows days rather than being
// hourly: 30 minutes for 1 to 2 days, 4 hours up to 30 days, 4 days beyond.
// A 7d series therefore holds about 42 candles, not 168.
func (f *CoinGeckoFetcher) FetchHistory(ctx context.Context, coinID string, horizon model.Horizon) (model.CandleSeries, error) {
	if !horizon.Valid() {
		return model.CandleSeries{}, errors.Errorf("unsupported horizon %d", horizon)
	}
	endpoint := fmt.Sprintf("%s/coins/%s/ohlc?vs_currency=usd&days=%d",
		f.BaseURL, url.PathEscape(coinID), horizon.Days())

	var rows [][5]float64
	if err := f.getJSON(ctx, endpoint, &rows); err != nil {
		return model.CandleSeries{}, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return model.SeriesFromTuples(coinID, horizon.Days(), rows), nil
}

func (f *CoinGeckoFetcher) FetchNews(ctx context.Context, coinID string) ([]model.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return GenerateNews(coinID, f.Rand), nil
}
