package market

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pump-radar/pkg/httpclient"
)

// DexScreenerConfig configures the DexScreener fallback provider.
type DexScreenerConfig struct {
	BaseURL   string
	RateLimit int
	Timeout   int
}

// DexScreenerClient queries the public DexScreener API. It needs no API key
// and serves as the fallback when the primary provider is down.
type DexScreenerClient struct {
	baseURL    string
	httpClient *httpclient.HTTPClient
	logger     *zap.Logger
}

func NewDexScreenerClient(cfg DexScreenerConfig, logger *zap.Logger) *DexScreenerClient {
	httpCfg := httpclient.HTTPClientConfig{
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		RateLimit:  cfg.RateLimit,
		MaxRetries: 0,
	}

	return &DexScreenerClient{
		baseURL:    cfg.BaseURL,
		httpClient: httpclient.NewHTTPClient(httpCfg, logger),
		logger:     logger,
	}
}

func (d *DexScreenerClient) Name() string { return "dexscreener" }

// TokenQuote resolves the token's pairs and quotes from the deepest pool.
func (d *DexScreenerClient) TokenQuote(ctx context.Context, address string) (*Quote, error) {
	var resp dexScreenerTokensResp
	url := fmt.Sprintf("%s/latest/dex/tokens/%s", d.baseURL, address)
	if err := d.httpClient.Get(ctx, url, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch dexscreener pairs, url: %s, error: %w", url, err)
	}
	if len(resp.Pairs) == 0 {
		return nil, fmt.Errorf("no dexscreener pairs for %s", address)
	}

	best := resp.Pairs[0]
	for _, pair := range resp.Pairs[1:] {
		if pair.Liquidity.Usd > best.Liquidity.Usd {
			best = pair
		}
	}

	quote := &Quote{
		Name:      best.BaseToken.Name,
		Liquidity: best.Liquidity.Usd,
		MarketCap: best.MarketCap,
	}
	if quote.MarketCap == 0 {
		quote.MarketCap = best.Fdv
	}
	if price, err := strconv.ParseFloat(best.PriceUsd, 64); err == nil {
		quote.Price = price
	}

	return quote, nil
}

type dexScreenerTokensResp struct {
	Pairs []dexScreenerPair `json:"pairs"`
}

type dexScreenerPair struct {
	ChainID   string `json:"chainId"`
	DexID     string `json:"dexId"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUsd  string `json:"priceUsd"`
	Liquidity struct {
		Usd float64 `json:"usd"`
	} `json:"liquidity"`
	Fdv       float64 `json:"fdv"`
	MarketCap float64 `json:"marketCap"`
}
