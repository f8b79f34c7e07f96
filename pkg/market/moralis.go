package market

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pump-radar/pkg/httpclient"
)

// MoralisConfig configures the Moralis Solana gateway provider.
type MoralisConfig struct {
	GatewayURL string
	APIKey     string
	RateLimit  int
	Timeout    int
}

// MoralisClient queries the Moralis Solana gateway for token price,
// metadata and pair liquidity.
type MoralisClient struct {
	gatewayURL string
	httpClient *httpclient.HTTPClient
	logger     *zap.Logger
}

func NewMoralisClient(cfg MoralisConfig, logger *zap.Logger) *MoralisClient {
	httpCfg := httpclient.HTTPClientConfig{
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		RateLimit:  cfg.RateLimit,
		MaxRetries: 0,
		XApiKey:    cfg.APIKey,
	}

	return &MoralisClient{
		gatewayURL: cfg.GatewayURL,
		httpClient: httpclient.NewHTTPClient(httpCfg, logger),
		logger:     logger,
	}
}

func (m *MoralisClient) Name() string { return "moralis" }

// TokenQuote fetches price, metadata and pair liquidity for the address.
// The price call is mandatory; metadata and pairs degrade to zero values so
// a partially-up gateway still yields a usable quote.
func (m *MoralisClient) TokenQuote(ctx context.Context, address string) (*Quote, error) {
	var price moralisPriceResp
	url := fmt.Sprintf("%s/token/mainnet/%s/price", m.gatewayURL, address)
	if err := m.httpClient.Get(ctx, url, nil, nil, &price); err != nil {
		return nil, fmt.Errorf("fetch moralis price, url: %s, error: %w", url, err)
	}

	quote := &Quote{Price: price.UsdPrice}

	var meta moralisMetadataResp
	url = fmt.Sprintf("%s/token/mainnet/%s/metadata", m.gatewayURL, address)
	if err := m.httpClient.Get(ctx, url, nil, nil, &meta); err != nil {
		m.logger.Warn("moralis metadata unavailable", zap.String("address", address), zap.Error(err))
	} else {
		quote.Name = meta.Name
		if fdv, err := strconv.ParseFloat(meta.FullyDilutedValue, 64); err == nil {
			quote.MarketCap = fdv
		}
	}

	var pairs moralisPairsResp
	url = fmt.Sprintf("%s/token/mainnet/%s/pairs", m.gatewayURL, address)
	if err := m.httpClient.Get(ctx, url, nil, nil, &pairs); err != nil {
		m.logger.Warn("moralis pairs unavailable", zap.String("address", address), zap.Error(err))
	} else {
		for _, pair := range pairs.Pairs {
			quote.Liquidity += pair.LiquidityUsd
		}
	}

	return quote, nil
}

type moralisPriceResp struct {
	UsdPrice     float64 `json:"usdPrice"`
	NativePrice  string  `json:"nativePrice"`
	ExchangeName string  `json:"exchangeName"`
}

type moralisMetadataResp struct {
	Mint              string `json:"mint"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	Decimals          string `json:"decimals"`
	TotalSupply       string `json:"totalSupply"`
	FullyDilutedValue string `json:"fullyDilutedValue"`
}

type moralisPairsResp struct {
	Pairs []moralisPair `json:"pairs"`
}

type moralisPair struct {
	PairAddress  string  `json:"pairAddress"`
	ExchangeName string  `json:"exchangeName"`
	LiquidityUsd float64 `json:"liquidityUsd"`
	UsdPrice     float64 `json:"usdPrice"`
}
