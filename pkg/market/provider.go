package market

import "context"

// Quote is the market snapshot a provider returns for one token address.
// Fields a provider cannot serve stay at their zero value.
type Quote struct {
	Name      string
	Price     float64
	Liquidity float64
	MarketCap float64
}

// Provider serves market data for a token address. Implementations are
// queried in configured order; the first successful quote wins.
type Provider interface {
	Name() string
	TokenQuote(ctx context.Context, address string) (*Quote, error)
}
