package enricher

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"pump-radar/internal/tracker/model"
	"pump-radar/pkg/chain"
	"pump-radar/pkg/market"
	"pump-radar/pkg/retry"
)

const (
	providerAttempts = 3
	providerDelay    = 2 * time.Second
)

// ChainState is the subset of the chain client the enricher needs.
type ChainState interface {
	GetMintState(ctx context.Context, addr string) (*chain.MintState, error)
	GetDevHolding(ctx context.Context, addr string) (float64, error)
}

// Enricher assembles a TokenRecord from three independent sources: the
// chain mint account, the market-data providers, and the holder list.
// It never fails: each fetch group degrades to the record defaults on its
// own, without blocking the others.
type Enricher struct {
	chain     ChainState
	providers []market.Provider
	attempts  int
	delay     time.Duration
	logger    *zap.Logger
}

func New(chainState ChainState, providers []market.Provider, logger *zap.Logger) *Enricher {
	return &Enricher{
		chain:     chainState,
		providers: providers,
		attempts:  providerAttempts,
		delay:     providerDelay,
		logger:    logger,
	}
}

// Enrich builds the record for a validated mint address. The three fetch
// groups run concurrently; each writes a disjoint set of record fields.
func (e *Enricher) Enrich(ctx context.Context, address string) model.TokenRecord {
	record := model.NewTokenRecord(address)

	p := pool.New().WithMaxGoroutines(3)
	p.Go(func() { e.fetchMintState(ctx, &record) })
	p.Go(func() { e.fetchMarketData(ctx, &record) })
	p.Go(func() { e.fetchHolderConcentration(ctx, &record) })
	p.Wait()

	record.LastUpdated = time.Now().UTC()
	return record
}

func (e *Enricher) fetchMintState(ctx context.Context, record *model.TokenRecord) {
	state, err := e.chain.GetMintState(ctx, record.Address)
	if err != nil {
		e.logger.Warn("mint state unavailable, keeping defaults",
			zap.String("address", record.Address), zap.Error(err))
		return
	}

	record.Decimals = int(state.Decimals)
	record.MintAuthRevoked = state.MintAuthRevoked
	record.FreezeAuthRevoked = state.FreezeAuthRevoked
}

// fetchMarketData walks the providers in configured order; each gets a
// bounded number of tries with a fixed delay before the next provider is
// consulted. Total failure leaves the zero-value market figures in place.
func (e *Enricher) fetchMarketData(ctx context.Context, record *model.TokenRecord) {
	for _, provider := range e.providers {
		quote, err := retry.Do(ctx, e.attempts, e.delay, func(ctx context.Context) (*market.Quote, error) {
			return provider.TokenQuote(ctx, record.Address)
		})
		if err != nil {
			e.logger.Warn("market provider exhausted, trying next",
				zap.String("provider", provider.Name()),
				zap.String("address", record.Address),
				zap.Error(err))
			continue
		}

		if quote.Name != "" {
			record.Name = quote.Name
		}
		record.Price = quote.Price
		record.Liquidity = quote.Liquidity
		record.MarketCap = quote.MarketCap
		return
	}

	e.logger.Warn("all market providers failed, keeping defaults",
		zap.String("address", record.Address))
}

func (e *Enricher) fetchHolderConcentration(ctx context.Context, record *model.TokenRecord) {
	devHolding, err := e.chain.GetDevHolding(ctx, record.Address)
	if err != nil {
		e.logger.Warn("holder concentration unavailable, keeping defaults",
			zap.String("address", record.Address), zap.Error(err))
		return
	}

	// single largest-holder model: the pool share is the remainder, so
	// devHolding + poolSupply = 100 whenever this group succeeds
	record.DevHolding = devHolding
	record.PoolSupply = 100 - devHolding
}
