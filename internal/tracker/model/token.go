package model

import "time"

// TokenRecord is the enriched token entity handed to filtering and
// formatting. It is only ever constructed for a validated mint address;
// every other field degrades to its documented default when enrichment
// cannot serve it.
type TokenRecord struct {
	Address           string    `json:"address"`
	Name              string    `json:"name"`
	Decimals          int       `json:"decimals"`
	MintAuthRevoked   bool      `json:"mintAuthRevoked"`
	FreezeAuthRevoked bool      `json:"freezeAuthRevoked"`
	Price             float64   `json:"price"`
	Liquidity         float64   `json:"liquidity"`
	MarketCap         float64   `json:"marketCap"`
	DevHolding        float64   `json:"devHolding"`
	PoolSupply        float64   `json:"poolSupply"`
	LastUpdated       time.Time `json:"lastUpdated,omitempty"`
}

// NewTokenRecord returns a record for address with all enrichment defaults
// applied: unknown name, 9 decimals, authorities assumed not revoked, zero
// market and holder figures.
func NewTokenRecord(address string) TokenRecord {
	return TokenRecord{
		Address:  address,
		Name:     "Unknown",
		Decimals: 9,
	}
}
