package model

// Range is an inclusive numeric constraint.
type Range struct {
	Min float64 `mapstructure:"min" json:"min"`
	Max float64 `mapstructure:"max" json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterConfig is the six-constraint filter set a token record is evaluated
// against: four inclusive numeric ranges and two boolean equality checks.
// It is loaded from the YAML config and hot-reloaded; evaluators always
// receive it as an explicit snapshot, never through ambient state.
type FilterConfig struct {
	Liquidity         Range `mapstructure:"liquidity" json:"liquidity"`
	PoolSupply        Range `mapstructure:"pool_supply" json:"poolSupply"`
	DevHolding        Range `mapstructure:"dev_holding" json:"devHolding"`
	LaunchPrice       Range `mapstructure:"launch_price" json:"launchPrice"`
	MintAuthRevoked   bool  `mapstructure:"mint_auth_revoked" json:"mintAuthRevoked"`
	FreezeAuthRevoked bool  `mapstructure:"freeze_auth_revoked" json:"freezeAuthRevoked"`
}

// DefaultFilterConfig returns the filter set the tracker starts with before
// any operator tuning.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Liquidity:         Range{Min: 4000, Max: 25000},
		PoolSupply:        Range{Min: 60, Max: 95},
		DevHolding:        Range{Min: 2, Max: 10},
		LaunchPrice:       Range{Min: 2.2e-9, Max: 5.8e-9},
		MintAuthRevoked:   true,
		FreezeAuthRevoked: true,
	}
}
