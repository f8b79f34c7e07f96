package filter

import (
	"fmt"
	"strconv"

	"pump-radar/internal/tracker/model"
)

// Verdict is the outcome of evaluating one token record. A failed verdict
// carries one human-readable reason per violated constraint.
type Verdict struct {
	Passed  bool     `json:"passed"`
	Reasons []string `json:"reasons"`
}

// Evaluate checks the record against every constraint in cfg. All violations
// are collected, not just the first, so operators see every mismatch at
// once. Enrichment defaults are evaluated like any other value; there is no
// separate "insufficient data" verdict.
func Evaluate(rec model.TokenRecord, cfg model.FilterConfig) Verdict {
	var reasons []string

	checkRange := func(field string, value float64, r model.Range) {
		if !r.Contains(value) {
			reasons = append(reasons, fmt.Sprintf("%s %s outside allowed range [%s, %s]",
				field, formatValue(value), formatValue(r.Min), formatValue(r.Max)))
		}
	}
	checkBool := func(field string, value, expected bool) {
		if value != expected {
			reasons = append(reasons, fmt.Sprintf("%s is %t, expected %t", field, value, expected))
		}
	}

	checkRange("liquidity", rec.Liquidity, cfg.Liquidity)
	checkRange("pool supply", rec.PoolSupply, cfg.PoolSupply)
	checkRange("dev holding", rec.DevHolding, cfg.DevHolding)
	checkRange("launch price", rec.Price, cfg.LaunchPrice)
	checkBool("mint authority revoked", rec.MintAuthRevoked, cfg.MintAuthRevoked)
	checkBool("freeze authority revoked", rec.FreezeAuthRevoked, cfg.FreezeAuthRevoked)

	return Verdict{
		Passed:  len(reasons) == 0,
		Reasons: reasons,
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
