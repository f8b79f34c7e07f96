package filter

import (
	"strings"
	"testing"

	"pump-radar/internal/tracker/model"
)

func screeningConfig() model.FilterConfig {
	return model.FilterConfig{
		Liquidity:         model.Range{Min: 4000, Max: 25000},
		PoolSupply:        model.Range{Min: 60, Max: 95},
		DevHolding:        model.Range{Min: 2, Max: 10},
		LaunchPrice:       model.Range{Min: 2.2e-9, Max: 5.8e-9},
		MintAuthRevoked:   true,
		FreezeAuthRevoked: true,
	}
}

func passingRecord() model.TokenRecord {
	return model.TokenRecord{
		Address:           strings.Repeat("A", 44),
		Liquidity:         5000,
		PoolSupply:        80,
		DevHolding:        5,
		Price:             3e-9,
		MintAuthRevoked:   true,
		FreezeAuthRevoked: true,
	}
}

func TestEvaluatePasses(t *testing.T) {
	verdict := Evaluate(passingRecord(), screeningConfig())
	if !verdict.Passed {
		t.Fatalf("expected pass, got reasons: %v", verdict.Reasons)
	}
	if len(verdict.Reasons) != 0 {
		t.Errorf("passing verdict must carry no reasons, got %v", verdict.Reasons)
	}
}

func TestEvaluateBoundsAreInclusive(t *testing.T) {
	rec := passingRecord()
	rec.Liquidity = 4000 // exactly min
	rec.PoolSupply = 95  // exactly max
	verdict := Evaluate(rec, screeningConfig())
	if !verdict.Passed {
		t.Fatalf("boundary values must pass, got reasons: %v", verdict.Reasons)
	}
}

func TestEvaluateReportsEveryViolation(t *testing.T) {
	rec := passingRecord()
	rec.Liquidity = 1000 // below min
	rec.FreezeAuthRevoked = false
	verdict := Evaluate(rec, screeningConfig())

	if verdict.Passed {
		t.Fatal("expected fail")
	}
	if len(verdict.Reasons) != 2 {
		t.Fatalf("expected exactly 2 reasons, got %v", verdict.Reasons)
	}
	if !strings.Contains(verdict.Reasons[0], "liquidity") {
		t.Errorf("first reason should name liquidity: %q", verdict.Reasons[0])
	}
	if !strings.Contains(verdict.Reasons[1], "freeze") {
		t.Errorf("second reason should name the freeze authority: %q", verdict.Reasons[1])
	}
}

func TestEvaluateTwoNumericViolations(t *testing.T) {
	rec := passingRecord()
	rec.DevHolding = 40   // above max
	rec.PoolSupply = 50   // below min
	verdict := Evaluate(rec, screeningConfig())

	if verdict.Passed {
		t.Fatal("expected fail")
	}
	if len(verdict.Reasons) != 2 {
		t.Fatalf("expected exactly 2 reasons, got %v", verdict.Reasons)
	}
	joined := strings.Join(verdict.Reasons, "; ")
	if !strings.Contains(joined, "pool supply") || !strings.Contains(joined, "dev holding") {
		t.Errorf("reasons should name both violated fields: %v", verdict.Reasons)
	}
}

func TestEvaluateDefaultsStillEvaluated(t *testing.T) {
	// a fully-degraded record (all defaults) is evaluated normally and
	// fails every constraint that excludes the defaults
	rec := model.NewTokenRecord(strings.Repeat("A", 44))
	verdict := Evaluate(rec, screeningConfig())
	if verdict.Passed {
		t.Fatal("default record should not pass the screening config")
	}
	// liquidity, pool supply, dev holding, launch price, both authorities
	if len(verdict.Reasons) != 6 {
		t.Errorf("expected 6 reasons, got %d: %v", len(verdict.Reasons), verdict.Reasons)
	}
}
