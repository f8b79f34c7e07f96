package alert

import (
	"strings"
	"testing"

	"pump-radar/internal/tracker/model"
)

func sampleRecord() model.TokenRecord {
	return model.TokenRecord{
		Address:           strings.Repeat("A", 44),
		Name:              "Sample",
		Decimals:          9,
		MintAuthRevoked:   true,
		FreezeAuthRevoked: false,
		Price:             3e-9,
		Liquidity:         5000,
		MarketCap:         1234567.89,
		DevHolding:        5.5,
		PoolSupply:        94.5,
	}
}

func TestFormatIdempotent(t *testing.T) {
	rec := sampleRecord()
	first := Format(rec)
	second := Format(rec)
	if first != second {
		t.Fatal("Format must be byte-identical for identical records")
	}
}

func TestFormatContents(t *testing.T) {
	msg := Format(sampleRecord())

	for _, want := range []string{
		"Sample",
		strings.Repeat("A", 44),
		"$1,234,567.89",
		"$5,000",
		"5.50%",
		"94.50%",
		"✅ Revoked",
		"❌ Not Revoked",
		"rugcheck.xyz/tokens/",
		"birdeye.so/token/",
		"solscan.io/token/",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatZeroFiguresRenderNA(t *testing.T) {
	rec := sampleRecord()
	rec.Price = 0
	rec.Liquidity = 0
	rec.MarketCap = 0
	msg := Format(rec)

	if got := strings.Count(msg, "N/A"); got != 3 {
		t.Errorf("expected 3 N/A figures, got %d:\n%s", got, msg)
	}
}

func TestFormatMissingAddress(t *testing.T) {
	msg := Format(model.TokenRecord{Name: "Orphan"})
	if !strings.Contains(msg, "Error formatting token alert") {
		t.Errorf("expected degraded placeholder, got %q", msg)
	}
}

func TestFormatRejection(t *testing.T) {
	msg := FormatRejection(strings.Repeat("A", 44), []string{"liquidity 0 outside allowed range [4000, 25000]", "freeze authority revoked is false, expected true"})
	if !strings.Contains(msg, "did not pass filters") {
		t.Errorf("missing rejection header: %q", msg)
	}
	if got := strings.Count(msg, "• "); got != 2 {
		t.Errorf("expected 2 reason bullets, got %d:\n%s", got, msg)
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[float64]string{
		0.5:        "0.5",
		999:        "999",
		1000:       "1,000",
		1234567.89: "1,234,567.89",
	}
	for in, want := range cases {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%v) = %q, want %q", in, got, want)
		}
	}
}
