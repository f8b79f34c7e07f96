package alert

import (
	"fmt"
	"strconv"
	"strings"

	"pump-radar/internal/tracker/model"
)

// Format renders a token record into the Markdown alert message. It is a
// pure function: the same record always yields the same bytes. Zero market
// figures render as N/A, which deliberately conflates "unknown" with
// "legitimately zero" for cap/liquidity/price.
func Format(rec model.TokenRecord) string {
	if rec.Address == "" {
		return "Error formatting token alert: record has no address"
	}

	var b strings.Builder
	b.WriteString("🌟 *New Token Alert* 🌟\n")
	fmt.Fprintf(&b, "📛 *Token Name*: %s\n", rec.Name)
	fmt.Fprintf(&b, "📍 *Token Address*: `%s`\n", rec.Address)
	fmt.Fprintf(&b, "💰 *Market Cap*: %s\n", usdOrNA(rec.MarketCap))
	fmt.Fprintf(&b, "💧 *Liquidity*: %s\n", usdOrNA(rec.Liquidity))
	fmt.Fprintf(&b, "👨‍💻 *Dev Holding*: %.2f%%\n", rec.DevHolding)
	fmt.Fprintf(&b, "🏊 *Pool Supply*: %.2f%%\n", rec.PoolSupply)
	fmt.Fprintf(&b, "🚀 *Launch Price*: %s\n", priceOrNA(rec.Price))
	fmt.Fprintf(&b, "🔒 *Mint Authority*: %s\n", revoked(rec.MintAuthRevoked))
	fmt.Fprintf(&b, "🧊 *Freeze Authority*: %s\n", revoked(rec.FreezeAuthRevoked))
	fmt.Fprintf(&b, "\n🔍 [Rugcheck](https://rugcheck.xyz/tokens/%s) | 📊 [Birdeye](https://birdeye.so/token/%s?chain=solana) | 🧾 [Solscan](https://solscan.io/token/%s)",
		rec.Address, rec.Address, rec.Address)

	return b.String()
}

// FormatRejection renders the failure notice with one line per violated
// constraint.
func FormatRejection(address string, reasons []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ℹ️ Token `%s` did not pass filters:\n", address)
	for _, reason := range reasons {
		fmt.Fprintf(&b, "• %s\n", reason)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRecapHeader renders the header of the periodic top-token recap.
func FormatRecapHeader(n int) string {
	return fmt.Sprintf("📊 *Top %d Tracked Tokens* 📊", n)
}

func revoked(v bool) string {
	if v {
		return "✅ Revoked"
	}
	return "❌ Not Revoked"
}

func usdOrNA(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return "$" + groupThousands(v)
}

func priceOrNA(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return "$" + strconv.FormatFloat(v, 'g', -1, 64)
}

// groupThousands renders v with comma-separated thousands and up to two
// fractional digits.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	if len(parts) == 2 {
		out += "." + parts[1]
	}
	return out
}
