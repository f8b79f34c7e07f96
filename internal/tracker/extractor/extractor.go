package extractor

import (
	"pump-radar/internal/tracker/model"
	"pump-radar/pkg/chain"
)

// Mint addresses are base58 strings of 44 or 45 characters. Shorter or
// longer candidates are discarded before any network call happens.
const (
	minMintLen = 44
	maxMintLen = 45
)

// mint-producing instruction types issued by the SPL token program.
var mintInstructionTypes = map[string]bool{
	"initializeMint":  true,
	"initializeMint2": true,
	"mintTo":          true,
	"mintToChecked":   true,
}

// matcher probes one event shape for a mint candidate.
type matcher func(ev model.RawEvent) (string, bool)

// matchers in priority order; the first hit wins.
var matchers = []matcher{
	explicitMint,
	topLevelInstructions,
	innerInstructions,
	postTokenBalances,
	tokenTransfers,
	accountScan,
}

// Extract probes the event shapes in priority order and returns the first
// mint candidate passing the length invariant. No match returns ("", false)
// and the caller is expected to skip the event without error.
func Extract(ev model.RawEvent) (string, bool) {
	for _, match := range matchers {
		if mint, ok := match(ev); ok {
			return mint, true
		}
	}
	return "", false
}

// ValidLength reports whether a candidate satisfies the mint address
// length invariant.
func ValidLength(addr string) bool {
	return len(addr) >= minMintLen && len(addr) <= maxMintLen
}

func explicitMint(ev model.RawEvent) (string, bool) {
	if ValidLength(ev.TokenMint) {
		return ev.TokenMint, true
	}
	return "", false
}

func topLevelInstructions(ev model.RawEvent) (string, bool) {
	return scanInstructions(ev.Instructions)
}

func innerInstructions(ev model.RawEvent) (string, bool) {
	for _, group := range ev.InnerInstructions {
		if mint, ok := scanInstructions(group.Instructions); ok {
			return mint, true
		}
	}
	return "", false
}

func scanInstructions(instructions []model.Instruction) (string, bool) {
	for _, inst := range instructions {
		if inst.ProgramID != chain.TokenProgramAddress {
			continue
		}
		if inst.Parsed == nil || !mintInstructionTypes[inst.Parsed.Type] {
			continue
		}
		if ValidLength(inst.Parsed.Info.Mint) {
			return inst.Parsed.Info.Mint, true
		}
		// some RPC nodes omit the parsed mint operand; the mint is then
		// the first instruction account
		if len(inst.Accounts) > 0 && ValidLength(inst.Accounts[0]) {
			return inst.Accounts[0], true
		}
	}
	return "", false
}

func postTokenBalances(ev model.RawEvent) (string, bool) {
	for _, balance := range ev.PostTokenBalances {
		if ValidLength(balance.Mint) {
			return balance.Mint, true
		}
	}
	return "", false
}

func tokenTransfers(ev model.RawEvent) (string, bool) {
	for _, transfer := range ev.TokenTransfers {
		if ValidLength(transfer.Mint) {
			return transfer.Mint, true
		}
	}
	return "", false
}

func accountScan(ev model.RawEvent) (string, bool) {
	for _, account := range ev.Accounts {
		if ValidLength(account) {
			return account, true
		}
	}
	return "", false
}
