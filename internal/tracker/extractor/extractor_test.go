package extractor

import (
	"strings"
	"testing"

	"pump-radar/internal/tracker/model"
	"pump-radar/pkg/chain"
)

var (
	mint44 = strings.Repeat("A", 44)
	mint45 = strings.Repeat("B", 45)
)

func TestExtractExplicitMint(t *testing.T) {
	ev := model.RawEvent{TokenMint: mint44}
	mint, ok := Extract(ev)
	if !ok || mint != mint44 {
		t.Fatalf("expected %s, got %q ok=%v", mint44, mint, ok)
	}
}

func TestExtractRejectsShortExplicitMint(t *testing.T) {
	// a 43-char candidate fails the length invariant at the extraction guard
	ev := model.RawEvent{TokenMint: strings.Repeat("A", 43)}
	if _, ok := Extract(ev); ok {
		t.Fatal("expected 43-char mint to be discarded")
	}
}

func TestExtractFromParsedInstruction(t *testing.T) {
	ev := model.RawEvent{
		Instructions: []model.Instruction{
			{ProgramID: "SomeOtherProgram1111111111111111111111111111"},
			{
				ProgramID: chain.TokenProgramAddress,
				Parsed:    &model.ParsedInstruction{Type: "initializeMint", Info: model.InstructionInfo{Mint: mint45}},
			},
		},
	}
	mint, ok := Extract(ev)
	if !ok || mint != mint45 {
		t.Fatalf("expected %s, got %q ok=%v", mint45, mint, ok)
	}
}

func TestExtractIgnoresNonMintInstructionTypes(t *testing.T) {
	ev := model.RawEvent{
		Instructions: []model.Instruction{
			{
				ProgramID: chain.TokenProgramAddress,
				Parsed:    &model.ParsedInstruction{Type: "transfer", Info: model.InstructionInfo{Mint: mint44}},
			},
		},
	}
	if _, ok := Extract(ev); ok {
		t.Fatal("transfer instruction must not yield a mint candidate")
	}
}

func TestExtractFromInnerInstructions(t *testing.T) {
	ev := model.RawEvent{
		InnerInstructions: []model.InstructionGroup{
			{Index: 2, Instructions: []model.Instruction{
				{
					ProgramID: chain.TokenProgramAddress,
					Parsed:    &model.ParsedInstruction{Type: "mintTo", Info: model.InstructionInfo{Mint: mint44}},
				},
			}},
		},
	}
	mint, ok := Extract(ev)
	if !ok || mint != mint44 {
		t.Fatalf("expected %s, got %q ok=%v", mint44, mint, ok)
	}
}

func TestExtractFallsBackToPostTokenBalances(t *testing.T) {
	ev := model.RawEvent{
		PostTokenBalances: []model.TokenBalance{
			{Mint: "short"},
			{Mint: mint44},
		},
	}
	mint, ok := Extract(ev)
	if !ok || mint != mint44 {
		t.Fatalf("expected %s, got %q ok=%v", mint44, mint, ok)
	}
}

func TestExtractFallsBackToAccounts(t *testing.T) {
	ev := model.RawEvent{Accounts: []string{"tiny", mint45}}
	mint, ok := Extract(ev)
	if !ok || mint != mint45 {
		t.Fatalf("expected %s, got %q ok=%v", mint45, mint, ok)
	}
}

func TestExtractPriorityOrder(t *testing.T) {
	// explicit mint wins over every fallback shape
	ev := model.RawEvent{
		TokenMint:         mint44,
		PostTokenBalances: []model.TokenBalance{{Mint: mint45}},
		Accounts:          []string{mint45},
	}
	mint, ok := Extract(ev)
	if !ok || mint != mint44 {
		t.Fatalf("expected explicit mint %s, got %q", mint44, mint)
	}
}

func TestExtractNoMatch(t *testing.T) {
	if _, ok := Extract(model.RawEvent{}); ok {
		t.Fatal("empty event must not yield a candidate")
	}
}
