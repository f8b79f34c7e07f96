package model

// RawEvent is one detected on-chain action, as delivered by the webhook
// receiver or assembled by the chain poller. Every field group is optional;
// the extractor probes them in a fixed priority order.
type RawEvent struct {
	Type              string             `json:"type,omitempty"`
	Signature         string             `json:"signature,omitempty"`
	ProgramID         string             `json:"programId,omitempty"`
	TokenMint         string             `json:"tokenMint,omitempty"`
	Accounts          []string           `json:"accounts,omitempty"`
	Instructions      []Instruction      `json:"instructions,omitempty"`
	InnerInstructions []InstructionGroup `json:"innerInstructions,omitempty"`
	PostTokenBalances []TokenBalance     `json:"postTokenBalances,omitempty"`
	TokenTransfers    []TokenTransfer    `json:"tokenTransfers,omitempty"`
}

// Instruction is a parsed top-level or inner instruction.
type Instruction struct {
	ProgramID string             `json:"programId"`
	Accounts  []string           `json:"accounts,omitempty"`
	Parsed    *ParsedInstruction `json:"parsed,omitempty"`
}

// InstructionGroup holds the inner instructions spawned by one top-level
// instruction.
type InstructionGroup struct {
	Index        int           `json:"index"`
	Instructions []Instruction `json:"instructions"`
}

// ParsedInstruction is the jsonParsed form of a known program instruction.
type ParsedInstruction struct {
	Type string          `json:"type"`
	Info InstructionInfo `json:"info"`
}

// InstructionInfo carries the operands the extractor cares about.
type InstructionInfo struct {
	Mint    string `json:"mint,omitempty"`
	Account string `json:"account,omitempty"`
}

// TokenBalance is one post-transaction token balance entry.
type TokenBalance struct {
	Mint         string `json:"mint"`
	Owner        string `json:"owner,omitempty"`
	AccountIndex int    `json:"accountIndex,omitempty"`
}

// TokenTransfer is one token movement in an enhanced webhook payload.
type TokenTransfer struct {
	Mint            string  `json:"mint"`
	FromUserAccount string  `json:"fromUserAccount,omitempty"`
	ToUserAccount   string  `json:"toUserAccount,omitempty"`
	TokenAmount     float64 `json:"tokenAmount,omitempty"`
}
