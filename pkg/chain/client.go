package chain

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// SPL token program, the canonical owner of every fungible mint account.
	TokenProgramAddress = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	// pump.fun bonding-curve program.
	PumpFunProgramAddress = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
)

// Client wraps the Solana RPC client with the chain-state queries the
// tracker needs: mint validation, mint account state, holder concentration
// and program transaction history.
type Client struct {
	rpc    *rpc.Client
	logger *zap.Logger
}

func NewClient(rawURL string, logger *zap.Logger) *Client {
	return &Client{
		rpc:    rpc.New(rawURL),
		logger: logger,
	}
}

// ValidateMint reports whether addr denotes an account owned by the SPL
// token program. Any RPC failure counts as invalid; callers must not retry.
func (c *Client) ValidateMint(ctx context.Context, addr string) (bool, error) {
	pubKey, err := solana.PublicKeyFromBase58(addr)
	if err != nil {
		return false, fmt.Errorf("invalid base58 address %s: %w", addr, err)
	}

	info, err := c.rpc.GetAccountInfo(ctx, pubKey)
	if err != nil {
		return false, fmt.Errorf("get account info for %s: %w", addr, err)
	}
	if info.Value == nil {
		return false, nil
	}

	return info.Value.Owner.Equals(solana.TokenProgramID), nil
}

// MintState is the decoded SPL mint account.
type MintState struct {
	Decimals          uint8
	Supply            uint64
	MintAuthRevoked   bool
	FreezeAuthRevoked bool
}

// GetMintState fetches and decodes the mint account for addr.
func (c *Client) GetMintState(ctx context.Context, addr string) (*MintState, error) {
	pubKey, err := solana.PublicKeyFromBase58(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid base58 address %s: %w", addr, err)
	}

	var mint token.Mint
	if err := c.rpc.GetAccountDataInto(ctx, pubKey, &mint); err != nil {
		return nil, fmt.Errorf("decode mint account %s: %w", addr, err)
	}

	return &MintState{
		Decimals:          mint.Decimals,
		Supply:            mint.Supply,
		MintAuthRevoked:   mint.MintAuthority == nil,
		FreezeAuthRevoked: mint.FreezeAuthority == nil,
	}, nil
}

// GetDevHolding returns the largest holder's share of the total supply as a
// percentage in [0,100]. An empty holder list or zero supply yields 0.
func (c *Client) GetDevHolding(ctx context.Context, addr string) (float64, error) {
	pubKey, err := solana.PublicKeyFromBase58(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid base58 address %s: %w", addr, err)
	}

	largest, err := c.rpc.GetTokenLargestAccounts(ctx, pubKey, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("get largest token accounts for %s: %w", addr, err)
	}
	if len(largest.Value) == 0 {
		return 0, nil
	}

	supply, err := c.rpc.GetTokenSupply(ctx, pubKey, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("get token supply for %s: %w", addr, err)
	}

	total, err := decimal.NewFromString(supply.Value.Amount)
	if err != nil {
		return 0, fmt.Errorf("parse token supply %q: %w", supply.Value.Amount, err)
	}
	if total.IsZero() {
		return 0, nil
	}

	top, err := decimal.NewFromString(largest.Value[0].Amount)
	if err != nil {
		return 0, fmt.Errorf("parse holder balance %q: %w", largest.Value[0].Amount, err)
	}

	share, _ := top.Div(total).Mul(decimal.NewFromInt(100)).Float64()
	if share < 0 {
		share = 0
	}
	if share > 100 {
		share = 100
	}
	return share, nil
}

// TransactionDetail is the subset of a parsed transaction the extractor
// cares about.
type TransactionDetail struct {
	Signature             string
	Failed                bool
	AccountKeys           []string
	PostTokenBalanceMints []string
}

// RecentSignatures lists the most recent transaction signatures touching the
// given program account, newest first.
func (c *Client) RecentSignatures(ctx context.Context, program string, limit int) ([]string, error) {
	pubKey, err := solana.PublicKeyFromBase58(program)
	if err != nil {
		return nil, fmt.Errorf("invalid base58 address %s: %w", program, err)
	}

	sigs, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, pubKey, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("get signatures for %s: %w", program, err)
	}

	out := make([]string, 0, len(sigs))
	for _, sig := range sigs {
		out = append(out, sig.Signature.String())
	}
	return out, nil
}

// GetTransactionDetail fetches one confirmed transaction and flattens the
// pieces relevant to mint extraction.
func (c *Client) GetTransactionDetail(ctx context.Context, signature string) (*TransactionDetail, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("invalid signature %s: %w", signature, err)
	}

	maxVersion := uint64(0)
	tx, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", signature, err)
	}
	if tx == nil || tx.Meta == nil {
		return nil, fmt.Errorf("transaction %s has no metadata", signature)
	}

	detail := &TransactionDetail{
		Signature: signature,
		Failed:    tx.Meta.Err != nil,
	}

	if decoded, err := tx.Transaction.GetTransaction(); err == nil {
		for _, key := range decoded.Message.AccountKeys {
			detail.AccountKeys = append(detail.AccountKeys, key.String())
		}
	}

	for _, balance := range tx.Meta.PostTokenBalances {
		detail.PostTokenBalanceMints = append(detail.PostTokenBalanceMints, balance.Mint.String())
	}

	return detail, nil
}
