package solana

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// TokenAccount is an SPL token account with its COption fields resolved.
type TokenAccount struct {
	Address solana.PublicKey
	Mint    solana.PublicKey
	Owner   solana.PublicKey
	Amount  uint64

	// Delegate may transfer up to DelegatedAmount from the account.
	Delegate        *solana.PublicKey
	DelegatedAmount uint64

	IsInitialized bool
	IsFrozen      bool

	// IsNative is set for wrapped SOL accounts, which keep
	// RentExemptReserve lamports until closed.
	IsNative          bool
	RentExemptReserve *uint64

	CloseAuthority *solana.PublicKey
}

const tokenAccountSize = 165

// TokenAccountLayout decodes the 165 byte account data of the token program.
type TokenAccountLayout struct{}

func (TokenAccountLayout) Decode(data []byte) (*TokenAccount, error) {
	if len(data) < tokenAccountSize {
		return nil, fmt.Errorf("token account: %d bytes, want %d", len(data), tokenAccountSize)
	}
	var raw token.Account
	if err := bin.NewBinDecoder(data).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode token account: %w", err)
	}
	return &TokenAccount{
		Mint:              raw.Mint,
		Owner:             raw.Owner,
		Amount:            raw.Amount,
		Delegate:          raw.Delegate,
		DelegatedAmount:   raw.DelegatedAmount,
		IsInitialized:     raw.State != token.Uninitialized,
		IsFrozen:          raw.State == token.Frozen,
		IsNative:          raw.IsNative != nil,
		RentExemptReserve: raw.IsNative,
		CloseAuthority:    raw.CloseAuthority,
	}, nil
}

// GetTokenAccount returns nil without error when the account does not exist.
func GetTokenAccount(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey, commitment rpc.CommitmentType) (*TokenAccount, error) {
	out, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get token account %s: %w", address, err)
	}
	account, err := TokenAccountLayout{}.Decode(out.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("token account %s: %w", address, err)
	}
	account.Address = address
	return account, nil
}
