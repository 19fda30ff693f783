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

// Token is a mint together with the program that owns it. TransferFee is
// only set for Token-2022 mints carrying the transfer fee extension.
type Token struct {
	token.Mint
	Address     solana.PublicKey
	Owner       solana.PublicKey
	TransferFee *TransferFeeConfig
}

type TokenLayout struct{}

func (TokenLayout) Decode(data []byte) (*Token, error) {
	var mint token.Mint
	if err := bin.NewBinDecoder(data).Decode(&mint); err != nil {
		return nil, fmt.Errorf("decode mint: %w", err)
	}
	return &Token{Mint: mint}, nil
}

func GetMint(ctx context.Context, rpcClient *rpc.Client, mint solana.PublicKey, commitment rpc.CommitmentType) (*Token, error) {
	out, err := GetAccountInfo(ctx, rpcClient, mint, commitment)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("mint %s not found: %w", mint, err)
		}
		return nil, fmt.Errorf("get mint %s: %w", mint, err)
	}
	t, err := TokenLayout{}.Decode(out.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("mint %s: %w", mint, err)
	}
	t.Address = mint
	t.Owner = out.Value.Owner
	if isToken2022(t.Owner) {
		if t.TransferFee, err = ParseTransferFeeConfig(out.GetBinary()); err != nil {
			return nil, fmt.Errorf("mint %s extensions: %w", mint, err)
		}
	}
	return t, nil
}
