// Package solana holds the chain round trips that surround an Anchor program
// client: blockhashes, simulation, send and confirm, wallets and SPL mints.
package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func GetLatestBlockhash(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType) (solana.Hash, error) {
	if commitment == "" {
		commitment = rpc.CommitmentFinalized
	}
	recent, err := rpcClient.GetLatestBlockhash(ctx, commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	return recent.Value.Blockhash, nil
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetAccountInfoResult, error) {
	return rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
	})
}
