package solana

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/krazyTry/anchorx-go/errcode"
)

const maxComputeUnits uint32 = 1_400_000

// BuildTransaction merges duplicate setup instructions, fetches a blockhash
// and signs with payer and signers.
func BuildTransaction(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	instructions []solana.Instruction,
	payer solana.PrivateKey,
	signers ...solana.PrivateKey,
) (*solana.Transaction, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("no instructions")
	}

	blockhash, err := GetLatestBlockhash(ctx, rpcClient, commitment)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(
		MergeInstructions(instructions),
		blockhash,
		solana.TransactionPayer(payer.PublicKey()),
	)
	if err != nil {
		return nil, fmt.Errorf("new transaction: %w", err)
	}

	keys := append([]solana.PrivateKey{payer}, signers...)
	if _, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range keys {
			if keys[i].PublicKey().Equals(key) {
				return &keys[i]
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return tx, nil
}

// SendAndConfirm sends with preflight enabled and waits for the signature on
// wsClient. A failed preflight comes back as the node's *jsonrpc.RPCError,
// which errcode.Canonicalize understands.
func SendAndConfirm(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	commitment rpc.CommitmentType,
	timeout time.Duration,
	instructions []solana.Instruction,
	payer solana.PrivateKey,
	signers ...solana.PrivateKey,
) (solana.Signature, error) {
	tx, err := BuildTransaction(ctx, rpcClient, commitment, instructions, payer, signers...)
	if err != nil {
		return solana.Signature{}, err
	}

	if commitment == "" {
		commitment = rpc.CommitmentFinalized
	}
	sig, err := rpcClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}

	var wait *time.Duration
	if timeout > 0 {
		wait = &timeout
	}
	if _, err = sendandconfirmtransaction.WaitForConfirmation(ctx, wsClient, sig, wait); err != nil {
		return sig, fmt.Errorf("confirm %s: %w", sig, err)
	}
	return sig, nil
}

// Simulate runs instructions unsigned against the latest blockhash. A result
// carrying a transaction error is returned as *errcode.SimulationError.
func Simulate(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	instructions []solana.Instruction,
	payer solana.PublicKey,
) (*rpc.SimulateTransactionResult, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("no instructions to simulate")
	}

	tx, err := solana.NewTransaction(
		MergeInstructions(instructions),
		solana.Hash{},
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, fmt.Errorf("new transaction: %w", err)
	}

	opts := &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		ReplaceRecentBlockhash: true,
	}
	if commitment != "" {
		opts.Commitment = commitment
	}

	resp, err := rpcClient.SimulateTransactionWithOpts(ctx, tx, opts)
	if err != nil {
		return nil, fmt.Errorf("simulate transaction: %w", err)
	}
	if resp == nil || resp.Value == nil {
		return nil, fmt.Errorf("simulate transaction: empty result")
	}
	if resp.Value.Err != nil {
		return resp.Value, &errcode.SimulationError{Err: resp.Value.Err, Logs: resp.Value.Logs}
	}
	return resp.Value, nil
}

// EstimateComputeUnits simulates instructions under the maximum compute
// limit and returns the units consumed plus buffer, a fraction such as 0.1.
// buffer is clamped to [0, 1]; NaN counts as 0.
func EstimateComputeUnits(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	buffer float64,
) (uint32, error) {
	if math.IsNaN(buffer) || buffer < 0 {
		buffer = 0
	}
	if buffer > 1 {
		buffer = 1
	}

	limitIx := computebudget.NewSetComputeUnitLimitInstruction(maxComputeUnits).Build()
	probe := make([]solana.Instruction, 0, len(instructions)+1)
	probe = append(probe, limitIx)
	probe = append(probe, instructions...)

	result, err := Simulate(ctx, rpcClient, commitment, probe, payer)
	if err != nil {
		return 0, err
	}
	if result.UnitsConsumed == nil {
		return 0, fmt.Errorf("simulation did not report compute units")
	}

	units := uint64(float64(*result.UnitsConsumed) * (1 + buffer))
	if units > uint64(maxComputeUnits) {
		units = uint64(maxComputeUnits)
	}
	return uint32(units), nil
}
