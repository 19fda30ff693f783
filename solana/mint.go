package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/shopspring/decimal"
)

// DefaultMintDecimals is used by CreateMint.
const DefaultMintDecimals uint8 = 8

// CreateMintInstructions allocates a rent exempt mint account and initializes
// it with authority as both mint and freeze authority.
func CreateMintInstructions(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	payer solana.PublicKey,
	mint solana.PublicKey,
	authority solana.PublicKey,
	decimals uint8,
) ([]solana.Instruction, error) {
	rent, err := rpcClient.GetMinimumBalanceForRentExemption(ctx, token.MINT_SIZE, commitment)
	if err != nil {
		return nil, fmt.Errorf("mint rent: %w", err)
	}
	return mintInstructions(rent, payer, mint, authority, decimals), nil
}

func mintInstructions(rent uint64, payer, mint, authority solana.PublicKey, decimals uint8) []solana.Instruction {
	return []solana.Instruction{
		system.NewCreateAccountInstruction(
			rent,
			token.MINT_SIZE,
			solana.TokenProgramID,
			payer,
			mint,
		).Build(),
		token.NewInitializeMint2Instruction(
			decimals,
			authority,
			authority,
			mint,
		).Build(),
	}
}

// CreateMint creates a new mint with DefaultMintDecimals owned by authority.
func CreateMint(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	commitment rpc.CommitmentType,
	timeout time.Duration,
	payer solana.PrivateKey,
	authority solana.PublicKey,
) (solana.PublicKey, error) {
	mint := solana.NewWallet()
	instructions, err := CreateMintInstructions(ctx, rpcClient, commitment, payer.PublicKey(), mint.PublicKey(), authority, DefaultMintDecimals)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if _, err := SendAndConfirm(ctx, rpcClient, wsClient, commitment, timeout, instructions, payer, mint.PrivateKey); err != nil {
		return solana.PublicKey{}, fmt.Errorf("create mint: %w", err)
	}
	return mint.PublicKey(), nil
}

// PrepareTokenATA returns the associated token account of owner for mint and
// appends its creation to instructions when it does not exist yet.
func PrepareTokenATA(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	owner solana.PublicKey,
	mint solana.PublicKey,
	payer solana.PublicKey,
	instructions *[]solana.Instruction,
) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	if _, err := GetAccountInfo(ctx, rpcClient, ata, commitment); err != nil {
		if !errors.Is(err, rpc.ErrNotFound) {
			return solana.PublicKey{}, fmt.Errorf("get ata %s: %w", ata, err)
		}
		*instructions = append(*instructions, associatedtokenaccount.NewCreateInstruction(payer, owner, mint).Build())
	}
	return ata, nil
}

// MintToInstructions mints amount, given in UI units, to the associated
// token account of owner, creating the account when needed.
func MintToInstructions(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	mint solana.PublicKey,
	authority solana.PublicKey,
	owner solana.PublicKey,
	payer solana.PublicKey,
	amount decimal.Decimal,
) ([]solana.Instruction, error) {
	info, err := GetMint(ctx, rpcClient, mint, commitment)
	if err != nil {
		return nil, err
	}
	units, err := ApplyDecimals(amount, info.Decimals)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction
	ata, err := PrepareTokenATA(ctx, rpcClient, commitment, owner, mint, payer, &instructions)
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, token.NewMintToInstruction(
		units,
		mint,
		ata,
		authority,
		[]solana.PublicKey{},
	).Build())
	return instructions, nil
}

// MintTo mints amount to owner and returns owner's associated token account.
func MintTo(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	commitment rpc.CommitmentType,
	timeout time.Duration,
	mint solana.PublicKey,
	authority solana.PrivateKey,
	owner solana.PublicKey,
	amount decimal.Decimal,
) (solana.PublicKey, error) {
	instructions, err := MintToInstructions(ctx, rpcClient, commitment, mint, authority.PublicKey(), owner, authority.PublicKey(), amount)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if _, err := SendAndConfirm(ctx, rpcClient, wsClient, commitment, timeout, instructions, authority); err != nil {
		return solana.PublicKey{}, fmt.Errorf("mint to %s: %w", owner, err)
	}
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	return ata, err
}
