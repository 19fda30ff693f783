package solana

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/require"
)

func TestMintInstructions(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	ixs := mintInstructions(1_461_600, payer, mint, authority, 6)
	require.Len(t, ixs, 2)

	require.Equal(t, solana.SystemProgramID, ixs[0].ProgramID())
	create, ok := ixs[0].(*system.Instruction).Impl.(system.CreateAccount)
	require.True(t, ok)
	require.EqualValues(t, 1_461_600, *create.Lamports)
	require.EqualValues(t, token.MINT_SIZE, *create.Space)
	require.Equal(t, solana.TokenProgramID, *create.Owner)
	require.Equal(t, payer, ixs[0].Accounts()[0].PublicKey)
	require.Equal(t, mint, ixs[0].Accounts()[1].PublicKey)

	require.Equal(t, solana.TokenProgramID, ixs[1].ProgramID())
	initMint, ok := ixs[1].(*token.Instruction).Impl.(token.InitializeMint2)
	require.True(t, ok)
	require.EqualValues(t, 6, *initMint.Decimals)
	require.Equal(t, authority, *initMint.MintAuthority)
	require.Equal(t, authority, *initMint.FreezeAuthority)
	require.Equal(t, mint, ixs[1].Accounts()[0].PublicKey)
}

func TestMintToInstructionsCreatesATA(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBinEncoder(buf).Encode(token.Mint{
		MintAuthority: &authority,
		Decimals:      6,
		IsInitialized: true,
	}))

	// the mint resolves, the owner's ATA does not exist
	client, _ := newTestRPCFunc(t, func(method string, params []byte) string {
		if method != "getAccountInfo" {
			return ""
		}
		if accountParam(params) == mint.String() {
			return accountInfoResult(solana.TokenProgramID, buf.Bytes())
		}
		return `{"context":{"slot":1},"value":null}`
	})

	ixs, err := MintToInstructions(context.Background(), client, "", mint, authority, owner, authority, mustDecimal(t, "1.5"))
	require.NoError(t, err)
	require.Len(t, ixs, 2)

	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	require.Equal(t, solana.SPLAssociatedTokenAccountProgramID, ixs[0].ProgramID())

	mintTo, ok := ixs[1].(*token.Instruction).Impl.(token.MintTo)
	require.True(t, ok)
	require.EqualValues(t, 1_500_000, *mintTo.Amount)
	require.Equal(t, ata, ixs[1].Accounts()[1].PublicKey)
}
