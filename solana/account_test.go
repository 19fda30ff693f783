package solana

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/require"
)

func encodeTokenAccount(t *testing.T, acct token.Account) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBinEncoder(buf).Encode(acct))
	return buf.Bytes()
}

func TestTokenAccountLayout(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	delegate := solana.NewWallet().PublicKey()
	reserve := uint64(2_039_280)

	data := encodeTokenAccount(t, token.Account{
		Mint:            mint,
		Owner:           owner,
		Amount:          5_000,
		Delegate:        &delegate,
		State:           token.Initialized,
		IsNative:        &reserve,
		DelegatedAmount: 1_000,
	})
	require.Len(t, data, tokenAccountSize)

	got, err := TokenAccountLayout{}.Decode(data)
	require.NoError(t, err)
	require.Equal(t, mint, got.Mint)
	require.Equal(t, owner, got.Owner)
	require.EqualValues(t, 5_000, got.Amount)
	require.Equal(t, &delegate, got.Delegate)
	require.EqualValues(t, 1_000, got.DelegatedAmount)
	require.True(t, got.IsInitialized)
	require.False(t, got.IsFrozen)
	require.True(t, got.IsNative)
	require.Equal(t, &reserve, got.RentExemptReserve)
	require.Nil(t, got.CloseAuthority)
}

func TestTokenAccountLayoutFrozen(t *testing.T) {
	data := encodeTokenAccount(t, token.Account{State: token.Frozen})

	got, err := TokenAccountLayout{}.Decode(data)
	require.NoError(t, err)
	require.True(t, got.IsInitialized)
	require.True(t, got.IsFrozen)
	require.False(t, got.IsNative)
	require.Nil(t, got.RentExemptReserve)
	require.Nil(t, got.Delegate)
}

func TestTokenAccountLayoutShort(t *testing.T) {
	_, err := TokenAccountLayout{}.Decode(make([]byte, tokenAccountSize-1))
	require.Error(t, err)
}

func TestGetTokenAccount(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	data := encodeTokenAccount(t, token.Account{Owner: owner, Amount: 9, State: token.Initialized})
	address := solana.NewWallet().PublicKey()

	client, methods := newTestRPC(t, map[string]string{
		"getAccountInfo": accountInfoResult(solana.TokenProgramID, data),
	})

	got, err := GetTokenAccount(context.Background(), client, address, "")
	require.NoError(t, err)
	require.Equal(t, address, got.Address)
	require.Equal(t, owner, got.Owner)
	require.EqualValues(t, 9, got.Amount)
	require.Equal(t, []string{"getAccountInfo"}, methods())
}

func TestGetTokenAccountMissing(t *testing.T) {
	client, _ := newTestRPC(t, map[string]string{
		"getAccountInfo": `{"context":{"slot":1},"value":null}`,
	})

	got, err := GetTokenAccount(context.Background(), client, solana.NewWallet().PublicKey(), "")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetMint(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBinEncoder(buf).Encode(token.Mint{
		MintAuthority: &authority,
		Supply:        1_000_000,
		Decimals:      6,
		IsInitialized: true,
	}))
	require.Len(t, buf.Bytes(), token.MINT_SIZE)

	address := solana.NewWallet().PublicKey()
	client, _ := newTestRPC(t, map[string]string{
		"getAccountInfo": accountInfoResult(solana.TokenProgramID, buf.Bytes()),
	})

	got, err := GetMint(context.Background(), client, address, "")
	require.NoError(t, err)
	require.Equal(t, address, got.Address)
	require.Equal(t, solana.TokenProgramID, got.Owner)
	require.EqualValues(t, 6, got.Decimals)
	require.EqualValues(t, 1_000_000, got.Supply)
	require.Equal(t, &authority, got.MintAuthority)
	require.Nil(t, got.FreezeAuthority)
}
