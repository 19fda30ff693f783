package program

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/krazyTry/anchorx-go/errcode"
)

type fakeGetter struct {
	calls int
	opts  *rpc.GetProgramAccountsOpts
	out   rpc.GetProgramAccountsResult
	err   error
}

func (f *fakeGetter) GetProgramAccountsWithOpts(
	_ context.Context,
	_ solana.PublicKey,
	opts *rpc.GetProgramAccountsOpts,
) (rpc.GetProgramAccountsResult, error) {
	f.calls++
	f.opts = opts
	return f.out, f.err
}

func keyed(key solana.PublicKey, data []byte) *rpc.KeyedAccount {
	return &rpc.KeyedAccount{
		Pubkey: key,
		Account: &rpc.Account{
			Data: rpc.DataBytesOrJSONFromBytes(data),
		},
	}
}

func TestNewProgramDefaults(t *testing.T) {
	id := solana.NewWallet().PublicKey()
	getter := &fakeGetter{}
	p := NewProgram(id, getter)
	require.Equal(t, id, p.ID())
	require.Equal(t, rpc.CommitmentConfirmed, p.Commitment())
	require.Equal(t, getter, p.RPC())

	p = NewProgram(id, getter, WithCommitment(rpc.CommitmentFinalized), WithCommitment(""))
	require.Equal(t, rpc.CommitmentFinalized, p.Commitment())
}

func TestFetchRaw(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	getter := &fakeGetter{
		out: rpc.GetProgramAccountsResult{keyed(mint, poolBytes(mint, 9))},
	}
	core, logs := observer.New(zap.DebugLevel)
	p := NewProgram(solana.NewWallet().PublicKey(), getter, WithLogger(zap.New(core)))

	filters, err := FixedFilters[pool]()
	require.NoError(t, err)
	raws, err := p.FetchRaw(context.Background(), filters)
	require.NoError(t, err)
	require.Equal(t, []RawAccount{{Pubkey: mint, Data: poolBytes(mint, 9)}}, raws)

	require.Equal(t, 1, getter.calls)
	require.Equal(t, solana.EncodingBase64, getter.opts.Encoding)
	require.Equal(t, rpc.CommitmentConfirmed, getter.opts.Commitment)
	require.Equal(t, filters, getter.opts.Filters)
	require.Equal(t, 1, logs.FilterMessage("fetched program accounts").Len())
}

func TestFetchRawTransportError(t *testing.T) {
	refused := errors.New("dial tcp 127.0.0.1:8899: connect: connection refused")
	getter := &fakeGetter{err: refused}
	core, logs := observer.New(zap.WarnLevel)
	p := NewProgram(solana.NewWallet().PublicKey(), getter, WithLogger(zap.New(core)))

	got, err := GetProgramAccounts[vault](context.Background(), p)
	require.ErrorIs(t, err, ErrTransport)
	require.ErrorIs(t, err, refused)
	require.Nil(t, got)
	require.Equal(t, 1, getter.calls, "transport failures are not retried")
	require.Equal(t, 1, logs.Len())

	// no custom code, so the canonical form is the failure itself
	require.Equal(t, err.Error(), p.Canonicalize(err).Error())
}

func TestFetchRawNullResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":null}`)
	}))
	defer srv.Close()

	p := NewProgram(solana.NewWallet().PublicKey(), rpc.New(srv.URL))
	raws, err := p.FetchRaw(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, raws)
}

func TestFetchRawMissingData(t *testing.T) {
	getter := &fakeGetter{out: rpc.GetProgramAccountsResult{{Pubkey: solana.NewWallet().PublicKey()}}}
	p := NewProgram(solana.NewWallet().PublicKey(), getter)
	_, err := p.FetchRaw(context.Background(), nil)
	require.ErrorIs(t, err, ErrTransport)
}

func TestGetProgramAccountsZeroCopy(t *testing.T) {
	a, b := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	getter := &fakeGetter{out: rpc.GetProgramAccountsResult{
		keyed(a, poolBytes(a, 1)),
		keyed(b, poolBytes(b, 2)),
	}}
	p := NewProgram(solana.NewWallet().PublicKey(), getter)

	got, err := GetProgramAccountsZeroCopy[pool](context.Background(), p, PublicKeyFilter(a, 8))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, a, got[0].Pubkey)
	require.EqualValues(t, 1, got[0].Account.Amount)
	require.Equal(t, b, got[1].Account.Mint)
	require.Len(t, getter.opts.Filters, 3)
}

func TestGetProgramAccountsZeroCopyChecksLayoutFirst(t *testing.T) {
	getter := &fakeGetter{}
	p := NewProgram(solana.NewWallet().PublicKey(), getter)

	_, err := GetProgramAccountsZeroCopy[padded](context.Background(), p)
	require.ErrorIs(t, err, ErrInvalidLayout)
	require.Zero(t, getter.calls)
}

func TestGetProgramAccountsOverRPC(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	first := &vault{Owner: solana.NewWallet().PublicKey(), Balance: 10, Open: true}
	second := &vault{Owner: solana.NewWallet().PublicKey(), Balance: 20, Bump: 1}

	var accounts []string
	for _, v := range []*vault{first, second} {
		data, err := EncodeAccount(v)
		require.NoError(t, err)
		accounts = append(accounts, fmt.Sprintf(
			`{"pubkey":%q,"account":{"data":[%q,"base64"],"executable":false,"lamports":1238880,"owner":%q,"rentEpoch":0,"space":%d}}`,
			v.Owner, base64.StdEncoding.EncodeToString(data), programID, len(data),
		))
	}

	requests := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- body
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":[`+strings.Join(accounts, ",")+`]}`)
	}))
	defer srv.Close()

	p := NewProgram(programID, rpc.New(srv.URL), WithCommitment(rpc.CommitmentProcessed))
	got, err := GetProgramAccounts[vault](context.Background(), p, PublicKeyFilter(first.Owner, 8))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, first.Owner, got[0].Pubkey)
	require.Equal(t, first, got[0].Account)
	require.Equal(t, second, got[1].Account)

	req := gjson.ParseBytes(<-requests)
	require.Equal(t, "getProgramAccounts", req.Get("method").String())
	require.Equal(t, programID.String(), req.Get("params.0").String())
	cfg := req.Get("params.1")
	require.Equal(t, "base64", cfg.Get("encoding").String())
	require.Equal(t, "processed", cfg.Get("commitment").String())
	require.EqualValues(t, 3, cfg.Get("filters.#").Int())
	require.EqualValues(t, 50, cfg.Get("filters.0.dataSize").Int())
	require.EqualValues(t, 0, cfg.Get("filters.1.memcmp.offset").Int())
	require.Equal(t, solana.Base58(vaultTag[:]).String(), cfg.Get("filters.1.memcmp.bytes").String())
	require.EqualValues(t, 8, cfg.Get("filters.2.memcmp.offset").Int())
	require.Equal(t, first.Owner.String(), cfg.Get("filters.2.memcmp.bytes").String())
}

func TestCanonicalizeWithProgramDecoder(t *testing.T) {
	p := NewProgram(
		solana.NewWallet().PublicKey(),
		&fakeGetter{},
		WithCodeDecoder(errcode.Table{6003: "Vault is closed"}),
		WithAppLabel("vault"),
	)
	failure := &jsonrpc.RPCError{
		Code: -32002,
		Data: map[string]interface{}{
			"err": map[string]interface{}{
				"InstructionError": []interface{}{0, map[string]interface{}{"Custom": 6003}},
			},
		},
	}
	require.Equal(t, "vault error: Vault is closed", p.Canonicalize(failure).Error())
	require.NoError(t, p.Canonicalize(nil))
}
