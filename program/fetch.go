package program

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// FetchRaw issues a single getProgramAccounts call with filters and returns
// the accounts undecoded.
func (p *Program) FetchRaw(ctx context.Context, filters []rpc.RPCFilter) ([]RawAccount, error) {
	opts := &rpc.GetProgramAccountsOpts{
		Commitment: p.commitment,
		Encoding:   solana.EncodingBase64,
		Filters:    filters,
	}

	outs, err := p.client.GetProgramAccountsWithOpts(ctx, p.id, opts)
	if err != nil {
		p.logger.Warn("getProgramAccounts failed",
			zap.Stringer("program", p.id),
			zap.Int("filters", len(filters)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: getProgramAccounts %s: %w", ErrTransport, p.id, err)
	}

	raws := make([]RawAccount, 0, len(outs))
	for _, out := range outs {
		if out == nil || out.Account == nil || out.Account.Data == nil {
			return nil, fmt.Errorf("%w: getProgramAccounts %s: account without data", ErrTransport, p.id)
		}
		raws = append(raws, RawAccount{
			Pubkey: out.Pubkey,
			Data:   out.Account.Data.GetBinary(),
		})
	}

	p.logger.Debug("fetched program accounts",
		zap.Stringer("program", p.id),
		zap.String("commitment", string(p.commitment)),
		zap.Int("filters", len(filters)),
		zap.Int("accounts", len(raws)),
	)
	return raws, nil
}

// GetProgramAccounts returns every account of type T owned by p that matches
// filters, decoded through T's Borsh schema.
func GetProgramAccounts[T any, PT interface {
	*T
	SchemaAccount
}](ctx context.Context, p *Program, filters ...rpc.RPCFilterMemcmp) ([]ProgramAccount[T], error) {
	rpcFilters, err := SchemaFilters[T, PT](filters...)
	if err != nil {
		return nil, err
	}
	raws, err := p.FetchRaw(ctx, rpcFilters)
	if err != nil {
		return nil, err
	}
	return DecodeSchemaBatch[T, PT](raws)
}

// GetProgramAccountsZeroCopy is GetProgramAccounts for fixed layout accounts.
// The layout of T is checked before any request is made.
func GetProgramAccountsZeroCopy[T any, PT interface {
	*T
	Account
}](ctx context.Context, p *Program, filters ...rpc.RPCFilterMemcmp) ([]ProgramAccount[T], error) {
	rpcFilters, err := FixedFilters[T, PT](filters...)
	if err != nil {
		return nil, err
	}
	raws, err := p.FetchRaw(ctx, rpcFilters)
	if err != nil {
		return nil, err
	}
	return DecodeFixedBatch[T](raws)
}
