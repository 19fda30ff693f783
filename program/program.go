// Package program fetches and decodes the accounts owned by an Anchor program.
//
// A query always carries two generated filters, the exact account size and
// the type tag at offset 0, followed by the caller's own memcmp filters.
// Accounts come back either through the Borsh schema path
// (GetProgramAccounts) or the zero-copy path (GetProgramAccountsZeroCopy).
package program

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/krazyTry/anchorx-go/errcode"
	"go.uber.org/zap"
)

// AccountsGetter is the part of *rpc.Client the fetch engine needs.
type AccountsGetter interface {
	GetProgramAccountsWithOpts(
		ctx context.Context,
		publicKey solana.PublicKey,
		opts *rpc.GetProgramAccountsOpts,
	) (rpc.GetProgramAccountsResult, error)
}

// Program binds a program ID to the RPC connection used to query it.
type Program struct {
	id         solana.PublicKey
	client     AccountsGetter
	commitment rpc.CommitmentType
	logger     *zap.Logger
	decoder    errcode.Decoder
	appLabel   string
}

func NewProgram(
	programID solana.PublicKey,
	client AccountsGetter,
	opts ...Option,
) *Program {
	p := &Program{
		id:         programID,
		client:     client,
		commitment: rpc.CommitmentConfirmed,
		logger:     zap.NewNop(),
		appLabel:   errcode.DefaultAppLabel,
	}
	for _, fn := range opts {
		fn(p)
	}
	return p
}

type Option func(*Program)

func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(p *Program) {
		if commitment != "" {
			p.commitment = commitment
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Program) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCodeDecoder sets the decoder tried for custom error codes that are
// neither token nor framework errors.
func WithCodeDecoder(decoder errcode.Decoder) Option {
	return func(p *Program) {
		p.decoder = decoder
	}
}

// WithAppLabel sets the prefix of messages produced by the code decoder.
func WithAppLabel(label string) Option {
	return func(p *Program) {
		if label != "" {
			p.appLabel = label
		}
	}
}

func (p *Program) ID() solana.PublicKey {
	return p.id
}

func (p *Program) RPC() AccountsGetter {
	return p.client
}

func (p *Program) Commitment() rpc.CommitmentType {
	return p.commitment
}

// Canonicalize rewrites a failed transaction error using the program's
// error decoder. It never fails and returns nil for a nil err.
func (p *Program) Canonicalize(err error) error {
	return errcode.Canonicalize(err, p.decoder, errcode.WithLabel(p.appLabel))
}
