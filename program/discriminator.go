package program

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// DiscriminatorSize is the width of the type tag that prefixes every account.
const DiscriminatorSize = bin.ACCOUNT_DISCRIMINATOR_SIZE

// Account is a record type stored by an Anchor program.
type Account interface {
	Discriminator() bin.TypeID
}

// SchemaAccount is a Borsh encoded account.
//
// MarshalWithEncoder writes the payload only, without the tag.
// UnmarshalWithDecoder receives the full account data and must check the tag
// (see ReadDiscriminator) before decoding the payload.
type SchemaAccount interface {
	Account
	bin.BinaryMarshaler
	bin.BinaryUnmarshaler
}

// AccountDiscriminator returns sha256("account:" + name)[:8].
// The name is used as is, so pass the Rust type name.
func AccountDiscriminator(name string) bin.TypeID {
	return bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, name)
}

// ReadDiscriminator consumes the tag and checks it against want.
func ReadDiscriminator(dec *bin.Decoder, want bin.TypeID) error {
	got, err := dec.ReadDiscriminator()
	if err != nil {
		return fmt.Errorf("read discriminator: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: got %x, want %x", ErrDiscriminatorMismatch, got[:], want[:])
	}
	return nil
}

// EncodeAccount returns the stored form of v: its tag followed by its payload.
func EncodeAccount(v SchemaAccount) ([]byte, error) {
	tag := v.Discriminator()

	buf := new(bytes.Buffer)
	buf.Write(tag[:])
	if err := v.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return buf.Bytes(), nil
}
