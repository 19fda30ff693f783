package program

import (
	"fmt"
	"reflect"
	"unsafe"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// RawAccount is an undecoded account as returned by getProgramAccounts.
type RawAccount struct {
	Pubkey solana.PublicKey
	Data   []byte
}

// ProgramAccount pairs a decoded account with its address.
type ProgramAccount[T any] struct {
	Pubkey  solana.PublicKey
	Account *T
}

// DecodeSchema decodes a full account, tag included, through T's own Borsh decoder.
func DecodeSchema[T any, PT interface {
	*T
	SchemaAccount
}](data []byte) (*T, error) {
	v := new(T)
	want := PT(v).Discriminator()
	if len(data) < DiscriminatorSize {
		return nil, fmt.Errorf("%w: %T: %d bytes, no discriminator", ErrDecode, *v, len(data))
	}
	if !want.Equal(data[:DiscriminatorSize]) {
		return nil, fmt.Errorf("%w: %T: %w: got %x, want %x",
			ErrDecode, *v, ErrDiscriminatorMismatch, data[:DiscriminatorSize], want[:])
	}

	if err := PT(v).UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrDecode, *v, err)
	}
	return v, nil
}

// DecodeSchemaBatch decodes every account or none. Order and pairing follow raw.
func DecodeSchemaBatch[T any, PT interface {
	*T
	SchemaAccount
}](raw []RawAccount) ([]ProgramAccount[T], error) {
	out := make([]ProgramAccount[T], 0, len(raw))
	for _, r := range raw {
		v, err := DecodeSchema[T, PT](r.Data)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", r.Pubkey, err)
		}
		out = append(out, ProgramAccount[T]{Pubkey: r.Pubkey, Account: v})
	}
	return out, nil
}

// DecodeFixed copies the sizeof(T) bytes that follow the tag into a T.
// data must hold at least DiscriminatorSize+sizeof(T) bytes and T must pass
// CheckLayout; it panics otherwise. The tag itself is not checked.
func DecodeFixed[T any](data []byte) T {
	var v T
	if err := checkLayoutOf(reflect.TypeOf(&v).Elem()); err != nil {
		panic(err)
	}
	size := int(unsafe.Sizeof(v))
	payload := data[DiscriminatorSize : DiscriminatorSize+size]
	if size > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), size), payload)
	}
	return v
}

// ViewFixed returns a T that aliases data, without copying. The result is
// only valid while data is alive and unmodified.
func ViewFixed[T any](data []byte) (*T, error) {
	var zero T
	if err := checkLayoutOf(reflect.TypeOf(&zero).Elem()); err != nil {
		return nil, err
	}
	size := int(unsafe.Sizeof(zero))
	if len(data) < DiscriminatorSize+size {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrShortBuffer, len(data), DiscriminatorSize+size)
	}

	p := unsafe.Pointer(unsafe.SliceData(data[DiscriminatorSize:]))
	if align := unsafe.Alignof(zero); uintptr(p)%align != 0 {
		return nil, fmt.Errorf("%w: %T needs %d byte alignment", ErrMisaligned, zero, align)
	}
	return (*T)(p), nil
}

// DecodeFixedBatch copies every account into a T. Accounts whose length is
// not exactly DiscriminatorSize+sizeof(T) fail the whole batch.
func DecodeFixedBatch[T any](raw []RawAccount) ([]ProgramAccount[T], error) {
	size, err := FixedDataSize[T]()
	if err != nil {
		return nil, err
	}

	out := make([]ProgramAccount[T], 0, len(raw))
	for _, r := range raw {
		if uint64(len(r.Data)) != size {
			return nil, fmt.Errorf("account %s: %w: %d bytes, want %d", r.Pubkey, ErrDecode, len(r.Data), size)
		}
		v := DecodeFixed[T](r.Data)
		out = append(out, ProgramAccount[T]{Pubkey: r.Pubkey, Account: &v})
	}
	return out, nil
}
