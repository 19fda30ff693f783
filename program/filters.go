package program

import (
	"bytes"
	"fmt"
	"reflect"
	"unsafe"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// BuildFilters returns the size filter, the tag filter at offset 0 and then
// the caller's filters, in that order.
func BuildFilters(dataSize uint64, tag bin.TypeID, filters []rpc.RPCFilterMemcmp) []rpc.RPCFilter {
	out := make([]rpc.RPCFilter, 0, len(filters)+2)
	out = append(out,
		rpc.RPCFilter{DataSize: dataSize},
		rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: 0,
				Bytes:  tag.Bytes(),
			},
		},
	)
	for _, f := range filters {
		out = append(out, rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: f.Offset,
				Bytes:  append(solana.Base58(nil), f.Bytes...),
			},
		})
	}
	return out
}

func Memcmp(offset uint64, value []byte) rpc.RPCFilterMemcmp {
	return rpc.RPCFilterMemcmp{
		Offset: offset,
		Bytes:  solana.Base58(value),
	}
}

// PublicKeyFilter matches accounts holding key at offset.
func PublicKeyFilter(key solana.PublicKey, offset uint64) rpc.RPCFilterMemcmp {
	return Memcmp(offset, key.Bytes())
}

// FieldFilter matches accounts of T whose field holds value.
func FieldFilter[T any](field string, value []byte) (rpc.RPCFilterMemcmp, error) {
	offset, err := FieldOffset[T](field)
	if err != nil {
		return rpc.RPCFilterMemcmp{}, err
	}
	return Memcmp(offset, value), nil
}

// SchemaDataSize is the tag width plus the Borsh size of a zero T.
// The result is only exact when T has no variable length fields.
func SchemaDataSize[T any, PT interface {
	*T
	SchemaAccount
}]() (size uint64, err error) {
	var zero T
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: encode default %T: %v", ErrFilterConstruction, zero, r)
		}
	}()

	buf := new(bytes.Buffer)
	if err := PT(&zero).MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return 0, fmt.Errorf("%w: encode default %T: %w", ErrFilterConstruction, zero, err)
	}
	return uint64(DiscriminatorSize + buf.Len()), nil
}

// FixedDataSize is the tag width plus the in-memory size of T.
func FixedDataSize[T any]() (uint64, error) {
	var zero T
	if err := checkLayoutOf(reflect.TypeOf(&zero).Elem()); err != nil {
		return 0, err
	}
	return uint64(DiscriminatorSize) + uint64(unsafe.Sizeof(zero)), nil
}

func SchemaFilters[T any, PT interface {
	*T
	SchemaAccount
}](filters ...rpc.RPCFilterMemcmp) ([]rpc.RPCFilter, error) {
	size, err := SchemaDataSize[T, PT]()
	if err != nil {
		return nil, err
	}
	return BuildFilters(size, PT(new(T)).Discriminator(), filters), nil
}

func FixedFilters[T any, PT interface {
	*T
	Account
}](filters ...rpc.RPCFilterMemcmp) ([]rpc.RPCFilter, error) {
	size, err := FixedDataSize[T]()
	if err != nil {
		return nil, err
	}
	return BuildFilters(size, PT(new(T)).Discriminator(), filters), nil
}
