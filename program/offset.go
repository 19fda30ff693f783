package program

import (
	"bytes"
	"fmt"
	"reflect"

	bin "github.com/gagliardetto/binary"
)

// FieldOffset returns the offset of field inside the stored account of T,
// tag included. Every field declared before it must have a fixed Borsh width.
func FieldOffset[T any](field string) (offset uint64, err error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return 0, fmt.Errorf("%w: %s is not a struct", ErrFilterConstruction, t)
	}

	prefix := make([]reflect.StructField, 0, t.NumField())
	found := false
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == field {
			found = true
			break
		}
		prefix = append(prefix, f)
	}
	if !found {
		return 0, fmt.Errorf("%w: %s has no field %q", ErrFilterConstruction, t, field)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: offset of %s.%s: %v", ErrFilterConstruction, t, field, r)
		}
	}()

	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(reflect.New(reflect.StructOf(prefix)).Elem().Interface()); err != nil {
		return 0, fmt.Errorf("%w: offset of %s.%s: %w", ErrFilterConstruction, t, field, err)
	}
	return uint64(DiscriminatorSize + buf.Len()), nil
}
