package program

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

var littleEndianHost = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// checked layouts, reflect.Type -> error
var layouts sync.Map

// CheckLayout reports whether values of t can be read straight from account
// bytes. Accepted are fixed width integers, floats, arrays of them and
// structs of them without padding. bool is rejected since only 0 and 1 are
// valid bit patterns. The host must be little-endian.
func CheckLayout(t reflect.Type) error {
	if !littleEndianHost {
		return fmt.Errorf("%w: big-endian host", ErrInvalidLayout)
	}
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrInvalidLayout)
	}
	return checkPlain(t, t.String())
}

func checkLayoutOf(t reflect.Type) error {
	if v, ok := layouts.Load(t); ok {
		if v == nil {
			return nil
		}
		return v.(error)
	}
	err := CheckLayout(t)
	layouts.Store(t, err)
	return err
}

func checkPlain(t reflect.Type, path string) error {
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil

	case reflect.Array:
		return checkPlain(t.Elem(), path+"[]")

	case reflect.Struct:
		var sum uintptr
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := checkPlain(f.Type, path+"."+f.Name); err != nil {
				return err
			}
			sum += f.Type.Size()
		}
		if sum != t.Size() {
			return fmt.Errorf("%w: %s has %d bytes of padding", ErrInvalidLayout, path, t.Size()-sum)
		}
		return nil

	default:
		return fmt.Errorf("%w: %s is %s", ErrInvalidLayout, path, t.Kind())
	}
}
