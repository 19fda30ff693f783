package solana

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SortTokenPair orders two mints by their bytes, the order pools derive
// their addresses with.
func SortTokenPair(a, b solana.PublicKey) (solana.PublicKey, solana.PublicKey, error) {
	switch bytes.Compare(a[:], b[:]) {
	case -1:
		return a, b, nil
	case 1:
		return b, a, nil
	default:
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("token pair uses the same mint %s twice", a)
	}
}
