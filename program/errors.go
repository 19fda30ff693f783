package program

import "errors"

var (
	// ErrTransport wraps a failed getProgramAccounts round trip. It is never retried here.
	ErrTransport = errors.New("program: rpc transport")

	// ErrFilterConstruction is returned when the expected account size of a type cannot be computed.
	ErrFilterConstruction = errors.New("program: filter construction")

	// ErrDecode aborts a whole batch when one account fails tag or schema validation.
	ErrDecode = errors.New("program: decode")

	ErrInvalidLayout         = errors.New("program: invalid fixed layout")
	ErrShortBuffer           = errors.New("program: account data too short")
	ErrMisaligned            = errors.New("program: account data misaligned")
	ErrDiscriminatorMismatch = errors.New("program: discriminator mismatch")
)
