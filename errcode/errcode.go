// Package errcode turns failed transaction submissions into readable errors.
//
// A custom program error code is pulled out of the RPC failure (preflight
// simulation or an explicit simulation result) and classified against an
// ordered range table: SPL token errors, Anchor framework errors, then an
// application decoder supplied by the caller. Classification never fails.
package errcode

import (
	"fmt"
)

// ErrorCodeOffset is the first code an Anchor program may use for its own errors.
const ErrorCodeOffset uint32 = 6000

// DefaultAppLabel prefixes codes resolved by the application decoder.
const DefaultAppLabel = "program"

// Domain identifies which error family produced a message.
type Domain uint8

const (
	// DomainNone means the failure carried no custom program code.
	DomainNone Domain = iota
	DomainToken
	DomainFramework
	DomainApplication
	DomainUnknown
)

func (d Domain) String() string {
	switch d {
	case DomainNone:
		return "none"
	case DomainToken:
		return "token"
	case DomainFramework:
		return "framework"
	case DomainApplication:
		return "application"
	case DomainUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Domain(%d)", uint8(d))
	}
}

// Decoder resolves an application error code to its message.
// It reports false when the code is not one of its variants.
type Decoder interface {
	DecodeCode(code uint32) (string, bool)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc func(code uint32) (string, bool)

func (f DecoderFunc) DecodeCode(code uint32) (string, bool) {
	if f == nil {
		return "", false
	}
	return f(code)
}

// Table is a fixed code to message mapping.
type Table map[uint32]string

func (t Table) DecodeCode(code uint32) (string, bool) {
	msg, ok := t[code]
	return msg, ok
}

// EnumDecoder accepts only the listed variants and renders them with String.
// Any other code is rejected instead of being cast into E.
func EnumDecoder[E interface {
	~uint32
	fmt.Stringer
}](variants ...E) Decoder {
	known := make(map[uint32]E, len(variants))
	for _, v := range variants {
		known[uint32(v)] = v
	}
	return DecoderFunc(func(code uint32) (string, bool) {
		v, ok := known[code]
		if !ok {
			return "", false
		}
		return v.String(), true
	})
}

// Range binds the half-open interval [Lo, Hi) to a checked decoder.
type Range struct {
	Lo     uint32
	Hi     uint32
	Domain Domain
	Label  string
	Decode func(code uint32) (string, bool)
}

func (r Range) contains(code uint32) bool {
	return code >= r.Lo && code < r.Hi
}

var builtinRanges = [...]Range{
	{Lo: 0, Hi: 20, Domain: DomainToken, Label: "spl token", Decode: decodeTokenError},
	{Lo: 100, Hi: ErrorCodeOffset, Domain: DomainFramework, Label: "anchor", Decode: decodeAnchorError},
}

// Ranges returns a copy of the built-in range table in evaluation order.
func Ranges() []Range {
	out := make([]Range, len(builtinRanges))
	copy(out, builtinRanges[:])
	return out
}

// Classify resolves code against the built-in ranges, then app, then the
// catch-all. A range whose table has no entry for code falls through.
func Classify(code uint32, app Decoder, appLabel string) (Domain, string) {
	for _, r := range builtinRanges {
		if !r.contains(code) {
			continue
		}
		if msg, ok := r.Decode(code); ok {
			return r.Domain, fmt.Sprintf("%s error: %s", r.Label, msg)
		}
	}

	if app != nil {
		if msg, ok := app.DecodeCode(code); ok {
			if appLabel == "" {
				appLabel = DefaultAppLabel
			}
			return DomainApplication, fmt.Sprintf("%s error: %s", appLabel, msg)
		}
	}

	return DomainUnknown, fmt.Sprintf("unknown code: %d", code)
}

// FormatCode renders code with the default application label.
func FormatCode(code uint32, app Decoder) string {
	_, msg := Classify(code, app, DefaultAppLabel)
	return msg
}
