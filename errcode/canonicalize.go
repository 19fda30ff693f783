package errcode

import (
	"errors"
	"strconv"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// preflightFailureCode is JSON_RPC_SERVER_ERROR_SEND_TRANSACTION_PREFLIGHT_FAILURE.
const preflightFailureCode = -32002

// SimulationError carries the err field of a failed simulateTransaction result.
type SimulationError struct {
	Err  interface{}
	Logs []string
}

func (e *SimulationError) Error() string {
	raw, err := json.Marshal(e.Err)
	if err != nil {
		return "transaction simulation failed"
	}
	return "transaction simulation failed: " + string(raw)
}

// Error is a failure rewritten for display. Err is the original failure.
type Error struct {
	Code    uint32
	HasCode bool
	Domain  Domain
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

type options struct {
	label string
}

// Option tunes Canonicalize.
type Option func(*options)

// WithLabel sets the prefix used for codes resolved by the application decoder.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// Code extracts the custom program error code of a failed instruction.
// Network failures and every other transaction error report false.
func Code(err error) (uint32, bool) {
	if err == nil {
		return 0, false
	}

	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		if rpcErr.Code != preflightFailureCode {
			return 0, false
		}
		return customCode(rpcErr.Data, "err.InstructionError")
	}

	var simErr *SimulationError
	if errors.As(err, &simErr) {
		return customCode(simErr.Err, "InstructionError")
	}

	return 0, false
}

// customCode probes {"InstructionError":[index,{"Custom":N}]} at path.
func customCode(v interface{}, path string) (uint32, bool) {
	if v == nil {
		return 0, false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return 0, false
	}

	ixErr := gjson.GetBytes(raw, path)
	if !ixErr.IsArray() {
		return 0, false
	}
	custom := ixErr.Get("1.Custom")
	if custom.Type != gjson.Number {
		return 0, false
	}
	code, err := strconv.ParseUint(custom.Raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(code), true
}

// Canonicalize rewrites err into an *Error. Without a custom code the message
// is err's own text. A nil err yields nil.
func Canonicalize(err error, app Decoder, opts ...Option) error {
	if err == nil {
		return nil
	}
	o := &options{label: DefaultAppLabel}
	for _, fn := range opts {
		fn(o)
	}

	code, ok := Code(err)
	if !ok {
		return &Error{Domain: DomainNone, Message: err.Error(), Err: err}
	}

	domain, msg := Classify(code, app, o.label)
	return &Error{
		Code:    code,
		HasCode: true,
		Domain:  domain,
		Message: msg,
		Err:     err,
	}
}
