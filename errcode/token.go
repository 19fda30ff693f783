package errcode

import "fmt"

// TokenError is the SPL token program error enum.
type TokenError uint32

const (
	TokenNotRentExempt TokenError = iota
	TokenInsufficientFunds
	TokenInvalidMint
	TokenMintMismatch
	TokenOwnerMismatch
	TokenFixedSupply
	TokenAlreadyInUse
	TokenInvalidNumberOfProvidedSigners
	TokenInvalidNumberOfRequiredSigners
	TokenUninitializedState
	TokenNativeNotSupported
	TokenNonNativeHasBalance
	TokenInvalidInstruction
	TokenInvalidState
	TokenOverflow
	TokenAuthorityTypeNotSupported
	TokenMintCannotFreeze
	TokenAccountFrozen
	TokenMintDecimalsMismatch
	TokenNonNativeNotSupported
)

var tokenErrorMessages = [...]string{
	TokenNotRentExempt:                  "Lamport balance below rent-exempt threshold",
	TokenInsufficientFunds:              "Insufficient funds",
	TokenInvalidMint:                    "Invalid Mint",
	TokenMintMismatch:                   "Account not associated with this Mint",
	TokenOwnerMismatch:                  "Owner does not match",
	TokenFixedSupply:                    "Fixed supply",
	TokenAlreadyInUse:                   "Already in use",
	TokenInvalidNumberOfProvidedSigners: "Invalid number of provided signers",
	TokenInvalidNumberOfRequiredSigners: "Invalid number of required signers",
	TokenUninitializedState:             "State is unititialized",
	TokenNativeNotSupported:             "Instruction does not support native tokens",
	TokenNonNativeHasBalance:            "Non-native account can only be closed if its balance is zero",
	TokenInvalidInstruction:             "Invalid instruction",
	TokenInvalidState:                   "State is invalid for requested operation",
	TokenOverflow:                       "Operation overflowed",
	TokenAuthorityTypeNotSupported:      "Account does not support specified authority type",
	TokenMintCannotFreeze:               "This token mint cannot freeze accounts",
	TokenAccountFrozen:                  "Account is frozen",
	TokenMintDecimalsMismatch:           "The provided decimals value different from the Mint decimals",
	TokenNonNativeNotSupported:          "Instruction does not support non-native tokens",
}

func (e TokenError) Valid() bool {
	return int(e) < len(tokenErrorMessages)
}

func (e TokenError) String() string {
	if !e.Valid() {
		return fmt.Sprintf("TokenError(%d)", uint32(e))
	}
	return tokenErrorMessages[e]
}

func decodeTokenError(code uint32) (string, bool) {
	e := TokenError(code)
	if !e.Valid() {
		return "", false
	}
	return e.String(), true
}
