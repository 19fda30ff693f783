package errcode

import "fmt"

// AnchorError is the Anchor framework error enum. Codes are sparse.
type AnchorError uint32

const (
	InstructionMissing           AnchorError = 100
	InstructionFallbackNotFound  AnchorError = 101
	InstructionDidNotDeserialize AnchorError = 102
	InstructionDidNotSerialize   AnchorError = 103

	IdlInstructionStub           AnchorError = 1000
	IdlInstructionInvalidProgram AnchorError = 1001
	IdlAccountNotEmpty           AnchorError = 1002

	EventInstructionStub AnchorError = 1500

	ConstraintMut                         AnchorError = 2000
	ConstraintHasOne                      AnchorError = 2001
	ConstraintSigner                      AnchorError = 2002
	ConstraintRaw                         AnchorError = 2003
	ConstraintOwner                       AnchorError = 2004
	ConstraintRentExempt                  AnchorError = 2005
	ConstraintSeeds                       AnchorError = 2006
	ConstraintExecutable                  AnchorError = 2007
	ConstraintState                       AnchorError = 2008
	ConstraintAssociated                  AnchorError = 2009
	ConstraintAssociatedInit              AnchorError = 2010
	ConstraintClose                       AnchorError = 2011
	ConstraintAddress                     AnchorError = 2012
	ConstraintZero                        AnchorError = 2013
	ConstraintTokenMint                   AnchorError = 2014
	ConstraintTokenOwner                  AnchorError = 2015
	ConstraintMintMintAuthority           AnchorError = 2016
	ConstraintMintFreezeAuthority         AnchorError = 2017
	ConstraintMintDecimals                AnchorError = 2018
	ConstraintSpace                       AnchorError = 2019
	ConstraintAccountIsNone               AnchorError = 2020
	ConstraintTokenTokenProgram           AnchorError = 2021
	ConstraintMintTokenProgram            AnchorError = 2022
	ConstraintAssociatedTokenTokenProgram AnchorError = 2023

	RequireViolated        AnchorError = 2500
	RequireEqViolated      AnchorError = 2501
	RequireKeysEqViolated  AnchorError = 2502
	RequireNeqViolated     AnchorError = 2503
	RequireKeysNeqViolated AnchorError = 2504
	RequireGtViolated      AnchorError = 2505
	RequireGteViolated     AnchorError = 2506

	AccountDiscriminatorAlreadySet   AnchorError = 3000
	AccountDiscriminatorNotFound     AnchorError = 3001
	AccountDiscriminatorMismatch     AnchorError = 3002
	AccountDidNotDeserialize         AnchorError = 3003
	AccountDidNotSerialize           AnchorError = 3004
	AccountNotEnoughKeys             AnchorError = 3005
	AccountNotMutable                AnchorError = 3006
	AccountOwnedByWrongProgram       AnchorError = 3007
	InvalidProgramId                 AnchorError = 3008
	InvalidProgramExecutable         AnchorError = 3009
	AccountNotSigner                 AnchorError = 3010
	AccountNotSystemOwned            AnchorError = 3011
	AccountNotInitialized            AnchorError = 3012
	AccountNotProgramData            AnchorError = 3013
	AccountNotAssociatedTokenAccount AnchorError = 3014
	AccountSysvarMismatch            AnchorError = 3015
	AccountReallocExceedsLimit       AnchorError = 3016
	AccountDuplicateReallocs         AnchorError = 3017

	DeclaredProgramIdMismatch         AnchorError = 4100
	TryingToInitPayerAsProgramAccount AnchorError = 4101
	InvalidNumericConversion          AnchorError = 4102

	Deprecated AnchorError = 5000
)

var anchorErrorMessages = map[AnchorError]string{
	InstructionMissing:           "8 byte instruction identifier not provided",
	InstructionFallbackNotFound:  "Fallback functions are not supported",
	InstructionDidNotDeserialize: "The program could not deserialize the given instruction",
	InstructionDidNotSerialize:   "The program could not serialize the given instruction",

	IdlInstructionStub:           "The program was compiled without idl instructions",
	IdlInstructionInvalidProgram: "Invalid program given to the IDL instruction",
	IdlAccountNotEmpty:           "IDL account must be empty in order to resize, try closing first",

	EventInstructionStub: "The program was compiled without `event-cpi` feature",

	ConstraintMut:                         "A mut constraint was violated",
	ConstraintHasOne:                      "A has one constraint was violated",
	ConstraintSigner:                      "A signer constraint was violated",
	ConstraintRaw:                         "A raw constraint was violated",
	ConstraintOwner:                       "An owner constraint was violated",
	ConstraintRentExempt:                  "A rent exemption constraint was violated",
	ConstraintSeeds:                       "A seeds constraint was violated",
	ConstraintExecutable:                  "An executable constraint was violated",
	ConstraintState:                       "Deprecated Error, feel free to replace with something else",
	ConstraintAssociated:                  "An associated constraint was violated",
	ConstraintAssociatedInit:              "An associated init constraint was violated",
	ConstraintClose:                       "A close constraint was violated",
	ConstraintAddress:                     "An address constraint was violated",
	ConstraintZero:                        "Expected zero account discriminant",
	ConstraintTokenMint:                   "A token mint constraint was violated",
	ConstraintTokenOwner:                  "A token owner constraint was violated",
	ConstraintMintMintAuthority:           "A mint mint authority constraint was violated",
	ConstraintMintFreezeAuthority:         "A mint freeze authority constraint was violated",
	ConstraintMintDecimals:                "A mint decimals constraint was violated",
	ConstraintSpace:                       "A space constraint was violated",
	ConstraintAccountIsNone:               "A required account for the constraint is None",
	ConstraintTokenTokenProgram:           "A token account token program constraint was violated",
	ConstraintMintTokenProgram:            "A mint token program constraint was violated",
	ConstraintAssociatedTokenTokenProgram: "An associated token account token program constraint was violated",

	RequireViolated:        "A require expression was violated",
	RequireEqViolated:      "A require_eq expression was violated",
	RequireKeysEqViolated:  "A require_keys_eq expression was violated",
	RequireNeqViolated:     "A require_neq expression was violated",
	RequireKeysNeqViolated: "A require_keys_neq expression was violated",
	RequireGtViolated:      "A require_gt expression was violated",
	RequireGteViolated:     "A require_gte expression was violated",

	AccountDiscriminatorAlreadySet:   "The account discriminator was already set on this account",
	AccountDiscriminatorNotFound:     "No 8 byte discriminator was found on the account",
	AccountDiscriminatorMismatch:     "8 byte discriminator did not match what was expected",
	AccountDidNotDeserialize:         "Failed to deserialize the account",
	AccountDidNotSerialize:           "Failed to serialize the account",
	AccountNotEnoughKeys:             "Not enough account keys given to the instruction",
	AccountNotMutable:                "The given account is not mutable",
	AccountOwnedByWrongProgram:       "The given account is owned by a different program than expected",
	InvalidProgramId:                 "Program ID was not as expected",
	InvalidProgramExecutable:         "Program account is not executable",
	AccountNotSigner:                 "The given account did not sign",
	AccountNotSystemOwned:            "The given account is not owned by the system program",
	AccountNotInitialized:            "The program expected this account to be already initialized",
	AccountNotProgramData:            "The given account is not a program data account",
	AccountNotAssociatedTokenAccount: "The given account is not the associated token account",
	AccountSysvarMismatch:            "The given public key does not match the required sysvar",
	AccountReallocExceedsLimit:       "The account reallocation exceeds the MAX_PERMITTED_DATA_INCREASE limit",
	AccountDuplicateReallocs:         "The account was duplicated for more than one reallocation",

	DeclaredProgramIdMismatch:         "The declared program id does not match the actual program id",
	TryingToInitPayerAsProgramAccount: "You cannot/should not initialize the payer account as a program account",
	InvalidNumericConversion:          "The program could not perform the numeric conversion, out of range integral type conversion attempted",

	Deprecated: "The API being used is deprecated and should no longer be used",
}

func (e AnchorError) Valid() bool {
	_, ok := anchorErrorMessages[e]
	return ok
}

func (e AnchorError) String() string {
	if msg, ok := anchorErrorMessages[e]; ok {
		return msg
	}
	return fmt.Sprintf("AnchorError(%d)", uint32(e))
}

func decodeAnchorError(code uint32) (string, bool) {
	msg, ok := anchorErrorMessages[AnchorError(code)]
	return msg, ok
}
