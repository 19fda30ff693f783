package solana

import (
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

var (
	ataCreateTypeID    = bin.NoTypeIDDefaultID
	transferTypeID     = bin.TypeIDFromUint32(system.Instruction_Transfer, binary.LittleEndian)
	syncNativeTypeID   = bin.TypeIDFromUint8(token.Instruction_SyncNative)
	closeAccountTypeID = bin.TypeIDFromUint8(token.Instruction_CloseAccount)
)

type mergeKind uint8

const (
	mergeNone mergeKind = iota
	// later copies are dropped
	mergeDrop
	// later copies add their lamports to the first one
	mergeLamports
)

type mergeKey struct {
	program  solana.PublicKey
	typeID   bin.TypeID
	accounts string
}

func mergeKindOf(ix solana.Instruction) (mergeKind, bin.TypeID) {
	switch inst := ix.(type) {
	case *associatedtokenaccount.Instruction:
		if inst.TypeID == ataCreateTypeID {
			return mergeDrop, inst.TypeID
		}
	case *system.Instruction:
		if inst.TypeID == transferTypeID {
			return mergeLamports, inst.TypeID
		}
	case *token.Instruction:
		if inst.TypeID == syncNativeTypeID || inst.TypeID == closeAccountTypeID {
			return mergeDrop, inst.TypeID
		}
	}
	return mergeNone, bin.TypeID{}
}

func transferLamports(ix solana.Instruction) (uint64, bool) {
	inst, ok := ix.(*system.Instruction)
	if !ok {
		return 0, false
	}
	var lamports *uint64
	switch t := inst.Impl.(type) {
	case system.Transfer:
		lamports = t.Lamports
	case *system.Transfer:
		lamports = t.Lamports
	}
	if lamports == nil {
		return 0, false
	}
	return *lamports, true
}

// MergeInstructions removes the setup and teardown instructions that helpers
// append independently: repeated ATA creations, SyncNative and CloseAccount
// on the same accounts are kept once, and system transfers between the same
// pair of accounts are folded into the first. Relative order is preserved and
// the input instructions are not modified.
func MergeInstructions(instructions []solana.Instruction) []solana.Instruction {
	seen := make(map[mergeKey]int)
	out := make([]solana.Instruction, 0, len(instructions))

	for _, ix := range instructions {
		kind, typeID := mergeKindOf(ix)
		if kind == mergeNone {
			out = append(out, ix)
			continue
		}

		accounts := ix.Accounts()
		raw := make([]byte, 0, len(accounts)*solana.PublicKeyLength)
		for _, meta := range accounts {
			raw = append(raw, meta.PublicKey[:]...)
		}
		key := mergeKey{program: ix.ProgramID(), typeID: typeID, accounts: string(raw)}

		first, dup := seen[key]
		if !dup {
			seen[key] = len(out)
			out = append(out, ix)
			continue
		}

		if kind == mergeLamports {
			a, okA := transferLamports(out[first])
			b, okB := transferLamports(ix)
			if !okA || !okB || len(accounts) < 2 {
				out = append(out, ix)
				continue
			}
			out[first] = system.NewTransferInstruction(a+b, accounts[0].PublicKey, accounts[1].PublicKey).Build()
		}
	}
	return out
}
