package solana

import (
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	// Token-2022 pads a mint to the token account size before its extensions.
	extensionsOffset       = tokenAccountSize
	accountTypeMint  uint8 = 1

	extensionTransferFeeConfig uint16 = 1
	transferFeeConfigSize             = 108

	maxFeeBasisPoints = 10_000
)

// TransferFee is the fee a Token-2022 mint charges from Epoch on.
type TransferFee struct {
	Epoch       uint64
	MaximumFee  uint64
	BasisPoints uint16
}

// Calculate returns the fee withheld on a transfer of amount, capped at
// MaximumFee.
func (f TransferFee) Calculate(amount uint64) uint64 {
	if f.BasisPoints == 0 || amount == 0 {
		return 0
	}
	// ceil(amount * bps / 10000)
	fee := new(big.Int).SetUint64(amount)
	fee.Mul(fee, big.NewInt(int64(f.BasisPoints)))
	fee.Add(fee, big.NewInt(maxFeeBasisPoints-1))
	fee.Div(fee, big.NewInt(maxFeeBasisPoints))
	if fee.IsUint64() && fee.Uint64() < f.MaximumFee {
		return fee.Uint64()
	}
	return f.MaximumFee
}

// TransferFeeConfig is the transfer fee extension of a Token-2022 mint.
type TransferFeeConfig struct {
	ConfigAuthority   *solana.PublicKey
	WithdrawAuthority *solana.PublicKey
	WithheldAmount    uint64
	OlderTransferFee  TransferFee
	NewerTransferFee  TransferFee
}

// EpochFee returns the fee in force at epoch. A nil config charges nothing.
func (c *TransferFeeConfig) EpochFee(epoch uint64) TransferFee {
	if c == nil {
		return TransferFee{}
	}
	if epoch >= c.NewerTransferFee.Epoch {
		return c.NewerTransferFee
	}
	return c.OlderTransferFee
}

// ParseTransferFeeConfig walks the extension list of a Token-2022 mint.
// Mints without extensions, or without a transfer fee, yield nil.
func ParseTransferFeeConfig(data []byte) (*TransferFeeConfig, error) {
	if len(data) <= extensionsOffset {
		return nil, nil
	}
	if data[extensionsOffset] != accountTypeMint {
		return nil, fmt.Errorf("account type %d is not a mint", data[extensionsOffset])
	}

	dec := bin.NewBinDecoder(data[extensionsOffset+1:])
	for dec.Remaining() >= 4 {
		kind, err := dec.ReadUint16(bin.LE)
		if err != nil {
			return nil, err
		}
		length, err := dec.ReadUint16(bin.LE)
		if err != nil {
			return nil, err
		}
		if int(length) > dec.Remaining() {
			return nil, fmt.Errorf("extension %d: %d bytes, %d left", kind, length, dec.Remaining())
		}
		if kind != extensionTransferFeeConfig {
			if err := dec.SkipBytes(uint(length)); err != nil {
				return nil, err
			}
			continue
		}
		if length != transferFeeConfigSize {
			return nil, fmt.Errorf("transfer fee config: %d bytes, want %d", length, transferFeeConfigSize)
		}
		return readTransferFeeConfig(dec)
	}
	return nil, nil
}

func readTransferFeeConfig(dec *bin.Decoder) (*TransferFeeConfig, error) {
	var (
		cfg TransferFeeConfig
		err error
	)
	if cfg.ConfigAuthority, err = readOptionalKey(dec); err != nil {
		return nil, err
	}
	if cfg.WithdrawAuthority, err = readOptionalKey(dec); err != nil {
		return nil, err
	}
	if cfg.WithheldAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, err
	}
	if cfg.OlderTransferFee, err = readTransferFee(dec); err != nil {
		return nil, err
	}
	if cfg.NewerTransferFee, err = readTransferFee(dec); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readOptionalKey reads a 32 byte key where all zeroes means none.
func readOptionalKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	raw, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, err
	}
	key := solana.PublicKeyFromBytes(raw)
	if key.IsZero() {
		return nil, nil
	}
	return &key, nil
}

func readTransferFee(dec *bin.Decoder) (TransferFee, error) {
	var (
		fee TransferFee
		err error
	)
	if fee.Epoch, err = dec.ReadUint64(bin.LE); err != nil {
		return fee, err
	}
	if fee.MaximumFee, err = dec.ReadUint64(bin.LE); err != nil {
		return fee, err
	}
	if fee.BasisPoints, err = dec.ReadUint16(bin.LE); err != nil {
		return fee, err
	}
	return fee, nil
}

// isToken2022 reports whether owner is the Token-2022 program.
func isToken2022(owner solana.PublicKey) bool {
	return owner.Equals(solana.Token2022ProgramID)
}
