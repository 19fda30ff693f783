package program

import (
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	vaultTag = AccountDiscriminator("Vault")
	poolTag  = AccountDiscriminator("Pool")
)

// vault is a Borsh encoded account of 8+32+8+1+1 bytes.
type vault struct {
	Owner   solana.PublicKey
	Balance uint64
	Bump    uint8
	Open    bool
}

func (*vault) Discriminator() bin.TypeID { return vaultTag }

func (v *vault) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(v.Owner[:], false); err != nil {
		return err
	}
	if err := enc.WriteUint64(v.Balance, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint8(v.Bump); err != nil {
		return err
	}
	return enc.WriteBool(v.Open)
}

func (v *vault) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if err = ReadDiscriminator(dec, vaultTag); err != nil {
		return err
	}
	owner, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	copy(v.Owner[:], owner)
	if v.Balance, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if v.Bump, err = dec.ReadUint8(); err != nil {
		return err
	}
	v.Open, err = dec.ReadBool()
	return err
}

// pool is a fixed layout account with a 40 byte payload.
type pool struct {
	Mint   solana.PublicKey
	Amount uint64
}

func (pool) Discriminator() bin.TypeID { return poolTag }

// padded has 7 bytes of padding after Flag.
type padded struct {
	Flag   uint8
	Amount uint64
}

func (padded) Discriminator() bin.TypeID { return AccountDiscriminator("Padded") }

func poolBytes(mint solana.PublicKey, amount uint64) []byte {
	data := make([]byte, 0, 48)
	data = append(data, poolTag[:]...)
	data = append(data, mint[:]...)
	return binary.LittleEndian.AppendUint64(data, amount)
}
