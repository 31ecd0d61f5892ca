package gifprogram

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// BaseAccountName is the Anchor account type holding the shared gif list.
const BaseAccountName = "BaseAccount"

// ErrDiscriminatorMismatch means the account data does not start with the
// BaseAccount discriminator.
var ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")

// Item is one gif entry as stored on chain.
type Item struct {
	GifLink     string
	UserAddress solana.PublicKey
}

// BaseAccount is the decoded backing account.
type BaseAccount struct {
	TotalGifs uint64
	GifList   []Item
}

// DecodeBaseAccount borsh-decodes raw account data:
//
//	[8]discriminator | u64 total_gifs | u32 len | len * (string gif_link | [32]user_address)
func DecodeBaseAccount(data []byte) (*BaseAccount, error) {
	dec := bin.NewBorshDecoder(data)

	disc, err := dec.ReadNBytes(8)
	if err != nil {
		return nil, fmt.Errorf("read discriminator: %w", err)
	}
	want := AccountDiscriminator(BaseAccountName)
	if !bytes.Equal(disc, want[:]) {
		return nil, ErrDiscriminatorMismatch
	}

	total, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("read total_gifs: %w", err)
	}
	n, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("read gif_list length: %w", err)
	}
	// Each item is at least a 4-byte string length plus a 32-byte key.
	if int(n) > dec.Remaining()/36 {
		return nil, fmt.Errorf("gif_list length %d exceeds account data", n)
	}

	acct := &BaseAccount{TotalGifs: total, GifList: make([]Item, 0, n)}
	for i := uint32(0); i < n; i++ {
		link, err := readString(dec)
		if err != nil {
			return nil, fmt.Errorf("read gif_list[%d].gif_link: %w", i, err)
		}
		key, err := dec.ReadNBytes(solana.PublicKeyLength)
		if err != nil {
			return nil, fmt.Errorf("read gif_list[%d].user_address: %w", i, err)
		}
		acct.GifList = append(acct.GifList, Item{
			GifLink:     link,
			UserAddress: solana.PublicKeyFromBytes(key),
		})
	}
	return acct, nil
}

// encodeString writes a borsh string: u32 little-endian length then bytes.
func encodeString(enc *bin.Encoder, s string) error {
	if err := enc.WriteUint32(uint32(len(s)), binary.LittleEndian); err != nil {
		return err
	}
	return enc.WriteBytes([]byte(s), false)
}

func readString(dec *bin.Decoder) (string, error) {
	n, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return "", err
	}
	if int(n) > dec.Remaining() {
		return "", fmt.Errorf("string length %d exceeds remaining %d bytes", n, dec.Remaining())
	}
	b, err := dec.ReadNBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
