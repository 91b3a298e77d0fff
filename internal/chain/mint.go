package chain

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MintAccountSize is the packed size of an SPL token mint account.
const MintAccountSize = 82

// MintInfo is the decoded subset of an SPL token mint account.
type MintInfo struct {
	Supply        uint64
	Decimals      uint8
	IsInitialized bool
	// TokenProgram is the program owning the mint account (classic token
	// program or a token-2022 mint).
	TokenProgram solana.PublicKey
}

// DecodeMint decodes the packed SPL mint layout. Offsets follow the token
// program's Mint::unpack: supply at 36, decimals at 44, initialized at 45.
func DecodeMint(acc *Account) (MintInfo, error) {
	if acc == nil {
		return MintInfo{}, fmt.Errorf("mint account does not exist")
	}
	if len(acc.Data) < MintAccountSize {
		return MintInfo{}, fmt.Errorf("mint account data too short: %d bytes", len(acc.Data))
	}
	return MintInfo{
		Supply:        binary.LittleEndian.Uint64(acc.Data[36:44]),
		Decimals:      acc.Data[44],
		IsInitialized: acc.Data[45] == 1,
		TokenProgram:  acc.Owner,
	}, nil
}
