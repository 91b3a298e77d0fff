package chain

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestDecodeMint(t *testing.T) {
	data := make([]byte, MintAccountSize)
	binary.LittleEndian.PutUint64(data[36:44], 1_000_000)
	data[44] = 6
	data[45] = 1

	acc := &Account{Owner: solana.TokenProgramID, Data: data}
	info, err := DecodeMint(acc)
	if err != nil {
		t.Fatalf("decode mint: %v", err)
	}
	if info.Decimals != 6 {
		t.Errorf("decimals = %d, want 6", info.Decimals)
	}
	if info.Supply != 1_000_000 {
		t.Errorf("supply = %d, want 1000000", info.Supply)
	}
	if !info.IsInitialized {
		t.Error("expected initialized mint")
	}
	if !info.TokenProgram.Equals(solana.TokenProgramID) {
		t.Errorf("token program = %s", info.TokenProgram)
	}
}

func TestDecodeMintErrors(t *testing.T) {
	if _, err := DecodeMint(nil); err == nil {
		t.Error("expected error for missing account")
	}
	if _, err := DecodeMint(&Account{Data: make([]byte, 10)}); err == nil {
		t.Error("expected error for short data")
	}
}
