package wallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

func twoSignerTransaction(t *testing.T, a, b solana.PublicKey) *solana.Transaction {
	t.Helper()
	dest := solana.NewWallet().PublicKey()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(1, a, dest).Build(),
			system.NewTransferInstruction(1, b, dest).Build(),
		},
		solana.Hash{9},
		solana.TransactionPayer(a),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

func TestPlaceSignatureSlots(t *testing.T) {
	first := solana.NewWallet()
	second := solana.NewWallet()
	tx := twoSignerTransaction(t, first.PublicKey(), second.PublicKey())

	// Place the second signer's signature before the first: slots must
	// still follow message position.
	var sigB solana.Signature
	sigB[0] = 0xB
	if err := PlaceSignature(tx, second.PublicKey(), sigB); err != nil {
		t.Fatal(err)
	}
	var sigA solana.Signature
	sigA[0] = 0xA
	if err := PlaceSignature(tx, first.PublicKey(), sigA); err != nil {
		t.Fatal(err)
	}

	required := int(tx.Message.Header.NumRequiredSignatures)
	if required != 2 {
		t.Fatalf("required signers = %d, want 2", required)
	}
	for i := 0; i < required; i++ {
		key := tx.Message.AccountKeys[i]
		want := sigA
		if key.Equals(second.PublicKey()) {
			want = sigB
		}
		if tx.Signatures[i] != want {
			t.Errorf("slot %d (%s) holds wrong signature", i, key)
		}
	}
}

func TestPlaceSignatureUnknownSigner(t *testing.T) {
	first := solana.NewWallet()
	second := solana.NewWallet()
	tx := twoSignerTransaction(t, first.PublicKey(), second.PublicKey())

	stranger := solana.NewWallet().PublicKey()
	if err := PlaceSignature(tx, stranger, solana.Signature{1}); err == nil {
		t.Fatal("PlaceSignature for non-signer succeeded, want error")
	}
}

func TestKeypairWalletSignTransaction(t *testing.T) {
	owner := solana.NewWallet()
	w := NewKeypairWallet(owner.PrivateKey)
	if !w.Pubkey().Equals(owner.PublicKey()) {
		t.Fatalf("Pubkey = %s, want %s", w.Pubkey(), owner.PublicKey())
	}

	dest := solana.NewWallet().PublicKey()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, owner.PublicKey(), dest).Build()},
		solana.Hash{3},
		solana.TransactionPayer(owner.PublicKey()),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SignTransaction(context.Background(), tx); err != nil {
		t.Fatal(err)
	}

	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	pub := ed25519.PublicKey(owner.PublicKey().Bytes())
	if !ed25519.Verify(pub, msg, tx.Signatures[0][:]) {
		t.Error("signature does not verify")
	}
}

func TestSignAllTransactionsIndependent(t *testing.T) {
	owner := solana.NewWallet()
	other := solana.NewWallet()
	w := NewKeypairWallet(owner.PrivateKey)
	dest := solana.NewWallet().PublicKey()

	good, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, owner.PublicKey(), dest).Build()},
		solana.Hash{4},
		solana.TransactionPayer(owner.PublicKey()),
	)
	if err != nil {
		t.Fatal(err)
	}
	// The wallet is not a required signer here, so signing must fail.
	bad, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, other.PublicKey(), dest).Build()},
		solana.Hash{4},
		solana.TransactionPayer(other.PublicKey()),
	)
	if err != nil {
		t.Fatal(err)
	}

	err = w.SignAllTransactions(context.Background(), []*solana.Transaction{good, bad})
	if err == nil {
		t.Fatal("SignAllTransactions succeeded, want joined error")
	}
	// The failure on bad must not prevent good from being signed.
	if good.Signatures[0].IsZero() {
		t.Error("good transaction left unsigned")
	}
}

func TestFromBase58RejectsGarbage(t *testing.T) {
	if _, err := FromBase58("not-a-key"); err == nil {
		t.Fatal("FromBase58 accepted garbage")
	}
}

func TestErrSigningUnavailableWrapping(t *testing.T) {
	wrapped := errors.Join(ErrSigningUnavailable)
	if !errors.Is(wrapped, ErrSigningUnavailable) {
		t.Fatal("errors.Is failed on joined ErrSigningUnavailable")
	}
}
