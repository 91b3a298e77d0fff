// Package wallet decouples what must be signed from who signs it.
//
// A Wallet owns exactly one signing identity. Signing fills the signature
// slot reserved for that identity in the compiled message, so wallets compose
// with additional transaction signers (ephemeral mint keys) without ordering
// assumptions.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrSigningUnavailable reports that key material or the remote signer could
// not be reached. It is fatal for the enclosing operation: an unsigned
// transaction is not a degraded-but-valid result.
var ErrSigningUnavailable = errors.New("signing unavailable")

// Wallet authorizes transactions for a single public identity.
type Wallet interface {
	// Pubkey returns the signing identity. Deterministic, no I/O.
	Pubkey() solana.PublicKey

	// SignTransaction signs the transaction's compiled message and places
	// the signature in this wallet's slot. Safe for concurrent use.
	SignTransaction(ctx context.Context, tx *solana.Transaction) error

	// SignAllTransactions signs each transaction independently. A failure
	// on one does not prevent the others from being signed; all failures
	// are reported joined.
	SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error
}

// PlaceSignature writes sig into the slot matching signer's position among
// the message's required signers. Signature slots are filled exactly once
// per signer; the slice is sized on first placement.
func PlaceSignature(tx *solana.Transaction, signer solana.PublicKey, sig solana.Signature) error {
	required := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Message.AccountKeys) < required {
		return fmt.Errorf("message has %d account keys, %d required signers", len(tx.Message.AccountKeys), required)
	}
	if len(tx.Signatures) < required {
		padded := make([]solana.Signature, required)
		copy(padded, tx.Signatures)
		tx.Signatures = padded
	}
	for i := 0; i < required; i++ {
		if tx.Message.AccountKeys[i].Equals(signer) {
			tx.Signatures[i] = sig
			return nil
		}
	}
	return fmt.Errorf("signer %s is not a required signer of this transaction", signer)
}

// KeypairWallet holds secret key material in process memory.
type KeypairWallet struct {
	key solana.PrivateKey
}

// NewKeypairWallet wraps an existing private key.
func NewKeypairWallet(key solana.PrivateKey) *KeypairWallet {
	return &KeypairWallet{key: key}
}

// FromBase58 constructs a keypair wallet from a base58-encoded private key.
func FromBase58(encoded string) (*KeypairWallet, error) {
	key, err := solana.PrivateKeyFromBase58(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	return &KeypairWallet{key: key}, nil
}

// Generate creates a wallet with a fresh random keypair.
func Generate() (*KeypairWallet, error) {
	account := solana.NewWallet()
	return &KeypairWallet{key: account.PrivateKey}, nil
}

// Pubkey returns the wallet's public identity.
func (w *KeypairWallet) Pubkey() solana.PublicKey {
	return w.key.PublicKey()
}

// SignTransaction signs the compiled message and fills this wallet's slot.
func (w *KeypairWallet) SignTransaction(ctx context.Context, tx *solana.Transaction) error {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serialize message: %w", err)
	}
	sig, err := w.key.Sign(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSigningUnavailable, err)
	}
	return PlaceSignature(tx, w.Pubkey(), sig)
}

// SignAllTransactions signs each transaction independently.
func (w *KeypairWallet) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error {
	var errs []error
	for i, tx := range txs {
		if err := w.SignTransaction(ctx, tx); err != nil {
			errs = append(errs, fmt.Errorf("transaction %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
