// Package compose turns a high-level intent into a submitted, confirmed
// transaction: ordered instruction building, conditional account
// provisioning, blockhash stamping, slot-correct multi-signer assembly, and
// submit/confirm.
//
// Lifecycle: Builder (append-only) → Stamp → Sign → Submit. Transitions are
// strictly forward. A rejected submission is terminal for that attempt;
// retry policy belongs to the caller.
package compose

import (
	"context"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"

	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/wallet"
)

// State tracks a draft through its forward-only lifecycle.
type State int

const (
	StateDraft State = iota
	StateStamped
	StateSigned
	StateSubmitted
	StateConfirmed
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateStamped:
		return "stamped"
	case StateSigned:
		return "signed"
	case StateSubmitted:
		return "submitted"
	case StateConfirmed:
		return "confirmed"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// InvalidAmountError reports an amount rejected before any instruction was
// built, including amounts that scale to zero base units.
type InvalidAmountError struct {
	Amount   float64
	Decimals uint8
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount %v is too small for %d decimals", e.Amount, e.Decimals)
}

// ToBaseUnits scales a decimal amount into the ledger's integer base units.
// Amounts that scale to zero are rejected: a zero-unit transfer would be a
// silent no-op.
func ToBaseUnits(amount float64, decimals uint8) (uint64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, &InvalidAmountError{Amount: amount, Decimals: decimals}
	}
	raw := uint64(amount * math.Pow10(int(decimals)))
	if raw == 0 {
		return 0, &InvalidAmountError{Amount: amount, Decimals: decimals}
	}
	return raw, nil
}

// FromBaseUnits converts integer base units back to a decimal amount.
func FromBaseUnits(raw uint64, decimals uint8) float64 {
	return float64(raw) / math.Pow10(int(decimals))
}

// Builder assembles an ordered instruction sequence for one logical intent.
// Instructions are order-sensitive: creation before mutation, mint before
// transfer. The sequence is append-only until stamped.
type Builder struct {
	feePayer     solana.PublicKey
	instructions []solana.Instruction
	ephemeral    []solana.PrivateKey
}

// NewBuilder starts an instruction sequence paid for by feePayer.
func NewBuilder(feePayer solana.PublicKey) *Builder {
	return &Builder{feePayer: feePayer}
}

// Append adds instructions in order.
func (b *Builder) Append(ixs ...solana.Instruction) *Builder {
	b.instructions = append(b.instructions, ixs...)
	return b
}

// WithEphemeralSigner registers a one-transaction co-signer (e.g. a freshly
// generated mint identity). The key is used once at signing and never stored
// beyond the draft.
func (b *Builder) WithEphemeralSigner(key solana.PrivateKey) *Builder {
	b.ephemeral = append(b.ephemeral, key)
	return b
}

// Len reports the number of appended instructions.
func (b *Builder) Len() int {
	return len(b.instructions)
}

// Stamp binds a recent blockhash and compiles the sequence into a draft.
// The blockhash must be freshly fetched: blockhashes expire, and a stale one
// gets the transaction rejected.
func (b *Builder) Stamp(blockhash solana.Hash) (*Draft, error) {
	if len(b.instructions) == 0 {
		return nil, fmt.Errorf("cannot stamp an empty instruction sequence")
	}
	tx, err := solana.NewTransaction(
		b.instructions,
		blockhash,
		solana.TransactionPayer(b.feePayer),
	)
	if err != nil {
		return nil, fmt.Errorf("compile transaction: %w", err)
	}
	return &Draft{
		tx:        tx,
		feePayer:  b.feePayer,
		ephemeral: b.ephemeral,
		state:     StateStamped,
	}, nil
}

// Draft is a compiled transaction bound to a blockhash. Immutable except for
// signature slots, which are filled exactly once per required signer.
type Draft struct {
	tx        *solana.Transaction
	feePayer  solana.PublicKey
	ephemeral []solana.PrivateKey
	state     State
}

// State returns the draft's lifecycle state.
func (d *Draft) State() State {
	return d.state
}

// Transaction exposes the underlying transaction.
func (d *Draft) Transaction() *solana.Transaction {
	return d.tx
}

// Sign collects the fee payer's signature through w and co-signs with every
// registered ephemeral key. Each signature lands in the slot matching its
// signer's position in the compiled message, not in arrival order.
func (d *Draft) Sign(ctx context.Context, w wallet.Wallet) error {
	if d.state != StateStamped {
		return fmt.Errorf("cannot sign a %s draft", d.state)
	}
	if err := w.SignTransaction(ctx, d.tx); err != nil {
		return err
	}
	if len(d.ephemeral) > 0 {
		msg, err := d.tx.Message.MarshalBinary()
		if err != nil {
			return fmt.Errorf("serialize message: %w", err)
		}
		for _, key := range d.ephemeral {
			sig, err := key.Sign(msg)
			if err != nil {
				return fmt.Errorf("%w: ephemeral signer: %v", wallet.ErrSigningUnavailable, err)
			}
			if err := wallet.PlaceSignature(d.tx, key.PublicKey(), sig); err != nil {
				return err
			}
		}
	}
	for i, sig := range d.tx.Signatures {
		if sig.IsZero() {
			return fmt.Errorf("signature slot %d (%s) left unsigned", i, d.tx.Message.AccountKeys[i])
		}
	}
	d.state = StateSigned
	return nil
}

// Submit sends the signed transaction and waits for confirmation. On
// rejection the draft is terminal; the caller decides whether to rebuild.
func (d *Draft) Submit(ctx context.Context, client chain.Client) (solana.Signature, error) {
	if d.state != StateSigned {
		return solana.Signature{}, fmt.Errorf("cannot submit a %s draft", d.state)
	}
	d.state = StateSubmitted
	sig, err := client.SendAndConfirm(ctx, d.tx)
	if err != nil {
		d.state = StateRejected
		return sig, err
	}
	d.state = StateConfirmed
	return sig, nil
}

// EnsureAssociatedTokenAccount derives owner's associated token account for
// mint and, when it does not exist on chain, appends a create instruction
// paid for by payer. The existence check reflects state at composition time;
// a concurrent creator can win the race, in which case the network rejects
// the submission and the rejection is reported as a normal failure.
func EnsureAssociatedTokenAccount(ctx context.Context, client chain.Client, b *Builder, payer, owner, mint solana.PublicKey) (solana.PublicKey, bool, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, false, fmt.Errorf("derive associated token address: %w", err)
	}
	acc, err := client.AccountInfo(ctx, ata)
	if err != nil {
		return solana.PublicKey{}, false, fmt.Errorf("check token account %s: %w", ata, err)
	}
	if acc != nil {
		return ata, false, nil
	}
	b.Append(associatedtokenaccount.NewCreateInstruction(payer, owner, mint).Build())
	return ata, true, nil
}
