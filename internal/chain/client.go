// Package chain provides Solana network access for the agent layer.
//
// The rest of the system depends only on the Client interface; the network is
// an opaque capability reached through a handful of verbs. RPCClient is the
// production implementation over JSON-RPC.
package chain

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Account is the subset of on-chain account state the agent layer consumes.
type Account struct {
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// TokenAccountInfo is one token holding of a wallet.
type TokenAccountInfo struct {
	Mint     string
	Amount   float64
	Decimals uint8
}

// PerformanceSample is one recent-performance sample from the network.
type PerformanceSample struct {
	Slot             uint64
	NumTransactions  uint64
	NumSlots         uint64
	SamplePeriodSecs uint64
}

// Client is the network boundary. Implementations must be safe for
// concurrent use; every method may block on network I/O and honors ctx.
type Client interface {
	// Balance returns the lamport balance of addr.
	Balance(ctx context.Context, addr solana.PublicKey) (uint64, error)

	// AccountInfo returns account state, or (nil, nil) when the account
	// does not exist. Existence checks for conditional provisioning go
	// through here and can go stale before submission; callers must treat
	// a resulting already-exists rejection as a normal failure.
	AccountInfo(ctx context.Context, addr solana.PublicKey) (*Account, error)

	// TokenAccountBalance returns the UI amount held by a token account.
	// A missing account reports a zero balance.
	TokenAccountBalance(ctx context.Context, account solana.PublicKey) (float64, error)

	// TokenAccountsByOwner lists the owner's token holdings.
	TokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]TokenAccountInfo, error)

	// LatestBlockhash fetches a fresh recent blockhash. Blockhashes
	// expire: fetch immediately before signing, never reuse.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// SendAndConfirm submits a fully signed transaction and waits for
	// confirmation. A rejection surfaces as *SubmissionRejectedError.
	SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

	// PerformanceSamples returns up to limit recent performance samples.
	PerformanceSamples(ctx context.Context, limit int) ([]PerformanceSample, error)

	// RequestAirdrop requests faucet funds (devnet/testnet only).
	RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error)

	// MinimumBalanceForRentExemption returns the rent-exempt minimum for
	// an account of the given data size.
	MinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error)
}

// SubmissionRejectedError reports a transaction the network declined. The
// operation did not take effect; there is no implicit retry.
type SubmissionRejectedError struct {
	Signature solana.Signature
	Reason    string
}

func (e *SubmissionRejectedError) Error() string {
	if e.Signature.IsZero() {
		return fmt.Sprintf("transaction rejected: %s", e.Reason)
	}
	return fmt.Sprintf("transaction %s rejected: %s", e.Signature, e.Reason)
}
