// Package chaintest provides a configurable fake chain.Client for tests.
package chaintest

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/SolAgent-Network/agent_layer/internal/chain"
)

// Fake is an in-memory chain.Client. Zero value is usable: every account is
// absent, balances are zero, and submissions confirm with FakeSignature.
type Fake struct {
	mu sync.Mutex

	Accounts      map[solana.PublicKey]*chain.Account
	Balances      map[solana.PublicKey]uint64
	TokenBalances map[solana.PublicKey]float64
	TokenAccounts map[solana.PublicKey][]chain.TokenAccountInfo
	Samples       []chain.PerformanceSample
	Blockhash     solana.Hash
	RentExempt    uint64

	// SubmitErr, when set, is returned from SendAndConfirm.
	SubmitErr error

	// Submitted records every transaction passed to SendAndConfirm.
	Submitted []*solana.Transaction
}

// FakeSignature is returned for successful fake submissions.
var FakeSignature = solana.SignatureFromBytes(make([]byte, 64))

func (f *Fake) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Balances[addr], nil
}

func (f *Fake) AccountInfo(ctx context.Context, addr solana.PublicKey) (*chain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Accounts[addr], nil
}

func (f *Fake) TokenAccountBalance(ctx context.Context, account solana.PublicKey) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.TokenBalances[account], nil
}

func (f *Fake) TokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]chain.TokenAccountInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.TokenAccounts[owner], nil
}

func (f *Fake) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Blockhash, nil
}

func (f *Fake) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Submitted = append(f.Submitted, tx)
	if f.SubmitErr != nil {
		return solana.Signature{}, f.SubmitErr
	}
	sig := FakeSignature
	if len(tx.Signatures) > 0 {
		sig = tx.Signatures[0]
	}
	return sig, nil
}

func (f *Fake) PerformanceSamples(ctx context.Context, limit int) ([]chain.PerformanceSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > 0 && limit < len(f.Samples) {
		return f.Samples[:limit], nil
	}
	return f.Samples, nil
}

func (f *Fake) RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Balances == nil {
		f.Balances = make(map[solana.PublicKey]uint64)
	}
	f.Balances[addr] += lamports
	return FakeSignature, nil
}

func (f *Fake) MinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RentExempt, nil
}

// SetAccount installs an account so existence checks succeed.
func (f *Fake) SetAccount(addr solana.PublicKey, acc *chain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Accounts == nil {
		f.Accounts = make(map[solana.PublicKey]*chain.Account)
	}
	f.Accounts[addr] = acc
}

// SetMint installs a packed SPL mint account with the given decimals.
func (f *Fake) SetMint(mint solana.PublicKey, decimals uint8, tokenProgram solana.PublicKey) {
	data := make([]byte, chain.MintAccountSize)
	data[44] = decimals
	data[45] = 1 // initialized
	f.SetAccount(mint, &chain.Account{Owner: tokenProgram, Data: data})
}
