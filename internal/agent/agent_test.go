package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/chain/chaintest"
	"github.com/SolAgent-Network/agent_layer/internal/compose"
	"github.com/SolAgent-Network/agent_layer/internal/wallet"
)

func newTestAgent(t *testing.T) (*Agent, *chaintest.Fake, *wallet.KeypairWallet) {
	t.Helper()
	w, err := wallet.Generate()
	if err != nil {
		t.Fatal(err)
	}
	fake := &chaintest.Fake{Blockhash: solana.Hash{1}}
	return New(fake, w, nil), fake, w
}

func TestBalanceSOL(t *testing.T) {
	ag, fake, w := newTestAgent(t)
	fake.Balances = map[solana.PublicKey]uint64{w.Pubkey(): 2_500_000_000}

	got, err := ag.Balance(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2.5 {
		t.Errorf("Balance = %v, want 2.5", got)
	}
}

func TestBalanceToken(t *testing.T) {
	ag, fake, w := newTestAgent(t)
	mint := solana.NewWallet().PublicKey()
	ata, _, err := solana.FindAssociatedTokenAddress(w.Pubkey(), mint)
	if err != nil {
		t.Fatal(err)
	}
	fake.TokenBalances = map[solana.PublicKey]float64{ata: 42.5}

	got, err := ag.Balance(context.Background(), &mint)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42.5 {
		t.Errorf("Balance = %v, want 42.5", got)
	}
}

func TestBalanceTokenMissingAccount(t *testing.T) {
	ag, _, _ := newTestAgent(t)
	mint := solana.NewWallet().PublicKey()

	got, err := ag.Balance(context.Background(), &mint)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Balance = %v, want 0 for absent token account", got)
	}
}

func TestTransferSOL(t *testing.T) {
	ag, fake, w := newTestAgent(t)
	dest := solana.NewWallet().PublicKey()

	sig, err := ag.Transfer(context.Background(), dest, 1.5, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sig.IsZero() {
		t.Error("signature is zero")
	}
	if len(fake.Submitted) != 1 {
		t.Fatalf("submitted %d transactions, want 1", len(fake.Submitted))
	}
	tx := fake.Submitted[0]
	if got := len(tx.Message.Instructions); got != 1 {
		t.Errorf("instruction count = %d, want 1", got)
	}
	if got := int(tx.Message.Header.NumRequiredSignatures); got != 1 {
		t.Errorf("required signers = %d, want 1", got)
	}
	if !tx.Message.AccountKeys[0].Equals(w.Pubkey()) {
		t.Error("fee payer is not the agent wallet")
	}
}

func TestTransferZeroAmount(t *testing.T) {
	ag, fake, _ := newTestAgent(t)
	_, err := ag.Transfer(context.Background(), solana.NewWallet().PublicKey(), 0, nil)
	var invalid *compose.InvalidAmountError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *InvalidAmountError", err)
	}
	if len(fake.Submitted) != 0 {
		t.Error("invalid amount still submitted a transaction")
	}
}

func TestTransferTokenCreatesDestinationATA(t *testing.T) {
	ag, fake, _ := newTestAgent(t)
	mint := solana.NewWallet().PublicKey()
	fake.SetMint(mint, 6, solana.TokenProgramID)
	dest := solana.NewWallet().PublicKey()

	_, err := ag.Transfer(context.Background(), dest, 10, &mint)
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.Submitted) != 1 {
		t.Fatalf("submitted %d transactions, want 1", len(fake.Submitted))
	}
	// Create-ATA then transfer-checked.
	if got := len(fake.Submitted[0].Message.Instructions); got != 2 {
		t.Errorf("instruction count = %d, want 2", got)
	}
}

func TestTransferTokenExistingDestinationATA(t *testing.T) {
	ag, fake, _ := newTestAgent(t)
	mint := solana.NewWallet().PublicKey()
	fake.SetMint(mint, 6, solana.TokenProgramID)
	dest := solana.NewWallet().PublicKey()
	ata, _, err := solana.FindAssociatedTokenAddress(dest, mint)
	if err != nil {
		t.Fatal(err)
	}
	fake.SetAccount(ata, &chain.Account{Owner: solana.TokenProgramID})

	_, err = ag.Transfer(context.Background(), dest, 10, &mint)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(fake.Submitted[0].Message.Instructions); got != 1 {
		t.Errorf("instruction count = %d, want 1", got)
	}
}

func TestTransferUnknownMint(t *testing.T) {
	ag, _, _ := newTestAgent(t)
	mint := solana.NewWallet().PublicKey()
	if _, err := ag.Transfer(context.Background(), solana.NewWallet().PublicKey(), 1, &mint); err == nil {
		t.Fatal("transfer of unknown mint succeeded, want error")
	}
}

func TestMint(t *testing.T) {
	ag, fake, _ := newTestAgent(t)
	mint := solana.NewWallet().PublicKey()
	fake.SetMint(mint, 9, solana.TokenProgramID)

	info, err := ag.Mint(context.Background(), mint)
	if err != nil {
		t.Fatal(err)
	}
	if info.Decimals != 9 {
		t.Errorf("decimals = %d, want 9", info.Decimals)
	}
}

func TestMintMissing(t *testing.T) {
	ag, _, _ := newTestAgent(t)
	if _, err := ag.Mint(context.Background(), solana.NewWallet().PublicKey()); err == nil {
		t.Fatal("missing mint succeeded, want error")
	}
}

func TestTPS(t *testing.T) {
	ag, fake, _ := newTestAgent(t)
	fake.Samples = []chain.PerformanceSample{{NumTransactions: 3000, SamplePeriodSecs: 60}}

	got, err := ag.TPS(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 50 {
		t.Errorf("TPS = %v, want 50", got)
	}
}

func TestTPSNoSamples(t *testing.T) {
	ag, _, _ := newTestAgent(t)
	if _, err := ag.TPS(context.Background()); err == nil {
		t.Fatal("TPS with no samples succeeded, want error")
	}
}

func TestRequestAirdrop(t *testing.T) {
	ag, fake, w := newTestAgent(t)
	if _, err := ag.RequestAirdrop(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	if got := fake.Balances[w.Pubkey()]; got != 2_000_000_000 {
		t.Errorf("balance after airdrop = %d, want 2000000000", got)
	}
}
