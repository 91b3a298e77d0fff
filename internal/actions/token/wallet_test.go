package token

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/chain/chaintest"
	"github.com/SolAgent-Network/agent_layer/internal/wallet"
)

func newTestAgent(t *testing.T) (*agent.Agent, *chaintest.Fake, *wallet.KeypairWallet) {
	t.Helper()
	w, err := wallet.Generate()
	if err != nil {
		t.Fatal(err)
	}
	fake := &chaintest.Fake{}
	return agent.New(fake, w, nil), fake, w
}

func TestWalletAddress(t *testing.T) {
	ag, _, w := newTestAgent(t)
	a := NewWalletAddressAction()

	res, err := a.Execute(context.Background(), ag, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v", res["status"])
	}
	if res["address"] != w.Pubkey().String() {
		t.Errorf("address = %v, want %s", res["address"], w.Pubkey())
	}
}

func TestTPS(t *testing.T) {
	ag, fake, _ := newTestAgent(t)
	fake.Samples = []chain.PerformanceSample{{NumTransactions: 6000, SamplePeriodSecs: 60}}
	a := NewTPSAction()

	res, err := a.Execute(context.Background(), ag, json.RawMessage(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v: %v", res["status"], res)
	}
	if res["tps"] != 100.0 {
		t.Errorf("tps = %v, want 100", res["tps"])
	}
}

func TestTPSNoSamplesIsRecoverable(t *testing.T) {
	ag, _, _ := newTestAgent(t)
	a := NewTPSAction()

	res, err := a.Execute(context.Background(), ag, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "error" {
		t.Errorf("status = %v, want error envelope", res["status"])
	}
}

func TestRequestFunds(t *testing.T) {
	ag, fake, w := newTestAgent(t)
	a := NewRequestFundsAction()

	res, err := a.Execute(context.Background(), ag, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v: %v", res["status"], res)
	}
	if res["signature"] == "" {
		t.Error("missing signature")
	}
	if got := fake.Balances[w.Pubkey()]; got != 5_000_000_000 {
		t.Errorf("faucet credited %d lamports, want 5000000000", got)
	}
}
