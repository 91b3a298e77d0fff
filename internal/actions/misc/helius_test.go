package misc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/chain/chaintest"
	"github.com/SolAgent-Network/agent_layer/internal/wallet"
)

func newTestAgent(t *testing.T) (*agent.Agent, *chaintest.Fake) {
	t.Helper()
	w, err := wallet.Generate()
	if err != nil {
		t.Fatal(err)
	}
	fake := &chaintest.Fake{}
	return agent.New(fake, w, nil), fake
}

func TestPrioritySend(t *testing.T) {
	ag, fake := newTestAgent(t)
	a := NewPrioritySendAction(nil, "")
	dest := solana.NewWallet().PublicKey()

	res, err := a.Execute(context.Background(), ag, json.RawMessage(
		`{"to":"`+dest.String()+`","amount":0.1}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v: %v", res["status"], res)
	}
	// No API key: the fixed fallback price applies.
	if res["computeUnitPrice"] != uint64(defaultComputeUnitPrice) {
		t.Errorf("computeUnitPrice = %v, want %d", res["computeUnitPrice"], defaultComputeUnitPrice)
	}
	if len(fake.Submitted) != 1 {
		t.Fatalf("submitted %d transactions, want 1", len(fake.Submitted))
	}
	// Compute budget instruction first, transfer second.
	if got := len(fake.Submitted[0].Message.Instructions); got != 2 {
		t.Errorf("instruction count = %d, want 2", got)
	}
}

func TestPrioritySendRejectionPropagates(t *testing.T) {
	ag, fake := newTestAgent(t)
	fake.SubmitErr = &chain.SubmissionRejectedError{Reason: "blockhash not found"}
	a := NewPrioritySendAction(nil, "")
	dest := solana.NewWallet().PublicKey()

	res, err := a.Execute(context.Background(), ag, json.RawMessage(
		`{"to":"`+dest.String()+`","amount":0.1}`))
	if res != nil {
		t.Fatalf("result = %v, want nil on rejection", res)
	}
	var rejected *chain.SubmissionRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want *SubmissionRejectedError", err)
	}
}
