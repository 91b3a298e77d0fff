package nft

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

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

func TestDeployCollection(t *testing.T) {
	ag, fake := newTestAgent(t)
	a := NewDeployCollectionAction()

	res, err := a.Execute(context.Background(), ag, json.RawMessage(
		`{"name":"My Collection","symbol":"MYCOL","uri":"https://example.com/collection.json"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v: %v", res["status"], res)
	}
	if res["mint"] == "" || res["metadata"] == "" {
		t.Errorf("missing mint or metadata address: %v", res)
	}
	if len(fake.Submitted) != 1 {
		t.Fatalf("submitted %d transactions, want 1", len(fake.Submitted))
	}
	// Create, init mint, create ATA, mint-to, metadata, master edition.
	if got := len(fake.Submitted[0].Message.Instructions); got != 6 {
		t.Errorf("instruction count = %d, want 6", got)
	}
	// Payer plus the ephemeral mint key both sign.
	if got := int(fake.Submitted[0].Message.Header.NumRequiredSignatures); got != 2 {
		t.Errorf("required signers = %d, want 2", got)
	}
}

func TestMintNFTRejectionPropagates(t *testing.T) {
	ag, fake := newTestAgent(t)
	fake.SubmitErr = &chain.SubmissionRejectedError{Reason: "collection not found"}
	a := NewMintNFTAction()
	collection := "7nE9GvcwsqzYxmJLSrYmSB1V1YoJWVK1KWzAcWAzjXkN"

	res, err := a.Execute(context.Background(), ag, json.RawMessage(
		`{"collectionMint":"`+collection+`","name":"My NFT #1","uri":"https://example.com/nft-1.json"}`))
	if res != nil {
		t.Fatalf("result = %v, want nil on rejection", res)
	}
	var rejected *chain.SubmissionRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want *SubmissionRejectedError", err)
	}
}
