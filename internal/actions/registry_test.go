package actions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SolAgent-Network/agent_layer/internal/agent"
)

type stubAction struct {
	meta Metadata
	fn   func(ctx context.Context, ag *agent.Agent, input json.RawMessage) (Result, error)
}

func (a *stubAction) Metadata() Metadata { return a.meta }

func (a *stubAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (Result, error) {
	if a.fn == nil {
		return Success(nil), nil
	}
	return a.fn(ctx, ag, input)
}

func named(name string) *stubAction {
	return &stubAction{meta: Metadata{Name: name, Description: name + " stub"}}
}

func TestRegistryExecute(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&stubAction{
		meta: Metadata{Name: "ECHO"},
		fn: func(ctx context.Context, ag *agent.Agent, input json.RawMessage) (Result, error) {
			var in struct {
				Message string `json:"message"`
			}
			if err := DecodeInput(input, &in); err != nil {
				return nil, err
			}
			return Success(Result{"message": in.Message}), nil
		},
	})

	res, err := r.Execute(context.Background(), "ECHO", nil, json.RawMessage(`{"message":"hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Errorf("status = %v, want success", res["status"])
	}
	if res["message"] != "hi" {
		t.Errorf("message = %v, want hi", res["message"])
	}
}

func TestRegistryUnknownAction(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Execute(context.Background(), "NOPE", nil, nil)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v, want ErrUnknownAction", err)
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(named("A"))
	r.Register(named("B"))
	replacement := &stubAction{
		meta: Metadata{Name: "A", Description: "replacement"},
	}
	r.Register(replacement)

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	got, ok := r.Get("A")
	if !ok {
		t.Fatal("A not found")
	}
	if got.Metadata().Description != "replacement" {
		t.Error("replacement did not win")
	}
	// Replacement keeps the original position.
	names := r.Names()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Names = %v, want [A B]", names)
	}
}

func TestRegistryCatalogue(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(named("FIRST"))
	r.Register(named("SECOND"))

	cat := r.Catalogue()
	if len(cat) != 2 {
		t.Fatalf("catalogue size = %d, want 2", len(cat))
	}
	if cat[0].Name != "FIRST" || cat[1].Name != "SECOND" {
		t.Errorf("catalogue order = [%s %s]", cat[0].Name, cat[1].Name)
	}
}

func TestDecodeInput(t *testing.T) {
	type payload struct {
		Amount float64 `json:"amount"`
	}

	t.Run("empty input means empty object", func(t *testing.T) {
		var p payload
		if err := DecodeInput(nil, &p); err != nil {
			t.Fatal(err)
		}
		if p.Amount != 0 {
			t.Errorf("amount = %v, want 0", p.Amount)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		var p payload
		err := DecodeInput(json.RawMessage(`{"amout":1}`), &p)
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("err = %v, want *InvalidInputError", err)
		}
	})

	t.Run("type mismatch rejected", func(t *testing.T) {
		var p payload
		err := DecodeInput(json.RawMessage(`{"amount":"ten"}`), &p)
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("err = %v, want *InvalidInputError", err)
		}
	})
}

func TestEnvelopes(t *testing.T) {
	ok := Success(Result{"value": 1})
	if ok["status"] != "success" || ok["value"] != 1 {
		t.Errorf("Success envelope = %v", ok)
	}
	bad := Errorf("upstream said %d", 503)
	if bad["status"] != "error" || bad["message"] != "upstream said 503" {
		t.Errorf("Errorf envelope = %v", bad)
	}
}
