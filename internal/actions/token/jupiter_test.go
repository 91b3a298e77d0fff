package token

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const solMint = "So11111111111111111111111111111111111111112"

func TestFetchPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != solMint {
			t.Errorf("ids = %q, want %q", got, solMint)
		}
		w.Write([]byte(`{"data":{"` + solMint + `":{"id":"` + solMint + `","price":"180.22"}}}`))
	}))
	defer srv.Close()

	a := NewFetchPriceAction(httputil.NewClient(0))
	a.priceURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"tokenAddress":"`+solMint+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v: %v", res["status"], res)
	}
	if res["price"] != "180.22" {
		t.Errorf("price = %v, want 180.22", res["price"])
	}
}

func TestFetchPriceUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewFetchPriceAction(httputil.NewClient(0))
	a.priceURL = srv.URL

	// Upstream failure is recoverable: an error envelope, not a Go error.
	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"tokenAddress":"`+solMint+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "error" {
		t.Errorf("status = %v, want error", res["status"])
	}
}

func TestFetchPriceMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	a := NewFetchPriceAction(httputil.NewClient(0))
	a.priceURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"tokenAddress":"`+solMint+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "error" {
		t.Errorf("status = %v, want error", res["status"])
	}
}

func TestFetchPriceInvalidInput(t *testing.T) {
	a := NewFetchPriceAction(nil)

	tests := []struct {
		name  string
		input string
	}{
		{name: "missing address", input: `{}`},
		{name: "malformed address", input: `{"tokenAddress":"not-base58"}`},
		{name: "unknown field", input: `{"tokenAddres":"` + solMint + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Execute(context.Background(), nil, json.RawMessage(tt.input))
			var invalid *actions.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want *InvalidInputError", err)
			}
		})
	}
}

func TestSearchTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/strict" {
			t.Errorf("path = %s, want /strict", r.URL.Path)
		}
		w.Write([]byte(`[
			{"address":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","symbol":"USDC","name":"USD Coin","decimals":6},
			{"address":"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB","symbol":"USDT","name":"USDT","decimals":6},
			{"address":"` + solMint + `","symbol":"SOL","name":"Wrapped SOL","decimals":9}
		]`))
	}))
	defer srv.Close()

	a := NewSearchTokensAction(httputil.NewClient(0))
	a.listURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"query":"usd"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v: %v", res["status"], res)
	}
	tokens := res["tokens"].([]map[string]any)
	if len(tokens) != 2 {
		t.Fatalf("matches = %d, want 2", len(tokens))
	}
	if tokens[0]["symbol"] != "USDC" {
		t.Errorf("first match = %v, want USDC", tokens[0]["symbol"])
	}
}

func TestSearchTokensLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"symbol":"AAA1","name":"a"},
			{"symbol":"AAA2","name":"a"},
			{"symbol":"AAA3","name":"a"}
		]`))
	}))
	defer srv.Close()

	a := NewSearchTokensAction(httputil.NewClient(0))
	a.listURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"query":"aaa","limit":2}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(res["tokens"].([]map[string]any)); got != 2 {
		t.Errorf("matches = %d, want 2", got)
	}
}

func TestTokenListStrictPath(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(`[{"address":"x","symbol":"X","name":"X token","decimals":0}]`))
	}))
	defer srv.Close()

	a := NewTokenListAction(httputil.NewClient(0))
	a.listURL = srv.URL

	if _, err := a.Execute(context.Background(), nil, json.RawMessage(`{"strict":true}`)); err != nil {
		t.Fatal(err)
	}
	if requested != "/strict" {
		t.Errorf("path = %s, want /strict", requested)
	}

	res, err := a.Execute(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if requested != "/all" {
		t.Errorf("path = %s, want /all", requested)
	}
	if res["count"] != 1 {
		t.Errorf("count = %v, want 1", res["count"])
	}
}
