package nft

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

func TestCollectionStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/mad_lads/stats" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer me-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"symbol":"mad_lads","floorPrice":95500000000,"listedCount":203,"volumeAll":2500000000000,"avgPrice24hr":100000000000}`))
	}))
	defer srv.Close()

	a := NewCollectionStatsAction(httputil.NewClient(0), "me-key")
	a.baseURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"collection":"mad_lads"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v: %v", res["status"], res)
	}
	if res["floorPrice"] != 95.5 {
		t.Errorf("floorPrice = %v, want 95.5 SOL", res["floorPrice"])
	}
	if res["listed"] != int64(203) {
		t.Errorf("listed = %v, want 203", res["listed"])
	}
}

func TestCollectionStatsNoAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		w.Write([]byte(`{"floorPrice":0}`))
	}))
	defer srv.Close()

	a := NewCollectionStatsAction(httputil.NewClient(0), "")
	a.baseURL = srv.URL

	if _, err := a.Execute(context.Background(), nil, json.RawMessage(`{"collection":"x"}`)); err != nil {
		t.Fatal(err)
	}
}

func TestCollectionStatsRequiresSymbol(t *testing.T) {
	a := NewCollectionStatsAction(nil, "")
	_, err := a.Execute(context.Background(), nil, json.RawMessage(`{}`))
	var invalid *actions.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *InvalidInputError", err)
	}
}

func TestPopularCollectionsDefaultRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("timeRange"); got != "1d" {
			t.Errorf("timeRange = %q, want 1d", got)
		}
		w.Write([]byte(`[{"symbol":"mad_lads","name":"Mad Lads","floorPrice":95.5,"volumeAll":2500,"image":"https://img"}]`))
	}))
	defer srv.Close()

	a := NewPopularCollectionsAction(httputil.NewClient(0), "")
	a.baseURL = srv.URL

	res, err := a.Execute(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	collections := res["collections"].([]map[string]any)
	if len(collections) != 1 || collections[0]["symbol"] != "mad_lads" {
		t.Errorf("collections = %v", collections)
	}
}

func TestCollectionListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		w.Write([]byte(`[{"tokenMint":"F9Lw3ki3hJ7PF9HQXsBzoY8GyE6sPoEZZdXJBsTTD2rk","price":95.5,"seller":"abc"}]`))
	}))
	defer srv.Close()

	a := NewCollectionListingsAction(httputil.NewClient(0), "")
	a.baseURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"collection":"mad_lads","limit":5}`))
	if err != nil {
		t.Fatal(err)
	}
	listings := res["listings"].([]map[string]any)
	if len(listings) != 1 || listings[0]["price"] != 95.5 {
		t.Errorf("listings = %v", listings)
	}
}

func TestCollectionListingsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewCollectionListingsAction(httputil.NewClient(0), "")
	a.baseURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"collection":"mad_lads"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "error" {
		t.Errorf("status = %v, want error", res["status"])
	}
}
