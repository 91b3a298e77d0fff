package misc

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

func TestResolveDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resolve/bonfida" {
			t.Errorf("path = %s, want /resolve/bonfida", r.URL.Path)
		}
		w.Write([]byte(`{"s":"ok","result":"HKKp49qGWXd639QsuH7JiLijfVW5UtCVY4s1n2HANwEA"}`))
	}))
	defer srv.Close()

	a := NewResolveDomainAction(httputil.NewClient(0))
	a.baseURL = srv.URL

	tests := []struct {
		name  string
		input string
	}{
		{name: "with suffix", input: `{"domain":"bonfida.sol"}`},
		{name: "without suffix", input: `{"domain":"bonfida"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Execute(context.Background(), nil, json.RawMessage(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if res["status"] != "success" {
				t.Fatalf("status = %v: %v", res["status"], res)
			}
			if res["owner"] != "HKKp49qGWXd639QsuH7JiLijfVW5UtCVY4s1n2HANwEA" {
				t.Errorf("owner = %v", res["owner"])
			}
			if res["domain"] != "bonfida.sol" {
				t.Errorf("domain = %v, want bonfida.sol", res["domain"])
			}
		})
	}
}

func TestResolveDomainNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"ok","result":""}`))
	}))
	defer srv.Close()

	a := NewResolveDomainAction(httputil.NewClient(0))
	a.baseURL = srv.URL

	res, err := a.Execute(context.Background(), nil, json.RawMessage(`{"domain":"ghost.sol"}`))
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "error" {
		t.Errorf("status = %v, want error", res["status"])
	}
}

func TestResolveDomainRequiresName(t *testing.T) {
	a := NewResolveDomainAction(nil)
	_, err := a.Execute(context.Background(), nil, json.RawMessage(`{}`))
	var invalid *actions.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *InvalidInputError", err)
	}
}

func TestDomainTLDs(t *testing.T) {
	a := NewDomainTLDsAction()
	res, err := a.Execute(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res["status"] != "success" {
		t.Fatalf("status = %v", res["status"])
	}
	tlds := res["tlds"].([]string)
	if len(tlds) == 0 || tlds[0] != ".sol" {
		t.Errorf("tlds = %v, want .sol first", tlds)
	}
}
