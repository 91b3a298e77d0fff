// Package defi implements liquidity and staking market queries.
package defi

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const sanctumURL = "https://extra-api.sanctum.so/v1"

// SanctumPriceAction fetches LST prices from Sanctum.
type SanctumPriceAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewSanctumPriceAction constructs the GET_SANCTUM_PRICE operation.
func NewSanctumPriceAction(client *httputil.Client) *SanctumPriceAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &SanctumPriceAction{
		http:    client,
		baseURL: sanctumURL,
		meta: actions.Metadata{
			Name: "GET_SANCTUM_PRICE",
			Similes: []string{
				"get lst price",
				"sanctum price",
				"liquid staking token price",
			},
			Description: "Get the price of one or more liquid staking tokens (LSTs) from Sanctum",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"mints": []any{"J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn"},
					},
					Output: map[string]any{
						"status": "success",
						"prices": []any{map[string]any{
							"mint":   "J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn",
							"amount": "1102333",
						}},
					},
					Explanation: "Get the price of JitoSOL",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mints": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "LST mint addresses to price",
					},
				},
				"required":             []string{"mints"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *SanctumPriceAction) Metadata() actions.Metadata { return a.meta }

func (a *SanctumPriceAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Mints []string `json:"mints"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if len(in.Mints) == 0 {
		return nil, actions.InvalidInputf("mints is required")
	}

	query := url.Values{}
	for _, mint := range in.Mints {
		query.Add("input", mint)
	}
	resp, err := a.http.GetJSON(ctx, a.baseURL+"/price?"+query.Encode(), nil)
	if err != nil {
		return actions.Errorf("sanctum price lookup failed: %v", err), nil
	}

	prices := make([]map[string]any, 0, len(in.Mints))
	for _, p := range resp.Get("prices").Array() {
		prices = append(prices, map[string]any{
			"mint":   p.Get("mint").String(),
			"amount": p.Get("amount").String(),
		})
	}
	return actions.Success(actions.Result{
		"prices": prices,
	}), nil
}

// SanctumAPYAction fetches the latest LST APYs from Sanctum.
type SanctumAPYAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewSanctumAPYAction constructs the GET_SANCTUM_LST_APY operation.
func NewSanctumAPYAction(client *httputil.Client) *SanctumAPYAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &SanctumAPYAction{
		http:    client,
		baseURL: sanctumURL,
		meta: actions.Metadata{
			Name: "GET_SANCTUM_LST_APY",
			Similes: []string{
				"get lst apy",
				"sanctum apy",
				"staking yield",
			},
			Description: "Get the latest APY of one or more liquid staking tokens from Sanctum",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"mints": []any{"J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn"},
					},
					Output: map[string]any{
						"status": "success",
						"apys": map[string]any{
							"J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn": 0.0782,
						},
					},
					Explanation: "Get the current APY of JitoSOL",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mints": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "LST mint addresses to query",
					},
				},
				"required":             []string{"mints"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *SanctumAPYAction) Metadata() actions.Metadata { return a.meta }

func (a *SanctumAPYAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Mints []string `json:"mints"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if len(in.Mints) == 0 {
		return nil, actions.InvalidInputf("mints is required")
	}

	query := url.Values{}
	for _, mint := range in.Mints {
		query.Add("lst", mint)
	}
	resp, err := a.http.GetJSON(ctx, a.baseURL+"/apy/latest?"+query.Encode(), nil)
	if err != nil {
		return actions.Errorf("sanctum apy lookup failed: %v", err), nil
	}

	apys := make(map[string]any)
	for mint, value := range resp.Get("apys").Map() {
		apys[mint] = value.Float()
	}
	return actions.Success(actions.Result{
		"apys": apys,
	}), nil
}
