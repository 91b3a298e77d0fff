package misc

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const dexscreenerURL = "https://api.dexscreener.com"

func dexPairSummary(p gjson.Result) map[string]any {
	return map[string]any{
		"pairAddress": p.Get("pairAddress").String(),
		"dex":         p.Get("dexId").String(),
		"baseToken":   p.Get("baseToken.symbol").String(),
		"baseMint":    p.Get("baseToken.address").String(),
		"quoteToken":  p.Get("quoteToken.symbol").String(),
		"priceUsd":    p.Get("priceUsd").String(),
		"liquidity":   p.Get("liquidity.usd").Float(),
		"volume24h":   p.Get("volume.h24").Float(),
		"change24h":   p.Get("priceChange.h24").Float(),
	}
}

// TokenProfilesAction lists the latest token profiles on Dexscreener.
type TokenProfilesAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewTokenProfilesAction constructs the GET_DEXSCREENER_TOKEN_PROFILES
// operation.
func NewTokenProfilesAction(client *httputil.Client) *TokenProfilesAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &TokenProfilesAction{
		http:    client,
		baseURL: dexscreenerURL,
		meta: actions.Metadata{
			Name: "GET_DEXSCREENER_TOKEN_PROFILES",
			Similes: []string{
				"latest token profiles",
				"new tokens on dexscreener",
				"recently listed tokens",
			},
			Description: "Get the latest token profiles published on Dexscreener, filtered to Solana tokens",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":   "success",
						"profiles": []any{},
					},
					Explanation: "List the latest Solana token profiles",
				},
			},
			InputSchema: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TokenProfilesAction) Metadata() actions.Metadata { return a.meta }

func (a *TokenProfilesAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	if err := actions.DecodeInput(input, &struct{}{}); err != nil {
		return nil, err
	}
	resp, err := a.http.GetJSON(ctx, a.baseURL+"/token-profiles/latest/v1", nil)
	if err != nil {
		return actions.Errorf("token profiles lookup failed: %v", err), nil
	}

	profiles := make([]map[string]any, 0)
	for _, p := range resp.Array() {
		if p.Get("chainId").String() != "solana" {
			continue
		}
		profiles = append(profiles, map[string]any{
			"tokenAddress": p.Get("tokenAddress").String(),
			"description":  p.Get("description").String(),
			"url":          p.Get("url").String(),
			"icon":         p.Get("icon").String(),
		})
	}
	return actions.Success(actions.Result{
		"profiles": profiles,
	}), nil
}

// SearchPairsAction searches trading pairs on Dexscreener.
type SearchPairsAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewSearchPairsAction constructs the SEARCH_DEXSCREENER_PAIRS operation.
func NewSearchPairsAction(client *httputil.Client) *SearchPairsAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &SearchPairsAction{
		http:    client,
		baseURL: dexscreenerURL,
		meta: actions.Metadata{
			Name: "SEARCH_DEXSCREENER_PAIRS",
			Similes: []string{
				"search trading pairs",
				"find pair",
				"dexscreener search",
			},
			Description: "Search Dexscreener trading pairs by token symbol, name, or address",
			Examples: []actions.Example{
				{
					Input: map[string]any{"query": "SOL/USDC"},
					Output: map[string]any{
						"status": "success",
						"pairs":  []any{},
					},
					Explanation: "Find SOL/USDC pairs",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search query, e.g. a symbol pair or mint address",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum pairs to return (default 10)",
					},
				},
				"required":             []string{"query"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *SearchPairsAction) Metadata() actions.Metadata { return a.meta }

func (a *SearchPairsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Query == "" {
		return nil, actions.InvalidInputf("query is required")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/latest/dex/search?q="+url.QueryEscape(in.Query), nil)
	if err != nil {
		return actions.Errorf("pair search failed: %v", err), nil
	}

	pairs := make([]map[string]any, 0, limit)
	for _, p := range resp.Get("pairs").Array() {
		if p.Get("chainId").String() != "solana" {
			continue
		}
		pairs = append(pairs, dexPairSummary(p))
		if len(pairs) >= limit {
			break
		}
	}
	return actions.Success(actions.Result{
		"query": in.Query,
		"pairs": pairs,
	}), nil
}

// PairByAddressAction fetches a single pair by its address.
type PairByAddressAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewPairByAddressAction constructs the GET_DEXSCREENER_PAIR_BY_ADDRESS
// operation.
func NewPairByAddressAction(client *httputil.Client) *PairByAddressAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &PairByAddressAction{
		http:    client,
		baseURL: dexscreenerURL,
		meta: actions.Metadata{
			Name: "GET_DEXSCREENER_PAIR_BY_ADDRESS",
			Similes: []string{
				"pair info",
				"lookup pair by address",
				"pool price on dexscreener",
			},
			Description: "Get Dexscreener data for a Solana trading pair by its pair address",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"pairAddress": "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2",
					},
					Output: map[string]any{
						"status": "success",
						"pair": map[string]any{
							"baseToken": "SOL",
							"priceUsd":  "180.22",
						},
					},
					Explanation: "Get data for the Raydium SOL/USDC pair",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"pairAddress": map[string]any{
						"type":        "string",
						"description": "Pair (pool) address",
					},
				},
				"required":             []string{"pairAddress"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *PairByAddressAction) Metadata() actions.Metadata { return a.meta }

func (a *PairByAddressAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		PairAddress string `json:"pairAddress"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.PairAddress == "" {
		return nil, actions.InvalidInputf("pairAddress is required")
	}

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/latest/dex/pairs/solana/"+in.PairAddress, nil)
	if err != nil {
		return actions.Errorf("pair lookup failed: %v", err), nil
	}
	pair := resp.Get("pairs.0")
	if !pair.Exists() {
		pair = resp.Get("pair")
	}
	if !pair.Exists() {
		return actions.Errorf("no pair found at address %s", in.PairAddress), nil
	}
	return actions.Success(actions.Result{
		"pair": dexPairSummary(pair),
	}), nil
}
