package defi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const (
	raydiumURL = "https://api-v3.raydium.io"
	orcaURL    = "https://api.mainnet.orca.so/v1"
	meteoraURL = "https://dlmm-api.meteora.ag"
)

// RaydiumPoolsAction lists Raydium liquidity pools for a token.
type RaydiumPoolsAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewRaydiumPoolsAction constructs the GET_RAYDIUM_POOLS operation.
func NewRaydiumPoolsAction(client *httputil.Client) *RaydiumPoolsAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &RaydiumPoolsAction{
		http:    client,
		baseURL: raydiumURL,
		meta: actions.Metadata{
			Name: "GET_RAYDIUM_POOLS",
			Similes: []string{
				"raydium pools",
				"find raydium liquidity",
				"raydium pool info",
			},
			Description: "List Raydium liquidity pools containing a given token mint, sorted by liquidity",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"mint": "So11111111111111111111111111111111111111112",
					},
					Output: map[string]any{
						"status": "success",
						"pools": []any{map[string]any{
							"id":        "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2",
							"liquidity": 12345678.9,
						}},
					},
					Explanation: "List SOL pools on Raydium",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mint": map[string]any{
						"type":        "string",
						"description": "Token mint to find pools for",
					},
					"pageSize": map[string]any{
						"type":        "integer",
						"description": "Number of pools to return (default 10)",
					},
				},
				"required":             []string{"mint"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *RaydiumPoolsAction) Metadata() actions.Metadata { return a.meta }

func (a *RaydiumPoolsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Mint     string `json:"mint"`
		PageSize int    `json:"pageSize"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Mint == "" {
		return nil, actions.InvalidInputf("mint is required")
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	query := url.Values{}
	query.Set("mint1", in.Mint)
	query.Set("poolType", "all")
	query.Set("poolSortField", "liquidity")
	query.Set("sortType", "desc")
	query.Set("pageSize", fmt.Sprintf("%d", pageSize))
	query.Set("page", "1")
	resp, err := a.http.GetJSON(ctx, a.baseURL+"/pools/info/mint?"+query.Encode(), nil)
	if err != nil {
		return actions.Errorf("raydium pool lookup failed: %v", err), nil
	}
	if !resp.Get("success").Bool() {
		return actions.Errorf("raydium returned an error: %s", resp.Get("msg").String()), nil
	}

	pools := make([]map[string]any, 0, pageSize)
	for _, p := range resp.Get("data.data").Array() {
		pools = append(pools, map[string]any{
			"id":        p.Get("id").String(),
			"type":      p.Get("type").String(),
			"mintA":     p.Get("mintA.address").String(),
			"mintB":     p.Get("mintB.address").String(),
			"price":     p.Get("price").Float(),
			"liquidity": p.Get("tvl").Float(),
			"volume24h": p.Get("day.volume").Float(),
			"feeRate":   p.Get("feeRate").Float(),
		})
	}
	return actions.Success(actions.Result{
		"mint":  in.Mint,
		"pools": pools,
	}), nil
}

// OrcaWhirlpoolsAction lists Orca whirlpools, optionally filtered by mint.
type OrcaWhirlpoolsAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewOrcaWhirlpoolsAction constructs the GET_ORCA_WHIRLPOOLS operation.
func NewOrcaWhirlpoolsAction(client *httputil.Client) *OrcaWhirlpoolsAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &OrcaWhirlpoolsAction{
		http:    client,
		baseURL: orcaURL,
		meta: actions.Metadata{
			Name: "GET_ORCA_WHIRLPOOLS",
			Similes: []string{
				"orca pools",
				"whirlpool info",
				"orca liquidity",
			},
			Description: "List Orca whirlpools, optionally filtered to pools containing a given token mint",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"mint":  "So11111111111111111111111111111111111111112",
						"limit": 5,
					},
					Output: map[string]any{
						"status": "success",
						"pools": []any{map[string]any{
							"address": "HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ",
							"tvl":     9876543.2,
						}},
					},
					Explanation: "List the largest SOL whirlpools on Orca",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mint": map[string]any{
						"type":        "string",
						"description": "Optional token mint filter",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum pools to return (default 10)",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (a *OrcaWhirlpoolsAction) Metadata() actions.Metadata { return a.meta }

func (a *OrcaWhirlpoolsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Mint  string `json:"mint"`
		Limit int    `json:"limit"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/whirlpool/list", nil)
	if err != nil {
		return actions.Errorf("orca pool lookup failed: %v", err), nil
	}

	pools := make([]map[string]any, 0, limit)
	for _, p := range resp.Get("whirlpools").Array() {
		mintA := p.Get("tokenA.mint").String()
		mintB := p.Get("tokenB.mint").String()
		if in.Mint != "" && mintA != in.Mint && mintB != in.Mint {
			continue
		}
		pools = append(pools, map[string]any{
			"address":   p.Get("address").String(),
			"tokenA":    mintA,
			"tokenB":    mintB,
			"price":     p.Get("price").Float(),
			"tvl":       p.Get("tvl").Float(),
			"volume24h": p.Get("volume.day").Float(),
		})
		if len(pools) >= limit {
			break
		}
	}
	return actions.Success(actions.Result{
		"pools": pools,
	}), nil
}

// MeteoraPoolsAction lists Meteora DLMM pairs, optionally filtered by mint.
type MeteoraPoolsAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewMeteoraPoolsAction constructs the GET_METEORA_POOLS operation.
func NewMeteoraPoolsAction(client *httputil.Client) *MeteoraPoolsAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &MeteoraPoolsAction{
		http:    client,
		baseURL: meteoraURL,
		meta: actions.Metadata{
			Name: "GET_METEORA_POOLS",
			Similes: []string{
				"meteora pools",
				"dlmm pairs",
				"meteora liquidity",
			},
			Description: "List Meteora DLMM pairs, optionally filtered to pairs containing a given token mint",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"mint":  "So11111111111111111111111111111111111111112",
						"limit": 5,
					},
					Output: map[string]any{
						"status": "success",
						"pools": []any{map[string]any{
							"address": "5rCf1DM8LjKTw4YqhnoLcngyZYeNnQqztScTogYHAS6",
							"name":    "SOL-USDC",
						}},
					},
					Explanation: "List the largest SOL pairs on Meteora",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mint": map[string]any{
						"type":        "string",
						"description": "Optional token mint filter",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum pairs to return (default 10)",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (a *MeteoraPoolsAction) Metadata() actions.Metadata { return a.meta }

func (a *MeteoraPoolsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Mint  string `json:"mint"`
		Limit int    `json:"limit"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/pair/all", nil)
	if err != nil {
		return actions.Errorf("meteora pool lookup failed: %v", err), nil
	}

	pools := make([]map[string]any, 0, limit)
	for _, p := range resp.Array() {
		mintX := p.Get("mint_x").String()
		mintY := p.Get("mint_y").String()
		if in.Mint != "" && mintX != in.Mint && mintY != in.Mint {
			continue
		}
		pools = append(pools, map[string]any{
			"address":   p.Get("address").String(),
			"name":      p.Get("name").String(),
			"mintX":     mintX,
			"mintY":     mintY,
			"binStep":   p.Get("bin_step").Int(),
			"liquidity": p.Get("liquidity").String(),
			"volume24h": p.Get("trade_volume_24h").Float(),
			"apr":       p.Get("apr").Float(),
		})
		if len(pools) >= limit {
			break
		}
	}
	return actions.Success(actions.Result{
		"pools": pools,
	}), nil
}
