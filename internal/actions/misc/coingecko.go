// Package misc implements market data, transaction utilities, and domain
// name actions.
package misc

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const (
	coingeckoURL    = "https://api.coingecko.com/api/v3"
	coingeckoProURL = "https://pro-api.coingecko.com/api/v3"
)

// coingeckoClient routes requests to the public or pro endpoint depending on
// whether an API key is configured.
type coingeckoClient struct {
	http    *httputil.Client
	baseURL string
	apiKey  string
}

func newCoingeckoClient(client *httputil.Client, apiKey string) *coingeckoClient {
	if client == nil {
		client = httputil.NewClient(0)
	}
	baseURL := coingeckoURL
	if apiKey != "" {
		baseURL = coingeckoProURL
	}
	return &coingeckoClient{http: client, baseURL: baseURL, apiKey: apiKey}
}

func (c *coingeckoClient) get(ctx context.Context, path string) (gjson.Result, error) {
	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"x-cg-pro-api-key": c.apiKey}
	}
	return c.http.GetJSON(ctx, c.baseURL+path, headers)
}

// TrendingTokensAction lists tokens trending on CoinGecko.
type TrendingTokensAction struct {
	meta actions.Metadata
	cg   *coingeckoClient
}

// NewTrendingTokensAction constructs the GET_COINGECKO_TRENDING_TOKENS
// operation.
func NewTrendingTokensAction(client *httputil.Client, apiKey string) *TrendingTokensAction {
	return &TrendingTokensAction{
		cg: newCoingeckoClient(client, apiKey),
		meta: actions.Metadata{
			Name: "GET_COINGECKO_TRENDING_TOKENS",
			Similes: []string{
				"trending tokens",
				"hot coins",
				"what is trending",
			},
			Description: "Get the tokens currently trending on CoinGecko",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status": "success",
						"tokens": []any{map[string]any{
							"id":     "solana",
							"symbol": "sol",
						}},
					},
					Explanation: "List trending tokens",
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

func (a *TrendingTokensAction) Metadata() actions.Metadata { return a.meta }

func (a *TrendingTokensAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	if err := actions.DecodeInput(input, &struct{}{}); err != nil {
		return nil, err
	}
	resp, err := a.cg.get(ctx, "/search/trending")
	if err != nil {
		return actions.Errorf("trending lookup failed: %v", err), nil
	}

	tokens := make([]map[string]any, 0)
	for _, c := range resp.Get("coins").Array() {
		item := c.Get("item")
		tokens = append(tokens, map[string]any{
			"id":            item.Get("id").String(),
			"symbol":        item.Get("symbol").String(),
			"name":          item.Get("name").String(),
			"marketCapRank": item.Get("market_cap_rank").Int(),
			"priceUsd":      item.Get("data.price").Float(),
		})
	}
	return actions.Success(actions.Result{
		"tokens": tokens,
	}), nil
}

// TokenPriceAction fetches USD prices for CoinGecko token IDs.
type TokenPriceAction struct {
	meta actions.Metadata
	cg   *coingeckoClient
}

// NewTokenPriceAction constructs the GET_COINGECKO_TOKEN_PRICE operation.
func NewTokenPriceAction(client *httputil.Client, apiKey string) *TokenPriceAction {
	return &TokenPriceAction{
		cg: newCoingeckoClient(client, apiKey),
		meta: actions.Metadata{
			Name: "GET_COINGECKO_TOKEN_PRICE",
			Similes: []string{
				"coingecko price",
				"usd price of coins",
				"market price",
			},
			Description: "Get USD prices, market caps, and 24h change for one or more CoinGecko token IDs",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"ids": []any{"solana", "bitcoin"},
					},
					Output: map[string]any{
						"status": "success",
						"prices": map[string]any{
							"solana": map[string]any{"usd": 180.22},
						},
					},
					Explanation: "Get the USD price of SOL and BTC",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"ids": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "CoinGecko token IDs, e.g. solana",
					},
				},
				"required":             []string{"ids"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TokenPriceAction) Metadata() actions.Metadata { return a.meta }

func (a *TokenPriceAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		IDs []string `json:"ids"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if len(in.IDs) == 0 {
		return nil, actions.InvalidInputf("ids is required")
	}

	query := url.Values{}
	query.Set("ids", strings.Join(in.IDs, ","))
	query.Set("vs_currencies", "usd")
	query.Set("include_market_cap", "true")
	query.Set("include_24hr_change", "true")
	resp, err := a.cg.get(ctx, "/simple/price?"+query.Encode())
	if err != nil {
		return actions.Errorf("price lookup failed: %v", err), nil
	}

	prices := make(map[string]any)
	for id, data := range resp.Map() {
		prices[id] = map[string]any{
			"usd":          data.Get("usd").Float(),
			"usdMarketCap": data.Get("usd_market_cap").Float(),
			"usd24hChange": data.Get("usd_24h_change").Float(),
		}
	}
	return actions.Success(actions.Result{
		"prices": prices,
	}), nil
}

// TokenInfoAction fetches token details by Solana contract address.
type TokenInfoAction struct {
	meta actions.Metadata
	cg   *coingeckoClient
}

// NewTokenInfoAction constructs the GET_COINGECKO_TOKEN_INFO operation.
func NewTokenInfoAction(client *httputil.Client, apiKey string) *TokenInfoAction {
	return &TokenInfoAction{
		cg: newCoingeckoClient(client, apiKey),
		meta: actions.Metadata{
			Name: "GET_COINGECKO_TOKEN_INFO",
			Similes: []string{
				"token details",
				"coingecko token info",
				"lookup token by contract",
			},
			Description: "Get CoinGecko token details (name, market data, links) for a Solana token by its mint address",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"tokenAddress": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Output: map[string]any{
						"status": "success",
						"name":   "USDC",
						"symbol": "usdc",
					},
					Explanation: "Get token info for USDC",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tokenAddress": map[string]any{
						"type":        "string",
						"description": "Solana mint address of the token",
					},
				},
				"required":             []string{"tokenAddress"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TokenInfoAction) Metadata() actions.Metadata { return a.meta }

func (a *TokenInfoAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		TokenAddress string `json:"tokenAddress"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.TokenAddress == "" {
		return nil, actions.InvalidInputf("tokenAddress is required")
	}

	resp, err := a.cg.get(ctx, "/coins/solana/contract/"+in.TokenAddress)
	if err != nil {
		return actions.Errorf("token info lookup failed: %v", err), nil
	}
	return actions.Success(actions.Result{
		"id":           resp.Get("id").String(),
		"name":         resp.Get("name").String(),
		"symbol":       resp.Get("symbol").String(),
		"priceUsd":     resp.Get("market_data.current_price.usd").Float(),
		"marketCapUsd": resp.Get("market_data.market_cap.usd").Float(),
		"volume24hUsd": resp.Get("market_data.total_volume.usd").Float(),
		"homepage":     resp.Get("links.homepage.0").String(),
	}), nil
}

// TopGainersAction lists the top gaining tokens on CoinGecko.
type TopGainersAction struct {
	meta actions.Metadata
	cg   *coingeckoClient
}

// NewTopGainersAction constructs the GET_COINGECKO_TOP_GAINERS operation.
// The underlying endpoint requires a pro API key.
func NewTopGainersAction(client *httputil.Client, apiKey string) *TopGainersAction {
	return &TopGainersAction{
		cg: newCoingeckoClient(client, apiKey),
		meta: actions.Metadata{
			Name: "GET_COINGECKO_TOP_GAINERS",
			Similes: []string{
				"top gainers",
				"biggest movers",
				"best performing tokens",
			},
			Description: "Get the top gaining tokens on CoinGecko over a time window (requires a CoinGecko pro API key)",
			Examples: []actions.Example{
				{
					Input: map[string]any{"duration": "24h"},
					Output: map[string]any{
						"status":  "success",
						"gainers": []any{},
					},
					Explanation: "List the biggest 24h gainers",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"duration": map[string]any{
						"type":        "string",
						"description": "Window: 1h, 24h, 7d, 14d, 30d, 60d, or 1y (default 24h)",
					},
					"topCoins": map[string]any{
						"type":        "string",
						"description": "Universe to rank within: 300, 500, 1000, or all (default 1000)",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TopGainersAction) Metadata() actions.Metadata { return a.meta }

func (a *TopGainersAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Duration string `json:"duration"`
		TopCoins string `json:"topCoins"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	duration := in.Duration
	if duration == "" {
		duration = "24h"
	}
	topCoins := in.TopCoins
	if topCoins == "" {
		topCoins = "1000"
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("duration", duration)
	query.Set("top_coins", topCoins)
	resp, err := a.cg.get(ctx, "/coins/top_gainers_losers?"+query.Encode())
	if err != nil {
		return actions.Errorf("top gainers lookup failed: %v", err), nil
	}

	gainers := make([]map[string]any, 0)
	for _, c := range resp.Get("top_gainers").Array() {
		gainers = append(gainers, map[string]any{
			"id":       c.Get("id").String(),
			"symbol":   c.Get("symbol").String(),
			"name":     c.Get("name").String(),
			"priceUsd": c.Get("usd").Float(),
			"change":   c.Get("usd_" + duration + "_change").Float(),
		})
	}
	return actions.Success(actions.Result{
		"duration": duration,
		"gainers":  gainers,
	}), nil
}
