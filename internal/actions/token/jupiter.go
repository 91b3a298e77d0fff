package token

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/compose"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const (
	jupiterPriceURL = "https://api.jup.ag/price/v2"
	jupiterQuoteURL = "https://quote-api.jup.ag/v6"
	jupiterTokenURL = "https://token.jup.ag"

	defaultSlippageBps = 300
)

// FetchPriceAction fetches the USD price of a token from Jupiter.
type FetchPriceAction struct {
	meta     actions.Metadata
	http     *httputil.Client
	priceURL string
}

// NewFetchPriceAction constructs the FETCH_PRICE operation.
func NewFetchPriceAction(client *httputil.Client) *FetchPriceAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &FetchPriceAction{
		http:     client,
		priceURL: jupiterPriceURL,
		meta: actions.Metadata{
			Name: "FETCH_PRICE",
			Similes: []string{
				"get token price",
				"check price",
				"token price",
				"how much is",
			},
			Description: "Fetch the current USD price of a Solana token by its mint address",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"tokenAddress": "So11111111111111111111111111111111111111112",
					},
					Output: map[string]any{
						"status":       "success",
						"price":        "180.22",
						"tokenAddress": "So11111111111111111111111111111111111111112",
					},
					Explanation: "Get the current price of SOL in USDC",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tokenAddress": map[string]any{
						"type":        "string",
						"description": "Mint address of the token to price",
					},
				},
				"required":             []string{"tokenAddress"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *FetchPriceAction) Metadata() actions.Metadata { return a.meta }

func (a *FetchPriceAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		TokenAddress string `json:"tokenAddress"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.TokenAddress == "" {
		return nil, actions.InvalidInputf("tokenAddress is required")
	}
	if _, err := solana.PublicKeyFromBase58(in.TokenAddress); err != nil {
		return nil, actions.InvalidInputf("invalid token address %q: %v", in.TokenAddress, err)
	}

	resp, err := a.http.GetJSON(ctx, a.priceURL+"?ids="+url.QueryEscape(in.TokenAddress), nil)
	if err != nil {
		return actions.Errorf("price lookup failed: %v", err), nil
	}
	price := resp.Get("data." + in.TokenAddress + ".price")
	if !price.Exists() || price.String() == "" {
		return actions.Errorf("no price data for token %s", in.TokenAddress), nil
	}
	return actions.Success(actions.Result{
		"price":        price.String(),
		"tokenAddress": in.TokenAddress,
	}), nil
}

// TradeAction swaps tokens through the Jupiter aggregator.
type TradeAction struct {
	meta     actions.Metadata
	http     *httputil.Client
	quoteURL string
}

// NewTradeAction constructs the TRADE operation.
func NewTradeAction(client *httputil.Client) *TradeAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &TradeAction{
		http:     client,
		quoteURL: jupiterQuoteURL,
		meta: actions.Metadata{
			Name: "TRADE",
			Similes: []string{
				"swap tokens",
				"exchange tokens",
				"trade tokens",
				"convert tokens",
				"swap sol",
			},
			Description: "Swap tokens using the Jupiter aggregator. Defaults to swapping from SOL when no input mint is provided.",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"outputMint":  "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
						"inputAmount": 1.0,
					},
					Output: map[string]any{
						"status":      "success",
						"transaction": "5UfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
						"inputAmount": 1.0,
						"outputMint":  "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Explanation: "Swap 1 SOL for USDC",
				},
				{
					Input: map[string]any{
						"outputMint":  "So11111111111111111111111111111111111111112",
						"inputMint":   "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
						"inputAmount": 100,
						"slippageBps": 100,
					},
					Output: map[string]any{
						"status":      "success",
						"transaction": "4VfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
						"inputAmount": 100,
						"outputMint":  "So11111111111111111111111111111111111111112",
					},
					Explanation: "Swap 100 USDC for SOL with 1% slippage",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"outputMint": map[string]any{
						"type":        "string",
						"description": "Mint address of the token to receive",
					},
					"inputAmount": map[string]any{
						"type":        "number",
						"description": "Amount to swap, in input token units",
					},
					"inputMint": map[string]any{
						"type":        "string",
						"description": "Optional mint address of the token to spend; SOL when omitted",
					},
					"slippageBps": map[string]any{
						"type":        "integer",
						"description": "Optional slippage tolerance in basis points (default 300)",
					},
				},
				"required":             []string{"outputMint", "inputAmount"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TradeAction) Metadata() actions.Metadata { return a.meta }

func (a *TradeAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		OutputMint  string  `json:"outputMint"`
		InputAmount float64 `json:"inputAmount"`
		InputMint   string  `json:"inputMint"`
		SlippageBps int     `json:"slippageBps"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.OutputMint == "" {
		return nil, actions.InvalidInputf("outputMint is required")
	}
	if _, err := solana.PublicKeyFromBase58(in.OutputMint); err != nil {
		return nil, actions.InvalidInputf("invalid output mint %q: %v", in.OutputMint, err)
	}

	inputMint := solana.SolMint
	decimals := agent.SolDecimals
	if in.InputMint != "" {
		parsed, err := solana.PublicKeyFromBase58(in.InputMint)
		if err != nil {
			return nil, actions.InvalidInputf("invalid input mint %q: %v", in.InputMint, err)
		}
		inputMint = parsed
		info, err := ag.Mint(ctx, inputMint)
		if err != nil {
			return actions.Errorf("failed to resolve input mint: %v", err), nil
		}
		decimals = info.Decimals
	}
	slippage := in.SlippageBps
	if slippage <= 0 {
		slippage = defaultSlippageBps
	}

	raw, err := compose.ToBaseUnits(in.InputAmount, decimals)
	if err != nil {
		return nil, err
	}

	quoteQuery := url.Values{}
	quoteQuery.Set("inputMint", inputMint.String())
	quoteQuery.Set("outputMint", in.OutputMint)
	quoteQuery.Set("amount", fmt.Sprintf("%d", raw))
	quoteQuery.Set("slippageBps", fmt.Sprintf("%d", slippage))
	quote, err := a.http.GetJSON(ctx, a.quoteURL+"/quote?"+quoteQuery.Encode(), nil)
	if err != nil {
		return actions.Errorf("quote failed: %v", err), nil
	}

	swap, err := a.http.PostJSON(ctx, a.quoteURL+"/swap", map[string]any{
		"quoteResponse":             json.RawMessage(quote.Raw),
		"userPublicKey":             ag.Address().String(),
		"wrapAndUnwrapSol":          true,
		"dynamicComputeUnitLimit":   true,
		"prioritizationFeeLamports": "auto",
	}, nil)
	if err != nil {
		return actions.Errorf("swap request failed: %v", err), nil
	}

	encoded := swap.Get("swapTransaction").String()
	if encoded == "" {
		return actions.Errorf("swap response missing transaction"), nil
	}
	txBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return actions.Errorf("swap transaction not decodable: %v", err), nil
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(txBytes))
	if err != nil {
		return actions.Errorf("swap transaction not parseable: %v", err), nil
	}

	if err := ag.Wallet().SignTransaction(ctx, tx); err != nil {
		return nil, err
	}
	sig, err := ag.Client().SendAndConfirm(ctx, tx)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"transaction": sig.String(),
		"inputAmount": in.InputAmount,
		"inputMint":   inputMint.String(),
		"outputMint":  in.OutputMint,
	}), nil
}

// TokenListAction fetches the Jupiter token list.
type TokenListAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	listURL string
}

// NewTokenListAction constructs the GET_JUPITER_TOKEN_LIST operation.
func NewTokenListAction(client *httputil.Client) *TokenListAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &TokenListAction{
		http:    client,
		listURL: jupiterTokenURL,
		meta: actions.Metadata{
			Name: "GET_JUPITER_TOKEN_LIST",
			Similes: []string{
				"list jupiter tokens",
				"get token list",
				"jupiter tokens",
			},
			Description: "Get the Jupiter token list. Use the strict list for verified tokens only.",
			Examples: []actions.Example{
				{
					Input: map[string]any{"strict": true},
					Output: map[string]any{
						"status": "success",
						"count":  1500,
					},
					Explanation: "Get the strict (verified) Jupiter token list",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"strict": map[string]any{
						"type":        "boolean",
						"description": "Return only verified tokens (default false)",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TokenListAction) Metadata() actions.Metadata { return a.meta }

func (a *TokenListAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Strict bool `json:"strict"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	path := "/all"
	if in.Strict {
		path = "/strict"
	}
	resp, err := a.http.GetJSON(ctx, a.listURL+path, nil)
	if err != nil {
		return actions.Errorf("token list fetch failed: %v", err), nil
	}

	tokens := make([]map[string]any, 0)
	for _, t := range resp.Array() {
		tokens = append(tokens, map[string]any{
			"address":  t.Get("address").String(),
			"symbol":   t.Get("symbol").String(),
			"name":     t.Get("name").String(),
			"decimals": t.Get("decimals").Int(),
		})
	}
	return actions.Success(actions.Result{
		"count":  len(tokens),
		"tokens": tokens,
	}), nil
}

// SearchTokensAction searches the Jupiter token list by symbol or name.
type SearchTokensAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	listURL string
}

// NewSearchTokensAction constructs the SEARCH_JUPITER_TOKENS operation.
func NewSearchTokensAction(client *httputil.Client) *SearchTokensAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &SearchTokensAction{
		http:    client,
		listURL: jupiterTokenURL,
		meta: actions.Metadata{
			Name: "SEARCH_JUPITER_TOKENS",
			Similes: []string{
				"search tokens",
				"find token",
				"lookup token by symbol",
			},
			Description: "Search the Jupiter token list by symbol or name substring",
			Examples: []actions.Example{
				{
					Input: map[string]any{"query": "USDC"},
					Output: map[string]any{
						"status": "success",
						"tokens": []any{map[string]any{
							"address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
							"symbol":  "USDC",
						}},
					},
					Explanation: "Find the USDC token",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Symbol or name substring to search for",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum results to return (default 10)",
					},
				},
				"required":             []string{"query"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *SearchTokensAction) Metadata() actions.Metadata { return a.meta }

func (a *SearchTokensAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
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

	resp, err := a.http.GetJSON(ctx, a.listURL+"/strict", nil)
	if err != nil {
		return actions.Errorf("token list fetch failed: %v", err), nil
	}

	query := strings.ToLower(in.Query)
	matches := make([]map[string]any, 0, limit)
	for _, t := range resp.Array() {
		symbol := t.Get("symbol").String()
		name := t.Get("name").String()
		if !strings.Contains(strings.ToLower(symbol), query) &&
			!strings.Contains(strings.ToLower(name), query) {
			continue
		}
		matches = append(matches, map[string]any{
			"address":  t.Get("address").String(),
			"symbol":   symbol,
			"name":     name,
			"decimals": t.Get("decimals").Int(),
		})
		if len(matches) >= limit {
			break
		}
	}
	return actions.Success(actions.Result{
		"query":  in.Query,
		"tokens": matches,
	}), nil
}
