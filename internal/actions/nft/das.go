// Package nft implements digital asset queries, marketplace lookups, and
// collection/NFT minting flows.
package nft

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const heliusRPCURL = "https://mainnet.helius-rpc.com"

// dasClient issues Digital Asset Standard RPC calls against a Helius
// endpoint. All DAS actions share one client so the API key lives in one
// place.
type dasClient struct {
	http    *httputil.Client
	baseURL string
	apiKey  string
}

func newDASClient(client *httputil.Client, apiKey string) *dasClient {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &dasClient{http: client, baseURL: heliusRPCURL, apiKey: apiKey}
}

func (c *dasClient) call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	resp, err := c.http.PostJSON(ctx, c.baseURL+"/?api-key="+c.apiKey, map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	}, nil)
	if err != nil {
		return nil, err
	}
	if errMsg := resp.Get("error.message"); errMsg.Exists() {
		return nil, &httputil.StatusError{Code: int(resp.Get("error.code").Int()), Body: errMsg.String()}
	}
	return json.RawMessage(resp.Get("result").Raw), nil
}

// assetSummary trims a DAS asset down to the fields callers act on.
func assetSummary(raw json.RawMessage) map[string]any {
	var asset struct {
		ID      string `json:"id"`
		Content struct {
			Metadata struct {
				Name   string `json:"name"`
				Symbol string `json:"symbol"`
			} `json:"metadata"`
			JSONURI string `json:"json_uri"`
		} `json:"content"`
		Interface string `json:"interface"`
		Ownership struct {
			Owner string `json:"owner"`
		} `json:"ownership"`
		Grouping []struct {
			GroupKey   string `json:"group_key"`
			GroupValue string `json:"group_value"`
		} `json:"grouping"`
	}
	if err := json.Unmarshal(raw, &asset); err != nil {
		return map[string]any{"raw": string(raw)}
	}
	out := map[string]any{
		"id":        asset.ID,
		"name":      asset.Content.Metadata.Name,
		"symbol":    asset.Content.Metadata.Symbol,
		"uri":       asset.Content.JSONURI,
		"interface": asset.Interface,
		"owner":     asset.Ownership.Owner,
	}
	for _, g := range asset.Grouping {
		if g.GroupKey == "collection" {
			out["collection"] = g.GroupValue
		}
	}
	return out
}

// GetAssetAction fetches a single digital asset by ID.
type GetAssetAction struct {
	meta actions.Metadata
	das  *dasClient
}

// NewGetAssetAction constructs the GET_ASSET operation.
func NewGetAssetAction(client *httputil.Client, apiKey string) *GetAssetAction {
	return &GetAssetAction{
		das: newDASClient(client, apiKey),
		meta: actions.Metadata{
			Name: "GET_ASSET",
			Similes: []string{
				"get nft",
				"fetch asset",
				"lookup nft by address",
			},
			Description: "Fetch a digital asset (NFT or token) by its asset ID using the Digital Asset Standard API",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"assetId": "F9Lw3ki3hJ7PF9HQXsBzoY8GyE6sPoEZZdXJBsTTD2rk",
					},
					Output: map[string]any{
						"status": "success",
						"asset": map[string]any{
							"id":   "F9Lw3ki3hJ7PF9HQXsBzoY8GyE6sPoEZZdXJBsTTD2rk",
							"name": "Mad Lad #420",
						},
					},
					Explanation: "Look up an NFT by its address",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"assetId": map[string]any{
						"type":        "string",
						"description": "Asset ID (mint address) to fetch",
					},
				},
				"required":             []string{"assetId"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *GetAssetAction) Metadata() actions.Metadata { return a.meta }

func (a *GetAssetAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		AssetID string `json:"assetId"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.AssetID == "" {
		return nil, actions.InvalidInputf("assetId is required")
	}
	if _, err := solana.PublicKeyFromBase58(in.AssetID); err != nil {
		return nil, actions.InvalidInputf("invalid asset id %q: %v", in.AssetID, err)
	}

	result, err := a.das.call(ctx, "getAsset", map[string]any{"id": in.AssetID})
	if err != nil {
		return actions.Errorf("asset lookup failed: %v", err), nil
	}
	return actions.Success(actions.Result{
		"asset": assetSummary(result),
	}), nil
}

// SearchAssetsAction searches digital assets by owner.
type SearchAssetsAction struct {
	meta actions.Metadata
	das  *dasClient
}

// NewSearchAssetsAction constructs the SEARCH_ASSETS operation.
func NewSearchAssetsAction(client *httputil.Client, apiKey string) *SearchAssetsAction {
	return &SearchAssetsAction{
		das: newDASClient(client, apiKey),
		meta: actions.Metadata{
			Name: "SEARCH_ASSETS",
			Similes: []string{
				"search nfts",
				"find assets by owner",
				"list wallet nfts",
			},
			Description: "Search digital assets owned by a wallet using the Digital Asset Standard API",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"owner": "GZbQmKYYzwjP3nbdqRWPLn98ipAni9w5eXMGp7bmZbGB",
						"limit": 10,
					},
					Output: map[string]any{
						"status": "success",
						"total":  42,
						"assets": []any{},
					},
					Explanation: "List NFTs owned by a wallet",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"owner": map[string]any{
						"type":        "string",
						"description": "Owner wallet address; defaults to the agent wallet",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum assets to return (default 20)",
					},
					"page": map[string]any{
						"type":        "integer",
						"description": "Page number, 1-based (default 1)",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (a *SearchAssetsAction) Metadata() actions.Metadata { return a.meta }

func (a *SearchAssetsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Owner string `json:"owner"`
		Limit int    `json:"limit"`
		Page  int    `json:"page"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	owner := in.Owner
	if owner == "" {
		owner = ag.Address().String()
	} else if _, err := solana.PublicKeyFromBase58(owner); err != nil {
		return nil, actions.InvalidInputf("invalid owner address %q: %v", owner, err)
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}

	result, err := a.das.call(ctx, "searchAssets", map[string]any{
		"ownerAddress": owner,
		"tokenType":    "nonFungible",
		"page":         page,
		"limit":        limit,
	})
	if err != nil {
		return actions.Errorf("asset search failed: %v", err), nil
	}

	var resultPage struct {
		Total uint64            `json:"total"`
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(result, &resultPage); err != nil {
		return actions.Errorf("asset search response not decodable: %v", err), nil
	}
	assets := make([]map[string]any, 0, len(resultPage.Items))
	for _, item := range resultPage.Items {
		assets = append(assets, assetSummary(item))
	}
	return actions.Success(actions.Result{
		"owner":  owner,
		"total":  resultPage.Total,
		"assets": assets,
	}), nil
}

// AssetsByCreatorAction lists digital assets created by an address.
type AssetsByCreatorAction struct {
	meta actions.Metadata
	das  *dasClient
}

// NewAssetsByCreatorAction constructs the GET_ASSETS_BY_CREATOR operation.
func NewAssetsByCreatorAction(client *httputil.Client, apiKey string) *AssetsByCreatorAction {
	return &AssetsByCreatorAction{
		das: newDASClient(client, apiKey),
		meta: actions.Metadata{
			Name: "GET_ASSETS_BY_CREATOR",
			Similes: []string{
				"assets by creator",
				"nfts created by",
				"creator collection",
			},
			Description: "List digital assets created by a given address using the Digital Asset Standard API",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"creator": "D3XrkNZz6wx6cofot7Zohsf2KSsu2ArngNk8VqU9cTY3",
					},
					Output: map[string]any{
						"status": "success",
						"total":  100,
						"assets": []any{},
					},
					Explanation: "List assets created by an address",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"creator": map[string]any{
						"type":        "string",
						"description": "Creator address",
					},
					"onlyVerified": map[string]any{
						"type":        "boolean",
						"description": "Only include assets where the creator is verified (default true)",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum assets to return (default 20)",
					},
					"page": map[string]any{
						"type":        "integer",
						"description": "Page number, 1-based (default 1)",
					},
				},
				"required":             []string{"creator"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *AssetsByCreatorAction) Metadata() actions.Metadata { return a.meta }

func (a *AssetsByCreatorAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	in := struct {
		Creator      string `json:"creator"`
		OnlyVerified *bool  `json:"onlyVerified"`
		Limit        int    `json:"limit"`
		Page         int    `json:"page"`
	}{}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Creator == "" {
		return nil, actions.InvalidInputf("creator is required")
	}
	if _, err := solana.PublicKeyFromBase58(in.Creator); err != nil {
		return nil, actions.InvalidInputf("invalid creator address %q: %v", in.Creator, err)
	}
	onlyVerified := true
	if in.OnlyVerified != nil {
		onlyVerified = *in.OnlyVerified
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}

	result, err := a.das.call(ctx, "getAssetsByCreator", map[string]any{
		"creatorAddress": in.Creator,
		"onlyVerified":   onlyVerified,
		"page":           page,
		"limit":          limit,
	})
	if err != nil {
		return actions.Errorf("creator asset lookup failed: %v", err), nil
	}

	var resultPage struct {
		Total uint64            `json:"total"`
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(result, &resultPage); err != nil {
		return actions.Errorf("creator asset response not decodable: %v", err), nil
	}
	assets := make([]map[string]any, 0, len(resultPage.Items))
	for _, item := range resultPage.Items {
		assets = append(assets, assetSummary(item))
	}
	return actions.Success(actions.Result{
		"creator": in.Creator,
		"total":   resultPage.Total,
		"assets":  assets,
	}), nil
}
