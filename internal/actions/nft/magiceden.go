package nft

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const magicEdenURL = "https://api-mainnet.magiceden.dev/v2"

func magicEdenHeaders(apiKey string) map[string]string {
	if apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

// CollectionStatsAction fetches Magic Eden stats for a collection.
type CollectionStatsAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
	apiKey  string
}

// NewCollectionStatsAction constructs the GET_MAGICEDEN_COLLECTION_STATS
// operation.
func NewCollectionStatsAction(client *httputil.Client, apiKey string) *CollectionStatsAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &CollectionStatsAction{
		http:    client,
		baseURL: magicEdenURL,
		apiKey:  apiKey,
		meta: actions.Metadata{
			Name: "GET_MAGICEDEN_COLLECTION_STATS",
			Similes: []string{
				"collection floor price",
				"nft collection stats",
				"magic eden stats",
			},
			Description: "Get Magic Eden stats for an NFT collection: floor price, listed count, and volume",
			Examples: []actions.Example{
				{
					Input: map[string]any{"collection": "mad_lads"},
					Output: map[string]any{
						"status":     "success",
						"floorPrice": 95.5,
						"listed":     203,
					},
					Explanation: "Get floor price and listings for Mad Lads",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collection": map[string]any{
						"type":        "string",
						"description": "Magic Eden collection symbol",
					},
				},
				"required":             []string{"collection"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *CollectionStatsAction) Metadata() actions.Metadata { return a.meta }

func (a *CollectionStatsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Collection string `json:"collection"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Collection == "" {
		return nil, actions.InvalidInputf("collection is required")
	}

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/collections/"+in.Collection+"/stats", magicEdenHeaders(a.apiKey))
	if err != nil {
		return actions.Errorf("collection stats lookup failed: %v", err), nil
	}

	const lamportsPerSol = 1e9
	return actions.Success(actions.Result{
		"collection":  in.Collection,
		"floorPrice":  resp.Get("floorPrice").Float() / lamportsPerSol,
		"listed":      resp.Get("listedCount").Int(),
		"volumeAll":   resp.Get("volumeAll").Float() / lamportsPerSol,
		"avgPrice24h": resp.Get("avgPrice24hr").Float() / lamportsPerSol,
	}), nil
}

// PopularCollectionsAction lists trending collections on Magic Eden.
type PopularCollectionsAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
	apiKey  string
}

// NewPopularCollectionsAction constructs the
// GET_POPULAR_MAGICEDEN_COLLECTIONS operation.
func NewPopularCollectionsAction(client *httputil.Client, apiKey string) *PopularCollectionsAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &PopularCollectionsAction{
		http:    client,
		baseURL: magicEdenURL,
		apiKey:  apiKey,
		meta: actions.Metadata{
			Name: "GET_POPULAR_MAGICEDEN_COLLECTIONS",
			Similes: []string{
				"trending collections",
				"popular nfts",
				"top nft collections",
			},
			Description: "List the most popular NFT collections on Magic Eden by recent volume",
			Examples: []actions.Example{
				{
					Input: map[string]any{"timeRange": "1d"},
					Output: map[string]any{
						"status": "success",
						"collections": []any{map[string]any{
							"symbol": "mad_lads",
							"name":   "Mad Lads",
						}},
					},
					Explanation: "List collections trending over the last day",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"timeRange": map[string]any{
						"type":        "string",
						"description": "Window for popularity ranking: 1h, 1d, 7d, or 30d (default 1d)",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (a *PopularCollectionsAction) Metadata() actions.Metadata { return a.meta }

func (a *PopularCollectionsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		TimeRange string `json:"timeRange"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	timeRange := in.TimeRange
	if timeRange == "" {
		timeRange = "1d"
	}

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/marketplace/popular_collections?timeRange="+timeRange, magicEdenHeaders(a.apiKey))
	if err != nil {
		return actions.Errorf("popular collections lookup failed: %v", err), nil
	}

	collections := make([]map[string]any, 0)
	for _, c := range resp.Array() {
		collections = append(collections, map[string]any{
			"symbol":     c.Get("symbol").String(),
			"name":       c.Get("name").String(),
			"floorPrice": c.Get("floorPrice").Float(),
			"volumeAll":  c.Get("volumeAll").Float(),
			"image":      c.Get("image").String(),
		})
	}
	return actions.Success(actions.Result{
		"timeRange":   timeRange,
		"collections": collections,
	}), nil
}

// CollectionListingsAction fetches active listings for a collection.
type CollectionListingsAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
	apiKey  string
}

// NewCollectionListingsAction constructs the
// GET_MAGICEDEN_COLLECTION_LISTINGS operation.
func NewCollectionListingsAction(client *httputil.Client, apiKey string) *CollectionListingsAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &CollectionListingsAction{
		http:    client,
		baseURL: magicEdenURL,
		apiKey:  apiKey,
		meta: actions.Metadata{
			Name: "GET_MAGICEDEN_COLLECTION_LISTINGS",
			Similes: []string{
				"collection listings",
				"nfts for sale",
				"active listings",
			},
			Description: "List active Magic Eden listings for an NFT collection, cheapest first",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"collection": "mad_lads",
						"limit":      5,
					},
					Output: map[string]any{
						"status": "success",
						"listings": []any{map[string]any{
							"tokenMint": "F9Lw3ki3hJ7PF9HQXsBzoY8GyE6sPoEZZdXJBsTTD2rk",
							"price":     95.5,
						}},
					},
					Explanation: "Get the five cheapest Mad Lads listings",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collection": map[string]any{
						"type":        "string",
						"description": "Magic Eden collection symbol",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum listings to return (default 20)",
					},
				},
				"required":             []string{"collection"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *CollectionListingsAction) Metadata() actions.Metadata { return a.meta }

func (a *CollectionListingsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Collection string `json:"collection"`
		Limit      int    `json:"limit"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Collection == "" {
		return nil, actions.InvalidInputf("collection is required")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}

	resp, err := a.http.GetJSON(ctx, fmt.Sprintf("%s/collections/%s/listings?offset=0&limit=%d", a.baseURL, in.Collection, limit), magicEdenHeaders(a.apiKey))
	if err != nil {
		return actions.Errorf("listings lookup failed: %v", err), nil
	}

	listings := make([]map[string]any, 0, limit)
	for _, l := range resp.Array() {
		listings = append(listings, map[string]any{
			"tokenMint": l.Get("tokenMint").String(),
			"price":     l.Get("price").Float(),
			"seller":    l.Get("seller").String(),
		})
	}
	return actions.Success(actions.Result{
		"collection": in.Collection,
		"listings":   listings,
	}), nil
}
