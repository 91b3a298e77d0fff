package token

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const rugcheckURL = "https://api.rugcheck.xyz/v1"

// RugcheckAction fetches a token risk report from RugCheck.
type RugcheckAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
}

// NewRugcheckAction constructs the RUGCHECK operation.
func NewRugcheckAction(client *httputil.Client) *RugcheckAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &RugcheckAction{
		http:    client,
		baseURL: rugcheckURL,
		meta: actions.Metadata{
			Name: "RUGCHECK",
			Similes: []string{
				"check token safety",
				"rug check",
				"is this token safe",
				"token risk report",
			},
			Description: "Fetch a risk report for a token from RugCheck, including risk score and flagged issues",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Output: map[string]any{
						"status": "success",
						"score":  1,
						"risks":  []any{},
					},
					Explanation: "Check the risk profile of USDC",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mint": map[string]any{
						"type":        "string",
						"description": "Mint address of the token to check",
					},
				},
				"required":             []string{"mint"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *RugcheckAction) Metadata() actions.Metadata { return a.meta }

func (a *RugcheckAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Mint string `json:"mint"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Mint == "" {
		return nil, actions.InvalidInputf("mint is required")
	}
	if _, err := solana.PublicKeyFromBase58(in.Mint); err != nil {
		return nil, actions.InvalidInputf("invalid mint address %q: %v", in.Mint, err)
	}

	resp, err := a.http.GetJSON(ctx, a.baseURL+"/tokens/"+in.Mint+"/report/summary", nil)
	if err != nil {
		return actions.Errorf("rugcheck lookup failed: %v", err), nil
	}

	risks := make([]map[string]any, 0)
	for _, r := range resp.Get("risks").Array() {
		risks = append(risks, map[string]any{
			"name":        r.Get("name").String(),
			"description": r.Get("description").String(),
			"level":       r.Get("level").String(),
			"score":       r.Get("score").Int(),
		})
	}
	return actions.Success(actions.Result{
		"mint":  in.Mint,
		"score": resp.Get("score").Int(),
		"risks": risks,
	}), nil
}
