package misc

import (
	"context"
	"encoding/json"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

// CreateWebhookAction registers a Helius webhook for address activity.
type CreateWebhookAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
	apiKey  string
}

// NewCreateWebhookAction constructs the CREATE_HELIUS_WEBHOOK operation.
func NewCreateWebhookAction(client *httputil.Client, apiKey string) *CreateWebhookAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &CreateWebhookAction{
		http:    client,
		baseURL: heliusAPIURL,
		apiKey:  apiKey,
		meta: actions.Metadata{
			Name: "CREATE_HELIUS_WEBHOOK",
			Similes: []string{
				"create webhook",
				"helius webhook",
				"monitor address",
			},
			Description: "Create a Helius webhook to receive enhanced transaction notifications for the given addresses",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"accountAddresses": []any{"GZbQmKYYzwjP3nbdqRWPLn98ipAni9w5eXMGp7bmZbGB"},
						"webhookURL":       "https://my-server.com/webhook",
					},
					Output: map[string]any{
						"status":     "success",
						"webhookID":  "webhook-id-123",
						"webhookURL": "https://my-server.com/webhook",
					},
					Explanation: "Create a Helius webhook to monitor an address",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"accountAddresses": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Addresses to monitor",
					},
					"webhookURL": map[string]any{
						"type":        "string",
						"description": "URL to receive webhook notifications",
					},
					"transactionTypes": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Transaction types to subscribe to (default Any)",
					},
				},
				"required":             []string{"accountAddresses", "webhookURL"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *CreateWebhookAction) Metadata() actions.Metadata { return a.meta }

func (a *CreateWebhookAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		AccountAddresses []string `json:"accountAddresses"`
		WebhookURL       string   `json:"webhookURL"`
		TransactionTypes []string `json:"transactionTypes"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if len(in.AccountAddresses) == 0 {
		return nil, actions.InvalidInputf("accountAddresses is required")
	}
	if in.WebhookURL == "" {
		return nil, actions.InvalidInputf("webhookURL is required")
	}
	if a.apiKey == "" {
		return actions.Errorf("no Helius API key configured"), nil
	}
	txTypes := in.TransactionTypes
	if len(txTypes) == 0 {
		txTypes = []string{"Any"}
	}

	resp, err := a.http.PostJSON(ctx, a.baseURL+"/v0/webhooks?api-key="+a.apiKey, map[string]any{
		"webhookURL":       in.WebhookURL,
		"accountAddresses": in.AccountAddresses,
		"transactionTypes": txTypes,
		"webhookType":      "enhanced",
	}, nil)
	if err != nil {
		return actions.Errorf("webhook creation failed: %v", err), nil
	}
	return actions.Success(actions.Result{
		"webhookID":  resp.Get("webhookID").String(),
		"webhookURL": resp.Get("webhookURL").String(),
	}), nil
}
