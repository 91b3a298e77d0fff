package misc

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/google/uuid"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/compose"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

const (
	heliusAPIURL = "https://api.helius.xyz"
	heliusRPCURL = "https://mainnet.helius-rpc.com"
)

// ParseTransactionAction decodes a transaction into human-readable form.
type ParseTransactionAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	baseURL string
	apiKey  string
}

// NewParseTransactionAction constructs the PARSE_TRANSACTION operation.
func NewParseTransactionAction(client *httputil.Client, apiKey string) *ParseTransactionAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &ParseTransactionAction{
		http:    client,
		baseURL: heliusAPIURL,
		apiKey:  apiKey,
		meta: actions.Metadata{
			Name: "PARSE_TRANSACTION",
			Similes: []string{
				"parse transaction",
				"explain transaction",
				"decode transaction",
			},
			Description: "Parse a confirmed transaction signature into a human-readable summary using the Helius enhanced transactions API",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"signature": "5UfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
					},
					Output: map[string]any{
						"status": "success",
						"transaction": map[string]any{
							"type":        "TRANSFER",
							"description": "wallet transferred 0.1 SOL",
						},
					},
					Explanation: "Explain what a transaction did",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"signature": map[string]any{
						"type":        "string",
						"description": "Transaction signature to parse",
					},
				},
				"required":             []string{"signature"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *ParseTransactionAction) Metadata() actions.Metadata { return a.meta }

func (a *ParseTransactionAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Signature string `json:"signature"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Signature == "" {
		return nil, actions.InvalidInputf("signature is required")
	}
	if _, err := solana.SignatureFromBase58(in.Signature); err != nil {
		return nil, actions.InvalidInputf("invalid signature %q: %v", in.Signature, err)
	}

	resp, err := a.http.PostJSON(ctx, a.baseURL+"/v0/transactions/?api-key="+a.apiKey, map[string]any{
		"transactions": []string{in.Signature},
	}, nil)
	if err != nil {
		return actions.Errorf("transaction parse failed: %v", err), nil
	}
	parsed := resp.Get("0")
	if !parsed.Exists() {
		return actions.Errorf("no parsed data for signature %s", in.Signature), nil
	}

	transfers := make([]map[string]any, 0)
	for _, t := range parsed.Get("nativeTransfers").Array() {
		transfers = append(transfers, map[string]any{
			"from":     t.Get("fromUserAccount").String(),
			"to":       t.Get("toUserAccount").String(),
			"lamports": t.Get("amount").Int(),
		})
	}
	return actions.Success(actions.Result{
		"transaction": map[string]any{
			"signature":       in.Signature,
			"type":            parsed.Get("type").String(),
			"source":          parsed.Get("source").String(),
			"description":     parsed.Get("description").String(),
			"fee":             parsed.Get("fee").Int(),
			"slot":            parsed.Get("slot").Int(),
			"timestamp":       parsed.Get("timestamp").Int(),
			"nativeTransfers": transfers,
		},
	}), nil
}

// PrioritySendAction transfers SOL with a priority fee attached.
type PrioritySendAction struct {
	meta    actions.Metadata
	http    *httputil.Client
	rpcURL  string
	apiKey  string
}

// Fallback price when no fee estimate is available, in micro-lamports per
// compute unit.
const defaultComputeUnitPrice = 10_000

// NewPrioritySendAction constructs the SEND_TRANSACTION_WITH_PRIORITY
// operation.
func NewPrioritySendAction(client *httputil.Client, apiKey string) *PrioritySendAction {
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &PrioritySendAction{
		http:   client,
		rpcURL: heliusRPCURL,
		apiKey: apiKey,
		meta: actions.Metadata{
			Name: "SEND_TRANSACTION_WITH_PRIORITY",
			Similes: []string{
				"priority transfer",
				"fast transfer",
				"send sol with priority fee",
			},
			Description: "Transfer SOL with a compute-unit priority fee so the transaction lands faster under congestion. The fee is estimated from the Helius priority fee API when available.",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"to":            "GZbQmKYYzwjP3nbdqRWPLn98ipAni9w5eXMGp7bmZbGB",
						"amount":        0.1,
						"priorityLevel": "High",
					},
					Output: map[string]any{
						"status":      "success",
						"transaction": "5UfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
						"fee":         50000,
					},
					Explanation: "Send 0.1 SOL with a high priority fee",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"to": map[string]any{
						"type":        "string",
						"description": "Recipient wallet address",
					},
					"amount": map[string]any{
						"type":        "number",
						"description": "Amount of SOL to transfer",
					},
					"priorityLevel": map[string]any{
						"type":        "string",
						"description": "Fee estimate level: Min, Low, Medium, High, VeryHigh (default High)",
					},
				},
				"required":             []string{"to", "amount"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *PrioritySendAction) Metadata() actions.Metadata { return a.meta }

// feeEstimate asks Helius for a priority fee estimate in micro-lamports per
// compute unit. Falls back to a fixed price when no API key is configured or
// the estimate fails; a worse fee is preferable to a failed transfer.
func (a *PrioritySendAction) feeEstimate(ctx context.Context, accounts []string, level string) uint64 {
	if a.apiKey == "" {
		return defaultComputeUnitPrice
	}
	resp, err := a.http.PostJSON(ctx, a.rpcURL+"/?api-key="+a.apiKey, map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  "getPriorityFeeEstimate",
		"params": []any{map[string]any{
			"accountKeys": accounts,
			"options":     map[string]any{"priorityLevel": level},
		}},
	}, nil)
	if err != nil {
		return defaultComputeUnitPrice
	}
	estimate := resp.Get("result.priorityFeeEstimate")
	if !estimate.Exists() || estimate.Float() <= 0 {
		return defaultComputeUnitPrice
	}
	return uint64(estimate.Float())
}

func (a *PrioritySendAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		To            string  `json:"to"`
		Amount        float64 `json:"amount"`
		PriorityLevel string  `json:"priorityLevel"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.To == "" {
		return nil, actions.InvalidInputf("to is required")
	}
	to, err := solana.PublicKeyFromBase58(in.To)
	if err != nil {
		return nil, actions.InvalidInputf("invalid recipient address %q: %v", in.To, err)
	}
	level := in.PriorityLevel
	if level == "" {
		level = "High"
	}
	lamports, err := compose.ToBaseUnits(in.Amount, agent.SolDecimals)
	if err != nil {
		return nil, err
	}

	from := ag.Address()
	unitPrice := a.feeEstimate(ctx, []string{from.String(), to.String()}, level)

	builder := compose.NewBuilder(from)
	builder.Append(
		computebudget.NewSetComputeUnitPriceInstruction(unitPrice).Build(),
		system.NewTransferInstruction(lamports, from, to).Build(),
	)
	sig, err := ag.SubmitBuilder(ctx, builder)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"transaction":      sig.String(),
		"amount":           in.Amount,
		"recipient":        in.To,
		"computeUnitPrice": unitPrice,
		"priorityLevel":    level,
	}), nil
}
