package token

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
)

// TransferAction moves SOL or SPL tokens to another wallet.
type TransferAction struct {
	meta actions.Metadata
}

// NewTransferAction constructs the TRANSFER operation.
func NewTransferAction() *TransferAction {
	return &TransferAction{
		meta: actions.Metadata{
			Name: "TRANSFER",
			Similes: []string{
				"send tokens",
				"send sol",
				"transfer funds",
				"send money",
				"pay",
			},
			Description: "Transfer SOL or SPL tokens to a recipient. If no mint is provided, SOL is transferred; otherwise the SPL token with that mint address.",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"to":     "GZbQmKYYzwjP3nbdqRWPLn98ipAni9w5eXMGp7bmZbGB",
						"amount": 0.1,
					},
					Output: map[string]any{
						"status":      "success",
						"transaction": "5UfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
						"amount":      0.1,
						"token":       "SOL",
					},
					Explanation: "Send 0.1 SOL to a recipient",
				},
				{
					Input: map[string]any{
						"to":     "GZbQmKYYzwjP3nbdqRWPLn98ipAni9w5eXMGp7bmZbGB",
						"amount": 5.0,
						"mint":   "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Output: map[string]any{
						"status":      "success",
						"transaction": "4VfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
						"amount":      5.0,
						"token":       "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Explanation: "Send 5 USDC to a recipient",
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
						"description": "Amount to transfer, in token units",
					},
					"mint": map[string]any{
						"type":        "string",
						"description": "Optional SPL token mint address; SOL is transferred when omitted",
					},
				},
				"required":             []string{"to", "amount"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TransferAction) Metadata() actions.Metadata { return a.meta }

func (a *TransferAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
		Mint   string  `json:"mint"`
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

	var mint *solana.PublicKey
	token := "SOL"
	if in.Mint != "" {
		parsed, err := solana.PublicKeyFromBase58(in.Mint)
		if err != nil {
			return nil, actions.InvalidInputf("invalid mint address %q: %v", in.Mint, err)
		}
		mint = &parsed
		token = in.Mint
	}

	// Rejections propagate as errors; an unconfirmed transfer is never a
	// degraded-but-valid result.
	sig, err := ag.Transfer(ctx, to, in.Amount, mint)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"transaction": sig.String(),
		"amount":      in.Amount,
		"token":       token,
		"recipient":   in.To,
	}), nil
}
