// Package token implements SOL and SPL token actions.
package token

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/compose"
)

// BalanceAction returns the SOL or SPL token balance of the agent wallet.
type BalanceAction struct {
	meta actions.Metadata
}

// NewBalanceAction constructs the BALANCE_ACTION operation.
func NewBalanceAction() *BalanceAction {
	return &BalanceAction{
		meta: actions.Metadata{
			Name: "BALANCE_ACTION",
			Similes: []string{
				"check balance",
				"get wallet balance",
				"view balance",
				"show balance",
				"check token balance",
			},
			Description: "Get the balance of a Solana wallet or token account. If you want to get the balance of your wallet, you don't need to provide the tokenAddress. If no tokenAddress is provided, the balance will be in SOL.",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":  "success",
						"balance": "100",
						"token":   "SOL",
					},
					Explanation: "Get SOL balance of the wallet",
				},
				{
					Input: map[string]any{
						"tokenAddress": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Output: map[string]any{
						"status":  "success",
						"balance": "1000",
						"token":   "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					},
					Explanation: "Get USDC token balance",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tokenAddress": map[string]any{
						"type":        "string",
						"description": "Optional SPL token mint address; if omitted, SOL balance is returned",
					},
				},
				"required":             []string{},
				"additionalProperties": false,
			},
		},
	}
}

func (a *BalanceAction) Metadata() actions.Metadata { return a.meta }

func (a *BalanceAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		TokenAddress string `json:"tokenAddress"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}

	var mint *solana.PublicKey
	token := "SOL"
	if in.TokenAddress != "" {
		parsed, err := solana.PublicKeyFromBase58(in.TokenAddress)
		if err != nil {
			return nil, actions.InvalidInputf("invalid token address %q: %v", in.TokenAddress, err)
		}
		mint = &parsed
		token = in.TokenAddress
	}

	balance, err := ag.Balance(ctx, mint)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"balance": balance,
		"token":   token,
	}), nil
}

// TokenBalancesAction lists SOL plus every SPL token held by a wallet.
type TokenBalancesAction struct {
	meta actions.Metadata
}

// NewTokenBalancesAction constructs the TOKEN_BALANCE_ACTION operation.
func NewTokenBalancesAction() *TokenBalancesAction {
	return &TokenBalancesAction{
		meta: actions.Metadata{
			Name: "TOKEN_BALANCE_ACTION",
			Similes: []string{
				"check token balances",
				"get wallet token balances",
				"view token balances",
				"show token balances",
				"all balances",
			},
			Description: "Get all token balances (SOL + SPL tokens) for a Solana wallet",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status": "success",
						"balance": map[string]any{
							"sol": 5.5,
							"tokens": []any{map[string]any{
								"tokenAddress": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
								"balance":      100.0,
								"decimals":     6,
							}},
						},
					},
					Explanation: "Get all token balances for the agent's wallet",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"walletAddress": map[string]any{
						"type":        "string",
						"description": "Optional wallet address to check; defaults to agent wallet",
					},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TokenBalancesAction) Metadata() actions.Metadata { return a.meta }

func (a *TokenBalancesAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}

	owner := ag.Address()
	if in.WalletAddress != "" {
		parsed, err := solana.PublicKeyFromBase58(in.WalletAddress)
		if err != nil {
			return nil, actions.InvalidInputf("invalid wallet address %q: %v", in.WalletAddress, err)
		}
		owner = parsed
	}

	lamports, err := ag.Client().Balance(ctx, owner)
	if err != nil {
		return nil, err
	}
	holdings, err := ag.Client().TokenAccountsByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	tokens := make([]map[string]any, 0, len(holdings))
	for _, h := range holdings {
		tokens = append(tokens, map[string]any{
			"tokenAddress": h.Mint,
			"balance":      h.Amount,
			"decimals":     h.Decimals,
		})
	}
	return actions.Success(actions.Result{
		"wallet": owner.String(),
		"balance": map[string]any{
			"sol":    compose.FromBaseUnits(lamports, agent.SolDecimals),
			"tokens": tokens,
		},
	}), nil
}
