package token

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
)

// WalletAddressAction reveals the agent's wallet address.
type WalletAddressAction struct {
	meta actions.Metadata
}

// NewWalletAddressAction constructs the WALLET_ADDRESS operation.
func NewWalletAddressAction() *WalletAddressAction {
	return &WalletAddressAction{
		meta: actions.Metadata{
			Name: "WALLET_ADDRESS",
			Similes: []string{
				"get wallet address",
				"show my address",
				"what is my address",
				"wallet pubkey",
			},
			Description: "Get the public address of the agent's wallet",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":  "success",
						"address": "GZbQmKYYzwjP3nbdqRWPLn98ipAni9w5eXMGp7bmZbGB",
					},
					Explanation: "Get the agent's wallet address",
				},
			},
			InputSchema: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"required":             []string{},
				"additionalProperties": false,
			},
		},
	}
}

func (a *WalletAddressAction) Metadata() actions.Metadata { return a.meta }

func (a *WalletAddressAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	return actions.Success(actions.Result{
		"address": ag.Address().String(),
	}), nil
}

// TPSAction reports current network throughput.
type TPSAction struct {
	meta actions.Metadata
}

// NewTPSAction constructs the GET_TPS operation.
func NewTPSAction() *TPSAction {
	return &TPSAction{
		meta: actions.Metadata{
			Name: "GET_TPS",
			Similes: []string{
				"get transactions per second",
				"network speed",
				"solana tps",
				"network throughput",
			},
			Description: "Get the current transactions per second (TPS) of the Solana network",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":  "success",
						"tps":     3456.0,
						"message": "Current network TPS: 3456",
					},
					Explanation: "Get the current Solana network TPS",
				},
			},
			InputSchema: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"required":             []string{},
				"additionalProperties": false,
			},
		},
	}
}

func (a *TPSAction) Metadata() actions.Metadata { return a.meta }

func (a *TPSAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	tps, err := ag.TPS(ctx)
	if err != nil {
		return actions.Errorf("no performance samples available: %v", err), nil
	}
	return actions.Success(actions.Result{
		"tps":     tps,
		"message": fmt.Sprintf("Current network TPS: %.0f", tps),
	}), nil
}

// RequestFundsAction requests faucet funds on devnet/testnet.
type RequestFundsAction struct {
	meta actions.Metadata
}

// airdropAmountSol is the fixed faucet request size.
const airdropAmountSol = 5.0

// NewRequestFundsAction constructs the REQUEST_FUNDS operation.
func NewRequestFundsAction() *RequestFundsAction {
	return &RequestFundsAction{
		meta: actions.Metadata{
			Name: "REQUEST_FUNDS",
			Similes: []string{
				"request airdrop",
				"get faucet funds",
				"request devnet sol",
				"airdrop sol",
			},
			Description: "Request SOL from the faucet (devnet/testnet only)",
			Examples: []actions.Example{
				{
					Input: map[string]any{},
					Output: map[string]any{
						"status":    "success",
						"message":   "Successfully requested faucet funds",
						"signature": "4VfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
					},
					Explanation: "Request 5 SOL from the devnet faucet",
				},
			},
			InputSchema: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"required":             []string{},
				"additionalProperties": false,
			},
		},
	}
}

func (a *RequestFundsAction) Metadata() actions.Metadata { return a.meta }

func (a *RequestFundsAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	sig, err := ag.RequestAirdrop(ctx, airdropAmountSol)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"message":   "Successfully requested faucet funds",
		"signature": sig.String(),
	}), nil
}
