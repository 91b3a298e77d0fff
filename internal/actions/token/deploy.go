package token

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/compose"
	"github.com/SolAgent-Network/agent_layer/internal/metaplex"
)

// DeployTokenAction creates a new SPL token mint with on-chain metadata.
type DeployTokenAction struct {
	meta actions.Metadata
}

// NewDeployTokenAction constructs the DEPLOY_TOKEN operation.
func NewDeployTokenAction() *DeployTokenAction {
	return &DeployTokenAction{
		meta: actions.Metadata{
			Name: "DEPLOY_TOKEN",
			Similes: []string{
				"create token",
				"launch token",
				"deploy new token",
				"mint new token",
			},
			Description: "Deploy a new SPL token mint with Metaplex metadata. Optionally mints an initial supply to the agent's wallet.",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"name":          "My Token",
						"symbol":        "MTK",
						"uri":           "https://example.com/token.json",
						"decimals":      9,
						"initialSupply": 1000000,
					},
					Output: map[string]any{
						"status":      "success",
						"mint":        "7nE9GvcwsqzYxmJLSrYmSB1V1YoJWVK1KWzAcWAzjXkN",
						"transaction": "5UfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
					},
					Explanation: "Deploy a token with 1 million initial supply",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Token name",
					},
					"symbol": map[string]any{
						"type":        "string",
						"description": "Token ticker symbol",
					},
					"uri": map[string]any{
						"type":        "string",
						"description": "URI of the off-chain token metadata JSON",
					},
					"decimals": map[string]any{
						"type":        "integer",
						"description": "Decimal precision (default 9)",
					},
					"initialSupply": map[string]any{
						"type":        "number",
						"description": "Optional initial supply to mint to the agent wallet, in token units",
					},
				},
				"required":             []string{"name", "symbol", "uri"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *DeployTokenAction) Metadata() actions.Metadata { return a.meta }

func (a *DeployTokenAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Name          string  `json:"name"`
		Symbol        string  `json:"symbol"`
		URI           string  `json:"uri"`
		Decimals      *uint8  `json:"decimals"`
		InitialSupply float64 `json:"initialSupply"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, actions.InvalidInputf("name is required")
	}
	if in.Symbol == "" {
		return nil, actions.InvalidInputf("symbol is required")
	}
	if in.URI == "" {
		return nil, actions.InvalidInputf("uri is required")
	}
	decimals := agent.SolDecimals
	if in.Decimals != nil {
		decimals = *in.Decimals
	}

	payer := ag.Address()
	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}
	mint := mintKey.PublicKey()

	rent, err := ag.Client().MinimumBalanceForRentExemption(ctx, chain.MintAccountSize)
	if err != nil {
		return nil, err
	}
	metadataAddr, _, err := metaplex.FindMetadataAddress(mint)
	if err != nil {
		return nil, err
	}
	metadataIx, err := metaplex.NewCreateMetadataAccountV3Instruction(
		metadataAddr,
		mint,
		payer,
		payer,
		payer,
		metaplex.DataV2{
			Name:                 in.Name,
			Symbol:               in.Symbol,
			URI:                  in.URI,
			SellerFeeBasisPoints: 0,
		},
		true,
		nil,
	)
	if err != nil {
		return nil, err
	}

	builder := compose.NewBuilder(payer).WithEphemeralSigner(mintKey)
	builder.Append(
		system.NewCreateAccountInstruction(
			rent,
			chain.MintAccountSize,
			solana.TokenProgramID,
			payer,
			mint,
		).Build(),
		token.NewInitializeMintInstruction(
			decimals,
			payer,
			payer,
			mint,
			solana.SysVarRentPubkey,
		).Build(),
		metadataIx,
	)

	if in.InitialSupply > 0 {
		raw, err := compose.ToBaseUnits(in.InitialSupply, decimals)
		if err != nil {
			return nil, err
		}
		ata, _, err := compose.EnsureAssociatedTokenAccount(ctx, ag.Client(), builder, payer, payer, mint)
		if err != nil {
			return nil, err
		}
		builder.Append(token.NewMintToInstruction(raw, mint, ata, payer, nil).Build())
	}

	sig, err := ag.SubmitBuilder(ctx, builder)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"mint":        mint.String(),
		"metadata":    metadataAddr.String(),
		"decimals":    decimals,
		"transaction": sig.String(),
	}), nil
}
