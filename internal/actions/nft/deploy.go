package nft

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/compose"
	"github.com/SolAgent-Network/agent_layer/internal/metaplex"
)

// buildNFTMint appends the shared create/initialize/mint-one sequence for a
// fresh NFT mint. NFTs are zero-decimal mints with exactly one unit; the
// master edition later locks the supply.
func buildNFTMint(ctx context.Context, ag *agent.Agent, b *compose.Builder, mint, owner solana.PublicKey) (solana.PublicKey, error) {
	payer := ag.Address()
	rent, err := ag.Client().MinimumBalanceForRentExemption(ctx, chain.MintAccountSize)
	if err != nil {
		return solana.PublicKey{}, err
	}
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	b.Append(
		system.NewCreateAccountInstruction(
			rent,
			chain.MintAccountSize,
			solana.TokenProgramID,
			payer,
			mint,
		).Build(),
		token.NewInitializeMintInstruction(
			0,
			payer,
			payer,
			mint,
			solana.SysVarRentPubkey,
		).Build(),
		associatedtokenaccount.NewCreateInstruction(payer, owner, mint).Build(),
		token.NewMintToInstruction(1, mint, ata, payer, nil).Build(),
	)
	return ata, nil
}

// appendMetadataAndEdition appends metadata creation and the supply-locking
// master edition for mint.
func appendMetadataAndEdition(b *compose.Builder, ag *agent.Agent, mint solana.PublicKey, data metaplex.DataV2, details *metaplex.CollectionDetails) (solana.PublicKey, error) {
	payer := ag.Address()
	metadataAddr, _, err := metaplex.FindMetadataAddress(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	editionAddr, _, err := metaplex.FindMasterEditionAddress(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	metadataIx, err := metaplex.NewCreateMetadataAccountV3Instruction(
		metadataAddr, mint, payer, payer, payer, data, true, details,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	maxSupply := uint64(0)
	editionIx, err := metaplex.NewCreateMasterEditionV3Instruction(
		editionAddr, mint, payer, payer, payer, metadataAddr, &maxSupply,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	b.Append(metadataIx, editionIx)
	return metadataAddr, nil
}

// DeployCollectionAction creates a new NFT collection parent.
type DeployCollectionAction struct {
	meta actions.Metadata
}

// NewDeployCollectionAction constructs the DEPLOY_COLLECTION operation.
func NewDeployCollectionAction() *DeployCollectionAction {
	return &DeployCollectionAction{
		meta: actions.Metadata{
			Name: "DEPLOY_COLLECTION",
			Similes: []string{
				"create nft collection",
				"launch collection",
				"deploy collection",
			},
			Description: "Deploy a new NFT collection: a sized collection parent NFT that individual NFTs can be minted into",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"name":   "My Collection",
						"symbol": "MYCOL",
						"uri":    "https://example.com/collection.json",
					},
					Output: map[string]any{
						"status":      "success",
						"mint":        "7nE9GvcwsqzYxmJLSrYmSB1V1YoJWVK1KWzAcWAzjXkN",
						"transaction": "5UfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
					},
					Explanation: "Deploy a new NFT collection",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Collection name",
					},
					"symbol": map[string]any{
						"type":        "string",
						"description": "Collection symbol",
					},
					"uri": map[string]any{
						"type":        "string",
						"description": "URI of the off-chain collection metadata JSON",
					},
					"royaltyBasisPoints": map[string]any{
						"type":        "integer",
						"description": "Seller fee in basis points (default 0)",
					},
				},
				"required":             []string{"name", "symbol", "uri"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *DeployCollectionAction) Metadata() actions.Metadata { return a.meta }

func (a *DeployCollectionAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		Name               string `json:"name"`
		Symbol             string `json:"symbol"`
		URI                string `json:"uri"`
		RoyaltyBasisPoints uint16 `json:"royaltyBasisPoints"`
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

	payer := ag.Address()
	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}
	mint := mintKey.PublicKey()

	builder := compose.NewBuilder(payer).WithEphemeralSigner(mintKey)
	if _, err := buildNFTMint(ctx, ag, builder, mint, payer); err != nil {
		return nil, err
	}

	creators := []metaplex.Creator{{Address: payer, Verified: true, Share: 100}}
	metadataAddr, err := appendMetadataAndEdition(builder, ag, mint, metaplex.DataV2{
		Name:                 in.Name,
		Symbol:               in.Symbol,
		URI:                  in.URI,
		SellerFeeBasisPoints: in.RoyaltyBasisPoints,
		Creators:             &creators,
	}, &metaplex.CollectionDetails{V1: metaplex.CollectionDetailsV1{Size: 0}})
	if err != nil {
		return nil, err
	}

	sig, err := ag.SubmitBuilder(ctx, builder)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"mint":        mint.String(),
		"metadata":    metadataAddr.String(),
		"transaction": sig.String(),
	}), nil
}

// MintNFTAction mints a single NFT into an existing collection.
type MintNFTAction struct {
	meta actions.Metadata
}

// NewMintNFTAction constructs the MINT_NFT operation.
func NewMintNFTAction() *MintNFTAction {
	return &MintNFTAction{
		meta: actions.Metadata{
			Name: "MINT_NFT",
			Similes: []string{
				"mint nft",
				"create nft",
				"mint into collection",
			},
			Description: "Mint a new NFT into an existing collection. The NFT is delivered to the recipient, or to the agent wallet when no recipient is given.",
			Examples: []actions.Example{
				{
					Input: map[string]any{
						"collectionMint": "7nE9GvcwsqzYxmJLSrYmSB1V1YoJWVK1KWzAcWAzjXkN",
						"name":           "My NFT #1",
						"uri":            "https://example.com/nft-1.json",
					},
					Output: map[string]any{
						"status":      "success",
						"mint":        "8mE9GvcwsqzYxmJLSrYmSB1V1YoJWVK1KWzAcWAzjXkM",
						"transaction": "4VfgJ5vVZxUxefDGqzqkVLHzHxVTyYH9StYyHKgvHYmXJgqJKxEqy9k4Rz9LpXrHF9kUZB7",
					},
					Explanation: "Mint an NFT into a collection",
				},
			},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collectionMint": map[string]any{
						"type":        "string",
						"description": "Mint address of the collection parent",
					},
					"name": map[string]any{
						"type":        "string",
						"description": "NFT name",
					},
					"symbol": map[string]any{
						"type":        "string",
						"description": "NFT symbol (defaults to empty)",
					},
					"uri": map[string]any{
						"type":        "string",
						"description": "URI of the off-chain NFT metadata JSON",
					},
					"recipient": map[string]any{
						"type":        "string",
						"description": "Optional recipient wallet; defaults to the agent wallet",
					},
				},
				"required":             []string{"collectionMint", "name", "uri"},
				"additionalProperties": false,
			},
		},
	}
}

func (a *MintNFTAction) Metadata() actions.Metadata { return a.meta }

func (a *MintNFTAction) Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (actions.Result, error) {
	var in struct {
		CollectionMint string `json:"collectionMint"`
		Name           string `json:"name"`
		Symbol         string `json:"symbol"`
		URI            string `json:"uri"`
		Recipient      string `json:"recipient"`
	}
	if err := actions.DecodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.CollectionMint == "" {
		return nil, actions.InvalidInputf("collectionMint is required")
	}
	collection, err := solana.PublicKeyFromBase58(in.CollectionMint)
	if err != nil {
		return nil, actions.InvalidInputf("invalid collection mint %q: %v", in.CollectionMint, err)
	}
	if in.Name == "" {
		return nil, actions.InvalidInputf("name is required")
	}
	if in.URI == "" {
		return nil, actions.InvalidInputf("uri is required")
	}
	owner := ag.Address()
	if in.Recipient != "" {
		parsed, err := solana.PublicKeyFromBase58(in.Recipient)
		if err != nil {
			return nil, actions.InvalidInputf("invalid recipient address %q: %v", in.Recipient, err)
		}
		owner = parsed
	}

	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}
	mint := mintKey.PublicKey()

	builder := compose.NewBuilder(ag.Address()).WithEphemeralSigner(mintKey)
	if _, err := buildNFTMint(ctx, ag, builder, mint, owner); err != nil {
		return nil, err
	}

	metadataAddr, err := appendMetadataAndEdition(builder, ag, mint, metaplex.DataV2{
		Name:   in.Name,
		Symbol: in.Symbol,
		URI:    in.URI,
		// Unverified on creation; verification is a separate authority action.
		Collection: &metaplex.Collection{Verified: false, Key: collection},
	}, nil)
	if err != nil {
		return nil, err
	}

	sig, err := ag.SubmitBuilder(ctx, builder)
	if err != nil {
		return nil, err
	}
	return actions.Success(actions.Result{
		"mint":        mint.String(),
		"metadata":    metadataAddr.String(),
		"recipient":   owner.String(),
		"transaction": sig.String(),
	}), nil
}
