// Package metaplex builds Token Metadata program instructions for NFT flows.
//
// Only the two instructions the agent layer composes are covered:
// CreateMetadataAccountV3 and CreateMasterEditionV3. Account ordering and
// argument layout follow the Token Metadata program; optional accounts are
// filled with the program ID per Metaplex convention.
package metaplex

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the Token Metadata program.
var ProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

// Single-byte instruction discriminators.
const (
	instructionCreateMetadataAccountV3 uint8 = 33
	instructionCreateMasterEditionV3   uint8 = 17
)

// FindMetadataAddress derives the metadata PDA for a mint. Pure and
// reproducible; no network call.
func FindMetadataAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte("metadata"),
			ProgramID.Bytes(),
			mint.Bytes(),
		},
		ProgramID,
	)
}

// FindMasterEditionAddress derives the master edition PDA for a mint.
func FindMasterEditionAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte("metadata"),
			ProgramID.Bytes(),
			mint.Bytes(),
			[]byte("edition"),
		},
		ProgramID,
	)
}

// Creator is a royalty recipient recorded in metadata.
type Creator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

// Collection links an NFT to its collection mint.
type Collection struct {
	Verified bool
	Key      solana.PublicKey
}

// Uses describes consumable NFT semantics. Unused by the agent layer but
// part of the wire layout.
type Uses struct {
	UseMethod uint8
	Remaining uint64
	Total     uint64
}

// DataV2 is the metadata payload.
type DataV2 struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator  `bin:"optional"`
	Collection           *Collection `bin:"optional"`
	Uses                 *Uses       `bin:"optional"`
}

// CollectionDetailsV1 sizes a collection parent NFT.
type CollectionDetailsV1 struct {
	Size uint64
}

// CollectionDetails is the borsh enum wrapper around V1.
type CollectionDetails struct {
	Enum bin.BorshEnum `borsh_enum:"true"`
	V1   CollectionDetailsV1
}

type createMetadataAccountArgsV3 struct {
	Data              DataV2
	IsMutable         bool
	CollectionDetails *CollectionDetails `bin:"optional"`
}

type createMasterEditionArgsV3 struct {
	MaxSupply *uint64 `bin:"optional"`
}

// NewCreateMetadataAccountV3Instruction builds the CreateMetadataAccountV3
// instruction. metadata must be the PDA for mint; mintAuthority, payer, and
// updateAuthority all sign.
func NewCreateMetadataAccountV3Instruction(
	metadata solana.PublicKey,
	mint solana.PublicKey,
	mintAuthority solana.PublicKey,
	payer solana.PublicKey,
	updateAuthority solana.PublicKey,
	data DataV2,
	isMutable bool,
	collectionDetails *CollectionDetails,
) (solana.Instruction, error) {
	args := createMetadataAccountArgsV3{
		Data:              data,
		IsMutable:         isMutable,
		CollectionDetails: collectionDetails,
	}
	encoded, err := encodeInstruction(instructionCreateMetadataAccountV3, args)
	if err != nil {
		return nil, fmt.Errorf("encode create metadata args: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(metadata).WRITE(),
		solana.Meta(mint),
		solana.Meta(mintAuthority).SIGNER(),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(updateAuthority).SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(ProgramID), // rent omitted
	}
	return solana.NewInstruction(ProgramID, accounts, encoded), nil
}

// NewCreateMasterEditionV3Instruction builds the CreateMasterEditionV3
// instruction. A max supply of 0 pins the edition to a single copy.
func NewCreateMasterEditionV3Instruction(
	edition solana.PublicKey,
	mint solana.PublicKey,
	updateAuthority solana.PublicKey,
	mintAuthority solana.PublicKey,
	payer solana.PublicKey,
	metadata solana.PublicKey,
	maxSupply *uint64,
) (solana.Instruction, error) {
	encoded, err := encodeInstruction(instructionCreateMasterEditionV3, createMasterEditionArgsV3{
		MaxSupply: maxSupply,
	})
	if err != nil {
		return nil, fmt.Errorf("encode create master edition args: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(edition).WRITE(),
		solana.Meta(mint).WRITE(),
		solana.Meta(updateAuthority).SIGNER(),
		solana.Meta(mintAuthority).SIGNER(),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(metadata).WRITE(),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(ProgramID), // rent omitted
	}
	return solana.NewInstruction(ProgramID, accounts, encoded), nil
}

func encodeInstruction(discriminator uint8, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteUint8(discriminator); err != nil {
		return nil, err
	}
	if err := enc.Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
