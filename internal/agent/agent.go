// Package agent provides the account facade: one network client, one wallet,
// shared by every in-flight operation.
package agent

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/compose"
	"github.com/SolAgent-Network/agent_layer/internal/wallet"
	"github.com/SolAgent-Network/agent_layer/pkg/logger"
)

// SolDecimals is the decimal precision of the native token.
const SolDecimals uint8 = 9

// Agent owns the handles an operation needs. Its fields are read-only after
// construction; the client and wallet are each safe for concurrent use, so
// one Agent serves many concurrent dispatches.
type Agent struct {
	client chain.Client
	wallet wallet.Wallet
	log    *logger.Logger
}

// New constructs an agent around a network client and a wallet.
func New(client chain.Client, w wallet.Wallet, log *logger.Logger) *Agent {
	if log == nil {
		log = logger.NewDefault("agent")
	}
	return &Agent{client: client, wallet: w, log: log}
}

// Client returns the network client boundary.
func (a *Agent) Client() chain.Client {
	return a.client
}

// Wallet returns the signer capability.
func (a *Agent) Wallet() wallet.Wallet {
	return a.wallet
}

// Address returns the wallet's public identity.
func (a *Agent) Address() solana.PublicKey {
	return a.wallet.Pubkey()
}

// Balance returns the wallet's balance. With a nil mint it is the native SOL
// balance; otherwise the balance of the wallet's associated token account,
// zero when that account does not exist.
func (a *Agent) Balance(ctx context.Context, mint *solana.PublicKey) (float64, error) {
	owner := a.wallet.Pubkey()
	if mint == nil {
		lamports, err := a.client.Balance(ctx, owner)
		if err != nil {
			return 0, err
		}
		return compose.FromBaseUnits(lamports, SolDecimals), nil
	}

	ata, _, err := solana.FindAssociatedTokenAddress(owner, *mint)
	if err != nil {
		return 0, fmt.Errorf("derive associated token address: %w", err)
	}
	return a.client.TokenAccountBalance(ctx, ata)
}

// Mint fetches and decodes an SPL mint account.
func (a *Agent) Mint(ctx context.Context, mint solana.PublicKey) (chain.MintInfo, error) {
	acc, err := a.client.AccountInfo(ctx, mint)
	if err != nil {
		return chain.MintInfo{}, fmt.Errorf("fetch mint %s: %w", mint, err)
	}
	if acc == nil {
		return chain.MintInfo{}, fmt.Errorf("mint %s does not exist", mint)
	}
	return chain.DecodeMint(acc)
}

// Transfer moves SOL (nil mint) or an SPL token to another wallet and waits
// for confirmation. For token transfers the destination's associated token
// account is created when absent.
func (a *Agent) Transfer(ctx context.Context, to solana.PublicKey, amount float64, mint *solana.PublicKey) (solana.Signature, error) {
	from := a.wallet.Pubkey()
	builder := compose.NewBuilder(from)

	if mint == nil {
		lamports, err := compose.ToBaseUnits(amount, SolDecimals)
		if err != nil {
			return solana.Signature{}, err
		}
		builder.Append(system.NewTransferInstruction(lamports, from, to).Build())
	} else {
		info, err := a.Mint(ctx, *mint)
		if err != nil {
			return solana.Signature{}, err
		}
		raw, err := compose.ToBaseUnits(amount, info.Decimals)
		if err != nil {
			return solana.Signature{}, err
		}

		source, _, err := solana.FindAssociatedTokenAddress(from, *mint)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("derive source token account: %w", err)
		}
		dest, _, err := compose.EnsureAssociatedTokenAccount(ctx, a.client, builder, from, to, *mint)
		if err != nil {
			return solana.Signature{}, err
		}

		builder.Append(token.NewTransferCheckedInstruction(
			raw,
			info.Decimals,
			source,
			*mint,
			dest,
			from,
			nil,
		).Build())
	}

	sig, err := a.submit(ctx, builder)
	if err != nil {
		return sig, err
	}
	a.log.WithField("to", to.String()).
		WithField("signature", sig.String()).
		Info("transfer confirmed")
	return sig, nil
}

// RequestAirdrop asks the faucet for the given amount of SOL and waits for
// confirmation. Devnet/testnet only.
func (a *Agent) RequestAirdrop(ctx context.Context, sol float64) (solana.Signature, error) {
	lamports, err := compose.ToBaseUnits(sol, SolDecimals)
	if err != nil {
		return solana.Signature{}, err
	}
	return a.client.RequestAirdrop(ctx, a.wallet.Pubkey(), lamports)
}

// TPS derives transactions-per-second from the most recent performance
// sample.
func (a *Agent) TPS(ctx context.Context) (float64, error) {
	samples, err := a.client.PerformanceSamples(ctx, 1)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("no performance samples available")
	}
	s := samples[0]
	if s.SamplePeriodSecs == 0 {
		return 0, nil
	}
	return float64(s.NumTransactions) / float64(s.SamplePeriodSecs), nil
}

// SubmitBuilder stamps a fresh blockhash onto the builder's sequence, signs,
// submits, and confirms. Exposed for operations that compose their own
// instruction sequences.
func (a *Agent) SubmitBuilder(ctx context.Context, builder *compose.Builder) (solana.Signature, error) {
	return a.submit(ctx, builder)
}

func (a *Agent) submit(ctx context.Context, builder *compose.Builder) (solana.Signature, error) {
	// Blockhashes expire; fetch immediately before signing.
	blockhash, err := a.client.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}
	draft, err := builder.Stamp(blockhash)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := draft.Sign(ctx, a.wallet); err != nil {
		return solana.Signature{}, err
	}
	return draft.Submit(ctx, a.client)
}
