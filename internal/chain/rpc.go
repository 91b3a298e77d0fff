package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"

	"github.com/SolAgent-Network/agent_layer/internal/metrics"
	"github.com/SolAgent-Network/agent_layer/pkg/logger"
)

// Config holds RPC client configuration.
type Config struct {
	RPCURL string
	// Commitment applied to queries and confirmation. Defaults to confirmed.
	Commitment rpc.CommitmentType
	// ConfirmTimeout bounds the confirmation poll loop. Defaults to 60s.
	ConfirmTimeout time.Duration
	// ConfirmInterval is the poll period. Defaults to 500ms.
	ConfirmInterval time.Duration
}

// RPCClient implements Client over a Solana JSON-RPC endpoint.
type RPCClient struct {
	rpc             *rpc.Client
	commitment      rpc.CommitmentType
	confirmTimeout  time.Duration
	confirmInterval time.Duration
	log             *logger.Logger
}

// NewRPCClient creates a Solana RPC client.
func NewRPCClient(cfg Config, log *logger.Logger) (*RPCClient, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC URL required")
	}
	commitment := cfg.Commitment
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	confirmTimeout := cfg.ConfirmTimeout
	if confirmTimeout == 0 {
		confirmTimeout = 60 * time.Second
	}
	confirmInterval := cfg.ConfirmInterval
	if confirmInterval == 0 {
		confirmInterval = 500 * time.Millisecond
	}
	if log == nil {
		log = logger.NewDefault("chain")
	}
	return &RPCClient{
		rpc:             rpc.New(cfg.RPCURL),
		commitment:      commitment,
		confirmTimeout:  confirmTimeout,
		confirmInterval: confirmInterval,
		log:             log,
	}, nil
}

// Balance returns the lamport balance of addr.
func (c *RPCClient) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, addr, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return out.Value, nil
}

// AccountInfo returns account state, or (nil, nil) when absent.
func (c *RPCClient) AccountInfo(ctx context.Context, addr solana.PublicKey) (*Account, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account info: %w", err)
	}
	if out == nil || out.Value == nil {
		return nil, nil
	}
	acc := &Account{
		Owner:    out.Value.Owner,
		Lamports: out.Value.Lamports,
	}
	if data := out.Value.Data; data != nil {
		acc.Data = data.GetBinary()
	}
	return acc, nil
}

// TokenAccountBalance returns the UI amount held by a token account. Missing
// accounts report zero, matching the read semantics of balance queries.
func (c *RPCClient) TokenAccountBalance(ctx context.Context, account solana.PublicKey) (float64, error) {
	out, err := c.rpc.GetTokenAccountBalance(ctx, account, c.commitment)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get token account balance: %w", err)
	}
	if out == nil || out.Value == nil || out.Value.UiAmount == nil {
		return 0, nil
	}
	return *out.Value.UiAmount, nil
}

// TokenAccountsByOwner lists the owner's token holdings under the classic
// token program, decoded from the jsonParsed encoding.
func (c *RPCClient) TokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]TokenAccountInfo, error) {
	out, err := c.rpc.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: solana.TokenProgramID.ToPointer()},
		&rpc.GetTokenAccountsOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingJSONParsed,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("get token accounts: %w", err)
	}

	accounts := make([]TokenAccountInfo, 0, len(out.Value))
	for _, acc := range out.Value {
		if acc == nil || acc.Account.Data == nil {
			continue
		}
		parsed := gjson.ParseBytes(acc.Account.Data.GetRawJSON())
		info := parsed.Get("parsed.info")
		if !info.Exists() {
			continue
		}
		accounts = append(accounts, TokenAccountInfo{
			Mint:     info.Get("mint").String(),
			Amount:   info.Get("tokenAmount.uiAmount").Float(),
			Decimals: uint8(info.Get("tokenAmount.decimals").Uint()),
		})
	}
	return accounts, nil
}

// LatestBlockhash fetches a fresh recent blockhash.
func (c *RPCClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	return out.Value.Blockhash, nil
}

// SendAndConfirm submits a fully signed transaction and polls signature
// status until the configured commitment is reached.
func (c *RPCClient) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		metrics.RecordSubmission(false)
		return solana.Signature{}, &SubmissionRejectedError{Reason: err.Error()}
	}
	if err := c.confirm(ctx, sig); err != nil {
		// A confirmation timeout is indeterminate, not a rejection; only a
		// definitive on-chain failure counts against the rejected outcome.
		var rejected *SubmissionRejectedError
		if errors.As(err, &rejected) {
			metrics.RecordSubmission(false)
		}
		return sig, err
	}
	metrics.RecordSubmission(true)
	return sig, nil
}

func (c *RPCClient) confirm(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.confirmInterval)
	defer ticker.Stop()

	for {
		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err == nil && out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return &SubmissionRejectedError{
					Signature: sig,
					Reason:    fmt.Sprintf("%v", status.Err),
				}
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("confirm %s: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

// PerformanceSamples returns up to limit recent performance samples.
func (c *RPCClient) PerformanceSamples(ctx context.Context, limit int) ([]PerformanceSample, error) {
	var lim *uint
	if limit > 0 {
		l := uint(limit)
		lim = &l
	}
	out, err := c.rpc.GetRecentPerformanceSamples(ctx, lim)
	if err != nil {
		return nil, fmt.Errorf("get performance samples: %w", err)
	}
	samples := make([]PerformanceSample, 0, len(out))
	for _, s := range out {
		if s == nil {
			continue
		}
		samples = append(samples, PerformanceSample{
			Slot:             s.Slot,
			NumTransactions:  s.NumTransactions,
			NumSlots:         s.NumSlots,
			SamplePeriodSecs: uint64(s.SamplePeriodSecs),
		})
	}
	return samples, nil
}

// RequestAirdrop requests faucet funds for addr.
func (c *RPCClient) RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.rpc.RequestAirdrop(ctx, addr, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("request airdrop: %w", err)
	}
	if err := c.confirm(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// MinimumBalanceForRentExemption returns the rent-exempt minimum for an
// account of the given data size.
func (c *RPCClient) MinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	out, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, dataSize, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("get rent exemption: %w", err)
	}
	return out, nil
}
