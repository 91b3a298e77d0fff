package wallet

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
)

// RemoteConfig holds remote signer configuration.
type RemoteConfig struct {
	BaseURL string
	// Pubkey is the identity the remote service signs for.
	Pubkey  solana.PublicKey
	APIKey  string
	Timeout time.Duration
}

// RemoteWallet delegates signing to an external signer service. The service
// holds the key material; this process only ever sees signatures.
type RemoteWallet struct {
	baseURL    string
	pubkey     solana.PublicKey
	apiKey     string
	httpClient *http.Client
}

// NewRemoteWallet creates a client for a remote signer service.
func NewRemoteWallet(cfg RemoteConfig) (*RemoteWallet, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote signer base URL required")
	}
	if cfg.Pubkey.IsZero() {
		return nil, fmt.Errorf("remote signer pubkey required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &RemoteWallet{
		baseURL: cfg.BaseURL,
		pubkey:  cfg.Pubkey,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// signRequest asks the service to sign a serialized message.
type signRequest struct {
	Pubkey  string `json:"pubkey"`
	Message string `json:"message"` // base64-encoded
}

// signResponse carries the base58 signature back.
type signResponse struct {
	Signature string `json:"signature"`
}

// Pubkey returns the remote identity.
func (w *RemoteWallet) Pubkey() solana.PublicKey {
	return w.pubkey
}

// SignTransaction posts the compiled message to the signer service and places
// the returned signature in this wallet's slot.
func (w *RemoteWallet) SignTransaction(ctx context.Context, tx *solana.Transaction) error {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serialize message: %w", err)
	}

	body, err := json.Marshal(signRequest{
		Pubkey:  w.pubkey.String(),
		Message: base64.StdEncoding.EncodeToString(msg),
	})
	if err != nil {
		return fmt.Errorf("marshal sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/v1/sign", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSigningUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrSigningUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: signer status %d: %s", ErrSigningUnavailable, resp.StatusCode, respBody)
	}

	var signed signResponse
	if err := json.Unmarshal(respBody, &signed); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrSigningUnavailable, err)
	}
	sig, err := solana.SignatureFromBase58(signed.Signature)
	if err != nil {
		return fmt.Errorf("%w: decode signature: %v", ErrSigningUnavailable, err)
	}
	return PlaceSignature(tx, w.pubkey, sig)
}

// SignAllTransactions signs each transaction independently.
func (w *RemoteWallet) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) error {
	var errs []error
	for i, tx := range txs {
		if err := w.SignTransaction(ctx, tx); err != nil {
			errs = append(errs, fmt.Errorf("transaction %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
