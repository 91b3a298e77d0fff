// Package config loads agent configuration from the environment and an
// optional action-group manifest.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config is the complete runtime configuration, populated from environment
// variables. Exactly one of PrivateKey or RemoteSignerURL must be set.
type Config struct {
	// RPCURL is the Solana JSON-RPC endpoint.
	RPCURL string `env:"SOLANA_RPC_URL,default=https://api.mainnet-beta.solana.com"`

	// PrivateKey is the base58-encoded wallet private key.
	PrivateKey string `env:"SOLANA_PRIVATE_KEY"`

	// RemoteSignerURL delegates signing to a remote signer service.
	RemoteSignerURL string `env:"REMOTE_SIGNER_URL"`
	// RemoteSignerPubkey is the base58 public key of the remote signer.
	RemoteSignerPubkey string `env:"REMOTE_SIGNER_PUBKEY"`
	// RemoteSignerAPIKey authenticates requests to the remote signer.
	RemoteSignerAPIKey string `env:"REMOTE_SIGNER_API_KEY"`

	// ListenAddr is the HTTP API bind address.
	ListenAddr string `env:"AGENT_LISTEN_ADDR,default=:8080"`
	// AuthSecret, when set, requires a JWT signed with it on dispatch routes.
	AuthSecret string `env:"AGENT_AUTH_SECRET"`

	// ConfirmTimeout bounds transaction confirmation polling.
	ConfirmTimeout time.Duration `env:"SOLANA_CONFIRM_TIMEOUT,default=60s"`

	// Third-party API keys. All optional; actions degrade to public rate
	// limits or fixed fallbacks without them.
	HeliusAPIKey    string `env:"HELIUS_API_KEY"`
	MagicEdenAPIKey string `env:"MAGICEDEN_API_KEY"`
	CoingeckoAPIKey string `env:"COINGECKO_API_KEY"`

	// GroupsManifest is the path of the optional action-group manifest.
	GroupsManifest string `env:"AGENT_GROUPS_MANIFEST"`

	// LogLevel controls logger verbosity.
	LogLevel string `env:"LOG_LEVEL,default=info"`
	// LogJSON switches the logger to JSON output.
	LogJSON bool `env:"LOG_JSON,default=false"`
}

// Load populates Config from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("SOLANA_RPC_URL is required")
	}
	if c.PrivateKey == "" && c.RemoteSignerURL == "" {
		return fmt.Errorf("one of SOLANA_PRIVATE_KEY or REMOTE_SIGNER_URL is required")
	}
	if c.PrivateKey != "" && c.RemoteSignerURL != "" {
		return fmt.Errorf("SOLANA_PRIVATE_KEY and REMOTE_SIGNER_URL are mutually exclusive")
	}
	if c.RemoteSignerURL != "" && c.RemoteSignerPubkey == "" {
		return fmt.Errorf("REMOTE_SIGNER_PUBKEY is required with REMOTE_SIGNER_URL")
	}
	return nil
}
