package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "local key",
			cfg:  Config{RPCURL: "http://localhost:8899", PrivateKey: "abc"},
		},
		{
			name: "remote signer",
			cfg: Config{
				RPCURL:             "http://localhost:8899",
				RemoteSignerURL:    "http://signer:9000",
				RemoteSignerPubkey: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
			},
		},
		{
			name:    "no signer at all",
			cfg:     Config{RPCURL: "http://localhost:8899"},
			wantErr: true,
		},
		{
			name: "both signers",
			cfg: Config{
				RPCURL:          "http://localhost:8899",
				PrivateKey:      "abc",
				RemoteSignerURL: "http://signer:9000",
			},
			wantErr: true,
		},
		{
			name: "remote signer without pubkey",
			cfg: Config{
				RPCURL:          "http://localhost:8899",
				RemoteSignerURL: "http://signer:9000",
			},
			wantErr: true,
		},
		{
			name:    "missing rpc url",
			cfg:     Config{PrivateKey: "abc"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOLANA_PRIVATE_KEY", "abc")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RPCURL != "https://api.mainnet-beta.solana.com" {
		t.Errorf("RPCURL = %q, want mainnet default", cfg.RPCURL)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.ConfirmTimeout.Seconds() != 60 {
		t.Errorf("ConfirmTimeout = %v, want 60s", cfg.ConfirmTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}
