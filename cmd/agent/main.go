// Package main runs the Solana agent layer: an action registry served over
// HTTP, over MCP stdio, or as a one-shot dispatch.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/actions/catalog"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/config"
	"github.com/SolAgent-Network/agent_layer/internal/httpapi"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
	"github.com/SolAgent-Network/agent_layer/internal/mcpserver"
	"github.com/SolAgent-Network/agent_layer/internal/wallet"
	"github.com/SolAgent-Network/agent_layer/pkg/logger"
)

func main() {
	mode := flag.String("mode", "serve", "Run mode: serve (HTTP API), mcp (stdio), run (one-shot dispatch)")
	action := flag.String("action", "", "Action name for -mode run")
	input := flag.String("input", "{}", "JSON input for -mode run")
	envFile := flag.String("env", "", "Optional .env file to load")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "load env file: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Best effort; the environment may already be populated.
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Service: "agent",
		Level:   cfg.LogLevel,
		JSON:    cfg.LogJSON,
	})

	if err := run(cfg, log, *mode, *action, *input); err != nil {
		log.WithError(err).Error("agent exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger, mode, action, input string) error {
	w, err := buildWallet(cfg)
	if err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	client, err := chain.NewRPCClient(chain.Config{
		RPCURL:         cfg.RPCURL,
		ConfirmTimeout: cfg.ConfirmTimeout,
	}, log.WithField("component", "chain"))
	if err != nil {
		return fmt.Errorf("chain client: %w", err)
	}

	ag := agent.New(client, w, log.WithField("component", "agent"))
	log.WithField("address", ag.Address().String()).
		WithField("rpc", cfg.RPCURL).
		Info("agent initialized")

	registry := actions.NewRegistry(log.WithField("component", "registry"))
	catalog.Register(registry, catalog.Options{
		HTTP:            httputil.NewClient(0),
		Groups:          config.LoadGroupsConfigOrDefault(cfg.GroupsManifest),
		HeliusAPIKey:    cfg.HeliusAPIKey,
		MagicEdenAPIKey: cfg.MagicEdenAPIKey,
		CoingeckoAPIKey: cfg.CoingeckoAPIKey,
	})
	log.WithField("actions", registry.Len()).Info("action catalogue registered")

	switch mode {
	case "serve":
		return serveHTTP(cfg, log, registry, ag)
	case "mcp":
		return serveMCP(log, registry, ag)
	case "run":
		return runOnce(registry, ag, action, input)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func buildWallet(cfg *config.Config) (wallet.Wallet, error) {
	if cfg.PrivateKey != "" {
		return wallet.FromBase58(cfg.PrivateKey)
	}
	pubkey, err := solana.PublicKeyFromBase58(cfg.RemoteSignerPubkey)
	if err != nil {
		return nil, fmt.Errorf("parse remote signer pubkey: %w", err)
	}
	return wallet.NewRemoteWallet(wallet.RemoteConfig{
		BaseURL: cfg.RemoteSignerURL,
		Pubkey:  pubkey,
		APIKey:  cfg.RemoteSignerAPIKey,
	})
}

func serveHTTP(cfg *config.Config, log *logger.Logger, registry *actions.Registry, ag *agent.Agent) error {
	api := httpapi.NewServer(registry, ag, cfg.AuthSecret, log.WithField("component", "httpapi"))
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("HTTP API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func serveMCP(log *logger.Logger, registry *actions.Registry, ag *agent.Agent) error {
	srv, err := mcpserver.New(registry, ag, log.WithField("component", "mcp"))
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return srv.Run(ctx)
}

func runOnce(registry *actions.Registry, ag *agent.Agent, action, input string) error {
	if action == "" {
		return fmt.Errorf("-action is required with -mode run")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := registry.Execute(ctx, action, ag, json.RawMessage(input))
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
