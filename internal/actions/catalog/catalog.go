// Package catalog assembles the full action catalogue from the individual
// action groups.
package catalog

import (
	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/actions/defi"
	"github.com/SolAgent-Network/agent_layer/internal/actions/misc"
	"github.com/SolAgent-Network/agent_layer/internal/actions/nft"
	"github.com/SolAgent-Network/agent_layer/internal/actions/token"
	"github.com/SolAgent-Network/agent_layer/internal/config"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

// Options carries the shared HTTP client, API keys, and the group manifest.
type Options struct {
	HTTP            *httputil.Client
	Groups          *config.GroupsConfig
	HeliusAPIKey    string
	MagicEdenAPIKey string
	CoingeckoAPIKey string
}

// Register installs every enabled action group into the registry.
func Register(r *actions.Registry, opts Options) {
	if opts.HTTP == nil {
		opts.HTTP = httputil.NewClient(0)
	}
	if opts.Groups.Enabled("token") {
		token.Register(r, opts.HTTP)
	}
	if opts.Groups.Enabled("defi") {
		defi.Register(r, opts.HTTP)
	}
	if opts.Groups.Enabled("nft") {
		nft.Register(r, opts.HTTP, opts.HeliusAPIKey, opts.MagicEdenAPIKey)
	}
	if opts.Groups.Enabled("misc") {
		misc.Register(r, opts.HTTP, opts.CoingeckoAPIKey, opts.HeliusAPIKey)
	}
}
