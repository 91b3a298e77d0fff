package misc

import (
	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

// Register installs the misc action group into the registry. The API keys
// may be empty; key-gated actions then degrade to public rate limits or
// fixed fallbacks.
func Register(r *actions.Registry, http *httputil.Client, coingeckoKey, heliusKey string) {
	r.Register(NewTrendingTokensAction(http, coingeckoKey))
	r.Register(NewTokenPriceAction(http, coingeckoKey))
	r.Register(NewTokenInfoAction(http, coingeckoKey))
	r.Register(NewTopGainersAction(http, coingeckoKey))
	r.Register(NewTokenProfilesAction(http))
	r.Register(NewSearchPairsAction(http))
	r.Register(NewPairByAddressAction(http))
	r.Register(NewParseTransactionAction(http, heliusKey))
	r.Register(NewCreateWebhookAction(http, heliusKey))
	r.Register(NewPrioritySendAction(http, heliusKey))
	r.Register(NewResolveDomainAction(http))
	r.Register(NewDomainTLDsAction())
}
