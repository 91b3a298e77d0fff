package defi

import (
	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

// Register installs the defi action group into the registry.
func Register(r *actions.Registry, http *httputil.Client) {
	r.Register(NewSanctumPriceAction(http))
	r.Register(NewSanctumAPYAction(http))
	r.Register(NewRaydiumPoolsAction(http))
	r.Register(NewOrcaWhirlpoolsAction(http))
	r.Register(NewMeteoraPoolsAction(http))
}
