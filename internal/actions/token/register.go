package token

import (
	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

// Register installs the token action group into the registry.
func Register(r *actions.Registry, http *httputil.Client) {
	r.Register(NewBalanceAction())
	r.Register(NewTokenBalancesAction())
	r.Register(NewTransferAction())
	r.Register(NewWalletAddressAction())
	r.Register(NewTPSAction())
	r.Register(NewRequestFundsAction())
	r.Register(NewFetchPriceAction(http))
	r.Register(NewTradeAction(http))
	r.Register(NewTokenListAction(http))
	r.Register(NewSearchTokensAction(http))
	r.Register(NewRugcheckAction(http))
	r.Register(NewDeployTokenAction())
}
