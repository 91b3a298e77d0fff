package nft

import (
	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/httputil"
)

// Register installs the nft action group into the registry. heliusKey and
// magicEdenKey may be empty; the corresponding lookups then run unauthenticated
// and are subject to public rate limits.
func Register(r *actions.Registry, http *httputil.Client, heliusKey, magicEdenKey string) {
	r.Register(NewGetAssetAction(http, heliusKey))
	r.Register(NewSearchAssetsAction(http, heliusKey))
	r.Register(NewAssetsByCreatorAction(http, heliusKey))
	r.Register(NewCollectionStatsAction(http, magicEdenKey))
	r.Register(NewPopularCollectionsAction(http, magicEdenKey))
	r.Register(NewCollectionListingsAction(http, magicEdenKey))
	r.Register(NewDeployCollectionAction())
	r.Register(NewMintNFTAction())
}
