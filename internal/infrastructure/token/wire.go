package token

import "github.com/google/wire"

// ProviderSet provides the shared token estimator.
var ProviderSet = wire.NewSet(
	GetEstimator,
)
