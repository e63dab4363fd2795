package partnerboost

import "go.uber.org/fx"

var Module = fx.Module("partnerboost.client",
	fx.Provide(New),
)
