package report

import (
	"github.com/affistack/brandledger/internal/report/service"
	"github.com/affistack/brandledger/internal/report/sink"
	"go.uber.org/fx"
)

var Module = fx.Module("report.job",
	fx.Provide(sink.Build),
	fx.Provide(service.New),
)
