package sink

import (
	"os"

	"github.com/affistack/brandledger/internal/config"
	"github.com/affistack/brandledger/internal/report/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config config.ReportConfig
	DB     *gorm.DB
	GenID  *snowflake.Node
}

// Build assembles the sink set from configuration. Console is effectively
// always on via the default config, so a plain cron run still shows output.
func Build(p Params) []domain.Sink {
	var sinks []domain.Sink
	if p.Config.Sinks.Console {
		sinks = append(sinks, NewConsole(os.Stdout))
	}
	if p.Config.Sinks.CSV {
		sinks = append(sinks, NewCSV(p.Config.OutputDir))
	}
	if p.Config.Sinks.HTML {
		sinks = append(sinks, NewHTML(p.Config.OutputDir))
	}
	if p.Config.Sinks.PDF {
		sinks = append(sinks, NewPDF(p.Config.OutputDir))
	}
	if p.Config.Sinks.DB {
		sinks = append(sinks, NewDB(p.DB, p.GenID))
	}
	return sinks
}
