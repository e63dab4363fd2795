package migrate

import (
	"fmt"

	catalogdomain "github.com/affistack/brandledger/internal/catalog/domain"
	"github.com/affistack/brandledger/internal/jobrun"
	reportdomain "github.com/affistack/brandledger/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module creates the schema at startup. The table set is small and stable,
// so AutoMigrate stands in for migration tooling here.
var Module = fx.Module("migrate",
	fx.Invoke(Run),
)

func Run(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&catalogdomain.Product{},
		&reportdomain.BrandSummary{},
		&jobrun.Run{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Debug("schema ready")
	return nil
}
