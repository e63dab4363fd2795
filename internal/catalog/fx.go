package catalog

import (
	"github.com/affistack/brandledger/internal/catalog/repository"
	"github.com/affistack/brandledger/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
