package main

import (
	"context"
	"os"
	"time"

	"github.com/affistack/brandledger/internal/catalog"
	"github.com/affistack/brandledger/internal/clock"
	"github.com/affistack/brandledger/internal/config"
	"github.com/affistack/brandledger/internal/jobrun"
	"github.com/affistack/brandledger/internal/migrate"
	"github.com/affistack/brandledger/internal/partnerboost"
	"github.com/affistack/brandledger/internal/sync"
	"github.com/affistack/brandledger/pkg/db"
	"github.com/affistack/brandledger/pkg/log"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		job    *sync.Job
		logger *zap.Logger
	)

	app := fx.New(
		fx.NopLogger,
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migrate.Module,

		partnerboost.Module,
		catalog.Module,
		jobrun.Module,
		sync.Module,

		fx.Populate(&job, &logger),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		zap.L().Error("startup failed", zap.Error(err))
		return 1
	}

	_, err := job.Run(context.Background())

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if stopErr := app.Stop(stopCtx); stopErr != nil {
		logger.Warn("shutdown failed", zap.Error(stopErr))
	}

	if err != nil {
		logger.Error("product sync failed", zap.Error(err))
		return 1
	}
	return 0
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
