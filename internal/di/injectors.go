//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"brickdeals/internal"
	"brickdeals/internal/catalog"
	"brickdeals/internal/controllers"
	"brickdeals/internal/notify"
	"brickdeals/internal/pipeline"
	"brickdeals/internal/pricing"
	"brickdeals/internal/providers"
	"brickdeals/internal/services"
	"brickdeals/internal/store"
	"brickdeals/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRateLimitProvider,

		store.NewDB,
		store.NewCatalogStore,
		store.NewPriceStore,
		store.NewDealStore,
		store.NewSubscriberStore,

		services.NewStatsService,
		services.NewSubscriberService,
		services.NewDealService,

		catalog.NewDefaultThemeTable,
		catalog.NewClient,
		catalog.NewIngestor,

		pricing.NewDefaultSource,
		pricing.NewGenerator,

		notify.NewPushClient,
		notify.NewNotifier,

		pipeline.NewZstdCompressor,
		pipeline.NewSnapshotManager,
		pipeline.NewRunner,
		pipeline.NewScheduler,

		controllers.NewPushController,
		controllers.NewAdminController,
		controllers.NewDealController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
