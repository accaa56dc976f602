package app

import (
	"job-marketplace-api/internal/config"
	"job-marketplace-api/internal/controller"
	"job-marketplace-api/internal/grpcapi"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/migrations"

	"google.golang.org/grpc"
)

func RunMarketplace() {
	run(backend{
		service:       config.Marketplace,
		migrations:    migrations.Marketplace,
		migrationsDir: "marketplace",
		setupRoutes:   controller.SetupMarketplaceRoutes,
		registerGrpc: func(s *grpc.Server, services *service.Services) {
			grpcapi.RegisterMarketplaceServer(s, grpcapi.NewMarketplaceServer(services))
		},
	})
}
