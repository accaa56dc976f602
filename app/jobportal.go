package app

import (
	"job-marketplace-api/internal/config"
	"job-marketplace-api/internal/controller"
	"job-marketplace-api/internal/grpcapi"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/migrations"

	"google.golang.org/grpc"
)

func RunJobPortal() {
	run(backend{
		service:       config.JobPortal,
		migrations:    migrations.JobPortal,
		migrationsDir: "jobportal",
		setupRoutes:   controller.SetupJobPortalRoutes,
		registerGrpc: func(s *grpc.Server, services *service.Services) {
			grpcapi.RegisterJobPortalServer(s, grpcapi.NewJobPortalServer(services))
		},
	})
}
