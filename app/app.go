package app

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"job-marketplace-api/internal/config"
	"job-marketplace-api/internal/events"
	"job-marketplace-api/internal/grpcapi"
	"job-marketplace-api/internal/repo"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/grpc_server"
	"job-marketplace-api/pkg/http_server"
	"job-marketplace-api/pkg/logger"
	"job-marketplace-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/labstack/echo"
	"google.golang.org/grpc"
)

// backend describes one of the two database-backed services.
type backend struct {
	service       config.Service
	migrations    fs.FS
	migrationsDir string
	setupRoutes   func(*echo.Echo, *service.Services, *logger.Logger)
	registerGrpc  func(*grpc.Server, *service.Services)
}

func newLogger(cfg *config.Config) *logger.Logger {
	l, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}

	return l.With("service", string(cfg.Service))
}

func runMigrations(postgresDB *postgres.Postgres, cfg *config.Config, b backend, l *logger.Logger) error {
	source, err := iofs.New(b.migrations, b.migrationsDir)
	if err != nil {
		return err
	}

	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{
		DatabaseName:    cfg.PostgresDatabase,
		MigrationsTable: "schema_migrations_" + string(b.service),
	})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithInstance("iofs", source, cfg.PostgresDatabase, driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			l.Info("no change made by migration scripts")
			return nil
		}

		return err
	}

	return nil
}

func newPublisher(cfg *config.Config, l *logger.Logger) events.Publisher {
	if cfg.NATSURL == "" {
		l.Info("NATS_URL not set, domain events are dropped")
		return events.NewNopPublisher()
	}

	publisher, err := events.NewNatsPublisher(cfg.NATSURL, cfg.NATSConnTimeout, l)
	if err != nil {
		l.Fatal("error occurred while connecting to nats", "error", err)
	}

	return publisher
}

func waitForShutdown(l *logger.Logger, httpNotify <-chan error, grpcNotify <-chan error) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("got signal", "signal", s.String())
	case err := <-httpNotify:
		l.Error("http server stopped", "error", err)
	case err := <-grpcNotify:
		l.Error("grpc server stopped", "error", err)
	}
}

func run(b backend) {
	cfg, err := config.LoadConfig(b.service)
	if err != nil {
		log.Fatal(err)
	}

	l := newLogger(cfg)
	defer l.Sync()

	l.Info("connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn, postgres.Options{
		MaxOpenConns:    cfg.PostgresMaxOpenConns,
		MaxIdleConns:    cfg.PostgresMaxIdleConns,
		ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
	})
	if err != nil {
		l.Fatal("error occurred while connecting to db", "error", err)
	}
	defer postgresDB.Close()

	l.Info("running migrations...")
	if err := runMigrations(postgresDB, cfg, b, l); err != nil {
		l.Fatal("migration failed", "error", err)
	}

	publisher := newPublisher(cfg, l)
	defer publisher.Close()

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, service.Dependencies{Publisher: publisher, Logger: l})

	handler := echo.New()
	l.Info("setup routes...")
	b.setupRoutes(handler, services, l)

	grpcSrv := grpcapi.NewServer(l)
	b.registerGrpc(grpcSrv, services)

	l.Info("starting servers...", "http", cfg.ServerAddress, "grpc", cfg.GrpcAddress)
	httpServer := http_server.New(handler, cfg.ServerAddress)
	grpcServer, err := grpc_server.New(grpcSrv, cfg.GrpcAddress)
	if err != nil {
		l.Fatal("error occurred while starting grpc server", "error", err)
	}

	l.Info("ready to process requests...")
	waitForShutdown(l, httpServer.Notify(), grpcServer.Notify())

	l.Info("shutting down...")
	grpcServer.Shutdown()
	if err := httpServer.Shutdown(); err != nil {
		l.Error("shutdown error", "error", err)
		return
	}
	l.Info("successful shutdown")
}

