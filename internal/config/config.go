package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Service string

const (
	JobPortal   Service = "jobportal"
	Marketplace Service = "marketplace"
	Gateway     Service = "gateway"
)

type Config struct {
	Service Service

	ServerAddress string
	GrpcAddress   string
	LogMode       string

	PostgresConn            string
	PostgresDatabase        string
	PostgresMaxOpenConns    int
	PostgresMaxIdleConns    int
	PostgresConnMaxLifetime time.Duration

	NATSURL         string
	NATSConnTimeout time.Duration

	JobPortalURL   string
	MarketplaceURL string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RateLimit       int
	RateLimitWindow time.Duration
}

var defaultAddresses = map[Service][2]string{
	JobPortal:   {"0.0.0.0:5001", "0.0.0.0:6001"},
	Marketplace: {"0.0.0.0:5002", "0.0.0.0:6002"},
	Gateway:     {"0.0.0.0:5000", ""},
}

// LoadConfig reads an optional .env file from the working directory and then
// the process environment. Variables already set in the environment win.
func LoadConfig(service Service) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	addrs, ok := defaultAddresses[service]
	if !ok {
		return nil, errors.New("unknown service " + string(service))
	}

	config := &Config{
		Service:       service,
		ServerAddress: getEnvString("SERVER_ADDRESS", addrs[0]),
		GrpcAddress:   getEnvString("GRPC_ADDRESS", addrs[1]),
		LogMode:       getEnvString("LOG_MODE", "dev"),

		PostgresConn:            getEnvString("POSTGRES_CONN", ""),
		PostgresDatabase:        getEnvString("POSTGRES_DATABASE", string(service)),
		PostgresMaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
		PostgresMaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
		PostgresConnMaxLifetime: getEnvDuration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),

		NATSURL:         getEnvString("NATS_URL", ""),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		JobPortalURL:   getEnvString("JOBPORTAL_URL", "http://localhost:5001"),
		MarketplaceURL: getEnvString("MARKETPLACE_URL", "http://localhost:5002"),

		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		RedisPassword:   getEnvString("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RateLimit:       getEnvInt("RATE_LIMIT", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	if service != Gateway && config.PostgresConn == "" {
		return nil, errors.New("POSTGRES_CONN is required")
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
