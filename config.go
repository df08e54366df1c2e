package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration. Every flag defaults to an
// environment variable so the service can be configured either way.
type Config struct {
	Routes   bool
	Addr     string
	DiagAddr string
	Env      string

	Store       string
	Seed        bool
	DatabaseURL string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	RedisKey    string

	ConnectTimeout  time.Duration
	ShutdownTimeout time.Duration
}

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
	storeRedis    = "redis"
)

var errUnknownStore = errors.New("unknown store")

func loadConfig(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(ServiceName, flag.ContinueOnError)
	fs.BoolVar(&cfg.Routes, "routes", getEnvBool(envPrefix+"ROUTES", false), "Generate router documentation")
	fs.StringVar(&cfg.Addr, "addr", getEnv(envPrefix+"ADDR", ":"+getEnv("PORT", "3000")), "application address")
	fs.StringVar(&cfg.DiagAddr, "diag_addr", getEnv(envPrefix+"DIAG_ADDR", ":9999"), "diag address")
	fs.StringVar(&cfg.Env, "env", getEnv(envPrefix+"ENV", "production"), "environment (development|production)")
	fs.StringVar(&cfg.Store, "store", getEnv(envPrefix+"STORE", storeMemory), "article store (memory|postgres|redis)")
	fs.BoolVar(&cfg.Seed, "seed", getEnvBool(envPrefix+"SEED", true), "seed an empty store with example articles")
	fs.StringVar(&cfg.DatabaseURL, "database_url", getEnv(envPrefix+"DATABASE_URL", "postgresql://postgres@localhost:5432/cardfeed"), "postgres connection string")
	fs.StringVar(&cfg.RedisAddr, "redis_addr", getEnv(envPrefix+"REDIS_ADDR", "localhost:6379"), "redis address")
	fs.StringVar(&cfg.RedisPass, "redis_password", getEnv(envPrefix+"REDIS_PASSWORD", ""), "redis password")
	fs.IntVar(&cfg.RedisDB, "redis_db", getEnvInt(envPrefix+"REDIS_DB", 0), "redis database")
	fs.StringVar(&cfg.RedisKey, "redis_key", getEnv(envPrefix+"REDIS_KEY", ""), "redis list key")
	fs.DurationVar(&cfg.ConnectTimeout, "connect_timeout", getEnvDuration(envPrefix+"CONNECT_TIMEOUT", 10*time.Second), "store connect timeout")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown_timeout", getEnvDuration(envPrefix+"SHUTDOWN_TIMEOUT", 10*time.Second), "graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Store = strings.ToLower(cfg.Store)
	switch cfg.Store {
	case storeMemory, storePostgres, storeRedis:
	default:
		return Config{}, fmt.Errorf("%w: %q", errUnknownStore, cfg.Store)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return value
}
