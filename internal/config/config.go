// Package config loads the server configuration from environment variables
// and the terminal client configuration from its XDG config file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Store drivers accepted by PASSOP_STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	ListenAddr     string
	StoreDriver    string
	MongoURI       string
	DBName         string
	Collection     string
	DBPath         string
	CORSOrigins    []string
	ConnectTimeout time.Duration
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: PASSOP_LISTEN_ADDR (:3000), PASSOP_STORE_DRIVER (mongo),
// PASSOP_MONGO_URI or MONGO_URI (mongodb://localhost:27017), PASSOP_DB_NAME (password-op),
// PASSOP_COLLECTION (documents), PASSOP_DB_PATH (passop.db), PASSOP_CORS_ORIGINS (*),
// PASSOP_CONNECT_TIMEOUT (10s).
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:     envOr(":3000", "PASSOP_LISTEN_ADDR"),
		StoreDriver:    strings.ToLower(envOr(DriverMongo, "PASSOP_STORE_DRIVER")),
		MongoURI:       envOr("mongodb://localhost:27017", "PASSOP_MONGO_URI", "MONGO_URI"),
		DBName:         envOr("password-op", "PASSOP_DB_NAME"),
		Collection:     envOr("documents", "PASSOP_COLLECTION"),
		DBPath:         envOr("passop.db", "PASSOP_DB_PATH"),
		CORSOrigins:    splitList(envOr("*", "PASSOP_CORS_ORIGINS")),
		ConnectTimeout: 10 * time.Second,
	}

	switch cfg.StoreDriver {
	case DriverMongo, DriverSQLite:
	default:
		return nil, fmt.Errorf("PASSOP_STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverSQLite, cfg.StoreDriver)
	}

	if v, ok := os.LookupEnv("PASSOP_CONNECT_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PASSOP_CONNECT_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("PASSOP_CONNECT_TIMEOUT must be positive, got %s", parsed)
		}
		cfg.ConnectTimeout = parsed
	}

	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("PASSOP_CORS_ORIGINS must name at least one origin or *")
	}

	return cfg, nil
}

// envOr returns the first non-empty value among keys, or def.
func envOr(def string, keys ...string) string {
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
