package config

import (
	"os"
	"strconv"
	"time"
)

// Store drivers understood by db.OpenStore.
const (
	DriverMemory    = "memory"
	DriverRedis     = "redis"
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort          string
	StoreDriver         string
	ResetStore          bool
	MySQLDSN            string
	PostgresDSN         string
	RedisAddr           string
	RedisDB             int
	RedisPass           string
	FirestoreProject    string
	FirestoreCollection string
	DeviceSecret        string
	DeviceTokenTTL      time.Duration
	LockStripes         int
	SwaggerHost         string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		StoreDriver:         getEnv("STORE_DRIVER", DriverMemory),
		ResetStore:          getEnv("RESET_STORE", "") == "true",
		MySQLDSN:            getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/taskboard?charset=utf8mb4&parseTime=True&loc=Local"),
		PostgresDSN:         getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=taskboard port=5432 sslmode=disable"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		FirestoreProject:    os.Getenv("FIRESTORE_PROJECT"),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "taskboard"),
		DeviceSecret:        getEnv("DEVICE_SECRET", "change-me"),
		DeviceTokenTTL:      getEnvDuration("DEVICE_TOKEN_TTL", 365*24*time.Hour),
		LockStripes:         getEnvInt("LOCK_STRIPES", 256),
		SwaggerHost:         os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
