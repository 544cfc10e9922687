package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int
	GRPCPort int

	MySQLDSN       string
	RedisAddr      string
	StorageEnabled bool

	WorkerCount    int
	QueueSize      int
	InitialBalance decimal.Decimal
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		GRPCPort:       getEnvInt("GRPC_PORT", 50051),
		MySQLDSN:       getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/pos?parseTime=true"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		StorageEnabled: getEnvBool("STORAGE_ENABLED", true),
		WorkerCount:    getEnvPositiveInt("WORKER_COUNT", 4),
		QueueSize:      getEnvPositiveInt("QUEUE_SIZE", 1000),
		InitialBalance: getEnvDecimal("INITIAL_BALANCE", decimal.NewFromInt(1000)),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvPositiveInt(key string, def int) int {
	if n := getEnvInt(key, def); n > 0 {
		return n
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}

func getEnvDecimal(key string, def decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return def
	}

	return d
}
