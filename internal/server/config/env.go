package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envFilePath      = "ENV_FILE"
	envHTTPAddr      = "HTTP_ADDR"
	envDatabaseDSN   = "DATABASE_DSN"
	envAccessSecret  = "JWT_ACCESS_SECRET"
	envRefreshSecret = "JWT_REFRESH_SECRET"
	envRedisAddr     = "REDIS_ADDR"
	envSeedDisable   = "SEED_DISABLE"
	envSeedAdmin     = "SEED_ADMIN_EMAIL"
	envCORSOrigin    = "CORS_ORIGIN"
	envSecretID      = "AWS_SECRET_ID"
	envRegion        = "AWS_REGION"
	envLogLevel      = "LOG_LEVEL"
)

// loadDotEnv loads ENV_FILE (default ".env") into the process environment.
// Variables that are already set win, and a missing file is not an error.
func loadDotEnv() {
	path := os.Getenv(envFilePath)
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)
}

func parseEnv(cfg *Config) {
	setString(&cfg.HTTPAddr, envHTTPAddr)
	setString(&cfg.DatabaseDSN, envDatabaseDSN)
	setString(&cfg.AccessSecret, envAccessSecret)
	setString(&cfg.RefreshSecret, envRefreshSecret)
	setString(&cfg.RedisAddr, envRedisAddr)
	setString(&cfg.SeedAdminEmail, envSeedAdmin)
	setString(&cfg.CORSOrigin, envCORSOrigin)
	setString(&cfg.SecretsManagerID, envSecretID)
	setString(&cfg.SecretsManagerRegion, envRegion)
	setString(&cfg.LogLevel, envLogLevel)

	switch strings.ToLower(os.Getenv(envSeedDisable)) {
	case "1", "true", "yes":
		cfg.SeedEnabled = false
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
