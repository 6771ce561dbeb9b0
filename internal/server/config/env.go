package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays environment variables onto the config. A .env file in
// the working directory is loaded first when present; real environment
// variables are not overridden by it.
//
// Recognized variables:
//
//	ENDPOINT_ADDR   HTTP bind address
//	DATABASE_URL    PostgreSQL DSN
//	SESSION_SECRET  JWT HMAC secret
//	ADMIN_EMAIL     the single authorized identity
//	S3_ACCESS_KEY / S3_SECRET_KEY / S3_BUCKET / S3_REGION
//	S3_ENDPOINT     media host endpoint
//	S3_PUBLIC_URL   delivery URL root
//	REDIS_ADDR / REDIS_PASSWORD
//	CACHE_TTL       Go duration string, e.g. "5m"
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("ENDPOINT_ADDR", &config.EndpointAddr)
	setString("DATABASE_URL", &config.DatabaseDSN)
	setString("SESSION_SECRET", &config.SecretKey)
	setString("ADMIN_EMAIL", &config.AdminEmail)
	setString("S3_ACCESS_KEY", &config.S3AccessKey)
	setString("S3_SECRET_KEY", &config.S3SecretKey)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_ENDPOINT", &config.S3BaseEndpoint)
	setString("S3_PUBLIC_URL", &config.S3PublicBaseURL)
	setString("REDIS_ADDR", &config.RedisAddr)
	setString("REDIS_PASSWORD", &config.RedisPassword)

	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.CacheTTL = d
		}
	}
}
