package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bibe1s/JRSolisPortfolio/internal/flagx"
	"github.com/bibe1s/JRSolisPortfolio/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Durations use
// timex.Duration so the file can express them as "24h" or as integer
// nanoseconds. Only non-zero fields are copied into the runtime Config, so a
// partial file overlays cleanly on the defaults.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	AdminEmail            string         `json:"admin_email"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	S3AccessKey           string         `json:"s3_access_key"`
	S3SecretKey           string         `json:"s3_secret_key"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	S3PublicBaseURL       string         `json:"s3_public_base_url"`
	RedisAddr             string         `json:"redis_addr"`
	RedisPassword         string         `json:"redis_password"`
	CacheTTL              timex.Duration `json:"cache_ttl"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config flags; when neither is
// set, no JSON file is loaded. Unreadable or invalid files panic: a config
// file that was explicitly pointed at must not be silently ignored.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(c.EndpointAddr, &config.EndpointAddr)
	overlay(c.DatabaseDSN, &config.DatabaseDSN)
	overlay(c.SecretKey, &config.SecretKey)
	overlay(c.AdminEmail, &config.AdminEmail)
	overlay(c.S3AccessKey, &config.S3AccessKey)
	overlay(c.S3SecretKey, &config.S3SecretKey)
	overlay(c.S3Bucket, &config.S3Bucket)
	overlay(c.S3Region, &config.S3Region)
	overlay(c.S3BaseEndpoint, &config.S3BaseEndpoint)
	overlay(c.S3PublicBaseURL, &config.S3PublicBaseURL)
	overlay(c.RedisAddr, &config.RedisAddr)
	overlay(c.RedisPassword, &config.RedisPassword)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.CacheTTL.Duration != 0 {
		config.CacheTTL = time.Duration(c.CacheTTL.Duration)
	}
}
