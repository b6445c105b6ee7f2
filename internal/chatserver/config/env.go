package config

import (
	"os"
	"time"
)

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("CHAT_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := os.LookupEnv("AUTH_BASE_URL"); ok {
		cfg.AuthBaseURL = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		cfg.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		cfg.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		cfg.S3BaseEndpoint = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_USER"); ok {
		cfg.S3RootUser = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_PASSWORD"); ok {
		cfg.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("S3_PRESIGN_EXPIRY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.S3PresignExpiry = d
		}
	}
}
