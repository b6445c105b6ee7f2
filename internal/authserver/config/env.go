package config

import (
	"os"
	"strconv"
	"time"
)

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("AUTH_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenValidity = d
		}
	}
	if v, ok := os.LookupEnv("OTP_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OtpValidity = d
		}
	}
	if v, ok := os.LookupEnv("RESET_OTP_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ResetOtpValidity = d
		}
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		cfg.RedisPassword = v
	}
	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
	if v, ok := os.LookupEnv("OTP_STREAM"); ok {
		cfg.OtpStream = v
	}
}
