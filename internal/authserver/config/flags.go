package config

import (
	"flag"
	"os"
)

func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("authserver", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "bind address of the HTTP endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT signing secret")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	_ = fs.Parse(os.Args[1:])
}
