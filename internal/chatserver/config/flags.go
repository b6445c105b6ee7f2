package config

import (
	"flag"
	"os"
)

func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("chatserver", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "bind address of the HTTP endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT signing secret")
	fs.StringVar(&cfg.AuthBaseURL, "u", cfg.AuthBaseURL, "identity authority base URL")
	_ = fs.Parse(os.Args[1:])
}
