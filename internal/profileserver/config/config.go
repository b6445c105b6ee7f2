// Package config holds runtime settings for the profile service, resolved
// from defaults, then environment variables, then command-line flags.
package config

import (
	"flag"
	"os"
)

type Config struct {
	// Addr is the bind address of the HTTP endpoint.
	Addr string
	// MongoURI / MongoDatabase locate the profile store.
	MongoURI      string
	MongoDatabase string
	// JWTSecret is the HMAC secret shared with the identity authority.
	JWTSecret string
	// AuthBaseURL is the internal address of the identity authority.
	AuthBaseURL string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8082"
	c.MongoURI = "mongodb://localhost:27017"
	c.MongoDatabase = "chatstack_profiles"
	c.JWTSecret = "secretKey"
	c.AuthBaseURL = "http://localhost:8080"
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("PROFILE_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("MONGO_URI"); ok {
		cfg.MongoURI = v
	}
	if v, ok := os.LookupEnv("MONGO_DATABASE"); ok {
		cfg.MongoDatabase = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := os.LookupEnv("AUTH_BASE_URL"); ok {
		cfg.AuthBaseURL = v
	}
}

func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("profileserver", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "bind address of the HTTP endpoint")
	fs.StringVar(&cfg.MongoURI, "m", cfg.MongoURI, "MongoDB URI")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT signing secret")
	fs.StringVar(&cfg.AuthBaseURL, "u", cfg.AuthBaseURL, "identity authority base URL")
	_ = fs.Parse(os.Args[1:])
}

func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	applyEnv(cfg)
	parseFlags(cfg)
	return cfg
}
