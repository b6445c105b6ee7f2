// Package config holds runtime settings for the email worker, resolved from
// defaults, then environment variables, then command-line flags.
package config

import (
	"flag"
	"os"
	"strconv"
)

type Config struct {
	// RedisAddr / RedisPassword / RedisDB locate the messaging backend.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// OtpStream / OtpGroup identify the consumed stream and consumer group.
	OtpStream string
	OtpGroup  string

	// SMTP settings for outgoing mail.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	// From is the sender address on every outgoing message.
	From string
}

func (c *Config) LoadDefaults() {
	c.RedisAddr = "localhost:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.OtpStream = "chatstack:otp"
	c.OtpGroup = "email-workers"
	c.SMTPHost = "localhost"
	c.SMTPPort = 1025
	c.SMTPUsername = ""
	c.SMTPPassword = ""
	c.From = "no-reply@chatstack.local"
}

func applyEnv(cfg *Config) {
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
	if v, ok := os.LookupEnv("OTP_GROUP"); ok {
		cfg.OtpGroup = v
	}
	if v, ok := os.LookupEnv("SMTP_HOST"); ok {
		cfg.SMTPHost = v
	}
	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMTPPort = n
		}
	}
	if v, ok := os.LookupEnv("SMTP_USERNAME"); ok {
		cfg.SMTPUsername = v
	}
	if v, ok := os.LookupEnv("SMTP_PASSWORD"); ok {
		cfg.SMTPPassword = v
	}
	if v, ok := os.LookupEnv("MAIL_FROM"); ok {
		cfg.From = v
	}
}

func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("emailworker", flag.ContinueOnError)
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.SMTPHost, "h", cfg.SMTPHost, "SMTP host")
	fs.IntVar(&cfg.SMTPPort, "p", cfg.SMTPPort, "SMTP port")
	fs.StringVar(&cfg.From, "f", cfg.From, "sender address")
	_ = fs.Parse(os.Args[1:])
}

func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	applyEnv(cfg)
	parseFlags(cfg)
	return cfg
}
