package main

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime settings for the identity server.
//
// Every field has a development default and can be overridden through the
// matching IDENTITY_* environment variable. The signing key has no default
// on purpose; the server refuses to start without one.
type Config struct {
	Addr            string   `json:"addr"`
	DatabaseDSN     string   `json:"database_dsn"`
	SigningKey      string   `json:"-"`
	TokenExpiration int      `json:"token_expiration"`
	Issuer          string   `json:"issuer"`
	Audience        []string `json:"audience"`
	HashCost        int      `json:"hash_cost"`
	MailerMode      string   `json:"mailer_mode"`
	SMTPHost        string   `json:"smtp_host"`
	SMTPPort        int      `json:"smtp_port"`
	SMTPUsername    string   `json:"smtp_username"`
	SMTPPassword    string   `json:"-"`
	SMTPFrom        string   `json:"smtp_from"`
}

// LoadDefaults populates Config with development defaults
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = "file:identity.db?cache=shared&mode=rwc"
	c.TokenExpiration = 1
	c.Issuer = "identity-server"
	c.Audience = []string{"api"}
	c.HashCost = 12
	c.MailerMode = "log"
	c.SMTPPort = 587
}

// LoadConfig builds a Config by applying defaults and then overlaying
// IDENTITY_* environment variables.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	overlayString(&cfg.Addr, "IDENTITY_ADDR")
	overlayString(&cfg.DatabaseDSN, "IDENTITY_DATABASE_DSN")
	overlayString(&cfg.SigningKey, "IDENTITY_SIGNING_KEY")
	overlayInt(&cfg.TokenExpiration, "IDENTITY_TOKEN_EXPIRATION_HOURS")
	overlayString(&cfg.Issuer, "IDENTITY_ISSUER")
	overlayInt(&cfg.HashCost, "IDENTITY_HASH_COST")
	overlayString(&cfg.MailerMode, "IDENTITY_MAILER")
	overlayString(&cfg.SMTPHost, "IDENTITY_SMTP_HOST")
	overlayInt(&cfg.SMTPPort, "IDENTITY_SMTP_PORT")
	overlayString(&cfg.SMTPUsername, "IDENTITY_SMTP_USERNAME")
	overlayString(&cfg.SMTPPassword, "IDENTITY_SMTP_PASSWORD")
	overlayString(&cfg.SMTPFrom, "IDENTITY_SMTP_FROM")

	if v, ok := os.LookupEnv("IDENTITY_AUDIENCE"); ok {
		parts := strings.Split(v, ",")
		audience := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				audience = append(audience, p)
			}
		}
		cfg.Audience = audience
	}
}

func overlayString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*target = v
	}
}

func overlayInt(target *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

// GetSigningKey returns the JWT signing key
func (c *Config) GetSigningKey() string { return c.SigningKey }

// GetTokenExpiration returns the session token lifetime in hours
func (c *Config) GetTokenExpiration() int { return c.TokenExpiration }

// GetIssuer returns the token issuer name
func (c *Config) GetIssuer() string { return c.Issuer }

// GetAudience returns the token audience list
func (c *Config) GetAudience() []string { return c.Audience }

// GetHashCost returns the bcrypt cost
func (c *Config) GetHashCost() int { return c.HashCost }
