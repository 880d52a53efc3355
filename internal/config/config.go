// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the settings needed to reach the Hatchet API. It is loaded
// lazily by the client accessor, so a missing token surfaces as an error on
// the first operation rather than at process start.
type Config struct {
	// Token is the Hatchet client API token (a JWT).
	Token string
	// ServerURL overrides the server_url claim embedded in the token.
	ServerURL string
	// TenantID overrides the tenant claim embedded in the token.
	TenantID string
	// APIRPS caps outbound requests per second. Zero disables the limiter.
	APIRPS float64
	// APITimeout is the HTTP client timeout for each API call.
	APITimeout time.Duration
}

// LoadFromEnv reads configuration from environment variables.
// HATCHET_CLIENT_TOKEN is required; everything else has defaults.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Token:      os.Getenv("HATCHET_CLIENT_TOKEN"),
		ServerURL:  os.Getenv("HATCHET_SERVER_URL"),
		TenantID:   os.Getenv("HATCHET_TENANT_ID"),
		APITimeout: 30 * time.Second,
	}

	if cfg.Token == "" {
		return Config{}, fmt.Errorf("config: HATCHET_CLIENT_TOKEN is not set")
	}

	if raw := os.Getenv("HATCHET_API_RPS"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("config: invalid HATCHET_API_RPS %q", raw)
		}
		cfg.APIRPS = rps
	}

	if raw := os.Getenv("HATCHET_API_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid HATCHET_API_TIMEOUT %q: %w", raw, err)
		}
		cfg.APITimeout = d
	}

	return cfg, nil
}
