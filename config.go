package chatrelay

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration. API credentials (GEMINI_API_KEY,
// SERPER_API_KEY, CHAT_AUTH_TOKEN) are read from the environment by the
// packages that own them; this struct only carries what the server wiring
// needs directly.
type Config struct {
	Addr          string
	Model         string
	StreamTimeout time.Duration
}

// LoadConfig loads .env when present and builds a Config from the
// environment with sensible defaults.
func LoadConfig() *Config {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Addr:          ":8080",
		Model:         "gemini-2.0-flash",
		StreamTimeout: 60 * time.Second,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if model := os.Getenv("CHAT_MODEL"); model != "" {
		cfg.Model = model
	}
	if raw := os.Getenv("STREAM_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.StreamTimeout = d
		} else {
			log.Printf("Ignoring invalid STREAM_TIMEOUT %q", raw)
		}
	}

	return cfg
}

// WithAddr sets the listen address.
func (c *Config) WithAddr(addr string) *Config {
	c.Addr = addr
	return c
}

// WithModel sets the model name.
func (c *Config) WithModel(model string) *Config {
	c.Model = model
	return c
}

// WithStreamTimeout sets the per-request streaming ceiling.
func (c *Config) WithStreamTimeout(d time.Duration) *Config {
	c.StreamTimeout = d
	return c
}
