package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (MENU_ prefix), flags, or YAML config files.
type Config struct {
	Addr            string        `default:"0.0.0.0:8080" usage:"HTTP server listen address"`
	CatalogPath     string        `default:"" usage:"Path to a menu catalog JSON file (.json or .json.gz); empty uses the embedded menu" flag:"catalog-path"`
	OrdersDir       string        `default:"orders" usage:"Directory where order documents are written" flag:"orders-dir"`
	DocumentBaseURL string        `default:"http://localhost:8080/orders" usage:"Public base URL for generated order documents" flag:"document-base-url"`
	WhatsAppNumber  string        `default:"8668722207" usage:"Phone number receiving order handoffs" flag:"whatsapp-number"`
	SessionTTL      time.Duration `default:"30m" usage:"Idle time before a session is evicted" flag:"session-ttl"`
	PromoInterval   time.Duration `default:"3s" usage:"Offer card rotation interval" flag:"promo-interval"`
	RateLimit       RateLimitConfig
	CORS            CORSConfig
	Graceful        GracefulConfig
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "MENU",
		Files:     []string{"config.yaml", "/etc/menucart/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) onto the MENU_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
