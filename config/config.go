// config.go - Handles configuration for the project

package config // Declares the package name

import ( // Import required packages
	"fmt"     // Error wrapping
	"log"     // Logging
	"net"     // For checking proxy addresses
	"os"      // For checking the .env file
	"strings" // For splitting list values
	"time"    // For durations (token TTL, pool lifetime)

	"github.com/ilyakaznacheev/cleanenv" // Reads env vars into the Config struct
	"github.com/joho/godotenv"           // Loads a local .env file
)

type Config struct { // Config struct holds all configuration values
	Port string `env:"PORT" env-default:"8080"` // HTTP listen port

	DBDriver          string        `env:"DB_DRIVER" env-default:"sqlite"`      // sqlite or postgres
	DBPath            string        `env:"DB_PATH" env-default:"data.db"`       // Path to the SQLite database file
	DatabaseURL       string        `env:"DATABASE_URL"`                        // Postgres DSN (DB_DRIVER=postgres)
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`  // Pool size
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`   // Idle connections kept
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	LogLevel          string        `env:"LOG_LEVEL" env-default:"warn"` // gorm logger level

	JWTSecret string        `env:"JWT_SECRET" env-default:"supersecret"` // Secret key for JWT signing
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"72h"`            // Token lifetime
	JWTIssuer string        `env:"JWT_ISSUER" env-default:"go-commands-backend"`

	CORSOrigins    string `env:"CORS_ORIGINS" env-default:"http://localhost:5173"` // Comma separated origins
	// Comma separated IPs/CIDRs allowed to set X-Forwarded-For; empty trusts none
	TrustedProxies string `env:"TRUSTED_PROXIES"`

	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" env-default:"5"` // Requests per second per IP on /auth
	AuthRateBurst int     `env:"AUTH_RATE_BURST" env-default:"10"`

	MQTTBroker      string `env:"MQTT_BROKER"` // Empty disables command events
	MQTTClientID    string `env:"MQTT_CLIENT_ID" env-default:"go-commands-backend"`
	MQTTTopicPrefix string `env:"MQTT_TOPIC_PREFIX" env-default:"commands"`
}

// Load reads config from environment variables (and .env if present) or uses defaults
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil { // Existing env vars win over the file
			return nil, fmt.Errorf("load .env: %w", err)
		}
		log.Println("[config] loaded .env")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for main: it exits on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	return cfg
}

// AllowedOrigins splits CORSOrigins into a clean list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range splitList(c.CORSOrigins) {
		if o = strings.TrimRight(o, "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Proxies lists the reverse proxies whose forwarding headers are believed.
func (c *Config) Proxies() []string {
	return splitList(c.TrustedProxies)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	for _, p := range c.Proxies() {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
		}
	}
	return nil
}
