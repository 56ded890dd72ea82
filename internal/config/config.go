package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the server needs at startup. It is built once in
// main and passed down explicitly.
type Config struct {
	Port string `env:"PORT, default=5000"`
	Env  string `env:"ENV, default=development"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// LockAPI puts the /api routes behind the same session gate as the pages.
	LockAPI bool `env:"LOCK_API, default=false"`

	// Prices maps a product name to its unit price for the history summary.
	// Products missing from the table are priced at zero.
	Prices map[string]float64 `env:"PRICES, default=Aluguel Médio:50,Aluguel Pequeno:40,Reposição:25,Funcionário:20,Da casa:0"`

	Database DatabaseConfig
	Session  SessionConfig
	Seed     SeedConfig
}

type DatabaseConfig struct {
	Path string `env:"DB_PATH, default=db/pedidos_db.db"`
	// RecentWindow bounds the /api/pedidos listing.
	RecentWindow time.Duration `env:"RECENT_WINDOW, default=1440h"`
}

type SessionConfig struct {
	Secret   string        `env:"SESSION_SECRET"`
	Lifetime time.Duration `env:"SESSION_LIFETIME, default=2h"`
	Name     string        `env:"SESSION_COOKIE, default=pedidos_session"`
	Secure   bool          `env:"SESSION_SECURE, default=false"`
}

// SeedConfig controls the users created when the user table is empty.
type SeedConfig struct {
	AdminName     string `env:"SEED_ADMIN_NAME, default=adm"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
	UserName      string `env:"SEED_USER_NAME, default=Teste"`
	UserPassword  string `env:"SEED_USER_PASSWORD, default=Teste"`
}

// devSecret is only accepted outside production.
const devSecret = "pedidos-dev-secret-change-me-0123456789"

// Load reads a .env file when one exists, then the PEDIDOS_* environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper("PEDIDOS_", lookuper),
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		if c.IsProduction() {
			return errors.New("config: PEDIDOS_SESSION_SECRET is required in production")
		}
		c.Session.Secret = devSecret
	}
	if c.Session.Lifetime <= 0 {
		return errors.New("config: session lifetime must be positive")
	}
	if c.Database.RecentWindow <= 0 {
		return errors.New("config: recent window must be positive")
	}
	if c.Database.Path == "" {
		return errors.New("config: database path is empty")
	}
	for product, price := range c.Prices {
		if price < 0 {
			return fmt.Errorf("config: negative price for %q", product)
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
