// Package daemon holds the server configuration, loaded from
// ~/.kasir/config.toml with sensible defaults for a single-terminal shop.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration.
type Config struct {
	API   APIConfig   `toml:"api"`
	Store StoreConfig `toml:"store"`
	Shop  ShopConfig  `toml:"shop"`
	Auth  AuthConfig  `toml:"auth"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	EnableMetrics bool   `toml:"enable_metrics"`
}

// StoreConfig controls where the sqlite database lives.
type StoreConfig struct {
	Dir string `toml:"dir"` // empty → <home>/data
}

// ShopConfig is the shop identity printed on receipts.
type ShopConfig struct {
	Name    string `toml:"name"`
	Tagline string `toml:"tagline"`
	Address string `toml:"address"`
	Phone   string `toml:"phone"`
}

// AuthConfig holds operator credentials. Defaults mirror the demo accounts;
// a real deployment overrides them in config.toml.
type AuthConfig struct {
	AdminUsername string `toml:"admin_username"`
	AdminPassword string `toml:"admin_password"`
	KasirUsername string `toml:"kasir_username"`
	KasirPassword string `toml:"kasir_password"`
}

// DefaultConfig returns the out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:          "127.0.0.1",
			Port:          8980,
			EnableMetrics: true,
		},
		Store: StoreConfig{},
		Shop: ShopConfig{
			Name:    "TUNAS MUSTIKA",
			Tagline: "Toko Plastik",
			Address: "Jl. Gajah Mada No III C G.Pangilun",
			Phone:   "301469684",
		},
		Auth: AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
			KasirUsername: "kasir",
			KasirPassword: "kasir123",
		},
	}
}

// Home returns the kasir home directory. KASIR_HOME overrides ~/.kasir.
func Home() string {
	if env := os.Getenv("KASIR_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kasir")
}

// Load reads config.toml from the kasir home. A missing file yields the
// defaults; a malformed file is an error.
func Load() (Config, error) {
	return LoadFile(filepath.Join(Home(), "config.toml"))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ListenAddr formats the API host:port pair.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// StoreDir resolves the database directory, defaulting under the kasir home.
func (c Config) StoreDir() string {
	if c.Store.Dir != "" {
		return c.Store.Dir
	}
	return filepath.Join(Home(), "data")
}
