// Package config loads gifportal's configuration.
// Sources, highest priority first:
//  1. command-line flags (applied by cmd/gifportal)
//  2. GIFPORTAL_* environment variables
//  3. the file given by --config, or ~/.config/gifportal/config.yaml
//  4. built-in defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cluster monikers accepted in place of a URL.
var clusterURLs = map[string]string{
	"devnet":       "https://api.devnet.solana.com",
	"testnet":      "https://api.testnet.solana.com",
	"mainnet-beta": "https://api.mainnet-beta.solana.com",
	"localnet":     "http://127.0.0.1:8899",
}

var commitments = []string{"processed", "confirmed", "finalized"}

// Config is the complete client configuration.
type Config struct {
	// Cluster is a moniker (devnet, testnet, mainnet-beta, localnet) or an RPC URL.
	Cluster string `yaml:"cluster"`
	// Commitment is the preferred preflight commitment level.
	Commitment string `yaml:"commitment"`

	// IDLPath is the packaged program interface document.
	IDLPath string `yaml:"idl_path"`
	// BaseAccountPath is the packaged keypair of the shared backing account.
	BaseAccountPath string `yaml:"base_account_path"`

	Wallet WalletConfig `yaml:"wallet"`
	Log    LogConfig    `yaml:"log"`
	UI     UIConfig     `yaml:"ui"`
}

// WalletConfig configures the keypair wallet.
type WalletConfig struct {
	// KeypairPath is the user's wallet key file.
	KeypairPath string `yaml:"keypair_path"`
	// TrustFile records which addresses approved this application.
	// Empty = wallet package default.
	TrustFile string `yaml:"trust_file"`
	// Origin identifies this application in the trust store.
	Origin string `yaml:"origin"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// UIConfig holds header and footer text.
type UIConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Handle   string `yaml:"handle"`
}

// DefaultPath returns ~/.config/gifportal/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gifportal", "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Cluster:         "devnet",
		Commitment:      "processed",
		IDLPath:         "idl.json",
		BaseAccountPath: "keypair.json",
		Wallet: WalletConfig{
			KeypairPath: filepath.Join(home, ".config", "solana", "id.json"),
			Origin:      "gifportal",
		},
		Log: LogConfig{
			File:       filepath.Join(home, ".local", "state", "gifportal", "gifportal.log"),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		UI: UIConfig{
			Title:    "GIF Portal",
			Subtitle: "View your GIF collection in the metaverse",
		},
	}
}

// Load reads the config file (a missing default file is not an error) and
// applies environment overrides. The result is not validated: callers
// apply their flag overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env string
		dst *string
	}{
		{"GIFPORTAL_CLUSTER", &cfg.Cluster},
		{"GIFPORTAL_COMMITMENT", &cfg.Commitment},
		{"GIFPORTAL_IDL", &cfg.IDLPath},
		{"GIFPORTAL_BASE_ACCOUNT", &cfg.BaseAccountPath},
		{"GIFPORTAL_WALLET", &cfg.Wallet.KeypairPath},
		{"GIFPORTAL_LOG_FILE", &cfg.Log.File},
		{"GIFPORTAL_LOG_LEVEL", &cfg.Log.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Validate checks the fields that have a fixed set of values.
func (c *Config) Validate() error {
	if _, err := c.RPCEndpoint(); err != nil {
		return err
	}
	valid := false
	for _, s := range commitments {
		if c.Commitment == s {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("commitment %q: want one of %s", c.Commitment, strings.Join(commitments, ", "))
	}
	if c.IDLPath == "" {
		return errors.New("idl_path is required")
	}
	if c.BaseAccountPath == "" {
		return errors.New("base_account_path is required")
	}
	if c.Wallet.Origin == "" {
		return errors.New("wallet.origin is required")
	}
	return nil
}

// RPCEndpoint resolves Cluster to a URL.
func (c *Config) RPCEndpoint() (string, error) {
	if u, ok := clusterURLs[c.Cluster]; ok {
		return u, nil
	}
	if strings.HasPrefix(c.Cluster, "http://") || strings.HasPrefix(c.Cluster, "https://") {
		return c.Cluster, nil
	}
	return "", fmt.Errorf("cluster %q: want devnet, testnet, mainnet-beta, localnet or an http(s) URL", c.Cluster)
}
