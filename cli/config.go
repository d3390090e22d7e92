package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

const configFilePermission = 0o600

// Config is the warden-cli client configuration stored as TOML.
type Config struct {
	Agent AgentConfig `toml:"agent"`
}

type AgentConfig struct {
	URL             string `toml:"url"`
	Token           string `toml:"token"`
	TLSVerification bool   `toml:"tls_verification"`
}

// DefaultConfigPath returns ~/.warden/cli.toml, falling back to the
// working directory when the home directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "warden-cli.toml"
	}

	return filepath.Join(home, ".warden", "cli.toml")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	tree, err := toml.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	var cfg Config
	if err := tree.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	return os.WriteFile(path, data, configFilePermission)
}
