package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// ClientConfig holds the terminal client configuration.
type ClientConfig struct {
	Server string `json:"server,omitempty"`
}

// ClientConfigDir returns the XDG-compliant config directory for the client.
// Typically ~/.config/passop/ on Linux.
func ClientConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "passop")
}

// ClientConfigPath returns the full path to the client config file.
func ClientConfigPath() string {
	return filepath.Join(ClientConfigDir(), "config.json5")
}

// LoadClient reads the client config from path. A missing file yields an
// empty config.
func LoadClient(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ClientConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg ClientConfig
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path as plain JSON, which is valid JSON5.
func (c *ClientConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get returns the value of key.
func (c *ClientConfig) Get(key string) (string, error) {
	switch key {
	case "server":
		return c.Server, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set assigns value to key. It does not save.
func (c *ClientConfig) Set(key, value string) error {
	switch key {
	case "server":
		c.Server = value
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
