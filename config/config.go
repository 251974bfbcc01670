package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. TASKBOARD_SERVER_ADDR
const EnvPrefix = "TASKBOARD"

// Config represents the full taskboard configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
	// gin mode: debug, release or test
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// StorageConfig configures the snapshot file. An empty File keeps
// everything in memory.
type StorageConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Storage: StorageConfig{
			File: "tasks.csv",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for env overrides to reach Unmarshal
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.mode", cfg.Server.Mode)
	v.SetDefault("storage.file", cfg.Storage.File)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// WriteDefault writes the default configuration as YAML to path
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	content := "# taskboard configuration\n" +
		"# Every key can be overridden with " + EnvPrefix + "_<SECTION>_<KEY>\n" +
		string(data)
	return os.WriteFile(path, []byte(content), 0644)
}
