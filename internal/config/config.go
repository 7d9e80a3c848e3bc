// Package config loads server configuration from an optional YAML file,
// layered under environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvDefaultGuild names the environment variable carrying the fallback
// server id used when a tool call omits server_id.
const EnvDefaultGuild = "DISCORD_DEFAULT_GUILD_ID"

// Config is the file-level configuration. The token here is the highest
// precedence credential source; environment variables are consulted only
// when it is empty.
type Config struct {
	Token          string `yaml:"token"`
	DefaultGuildID string `yaml:"default_guild_id"`
	Transport      string `yaml:"transport"`
	Port           int    `yaml:"port"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads a YAML config file. A missing file is not an error: the
// server runs fine on environment variables alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg.withEnv(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.withEnv(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withEnv(), nil
}

func (c *Config) withEnv() *Config {
	if c.DefaultGuildID == "" {
		c.DefaultGuildID = os.Getenv(EnvDefaultGuild)
	}
	return c
}
