package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Config supplies defaults for the connection flags; flags and env vars win
// over file values.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	UseMQTT  *bool  `yaml:"use_mqtt"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveSettings merges the config file (if any) with the connection flags.
func ResolveSettings(ctx *cli.Context) (host string, port int, password string, useMQTT bool, err error) {
	var cfg *Config
	if path := ctx.String(FlagConfig.Name); path != "" {
		cfg, err = LoadConfig(path)
		if err != nil {
			return "", 0, "", false, err
		}
	}

	host = ctx.String(FlagHost.Name)
	port = ctx.Int(FlagPort.Name)
	password = ctx.String(FlagPassword.Name)
	useMQTT = ctx.Bool(FlagUseMQTT.Name)

	if cfg != nil {
		if host == "" {
			host = cfg.Host
		}
		if !ctx.IsSet(FlagPort.Name) && cfg.Port != 0 {
			port = cfg.Port
		}
		if password == "" {
			password = cfg.Password
		}
		if !ctx.IsSet(FlagUseMQTT.Name) && cfg.UseMQTT != nil {
			useMQTT = *cfg.UseMQTT
		}
	}

	if host == "" {
		return "", 0, "", false, fmt.Errorf("device host is required")
	}
	return host, port, password, useMQTT, nil
}
