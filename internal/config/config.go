package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"NINEDT_LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"NINEDT_HTTP_PORT" env-default:"9090"`
	Oracle   Oracle  `yaml:"oracle"`
	Session  Session `yaml:"session"`
}

type Oracle struct {
	URL     string        `yaml:"url" env:"NINEDT_ORACLE_URL" env-default:"https://w0ayb2ph1k.execute-api.us-west-2.amazonaws.com/production"`
	Timeout time.Duration `yaml:"timeout" env:"NINEDT_ORACLE_TIMEOUT" env-default:"10s"`
}

type Session struct {
	Limit int `yaml:"limit" env:"NINEDT_SESSION_LIMIT" env-default:"1000"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path when it is given and applies environment overrides and
// defaults on top.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}
