package config

import "time"

type Config struct {
	ListenAddr      string        `env:"PROXY_LISTEN_ADDR"`
	TargetURL       string        `env:"PROXY_TARGET_URL"`
	ShutdownTimeout time.Duration `env:"PROXY_SHUTDOWN_TIMEOUT"`
	LogLevel        string        `env:"PROXY_LOG_LEVEL"`
}

func (c *Config) LoadDefaults() {
	c.ListenAddr = ":3001"
	c.TargetURL = "http://127.0.0.1:8000"
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, JSON, environment and flags in that order.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
