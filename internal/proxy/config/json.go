package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/etimsclient/internal/flagx"
	"github.com/dmitrijs2005/etimsclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ListenAddr      string          `json:"listen_addr"`
	TargetURL       string          `json:"target_url"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
	LogLevel        string          `json:"log_level"`
}

func parseJson(cfg *Config) error {
	path := flagx.ConfigPath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.TargetURL != "" {
		cfg.TargetURL = jc.TargetURL
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
