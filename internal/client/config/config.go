package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the eTIMS CLI.
type Config struct {
	BaseURL       string
	CandidateURLs []string

	RequestTimeout      time.Duration
	ProbeTimeout        time.Duration
	OnlineCheckInterval time.Duration

	DBPath string

	RetryAttempts  int
	RetryBaseDelay time.Duration

	LogLevel string
}

const defaultBaseURL = "http://127.0.0.1:8000/api/mobile"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = defaultBaseURL
	c.CandidateURLs = []string{
		defaultBaseURL,
		"http://localhost:8000/api/mobile",
		"http://10.0.2.2:8000/api/mobile",
	}
	c.RequestTimeout = 30 * time.Second
	c.ProbeTimeout = 5 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.DBPath = defaultDBPath()
	c.RetryAttempts = 0
	c.RetryBaseDelay = 200 * time.Millisecond
	c.LogLevel = "info"
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "etims.db"
	}
	return filepath.Join(dir, "etims", "etims.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
