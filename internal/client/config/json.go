package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/etimsclient/internal/flagx"
	"github.com/dmitrijs2005/etimsclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from a zero value.
type JsonConfig struct {
	BaseURL             *string         `json:"base_url"`
	CandidateURLs       []string        `json:"candidate_urls"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	ProbeTimeout        *timex.Duration `json:"probe_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DBPath              *string         `json:"db_path"`
	RetryAttempts       *int            `json:"retry_attempts"`
	RetryBaseDelay      *timex.Duration `json:"retry_base_delay"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Without the flag nothing happens. Panics on read or unmarshal
// errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.CandidateURLs != nil {
		cfg.CandidateURLs = jc.CandidateURLs
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.RetryAttempts != nil {
		cfg.RetryAttempts = *jc.RetryAttempts
	}
	if jc.RetryBaseDelay != nil {
		cfg.RetryBaseDelay = jc.RetryBaseDelay.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
