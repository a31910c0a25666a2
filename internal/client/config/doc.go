// Package config loads runtime configuration for the eTIMS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the mobile API, e.g. http://127.0.0.1:8000/api/mobile
//	-u string   comma-separated candidate base URLs probed by "discover"
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-d string   path of the local SQLite database
//	-r int      retry attempts for gateway errors (0 disables retries)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "http://127.0.0.1:8000/api/mobile",
//	  "candidate_urls": ["http://127.0.0.1:8000/api/mobile"],
//	  "request_timeout": "30s",
//	  "probe_timeout": "5s",
//	  "online_check_interval": "10s",
//	  "db_path": "etims.db",
//	  "retry_attempts": 2,
//	  "retry_base_delay": "250ms",
//	  "log_level": "info"
//	}
//
// Keys absent from the file keep their default values.
package config
