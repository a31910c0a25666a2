// Package config loads runtime configuration for the local reverse proxy.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables (PROXY_LISTEN_ADDR, PROXY_TARGET_URL,
//     PROXY_SHUTDOWN_TIMEOUT, PROXY_LOG_LEVEL).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   listen address (default ":3001")
//	-t string   upstream URL (default "http://127.0.0.1:8000")
//	-l string   log level
package config
