// Package config loads runtime configuration for the task tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API (e.g. http://127.0.0.1:5175)
//	-s string   path of the local session database
//	-t int      per-request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so the value can be
// either a string like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:5175",
//	  "session_db": "session.db",
//	  "request_timeout": "10s"
//	}
//
// This package does not read environment variables.
package config
