// Package config loads runtime configuration for the authentication client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed AUTHKEEPER_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// The merged result is checked by (*Config).Validate.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-s string   session store backend (sqlite|redis|memory)
//	-p string   SQLite session file
//	-l string   notification locale (vi|en)
//
// # JSON schema
//
// Durations accept strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.org",
//	  "request_timeout": "15s",
//	  "store_backend": "sqlite",
//	  "store_path": "session.db",
//	  "locale": "vi",
//	  "log_backend": "zap",
//	  "log_level": "info"
//	}
package config
