package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as
// a string like "15s" or as integer nanoseconds. Pointer fields tell an
// absent key from an empty value; only present keys override Config.
type JsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StoreBackend   *string         `json:"store_backend"`
	StorePath      *string         `json:"store_path"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisNamespace *string         `json:"redis_namespace"`
	SealPassphrase *string         `json:"seal_passphrase"`
	Locale         *string         `json:"locale"`
	LogBackend     *string         `json:"log_backend"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag (flagx.ConfigPath).
// Without it no JSON is loaded. Read or unmarshal errors panic; the caller
// may recover if desired.
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisNamespace, jc.RedisNamespace)
	setString(&cfg.SealPassphrase, jc.SealPassphrase)
	setString(&cfg.Locale, jc.Locale)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
