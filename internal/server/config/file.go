package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file. Durations accept
// "15m" style strings or integer nanoseconds. A nil SeedEnabled leaves the
// current value alone.
type fileConfig struct {
	HTTPAddr                     string         `json:"http_addr" yaml:"http_addr"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	AccessSecret                 string         `json:"access_secret" yaml:"access_secret"`
	RefreshSecret                string         `json:"refresh_secret" yaml:"refresh_secret"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	RedisAddr                    string         `json:"redis_addr" yaml:"redis_addr"`
	SeedEnabled                  *bool          `json:"seed_enabled" yaml:"seed_enabled"`
	SeedAdminEmail               string         `json:"seed_admin_email" yaml:"seed_admin_email"`
	CORSOrigin                   string         `json:"cors_origin" yaml:"cors_origin"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays the file named by -c/-config onto cfg. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON. Only fields present
// in the file change cfg.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&cfg.HTTPAddr, fc.HTTPAddr)
	overlay(&cfg.DatabaseDSN, fc.DatabaseDSN)
	overlay(&cfg.AccessSecret, fc.AccessSecret)
	overlay(&cfg.RefreshSecret, fc.RefreshSecret)
	overlay(&cfg.RedisAddr, fc.RedisAddr)
	overlay(&cfg.SeedAdminEmail, fc.SeedAdminEmail)
	overlay(&cfg.CORSOrigin, fc.CORSOrigin)
	overlay(&cfg.LogLevel, fc.LogLevel)

	if fc.AccessTokenValidityDuration.Duration != 0 {
		cfg.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RefreshTokenValidityDuration.Duration != 0 {
		cfg.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	}
	if fc.SeedEnabled != nil {
		cfg.SeedEnabled = *fc.SeedEnabled
	}
}
