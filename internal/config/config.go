package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"icon-manager/icontheme"
)

// Config captures startup settings for the iconctl entrypoint.
type Config struct {
	// AppManifest points at the bundled application theme's index.theme.
	// Empty means no bundled fallback theme.
	AppManifest string `env:"ICONS_APP_MANIFEST"`
	// SystemTheme is the system theme to activate at startup. The sentinel
	// "default" follows the desktop's configured theme.
	SystemTheme string `env:"ICONS_SYSTEM_THEME" envDefault:"default"`
	// Verbose enables debug-level engine logging.
	Verbose bool `env:"ICONS_VERBOSE" envDefault:"false"`
}

// LoadFromEnv loads runtime configuration from environment variables.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AppManifest != "" {
		clean := filepath.Clean(cfg.AppManifest)
		if clean == "." {
			return Config{}, fmt.Errorf("ICONS_APP_MANIFEST must not resolve to current directory")
		}
		cfg.AppManifest = clean
	}

	cfg.SystemTheme = strings.TrimSpace(cfg.SystemTheme)
	if cfg.SystemTheme == "" {
		cfg.SystemTheme = icontheme.DefaultThemeName
	}

	return cfg, nil
}
