// Package config provides configuration management for the Backdrop refresher.
// There is no config file: compiled-in defaults are overridden by env vars and CLI flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kirsle/configdir"
	"github.com/spf13/viper"
)

// Config struct to hold all configuration data
type Config struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Interval     time.Duration `mapstructure:"interval"`
	WallpaperDir string        `mapstructure:"wallpaper_dir"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// Default returns the compiled-in configuration for the current OS.
func Default() *Config {
	return &Config{
		Endpoint:     DefaultEndpoint,
		Interval:     DefaultInterval,
		WallpaperDir: DefaultWallpaperDir(runtime.GOOS),
		UserAgent:    AppName + "/" + AppVersion,
	}
}

// Load builds a Config from v. Flags should already be bound to v by the caller.
func Load(v *viper.Viper) (*Config, error) {
	def := Default()

	// Every key needs a default so AutomaticEnv is honoured by Unmarshal.
	v.SetDefault(KeyEndpoint, def.Endpoint)
	v.SetDefault(KeyInterval, def.Interval)
	v.SetDefault(KeyWallpaperDir, def.WallpaperDir)
	v.SetDefault(KeyUserAgent, def.UserAgent)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(cfg.WallpaperDir)
	if err != nil {
		return nil, fmt.Errorf("resolving wallpaper dir %q: %w", cfg.WallpaperDir, err)
	}
	cfg.WallpaperDir = abs

	return cfg, nil
}

// Validate checks the values that the refresh loop relies on.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute http(s) URL, got %q", c.Endpoint)
	}

	if strings.TrimSpace(c.WallpaperDir) == "" {
		return fmt.Errorf("wallpaper dir must not be empty")
	}
	return nil
}

// DefaultWallpaperDir returns the working directory used for downloaded and fitted images.
// The result depends only on goos and the environment, not on the host OS.
func DefaultWallpaperDir(goos string) string {
	homeDir, err := os.UserHomeDir()

	if goos == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			if err != nil {
				return "wallpapers"
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, AppName, "wallpapers")
	}

	if err != nil {
		return "wallpapers"
	}
	return filepath.Join(homeDir, ".local", "share", "wallpapers", linuxWallpaperSubDir)
}

// EnsureDir creates the wallpaper directory if it does not exist yet.
func EnsureDir(dir string) error {
	if err := configdir.MakePath(dir); err != nil {
		return fmt.Errorf("creating wallpaper dir %s: %w", dir, err)
	}
	return nil
}
