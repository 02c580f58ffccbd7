package config

import (
	"strings"
	"time"
)

// AppVersion is the version of the application, set with -ldflags at build time.
var AppVersion = "dev"

// AppName is the name of the application.
const AppName = "Backdrop"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// EnvPrefix is the prefix for environment variable overrides (BACKDROP_INTERVAL, ...).
const EnvPrefix = "BACKDROP"

// Defaults for the refresh loop.
const (
	DefaultEndpoint = "http://sp1.rock.hosts.name:34633/images"
	DefaultInterval = 5 * time.Minute
)

// Configuration keys shared by viper, env vars and CLI flags.
const (
	KeyEndpoint     = "endpoint"
	KeyInterval     = "interval"
	KeyWallpaperDir = "wallpaper_dir"
	KeyUserAgent    = "user_agent"
)

// linuxWallpaperSubDir is appended to ~/.local/share/wallpapers so cleanup never touches
// wallpapers the user keeps in the shared directory.
const linuxWallpaperSubDir = "backdrop"
