package wallpaper

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
	"github.com/dixieflatline76/Backdrop/util"
)

// Platform applies an image file as the desktop wallpaper. path is always absolute.
type Platform interface {
	SetWallpaper(ctx context.Context, path string) error
}

// Setter dispatches to the Platform for one Environment.
type Setter struct {
	env      sysinfo.Environment
	platform Platform
}

// NewSetter returns a Setter for env. Commands run through runner.
func NewSetter(env sysinfo.Environment, runner util.Runner) *Setter {
	return &Setter{env: env, platform: platformFor(env, runner)}
}

// platformFor is the single place that maps an environment to its wallpaper mechanism.
func platformFor(env sysinfo.Environment, runner util.Runner) Platform {
	switch env {
	case sysinfo.Windows:
		return newWindowsPlatform()
	case sysinfo.KDE:
		return &kdePlatform{eval: sessionBusEvaluator{}}
	case sysinfo.GNOME:
		return &gnomePlatform{runner: runner}
	default:
		return nil
	}
}

// Environment returns the environment the Setter targets.
func (s *Setter) Environment() sysinfo.Environment {
	return s.env
}

// Supported reports whether Set can work at all here.
func (s *Setter) Supported() bool {
	return s.platform != nil
}

// Set installs path as the wallpaper.
func (s *Setter) Set(ctx context.Context, path string) error {
	if s.platform == nil {
		return &UnsupportedEnvironmentError{Env: s.env}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return &SetterError{Env: s.env, Err: fmt.Errorf("resolving %s: %w", path, err)}
	}

	if err := s.platform.SetWallpaper(ctx, abs); err != nil {
		return &SetterError{Env: s.env, Err: err}
	}
	return nil
}
