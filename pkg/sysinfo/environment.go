package sysinfo

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Environment identifies the desktop (or OS) whose wallpaper interface we talk to.
type Environment int

// Environment constants
const (
	Unknown Environment = iota
	Windows
	KDE
	GNOME
	XFCE
	MATE
)

// String returns the lowercase name of the environment.
func (e Environment) String() string {
	switch e {
	case Windows:
		return "windows"
	case KDE:
		return "kde"
	case GNOME:
		return "gnome"
	case XFCE:
		return "xfce"
	case MATE:
		return "mate"
	default:
		return "unknown"
	}
}

// desktopSignature pairs an environment with the XDG substring and session binaries that reveal it.
type desktopSignature struct {
	env      Environment
	marker   string
	binaries []string
}

// desktopSignatures is ordered by priority: KDE, GNOME, XFCE, MATE.
var desktopSignatures = []desktopSignature{
	{env: KDE, marker: "kde", binaries: []string{"ksmserver", "plasmashell"}},
	{env: GNOME, marker: "gnome", binaries: []string{"gnome-session"}},
	{env: XFCE, marker: "xfce", binaries: []string{"xfce4-session"}},
	{env: MATE, marker: "mate", binaries: []string{"mate-session"}},
}

// Detector works out the active Environment. The zero value is not usable, use NewDetector.
type Detector struct {
	GOOS     string
	Getenv   func(key string) string
	LookPath func(file string) (string, error)
}

// NewDetector returns a Detector wired to the real process environment.
func NewDetector() *Detector {
	return &Detector{
		GOOS:     runtime.GOOS,
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
	}
}

// DetectEnvironment is shorthand for NewDetector().Detect().
func DetectEnvironment() Environment {
	return NewDetector().Detect()
}

// Detect never fails. It returns Unknown when nothing matches.
func (d *Detector) Detect() Environment {
	if d.GOOS == "windows" {
		return Windows
	}

	for _, key := range []string{"XDG_CURRENT_DESKTOP", "DESKTOP_SESSION"} {
		desktop := strings.ToLower(d.Getenv(key))
		if desktop == "" {
			continue
		}
		for _, p := range desktopSignatures {
			if strings.Contains(desktop, p.marker) {
				return p.env
			}
		}
	}

	for _, p := range desktopSignatures {
		for _, bin := range p.binaries {
			if _, err := d.LookPath(bin); err == nil {
				return p.env
			}
		}
	}

	return Unknown
}
