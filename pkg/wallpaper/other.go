//go:build !windows

package wallpaper

// newWindowsPlatform has nothing to offer off Windows, so the environment is unsupported.
func newWindowsPlatform() Platform {
	return nil
}
