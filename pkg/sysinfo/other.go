//go:build !windows

package sysinfo

import "errors"

func primaryScreen() (Resolution, error) {
	return Resolution{}, errors.New("GetSystemMetrics is only available on Windows")
}
