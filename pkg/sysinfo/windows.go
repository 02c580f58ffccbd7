//go:build windows

package sysinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

// primaryScreen returns the primary monitor size in pixels.
func primaryScreen() (Resolution, error) {
	if err := getSystemMetrics.Find(); err != nil {
		return Resolution{}, err
	}

	width, _, _ := getSystemMetrics.Call(uintptr(smCXScreen))
	height, _, _ := getSystemMetrics.Call(uintptr(smCYScreen))
	if width == 0 || height == 0 {
		return Resolution{}, fmt.Errorf("GetSystemMetrics returned %dx%d", width, height)
	}

	return Resolution{Width: int(width), Height: int(height)}, nil
}
