package wallpaper

import (
	"errors"
	"fmt"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
)

// ErrUnsupportedEnvironment matches any UnsupportedEnvironmentError via errors.Is.
var ErrUnsupportedEnvironment = errors.New("unsupported desktop environment")

// NetworkError reports a failed request to the image service or image host.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// EncodeError reports a failure to decode, transform or write an image.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("processing image %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// SetterError reports that the desktop rejected the new wallpaper.
type SetterError struct {
	Env sysinfo.Environment
	Err error
}

func (e *SetterError) Error() string {
	return fmt.Sprintf("setting %s wallpaper: %v", e.Env, e.Err)
}

func (e *SetterError) Unwrap() error { return e.Err }

// UnsupportedEnvironmentError means there is no way to set the wallpaper here. It is not retried.
type UnsupportedEnvironmentError struct {
	Env sysinfo.Environment
}

func (e *UnsupportedEnvironmentError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnsupportedEnvironment, e.Env)
}

// Is lets errors.Is(err, ErrUnsupportedEnvironment) succeed.
func (e *UnsupportedEnvironmentError) Is(target error) bool {
	return target == ErrUnsupportedEnvironment
}
