package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
	"github.com/dixieflatline76/Backdrop/util/log"
)

// ImageSource yields the next image to show.
type ImageSource interface {
	FetchImageURL(ctx context.Context) (string, error)
	Download(ctx context.Context, imageURL, dir string) (string, error)
}

// WallpaperSetter installs a fitted image.
type WallpaperSetter interface {
	Environment() sysinfo.Environment
	Supported() bool
	Set(ctx context.Context, path string) error
}

// Refresher runs the fetch, download, fit and set cycle.
type Refresher struct {
	source     ImageSource
	files      *FileManager
	fitter     *Fitter
	setter     WallpaperSetter
	resolution sysinfo.Resolution
	interval   time.Duration
}

// RefresherOptions collects everything a Refresher needs.
type RefresherOptions struct {
	Source     ImageSource
	Files      *FileManager
	Fitter     *Fitter
	Setter     WallpaperSetter
	Resolution sysinfo.Resolution
	Interval   time.Duration
}

// NewRefresher creates a Refresher. Resolution is fixed for the Refresher's lifetime.
func NewRefresher(opts RefresherOptions) *Refresher {
	return &Refresher{
		source:     opts.Source,
		files:      opts.Files,
		fitter:     opts.Fitter,
		setter:     opts.Setter,
		resolution: opts.Resolution,
		interval:   opts.Interval,
	}
}

// RunOnce performs a single iteration and returns the path of the wallpaper now in use.
// current is the fitted file from the previous iteration; it and its source are removed
// before the new image is fitted. On failure it returns current unchanged together with
// the error, and whatever this iteration wrote is discarded.
func (r *Refresher) RunOnce(ctx context.Context, current string) (string, error) {
	if !r.setter.Supported() {
		return current, &UnsupportedEnvironmentError{Env: r.setter.Environment()}
	}

	if err := r.files.EnsureDir(); err != nil {
		return current, err
	}

	imageURL, err := r.source.FetchImageURL(ctx)
	if err != nil {
		return current, err
	}
	log.Debugf("Next image: %s", imageURL)

	src, err := r.source.Download(ctx, imageURL, r.files.Dir())
	if err != nil {
		return current, err
	}

	if n := r.files.Cleanup(current, src); n > 0 {
		log.Debugf("Removed %d previous file(s)", n)
	}

	fitted := r.files.FittedPath(src, r.fitter.Format().Ext())
	if err := r.fitter.FitFile(ctx, src, fitted, r.resolution); err != nil {
		r.files.Discard(src, fitted)
		return current, err
	}

	if err := r.setter.Set(ctx, fitted); err != nil {
		r.files.Discard(src, fitted)
		return current, err
	}

	log.Printf("Wallpaper set to %s", fitted)
	return fitted, nil
}

// Run refreshes immediately and then every interval until ctx is done.
// It returns ctx.Err() on cancellation and stops for good on an unsupported environment;
// every other failure is logged and retried at the next tick.
func (r *Refresher) Run(ctx context.Context) error {
	if !r.setter.Supported() {
		return &UnsupportedEnvironmentError{Env: r.setter.Environment()}
	}
	if r.interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", r.interval)
	}

	log.Printf("Refreshing wallpaper every %s at %s", r.interval, r.resolution)

	current := ""
	for {
		next, err := r.RunOnce(ctx, current)
		current = next
		if err != nil {
			if errors.Is(err, ErrUnsupportedEnvironment) {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Wallpaper refresh failed: %v", err)
		}

		timer := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Print("Stopping wallpaper refresh.")
			return ctx.Err()
		case <-timer.C:
		}
	}
}
