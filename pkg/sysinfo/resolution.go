package sysinfo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dixieflatline76/Backdrop/util"
	"github.com/dixieflatline76/Backdrop/util/log"
)

// Resolution is a screen size in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// DefaultResolution is used whenever the real size cannot be determined.
var DefaultResolution = Resolution{Width: 1920, Height: 1080}

// ErrResolutionParse is returned when xrandr output has no usable size.
var ErrResolutionParse = errors.New("could not parse screen resolution")

// ResolutionProvider queries the primary screen size.
type ResolutionProvider struct {
	runner util.Runner
	screen func() (Resolution, error)
}

// NewResolutionProvider returns a provider that shells out through runner.
func NewResolutionProvider(runner util.Runner) *ResolutionProvider {
	return &ResolutionProvider{runner: runner, screen: primaryScreen}
}

// Resolution never fails. Any query or parse problem yields DefaultResolution.
func (p *ResolutionProvider) Resolution(ctx context.Context, env Environment) Resolution {
	res, err := p.query(ctx, env)
	if err != nil {
		log.Debugf("Screen resolution unavailable, using %s: %v", DefaultResolution, err)
		return DefaultResolution
	}
	return res
}

func (p *ResolutionProvider) query(ctx context.Context, env Environment) (Resolution, error) {
	if env == Windows {
		return p.screen()
	}

	out, err := p.runner.Output(ctx, "xrandr")
	if err != nil {
		return Resolution{}, err
	}
	return parseXrandr(string(out))
}

// parseXrandr reads the "current W x H," figure from the Screen line, falling back
// to the mode line flagged with '*'.
func parseXrandr(out string) (Resolution, error) {
	var activeMode string

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		for i, f := range fields {
			if f != "current" || i+3 >= len(fields) {
				continue
			}
			w, errW := strconv.Atoi(fields[i+1])
			h, errH := strconv.Atoi(strings.TrimSuffix(fields[i+3], ","))
			if errW == nil && errH == nil && w > 0 && h > 0 {
				return Resolution{Width: w, Height: h}, nil
			}
		}
		if activeMode == "" && len(fields) > 1 && strings.Contains(scanner.Text(), "*") {
			activeMode = fields[0]
		}
	}

	if activeMode != "" {
		if w, h, ok := strings.Cut(activeMode, "x"); ok {
			width, errW := strconv.Atoi(w)
			height, errH := strconv.Atoi(h)
			if errW == nil && errH == nil && width > 0 && height > 0 {
				return Resolution{Width: width, Height: height}, nil
			}
		}
	}

	return Resolution{}, ErrResolutionParse
}
