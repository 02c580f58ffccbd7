package wallpaper

import (
	"context"

	"github.com/dixieflatline76/Backdrop/util"
	"github.com/dixieflatline76/Backdrop/util/log"
)

const gnomeBackgroundSchema = "org.gnome.desktop.background"

// gnomePlatform sets the wallpaper through gsettings.
type gnomePlatform struct {
	runner util.Runner
}

func (g *gnomePlatform) SetWallpaper(ctx context.Context, path string) error {
	uri := "file://" + path

	if err := g.runner.Run(ctx, "gsettings", "set", gnomeBackgroundSchema, "picture-uri", uri); err != nil {
		return err
	}
	if err := g.runner.Run(ctx, "gsettings", "set", gnomeBackgroundSchema, "picture-options", "zoom"); err != nil {
		return err
	}

	// Older GNOME has no dark key.
	if err := g.runner.Run(ctx, "gsettings", "set", gnomeBackgroundSchema, "picture-uri-dark", uri); err != nil {
		log.Debugf("GNOME: picture-uri-dark not updated: %v", err)
	}
	return nil
}
