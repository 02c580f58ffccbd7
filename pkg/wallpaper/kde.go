package wallpaper

import (
	"context"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/dixieflatline76/Backdrop/util/log"
)

const (
	plasmaDest   = "org.kde.plasmashell"
	plasmaPath   = "/PlasmaShell"
	plasmaMethod = "org.kde.PlasmaShell.evaluateScript"
)

// kdeClearScript blanks the image on every desktop so Plasma notices the next change
// even when the new file reuses the previous path.
const kdeClearScript = `var allDesktops = desktops();` +
	`for (i=0;i<allDesktops.length;i++) {` +
	`d = allDesktops[i];` +
	`d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");` +
	`d.writeConfig("Image", "")}`

const kdeSetScriptFormat = `var allDesktops = desktops();` +
	`for (i=0;i<allDesktops.length;i++) {` +
	`d = allDesktops[i];` +
	`d.wallpaperPlugin = "org.kde.image";` +
	`d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");` +
	`d.writeConfig("Image", "file://%s");` +
	`d.writeConfig("FillMode", "%s")}`

// kdeFillMode is written as-is; the image already matches the screen so the mode has no visible effect.
const kdeFillMode = "2"

// scriptEvaluator runs a Plasma shell script.
type scriptEvaluator interface {
	Evaluate(ctx context.Context, script string) error
}

// sessionBusEvaluator calls evaluateScript over a fresh session bus connection.
type sessionBusEvaluator struct{}

func (sessionBusEvaluator) Evaluate(ctx context.Context, script string) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connecting to session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(plasmaDest, dbus.ObjectPath(plasmaPath)).CallWithContext(ctx, plasmaMethod, 0, script)
	if call.Err != nil {
		return fmt.Errorf("%s: %w", plasmaMethod, call.Err)
	}
	return nil
}

// kdePlatform sets the wallpaper on KDE Plasma.
type kdePlatform struct {
	eval scriptEvaluator
}

func (k *kdePlatform) SetWallpaper(ctx context.Context, path string) error {
	if err := k.eval.Evaluate(ctx, kdeClearScript); err != nil {
		log.Debugf("KDE: clearing wallpaper failed, continuing: %v", err)
	}
	return k.eval.Evaluate(ctx, kdeSetScript(path))
}

func kdeSetScript(path string) string {
	return fmt.Sprintf(kdeSetScriptFormat, escapeJSString(path), kdeFillMode)
}

var jsEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeJSString(s string) string {
	return jsEscaper.Replace(s)
}
