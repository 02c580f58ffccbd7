package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dixieflatline76/Backdrop/config"
	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
	"github.com/dixieflatline76/Backdrop/pkg/wallpaper"
	"github.com/dixieflatline76/Backdrop/util"
	"github.com/dixieflatline76/Backdrop/util/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires the CLI. Each call gets its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var once bool

	rootCmd := &cobra.Command{
		Use:           "backdrop",
		Short:         "Keep the desktop wallpaper fresh",
		Long:          `Backdrop fetches an image from a remote service, letterboxes it to the screen and sets it as the wallpaper on Windows, KDE Plasma and GNOME.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd.Context(), v, once)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("endpoint", config.DefaultEndpoint, "image-URL service endpoint")
	flags.Duration("interval", config.DefaultInterval, "time between wallpaper changes")
	flags.String("dir", "", "working directory for downloaded and fitted images")
	rootCmd.Flags().BoolVar(&once, "once", false, "change the wallpaper once and exit")

	_ = v.BindPFlag(config.KeyEndpoint, flags.Lookup("endpoint"))
	_ = v.BindPFlag(config.KeyInterval, flags.Lookup("interval"))
	_ = v.BindPFlag(config.KeyWallpaperDir, flags.Lookup("dir"))

	rootCmd.AddCommand(newDetectCmd(v), newVersionCmd())
	return rootCmd
}

func newDetectCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Print the detected desktop environment, screen resolution and working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			env := sysinfo.DetectEnvironment()
			res := sysinfo.NewResolutionProvider(util.ExecRunner{}).Resolution(ctx, env)
			setter := wallpaper.NewSetter(env, util.ExecRunner{})
			printDetection(cmd.OutOrStdout(), env, res, setter.Supported(), cfg)
			return nil
		},
	}
}

func printDetection(w io.Writer, env sysinfo.Environment, res sysinfo.Resolution, supported bool, cfg *config.Config) {
	fmt.Fprintf(w, "Environment:  %s\n", env)
	fmt.Fprintf(w, "Supported:    %t\n", supported)
	fmt.Fprintf(w, "Resolution:   %s\n", res)
	fmt.Fprintf(w, "Directory:    %s\n", cfg.WallpaperDir)
	fmt.Fprintf(w, "Endpoint:     %s\n", cfg.Endpoint)
	fmt.Fprintf(w, "Interval:     %s\n", cfg.Interval)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, config.AppVersion)
		},
	}
}

// runRefresh sets the wallpaper once or loops until SIGINT/SIGTERM.
func runRefresh(parent context.Context, v *viper.Viper, once bool) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	env := sysinfo.DetectEnvironment()
	runner := util.ExecRunner{}
	setter := wallpaper.NewSetter(env, runner)
	if !setter.Supported() {
		return &wallpaper.UnsupportedEnvironmentError{Env: env}
	}

	acquired, err := acquireLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another instance of %s is already running", config.AppName)
	}
	defer releaseLock()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := sysinfo.NewResolutionProvider(runner).Resolution(ctx, env)
	log.Printf("%s %s on %s at %s, images in %s", config.AppName, config.AppVersion, env, res, cfg.WallpaperDir)

	refresher := wallpaper.NewRefresher(wallpaper.RefresherOptions{
		Source:     wallpaper.NewClient(cfg.Endpoint, wallpaper.NewHTTPClient(cfg.UserAgent)),
		Files:      wallpaper.NewFileManager(cfg.WallpaperDir),
		Fitter:     wallpaper.NewFitter(wallpaper.FormatFor(env)),
		Setter:     setter,
		Resolution: res,
		Interval:   cfg.Interval,
	})

	if once {
		_, err := refresher.RunOnce(ctx, "")
		return err
	}

	err = refresher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Print("Interrupted, exiting.")
		return nil
	}
	return err
}
