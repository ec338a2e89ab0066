package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"icon-manager/icontheme"
	"icon-manager/internal/config"
	"icon-manager/internal/desktop"
	"icon-manager/internal/discover"
	"icon-manager/internal/raster"
)

var (
	themeName   string
	appManifest string
	iconSize    int
	outPath     string
	verbose     bool
	appVersion  = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "iconctl",
	Short: "iconctl – freedesktop icon theme lookup",
	Long:  "Iconctl resolves symbolic icon names against the installed freedesktop icon themes and writes the resolved bitmap as a PNG file.",
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <icon>",
	Short: "Resolve an icon name at a pixel size and write it as PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the icon themes installed on this system",
	RunE:  runThemes,
}

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the desktop's configured default icon theme",
	RunE:  runDefault,
}

func init() {
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	resolveCmd.Flags().StringVar(&themeName, "theme", icontheme.DefaultThemeName, "System theme to resolve against")
	resolveCmd.Flags().StringVar(&appManifest, "app-manifest", "", "Path to a bundled application index.theme")
	resolveCmd.Flags().IntVar(&iconSize, "size", 48, "Requested icon size in pixels")
	resolveCmd.Flags().StringVar(&outPath, "out", "", "Output PNG path (default: <icon>-<size>.png)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(defaultCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// CLI flags override env only when explicitly provided.
	if cmd.Flags().Changed("theme") {
		cfg.SystemTheme = themeName
	}
	if cmd.Flags().Changed("app-manifest") {
		cfg.AppManifest = appManifest
	}

	logger := newLogger(verbose || cfg.Verbose)

	index := discover.New(logger, discover.DefaultRoots()...)
	session := icontheme.NewSession(index, raster.New(), logger)
	mgr, err := icontheme.NewManager(session, cfg.AppManifest, "", desktop.IconThemeName)
	if err != nil {
		return fmt.Errorf("load application theme: %w", err)
	}

	if discover.Supported() {
		if _, err := mgr.LoadSystemTheme(cfg.SystemTheme); err != nil {
			logger.Warn("cannot load system theme, continuing with bundled icons only",
				"theme", cfg.SystemTheme, "error", err)
		}
	} else {
		logger.Warn("this OS does not carry system icon themes, using bundled icons only")
	}

	name := args[0]
	img, ok := mgr.GetIcon(name, iconSize)
	if !ok {
		return fmt.Errorf("icon %q not found in any available theme", name)
	}

	out := outPath
	if out == "" {
		out = fmt.Sprintf("%s-%d.png", name, iconSize)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}

	logger.Info("icon resolved", "icon", name, "size", iconSize, "out", out)
	return nil
}

func runThemes(cmd *cobra.Command, args []string) error {
	if !discover.Supported() {
		return fmt.Errorf("this OS does not carry system icon themes")
	}
	index := discover.New(newLogger(verbose), discover.DefaultRoots()...)
	names := index.Themes()
	if len(names) == 0 {
		fmt.Println("no icon themes installed")
		return nil
	}
	for _, name := range names {
		manifest, _ := index.FindManifest(name)
		fmt.Printf("%s\t%s\n", name, manifest)
	}
	return nil
}

func runDefault(cmd *cobra.Command, args []string) error {
	name, err := desktop.IconThemeName()
	if err != nil {
		return fmt.Errorf("query desktop settings: %w", err)
	}
	fmt.Println(name)
	return nil
}
