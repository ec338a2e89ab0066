// Package discover locates installed icon themes through the OS directory
// conventions: ~/.icons first, then the XDG data home and data directories.
package discover

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Supported reports whether the host OS carries freedesktop icon themes at
// all.
func Supported() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		return true
	default:
		return false
	}
}

// Index is the discovered set of installed themes: theme name to index.theme
// location. Earlier roots shadow later ones, so a user-installed theme wins
// over a system-wide copy of the same name.
type Index struct {
	themes map[string]string
}

// DefaultRoots returns the theme search roots in precedence order.
func DefaultRoots() []string {
	roots := make([]string, 0, 4)
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, ".icons"))
	}
	roots = append(roots, filepath.Join(xdg.DataHome, "icons"))
	for _, dir := range xdg.DataDirs {
		roots = append(roots, filepath.Join(dir, "icons"))
	}
	return roots
}

// New scans the given roots for <theme>/index.theme entries. Roots that do
// not exist or cannot be read are logged and skipped.
func New(logger *log.Logger, roots ...string) *Index {
	if logger == nil {
		logger = log.Default()
	}
	ix := &Index{themes: make(map[string]string)}
	for _, root := range roots {
		ix.scanRoot(root, logger)
	}
	return ix
}

func (ix *Index) scanRoot(root string, logger *log.Logger) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cannot scan icon theme root", "root", root, "error", err)
		}
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, shadowed := ix.themes[name]; shadowed {
			continue
		}
		manifest := filepath.Join(root, name, "index.theme")
		if info, err := os.Stat(manifest); err != nil || info.IsDir() {
			continue
		}
		ix.themes[name] = manifest
		logger.Debug("discovered icon theme", "theme", name, "manifest", manifest)
	}
}

// FindManifest resolves an installed theme name to its index.theme path.
func (ix *Index) FindManifest(themeName string) (string, bool) {
	path, ok := ix.themes[themeName]
	return path, ok
}

// Themes lists the discovered theme names, sorted.
func (ix *Index) Themes() []string {
	out := make([]string, 0, len(ix.themes))
	for name := range ix.themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
