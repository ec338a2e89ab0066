package icontheme

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// IconEntry records every known source file for one logical icon, keyed by
// size class. Symlinked icon names alias the target's entry: both names map
// to the same *IconEntry, so a size registered through one name is visible
// through the other.
type IconEntry struct {
	sizes map[SizeClass]string
}

func newIconEntry() *IconEntry {
	return &IconEntry{sizes: make(map[SizeClass]string)}
}

// Location returns the source file registered for the given size class.
func (e *IconEntry) Location(size SizeClass) (string, bool) {
	path, ok := e.sizes[size]
	return path, ok
}

// Sizes lists the registered size classes, concrete sizes ascending with
// the scalable sentinel first.
func (e *IconEntry) Sizes() []SizeClass {
	out := make([]SizeClass, 0, len(e.sizes))
	for size := range e.sizes {
		out = append(out, size)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// iconIndex maps icon base names to their entries within one theme.
type iconIndex map[string]*IconEntry

// register extends (or creates) the entry for name with one source location.
func (ix iconIndex) register(name string, size SizeClass, location string) *IconEntry {
	entry, ok := ix[name]
	if !ok {
		entry = newIconEntry()
		ix[name] = entry
	}
	entry.sizes[size] = location
	return entry
}

// scanDirectory indexes the raster icon files directly inside dir under the
// given size class. Unreadable or missing directories are logged and
// skipped; they never fail the theme load as a whole.
func (ix iconIndex) scanDirectory(dir string, size SizeClass, logger *log.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("skipping unreadable icon directory", "directory", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isRasterIconFile(name) {
			continue
		}
		location := filepath.Join(dir, name)

		if entry.Type()&fs.ModeSymlink != 0 {
			ix.registerAlias(iconBaseName(name), location, dir, size, logger)
			continue
		}
		ix.register(iconBaseName(name), size, location)
		logger.Debug("indexed icon", "icon", iconBaseName(name), "size", size, "file", location)
	}
}

// registerAlias resolves a symlinked icon file to its target's entry. If the
// target has not been indexed yet it is indexed first, so the alias shares
// the target's entry instead of copying it.
func (ix iconIndex) registerAlias(alias, location, dir string, size SizeClass, logger *log.Logger) {
	target, err := os.Readlink(location)
	if err != nil {
		logger.Warn("cannot resolve icon symlink", "file", location, "error", err)
		return
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}

	targetName := iconBaseName(filepath.Base(target))
	entry, ok := ix[targetName]
	if !ok {
		entry = ix.register(targetName, size, target)
	}
	ix[alias] = entry
	logger.Debug("indexed icon alias", "icon", alias, "target", targetName, "size", size)
}

// iconBaseName derives the logical icon name from a file name: everything up
// to the first dot.
func iconBaseName(fileName string) string {
	if i := strings.IndexByte(fileName, '.'); i >= 0 {
		return fileName[:i]
	}
	return fileName
}

func isRasterIconFile(fileName string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".png")
}
