package icontheme

import (
	"image"
	"os"
	"path/filepath"
)

// Theme is one named, directory-backed icon set plus its ordered fallback
// chain. Themes are immutable after construction; only the session's render
// cache is populated lazily. A theme does not own its parents — those are
// back-references into the session registry.
type Theme struct {
	name        string
	displayName string
	isSystem    bool
	root        string
	icons       iconIndex
	inherits    []*Theme
	session     *Session
}

// Name returns the theme's identity: the manifest's parent directory name.
func (t *Theme) Name() string { return t.name }

// DisplayName returns the manifest's human-readable name.
func (t *Theme) DisplayName() string { return t.displayName }

// Entry exposes the index entry for one icon name, if the theme has it
// locally.
func (t *Theme) Entry(icon string) (*IconEntry, bool) {
	entry, ok := t.icons[icon]
	return entry, ok
}

// Inherits lists the resolved fallback chain in lookup order.
func (t *Theme) Inherits() []*Theme {
	return append([]*Theme(nil), t.inherits...)
}

func themeNameFromManifestPath(manifestPath string) string {
	return filepath.Base(filepath.Dir(manifestPath))
}

// newTheme parses the manifest, resolves the inheritance chain, and scans
// the declared directories into the icon index. Only manifest-level
// structural problems abort construction; everything below that degrades to
// a logged warning.
func newTheme(s *Session, manifestPath string, isSystemTheme bool) (*Theme, error) {
	manifest, err := ParseManifest(manifestPath, s.logger)
	if err != nil {
		return nil, err
	}

	t := &Theme{
		name:        manifest.Name,
		displayName: manifest.DisplayName,
		isSystem:    isSystemTheme,
		root:        filepath.Dir(manifestPath),
		icons:       make(iconIndex),
		session:     s,
	}

	// Every system theme except hicolor itself falls back to hicolor last,
	// whether or not the manifest says so. The bundled application theme is a
	// closed set: it never inherits anything.
	if isSystemTheme && t.name != HicolorThemeName {
		names := normalizeInherits(t.name, manifest.Inherits)
		t.inherits = s.resolveInherited(t.name, names)
	}

	for _, dir := range manifest.Directories {
		t.icons.scanDirectory(filepath.Join(t.root, dir.Path), dir.Size, s.logger)
	}

	return t, nil
}

// normalizeInherits deduplicates the manifest's inherited-name list, drops
// self-references, and enforces that hicolor appears exactly once and last.
func normalizeInherits(self string, declared []string) []string {
	out := make([]string, 0, len(declared)+1)
	seen := make(map[string]struct{}, len(declared)+1)
	for _, name := range declared {
		if name == self || name == HicolorThemeName {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return append(out, HicolorThemeName)
}

// Lookup resolves an icon name at the requested pixel size against this
// theme and its fallback chain. A miss is reported through the boolean, not
// as an error.
func (t *Theme) Lookup(icon string, size int) (image.Image, bool) {
	return t.lookup(icon, size, true)
}

// lookup is the recursive form. queryHicolor is true only for the top-level
// call: below the first level hicolor is skipped, so a single resolution
// consults hicolor at most once, at the end of the top-level chain, no
// matter how many ancestors declare it.
func (t *Theme) lookup(icon string, size int, queryHicolor bool) (image.Image, bool) {
	if img, ok := t.session.cache.get(t.name, icon, size); ok {
		t.session.logger.Debug("render cache hit", "theme", t.name, "icon", icon, "size", size)
		return img, true
	}

	img, ok := t.lookupLocal(icon, size)
	if !ok {
		for _, parent := range t.inherits {
			if parent.name == HicolorThemeName && !queryHicolor {
				continue
			}
			if got, found := parent.lookup(icon, size, false); found {
				img, ok = got, true
				break
			}
		}
	}

	if ok {
		t.session.cache.put(t.name, icon, size, img)
	}
	return img, ok
}

// lookupLocal resolves against this theme's own index only. An exact size
// match wins; otherwise the strictly-largest concrete size is scaled to the
// request. A scalable entry is selected only when no concrete size exists at
// all, and is served decoded but unscaled — rendering of vector sources is
// deferred to an external rasterizer, so a source the decoder cannot read is
// a plain miss here.
func (t *Theme) lookupLocal(icon string, size int) (image.Image, bool) {
	entry, ok := t.icons[icon]
	if !ok {
		return nil, false
	}

	class := SizeClass(size)
	location, exact := entry.Location(class)
	if !exact {
		class = SizeScalable
		for candidate := range entry.sizes {
			if candidate > class {
				class = candidate
			}
		}
		location, ok = entry.Location(class)
		if !ok {
			return nil, false
		}
	}

	data, err := os.ReadFile(location)
	if err != nil {
		t.session.logger.Error("cannot read icon file",
			"theme", t.name, "icon", icon, "file", location, "error", err)
		return nil, false
	}
	img, err := t.session.raster.Decode(data)
	if err != nil {
		t.session.logger.Error("cannot decode icon file",
			"theme", t.name, "icon", icon, "file", location, "error", err)
		return nil, false
	}

	if !exact && class != SizeScalable {
		t.session.logger.Info("scaling icon from largest available source",
			"theme", t.name, "icon", icon, "requested", size, "source", class)
		img = t.session.raster.Scale(img, size)
	}
	return img, true
}
