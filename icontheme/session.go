package icontheme

import (
	"image"
	"sync"

	"github.com/charmbracelet/log"
)

// HicolorThemeName is the universal fallback theme every system theme
// ultimately inherits.
const HicolorThemeName = "hicolor"

// Locator resolves an installed theme name to its index.theme location. It
// is backed by the OS-specific discovery component.
type Locator interface {
	FindManifest(themeName string) (string, bool)
}

// Rasterizer decodes raster icon bytes and scales decoded bitmaps to a
// target pixel size. Failures are treated as a local lookup miss, never as a
// fatal resolution error.
type Rasterizer interface {
	Decode(data []byte) (image.Image, error)
	Scale(img image.Image, size int) image.Image
}

// DefaultThemeFunc queries the desktop environment for the user's configured
// icon theme name.
type DefaultThemeFunc func() (string, error)

// Session holds the process-wide registry of constructed themes and the
// render cache. A theme is constructed at most once per name for the
// lifetime of the session; themes inherited by several others resolve to the
// same instance. The maps grow monotonically and are discarded with the
// session as a whole.
type Session struct {
	locator Locator
	raster  Rasterizer
	logger  *log.Logger
	cache   *renderCache

	mu       sync.RWMutex
	themes   map[string]*Theme
	building map[string]struct{}
}

// NewSession builds an empty session around the given collaborators. A nil
// logger falls back to the package default.
func NewSession(locator Locator, raster Rasterizer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		locator:  locator,
		raster:   raster,
		logger:   logger,
		cache:    newRenderCache(),
		themes:   make(map[string]*Theme),
		building: make(map[string]struct{}),
	}
}

// Theme returns the already-constructed theme registered under name.
func (s *Session) Theme(name string) (*Theme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.themes[name]
	return t, ok
}

// LoadTheme parses the manifest at manifestPath and constructs the theme it
// describes, resolving inherited themes recursively. If a theme of the same
// name is already registered in the session, that instance is returned and
// no disk work happens.
//
// The registry insertion is the only critical section; directory scans and
// inherited-theme construction run outside the lock. A theme that is already
// under construction in this session (a transitive inheritance cycle) fails
// with an internal cycle error that inheritance resolution logs and skips.
func (s *Session) LoadTheme(manifestPath string, isSystemTheme bool) (*Theme, error) {
	name := themeNameFromManifestPath(manifestPath)

	s.mu.Lock()
	if t, ok := s.themes[name]; ok {
		s.mu.Unlock()
		return t, nil
	}
	if _, busy := s.building[name]; busy {
		s.mu.Unlock()
		return nil, &themeCycleError{Name: name}
	}
	s.building[name] = struct{}{}
	s.mu.Unlock()

	t, err := newTheme(s, manifestPath, isSystemTheme)

	s.mu.Lock()
	delete(s.building, name)
	if err == nil {
		s.themes[name] = t
	}
	s.mu.Unlock()

	return t, err
}

// resolveInherited maps the finalized inherited-name order to constructed
// theme references. A broken ancestor (not installed, malformed, or part of
// an inheritance cycle) is logged and skipped so that it cannot break its
// descendants.
func (s *Session) resolveInherited(child string, names []string) []*Theme {
	out := make([]*Theme, 0, len(names))
	for _, name := range names {
		if t, ok := s.Theme(name); ok {
			out = append(out, t)
			continue
		}
		if s.locator == nil {
			s.logger.Warn("no theme locator configured, cannot resolve inherited theme",
				"theme", child, "inherits", name)
			continue
		}
		path, ok := s.locator.FindManifest(name)
		if !ok {
			s.logger.Warn("inherited theme is not installed", "theme", child, "inherits", name)
			continue
		}
		t, err := s.LoadTheme(path, true)
		if err != nil {
			s.logger.Error("failed to load inherited theme",
				"theme", child, "inherits", name, "error", err)
			continue
		}
		out = append(out, t)
	}
	return out
}
