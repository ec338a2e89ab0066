package icontheme

import (
	"image"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultThemeName is the sentinel that asks the engine to resolve the
// user's configured default theme. It doubles as the hardcoded fallback name
// when the desktop query is unavailable or fails; most installations carry a
// theme under that literal name.
const DefaultThemeName = "default"

// Manager is the resolution facade: it answers icon requests from the active
// system theme first and falls back to the bundled application theme.
type Manager struct {
	session      *Session
	defaultTheme DefaultThemeFunc
	logger       *log.Logger

	mu     sync.RWMutex
	system *Theme
	app    *Theme
}

// NewManager wires a manager over an existing session.
//
// appManifestPath points at the bundled application theme's index.theme; it
// may be empty when the application ships no icons of its own. The
// application theme is a closed, self-contained fallback: it never inherits
// hicolor or anything else. systemThemeName, when non-empty, is loaded
// immediately; pass DefaultThemeName to follow the user's configuration.
// defaultTheme may be nil, in which case DefaultThemeName is used literally.
func NewManager(session *Session, appManifestPath, systemThemeName string, defaultTheme DefaultThemeFunc) (*Manager, error) {
	m := &Manager{
		session:      session,
		defaultTheme: defaultTheme,
		logger:       session.logger,
	}

	if systemThemeName != "" {
		if _, err := m.LoadSystemTheme(systemThemeName); err != nil {
			return nil, err
		}
	}

	if appManifestPath != "" {
		app, err := session.LoadTheme(appManifestPath, false)
		if err != nil {
			return nil, err
		}
		m.app = app
	}

	return m, nil
}

// LoadSystemTheme makes the named installed theme the active system theme,
// reporting whether the active theme actually changed. On failure
// (ThemeNotFoundError, MalformedManifestError) the previously active theme
// stays in place and keeps answering lookups.
func (m *Manager) LoadSystemTheme(name string) (bool, error) {
	if name == DefaultThemeName {
		name = m.resolveDefaultThemeName()
	}

	if m.session.locator == nil {
		return false, &ThemeNotFoundError{Name: name}
	}
	path, ok := m.session.locator.FindManifest(name)
	if !ok {
		return false, &ThemeNotFoundError{Name: name}
	}

	theme, err := m.session.LoadTheme(path, true)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	changed := m.system != theme
	m.system = theme
	m.mu.Unlock()

	if changed {
		m.logger.Info("system icon theme loaded", "theme", theme.Name())
	}
	return changed, nil
}

// SystemTheme returns the active system theme, if one is loaded.
func (m *Manager) SystemTheme() (*Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.system, m.system != nil
}

// GetIcon resolves an icon name at the requested size: system theme chain
// first, bundled application theme second. A miss everywhere is a valid
// outcome, reported through the boolean result.
//
// The active themes are snapshotted up front, so a concurrent
// LoadSystemTheme swap never mixes old and new themes within one call.
func (m *Manager) GetIcon(name string, size int) (image.Image, bool) {
	m.mu.RLock()
	system, app := m.system, m.app
	m.mu.RUnlock()

	if system != nil {
		if img, ok := system.Lookup(name, size); ok {
			return img, true
		}
	}
	if app != nil {
		if img, ok := app.Lookup(name, size); ok {
			return img, true
		}
	}
	return nil, false
}

func (m *Manager) resolveDefaultThemeName() string {
	if m.defaultTheme == nil {
		return DefaultThemeName
	}
	name, err := m.defaultTheme()
	if err != nil || name == "" {
		m.logger.Info("could not determine configured default theme, using fallback",
			"fallback", DefaultThemeName, "error", err)
		return DefaultThemeName
	}
	return name
}
