// Package desktop reads the user's configured icon theme name from the
// desktop settings portal over D-Bus. Failure here is expected on headless
// or non-freedesktop hosts; callers fall back to a hardcoded theme name.
package desktop

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	settingsRead    = "org.freedesktop.portal.Settings.Read"
	interfaceSchema = "org.gnome.desktop.interface"
	iconThemeKey    = "icon-theme"
)

// IconThemeName queries the settings portal for the configured icon theme.
func IconThemeName() (string, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return "", fmt.Errorf("connect session bus: %w", err)
	}

	var value dbus.Variant
	obj := conn.Object(portalDest, portalPath)
	if err := obj.Call(settingsRead, 0, interfaceSchema, iconThemeKey).Store(&value); err != nil {
		return "", fmt.Errorf("read %s %s: %w", interfaceSchema, iconThemeKey, err)
	}
	return themeNameFromVariant(value)
}

// themeNameFromVariant unwraps the portal's reply. Settings.Read answers
// with the value boxed in nested variants, so unwrap until a string shows
// up.
func themeNameFromVariant(value dbus.Variant) (string, error) {
	v := value
	for depth := 0; depth < 4; depth++ {
		switch inner := v.Value().(type) {
		case string:
			if inner == "" {
				return "", errors.New("settings portal returned an empty icon theme name")
			}
			return inner, nil
		case dbus.Variant:
			v = inner
		default:
			return "", fmt.Errorf("unexpected settings value type %T", inner)
		}
	}
	return "", errors.New("settings value nested too deeply")
}
