// Package icontheme resolves freedesktop icon names to raster images.
//
// A Session owns the process-wide registry of constructed themes and the
// render cache. The Manager facade wires a system theme and an optional
// bundled application theme on top of one Session:
//
//	session := icontheme.NewSession(locator, rasterizer, logger)
//	mgr, err := icontheme.NewManager(session, "assets/index.theme", icontheme.DefaultThemeName, nil)
//	if err != nil {
//		return err
//	}
//	img, ok := mgr.GetIcon("document-save", 24)
//
// A miss ("no such icon in any available theme") is not an error; GetIcon
// reports it through its boolean result.
package icontheme
