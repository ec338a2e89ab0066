package icontheme

import "fmt"

// MalformedManifestError reports a theme manifest that is structurally
// unusable: the [Icon Theme] section is missing in both casings, the
// Directories key is absent or empty, or no directory entry survived
// validation.
type MalformedManifestError struct {
	Path   string
	Reason string
}

func (e *MalformedManifestError) Error() string {
	return fmt.Sprintf("malformed theme manifest %s: %s", e.Path, e.Reason)
}

// ThemeNotFoundError reports that a named system theme is not present in the
// locally discovered theme set.
type ThemeNotFoundError struct {
	Name string
}

func (e *ThemeNotFoundError) Error() string {
	return fmt.Sprintf("icon theme %q is not installed", e.Name)
}

// themeCycleError marks a theme that is already under construction in the
// same session. It never escapes the engine: inheritance resolution logs it
// and skips the offending ancestor.
type themeCycleError struct {
	Name string
}

func (e *themeCycleError) Error() string {
	return fmt.Sprintf("icon theme %q inherits itself transitively", e.Name)
}
