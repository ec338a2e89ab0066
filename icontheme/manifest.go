package icontheme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/ini.v1"
)

const (
	sectionIconTheme = "Icon Theme"
	keyName          = "Name"
	keyInherits      = "Inherits"
	keyDirectories   = "Directories"

	typeFixed    = "fixed"
	typeScalable = "scalable"
)

// SizeClass is either a concrete pixel size or the scalable sentinel for
// resolution-independent sources.
type SizeClass int

// SizeScalable marks entries from Type=Scalable directories. The engine
// never rasterizes them; they are tracked as size-independent sources.
const SizeScalable SizeClass = -1

func (c SizeClass) String() string {
	if c == SizeScalable {
		return "scalable"
	}
	return strconv.Itoa(int(c))
}

// DirectorySpec names one icon subdirectory and its size-matching rule.
type DirectorySpec struct {
	Path string
	Size SizeClass
}

// Manifest is the immutable parse result of one index.theme file.
//
// Name is the theme's identity: the base name of the manifest's parent
// directory. That is the name the locator discovered the theme under and the
// name other themes reference in their Inherits lists. DisplayName carries
// the manifest's human-readable Name key.
type Manifest struct {
	Path        string
	Name        string
	DisplayName string
	Inherits    []string
	Directories []DirectorySpec
}

// ParseManifest reads and parses the index.theme file at path.
func ParseManifest(path string, logger *log.Logger) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MalformedManifestError{Path: path, Reason: fmt.Sprintf("read: %v", err)}
	}
	return parseManifest(data, path, logger)
}

func parseManifest(src []byte, path string, logger *log.Logger) (*Manifest, error) {
	if logger == nil {
		logger = log.Default()
	}

	file, err := ini.Load(src)
	if err != nil {
		return nil, &MalformedManifestError{Path: path, Reason: fmt.Sprintf("parse: %v", err)}
	}

	info, ok := lookupSection(file, sectionIconTheme, path, logger)
	if !ok {
		return nil, &MalformedManifestError{Path: path, Reason: "section [Icon Theme] is missing"}
	}

	m := &Manifest{
		Path: path,
		Name: filepath.Base(filepath.Dir(path)),
	}

	if display, ok := lookupKey(info, keyName, path, logger); ok && strings.TrimSpace(display) != "" {
		m.DisplayName = strings.TrimSpace(display)
	} else {
		logger.Warn("manifest has no Name key, substituting directory name",
			"manifest", path, "name", m.Name)
		m.DisplayName = m.Name
	}

	if raw, ok := lookupKey(info, keyInherits, path, logger); ok {
		m.Inherits = splitList(raw)
	}

	dirsRaw, ok := lookupKey(info, keyDirectories, path, logger)
	if !ok || strings.TrimSpace(dirsRaw) == "" {
		return nil, &MalformedManifestError{Path: path, Reason: "Directories key is missing or empty"}
	}

	for _, dir := range splitList(dirsRaw) {
		spec, err := parseDirectory(file, dir, path, logger)
		if err != nil {
			logger.Warn("skipping unusable theme directory entry",
				"manifest", path, "directory", dir, "reason", err)
			continue
		}
		m.Directories = append(m.Directories, spec)
	}
	if len(m.Directories) == 0 {
		return nil, &MalformedManifestError{Path: path, Reason: "no usable directory entries"}
	}

	return m, nil
}

func parseDirectory(file *ini.File, dir, path string, logger *log.Logger) (DirectorySpec, error) {
	sec, err := file.GetSection(dir)
	if err != nil {
		return DirectorySpec{}, fmt.Errorf("declared in Directories but has no [%s] section", dir)
	}

	typ, ok := lookupKey(sec, "Type", path, logger)
	if !ok {
		return DirectorySpec{}, fmt.Errorf("missing Type key")
	}

	switch strings.ToLower(strings.TrimSpace(typ)) {
	case typeFixed:
		raw, ok := lookupKey(sec, "Size", path, logger)
		if !ok {
			return DirectorySpec{}, fmt.Errorf("Type=fixed without a Size key")
		}
		size, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || size <= 0 {
			return DirectorySpec{}, fmt.Errorf("invalid Size %q", raw)
		}
		return DirectorySpec{Path: dir, Size: SizeClass(size)}, nil
	case typeScalable:
		return DirectorySpec{Path: dir, Size: SizeScalable}, nil
	default:
		return DirectorySpec{}, fmt.Errorf("unsupported Type %q", typ)
	}
}

// lookupSection tries the canonical section name first and falls back to the
// all-lowercase variant, reporting the recovery as a warning rather than an
// error.
func lookupSection(file *ini.File, name, path string, logger *log.Logger) (*ini.Section, bool) {
	if sec, err := file.GetSection(name); err == nil {
		return sec, true
	}
	lower := strings.ToLower(name)
	if sec, err := file.GetSection(lower); err == nil {
		logger.Warn("malformed manifest: lower-cased section accepted",
			"manifest", path, "section", lower, "expected", name)
		return sec, true
	}
	return nil, false
}

// lookupKey mirrors lookupSection for keys within a section.
func lookupKey(sec *ini.Section, name, path string, logger *log.Logger) (string, bool) {
	if sec.HasKey(name) {
		return sec.Key(name).String(), true
	}
	lower := strings.ToLower(name)
	if sec.HasKey(lower) {
		logger.Warn("malformed manifest: lower-cased key accepted",
			"manifest", path, "section", sec.Name(), "key", lower, "expected", name)
		return sec.Key(lower).String(), true
	}
	return "", false
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		v := strings.TrimSpace(part)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
