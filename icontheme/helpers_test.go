package icontheme

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// writePNG writes a dim x dim PNG file, creating parent directories.
func writePNG(t *testing.T, path string, dim int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, dim, dim))
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// installTheme lays out <root>/<name>/index.theme plus the given icon files
// (directory-relative path → pixel dimension) and returns the manifest path.
func installTheme(t *testing.T, root, name, manifest string, icons map[string]int) string {
	t.Helper()
	themeDir := filepath.Join(root, name)
	if err := os.MkdirAll(themeDir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", themeDir, err)
	}
	manifestPath := filepath.Join(themeDir, "index.theme")
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write %s: %v", manifestPath, err)
	}
	for rel, dim := range icons {
		writePNG(t, filepath.Join(themeDir, rel), dim)
	}
	return manifestPath
}

func mustSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink %s -> %s: %v", link, target, err)
	}
}

// fakeLocator resolves theme names from a fixed name → manifest path map.
type fakeLocator map[string]string

func (l fakeLocator) FindManifest(themeName string) (string, bool) {
	path, ok := l[themeName]
	return path, ok
}

// countingRaster decodes PNGs for real and fakes scaling with a blank bitmap
// of the requested size, counting both operations.
type countingRaster struct {
	mu      sync.Mutex
	decodes int
	scales  int
}

func (r *countingRaster) Decode(data []byte) (image.Image, error) {
	r.mu.Lock()
	r.decodes++
	r.mu.Unlock()
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func (r *countingRaster) Scale(img image.Image, size int) image.Image {
	r.mu.Lock()
	r.scales++
	r.mu.Unlock()
	return image.NewRGBA(image.Rect(0, 0, size, size))
}

func (r *countingRaster) counts() (decodes, scales int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decodes, r.scales
}

const fixed16Manifest = `[Icon Theme]
Name=Fixture
Directories=16x16

[16x16]
Type=Fixed
Size=16
`
