// Package fyneicon adapts resolved theme icons into fyne.Resource handles,
// letting Fyne applications pick up the system icon theme.
package fyneicon

import (
	"bytes"
	"fmt"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/charmbracelet/log"

	"icon-manager/icontheme"
)

// Provider wraps a Manager and hands out toolkit resource handles. Results,
// including misses, are cached per (name, size) so repeated widget refreshes
// never re-encode the same icon.
type Provider struct {
	mgr      *icontheme.Manager
	fallback fyne.Resource
	logger   *log.Logger

	mu    sync.Mutex
	cache map[string]fyne.Resource
}

// New builds a provider over mgr. fallback is returned for icons that
// resolve nowhere; it may be nil. A nil logger falls back to the package
// default.
func New(mgr *icontheme.Manager, fallback fyne.Resource, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Default()
	}
	return &Provider{
		mgr:      mgr,
		fallback: fallback,
		logger:   logger,
		cache:    make(map[string]fyne.Resource),
	}
}

// Resource resolves an icon name at the requested pixel size. Misses and
// encode failures yield the fallback resource.
func (p *Provider) Resource(name string, size int) fyne.Resource {
	key := fmt.Sprintf("%s@%d", name, size)

	p.mu.Lock()
	defer p.mu.Unlock()

	if res, ok := p.cache[key]; ok {
		if res == nil {
			return p.fallback
		}
		return res
	}

	img, ok := p.mgr.GetIcon(name, size)
	if !ok {
		p.cache[key] = nil
		return p.fallback
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		p.logger.Error("cannot encode resolved icon", "icon", name, "size", size, "error", err)
		p.cache[key] = nil
		return p.fallback
	}

	res := fyne.NewStaticResource(key+".png", buf.Bytes())
	p.cache[key] = res
	return res
}
