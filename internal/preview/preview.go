// Package preview turns photo URLs into small terminal thumbnails drawn with
// upper-half-block cells, two image rows per terminal row.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
	"k8s.io/klog/v2"
)

const (
	defaultWorkers = 4
	maxImageBytes  = 20 << 20
	fetchTimeout   = 15 * time.Second
)

// Options configure a Renderer.
type Options struct {
	Workers int
	// Width and Height are the thumbnail size in terminal cells.
	Width  int
	Height int
	Client *http.Client
}

// Result is a finished preview request. Lines is nil when the preview could
// not be produced.
type Result struct {
	ID    string
	Lines []string
	Err   error
}

// Renderer downloads and encodes previews on a bounded worker pool and caches
// them by photo id for the life of the process.
type Renderer struct {
	pool    pond.Pool
	client  *http.Client
	width   int
	height  int
	results chan Result

	mu      sync.Mutex
	cache   map[string][]string
	pending map[string]bool
}

// New starts a Renderer whose workers stop when ctx is cancelled.
func New(ctx context.Context, opts Options) *Renderer {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Renderer{
		pool:    pond.NewPool(workers, pond.WithContext(ctx)),
		client:  client,
		width:   max(opts.Width, 1),
		height:  max(opts.Height, 1),
		results: make(chan Result, 64),
		cache:   make(map[string][]string),
		pending: make(map[string]bool),
	}
}

// Results delivers finished requests.
func (r *Renderer) Results() <-chan Result {
	return r.results
}

// Lookup returns the cached preview for id. ok is true once a request for id
// has finished, successfully or not.
func (r *Renderer) Lookup(id string) (lines []string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines, ok = r.cache[id]
	return lines, ok
}

// Request queues a preview for id unless one is cached or already queued.
// It reports whether work was submitted.
func (r *Renderer) Request(ctx context.Context, id, src string) bool {
	if id == "" {
		return false
	}

	r.mu.Lock()
	if _, done := r.cache[id]; done || r.pending[id] {
		r.mu.Unlock()
		return false
	}
	if strings.TrimSpace(src) == "" {
		r.cache[id] = nil
		r.mu.Unlock()
		return false
	}
	r.pending[id] = true
	r.mu.Unlock()

	r.pool.Submit(func() {
		lines, err := r.Render(ctx, src)
		if err != nil {
			klog.V(1).Infof("preview %s unavailable: %v", id, err)
		}

		r.mu.Lock()
		r.cache[id] = lines
		delete(r.pending, id)
		r.mu.Unlock()

		select {
		case r.results <- Result{ID: id, Lines: lines, Err: err}:
		case <-ctx.Done():
		}
	})
	return true
}

// Render downloads src and encodes it at the renderer's size.
func (r *Renderer) Render(ctx context.Context, src string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", src, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", src, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return Encode(img, r.width, r.height), nil
}

// Stop waits for queued work to finish.
func (r *Renderer) Stop() {
	_ = r.pool.Stop().Wait()
}

// Encode scales img to width x (2*height) pixels and returns height lines of
// half-block cells: foreground is the upper pixel, background the lower.
func Encode(img image.Image, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	scaled := resize.Resize(uint(width), uint(height*2), img, resize.Bilinear)
	bounds := scaled.Bounds()

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		y := bounds.Min.Y + row*2
		for x := bounds.Min.X; x < bounds.Min.X+width; x++ {
			top := hex(scaled.At(x, y))
			bottom := hex(scaled.At(x, y+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
