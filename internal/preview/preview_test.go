package preview

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestEncode_Dimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	lines := Encode(img, 12, 4)
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Fatalf("line %d width = %d, want 12", i, w)
		}
	}
	if Encode(img, 0, 4) != nil {
		t.Fatalf("Encode with zero width should return nil")
	}
}

func TestHex(t *testing.T) {
	if got := hex(color.RGBA{R: 0xe9, G: 0xe3, B: 0xd5, A: 0xff}); got != "#e9e3d5" {
		t.Fatalf("hex = %q, want #e9e3d5", got)
	}
}

func TestRenderer_RequestCachesResultsAndFailures(t *testing.T) {
	body := solidPNG(t, 20, 20, color.RGBA{R: 200, A: 255})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(body)
		case "/garbage":
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	r := New(ctx, Options{Workers: 2, Width: 8, Height: 3})
	t.Cleanup(r.Stop)

	if !r.Request(ctx, "ok", server.URL+"/ok.png") {
		t.Fatalf("Request(ok) not submitted")
	}
	if !r.Request(ctx, "bad", server.URL+"/garbage") {
		t.Fatalf("Request(bad) not submitted")
	}
	if !r.Request(ctx, "gone", server.URL+"/missing") {
		t.Fatalf("Request(gone) not submitted")
	}

	got := map[string]Result{}
	for len(got) < 3 {
		select {
		case res := <-r.Results():
			got[res.ID] = res
		case <-ctx.Done():
			t.Fatalf("timed out waiting for previews, got %d", len(got))
		}
	}

	if res := got["ok"]; res.Err != nil || len(res.Lines) != 3 {
		t.Fatalf("ok result = %d lines err=%v, want 3 lines", len(res.Lines), res.Err)
	}
	if res := got["bad"]; res.Err == nil || !strings.Contains(res.Err.Error(), "decode image") {
		t.Fatalf("bad result err = %v, want decode error", res.Err)
	}
	if res := got["gone"]; res.Err == nil || !strings.Contains(res.Err.Error(), "status 404") {
		t.Fatalf("gone result err = %v, want status 404", res.Err)
	}

	if lines, ok := r.Lookup("ok"); !ok || len(lines) != 3 {
		t.Fatalf("Lookup(ok) = %d lines, %v", len(lines), ok)
	}
	if lines, ok := r.Lookup("bad"); !ok || lines != nil {
		t.Fatalf("Lookup(bad) = %v, %v; want cached failure", lines, ok)
	}
	if r.Request(ctx, "ok", server.URL+"/ok.png") {
		t.Fatalf("cached preview requested again")
	}
}

func TestRenderer_EmptySrcCachedAsUnavailable(t *testing.T) {
	ctx := context.Background()
	r := New(ctx, Options{Width: 4, Height: 2})
	t.Cleanup(r.Stop)

	if r.Request(ctx, "x", "  ") {
		t.Fatalf("Request with empty src submitted work")
	}
	if lines, ok := r.Lookup("x"); !ok || lines != nil {
		t.Fatalf("Lookup(x) = %v, %v; want cached nil", lines, ok)
	}
	if r.Request(ctx, "", "http://example.com/a.png") {
		t.Fatalf("Request with empty id submitted work")
	}
}
