package source

import (
	"context"
	"fmt"

	"github.com/five82/galleria/internal/photo"
)

// DefaultMockSize is the number of generated photos when none is configured.
const DefaultMockSize = 30

var mockPalette = []string{"#e9e3d5", "#c7d2c0", "#d8c3a5", "#a3b8c8", "#e0b1a4", "#b9a8d0"}

// Mock serves a fixed generated set of photos, img-1 through img-N.
type Mock struct {
	photos   []photo.Photo
	pageSize int
}

// NewMock generates size photos sliced into pages of pageSize.
func NewMock(size, pageSize int) *Mock {
	size = mockSizeOrDefault(size)
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	photos := make([]photo.Photo, size)
	for i := range photos {
		n := i + 1
		id := fmt.Sprintf("img-%d", n)
		photos[i] = photo.Photo{
			ID:      id,
			Title:   fmt.Sprintf("Mock photo %d", n),
			Src:     fmt.Sprintf("https://picsum.photos/seed/%s/600/400", id),
			Author:  "Galleria",
			Palette: []string{mockPalette[i%len(mockPalette)]},
		}
	}
	return &Mock{photos: photos, pageSize: pageSize}
}

// Fetch returns the page-th slice. The query is ignored; out-of-range pages
// are empty.
func (m *Mock) Fetch(ctx context.Context, page int, _ string) ([]photo.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Err: err}
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * m.pageSize
	if start >= len(m.photos) {
		return []photo.Photo{}, nil
	}
	end := min(start+m.pageSize, len(m.photos))
	out := make([]photo.Photo, end-start)
	copy(out, m.photos[start:end])
	return out, nil
}

func mockSizeOrDefault(size int) int {
	if size <= 0 {
		return DefaultMockSize
	}
	return size
}
