// Package photo defines the Photo record shared by every gallery component.
package photo

import "strings"

// DefaultColor is used when a source record carries no color of its own.
const DefaultColor = "#e9e3d5"

// Photo is one displayable image. ID is the correlation key for cards and the
// membership key for favorites.
type Photo struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Src     string   `json:"src"`
	Author  string   `json:"author"`
	Palette []string `json:"palette"`
	Link    string   `json:"link,omitempty"`
}

// Valid reports whether p can be rendered and favorited.
func (p Photo) Valid() bool {
	return strings.TrimSpace(p.ID) != ""
}

// Color returns the first palette entry, or DefaultColor when the palette is empty.
func (p Photo) Color() string {
	for _, c := range p.Palette {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return DefaultColor
}

// Normalize fills the display fallbacks on a record that may have come from
// storage written by an older build.
func Normalize(p Photo) Photo {
	if strings.TrimSpace(p.Title) == "" {
		if author := strings.TrimSpace(p.Author); author != "" {
			p.Title = author
		} else {
			p.Title = "Untitled"
		}
	}
	if strings.TrimSpace(p.Author) == "" {
		p.Author = "Unknown"
	}
	if len(p.Palette) == 0 {
		p.Palette = []string{DefaultColor}
	}
	return p
}

// IDs returns the ids of photos in order.
func IDs(photos []Photo) []string {
	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	return ids
}
