// Package render decides what the gallery draws: card descriptions derived
// from a photo and its favorite status, and the ordered surfaces holding them.
// Nothing here touches the terminal; internal/ui mounts surfaces.
package render

import "github.com/five82/galleria/internal/photo"

// Favorite toggle glyphs.
const (
	GlyphFavorited   = "♥"
	GlyphUnfavorited = "♡"
)

// Placeholder messages shown in place of an empty or failed surface.
const (
	MsgNoImages     = "No images to show."
	MsgNoResults    = "No results found."
	MsgLoadFailed   = "Could not load images."
	MsgSearchFailed = "Search failed."
	MsgNoFavorites  = "No favorites yet."
)

// Card is one visual unit bound to a photo id.
type Card struct {
	Photo     photo.Photo
	Favorited bool
}

// NewCard describes p with the given favorite membership.
func NewCard(p photo.Photo, favorited bool) Card {
	return Card{Photo: photo.Normalize(p), Favorited: favorited}
}

// ID returns the correlation key.
func (c Card) ID() string {
	return c.Photo.ID
}

// Glyph returns the toggle control's current glyph.
func (c Card) Glyph() string {
	return Glyph(c.Favorited)
}

// Glyph maps a favorite membership onto its glyph.
func Glyph(favorited bool) string {
	if favorited {
		return GlyphFavorited
	}
	return GlyphUnfavorited
}
