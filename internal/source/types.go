package source

import (
	"strings"

	"github.com/five82/galleria/internal/photo"
)

// unsplashPhoto mirrors the subset of an Unsplash photo object galleria reads.
type unsplashPhoto struct {
	ID             string        `json:"id"`
	Description    string        `json:"description"`
	AltDescription string        `json:"alt_description"`
	Color          string        `json:"color"`
	URLs           *unsplashURLs `json:"urls"`
	User           *unsplashUser `json:"user"`
	Links          *struct {
		HTML string `json:"html"`
	} `json:"links"`
}

type unsplashURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type unsplashUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// searchResponse mirrors /search/photos.
type searchResponse struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []unsplashPhoto `json:"results"`
}

// Photo normalizes the record, applying the display fallbacks.
func (u unsplashPhoto) Photo() photo.Photo {
	userName := ""
	if u.User != nil {
		userName = strings.TrimSpace(u.User.Name)
	}

	title := firstNonEmpty(u.Description, u.AltDescription, userName)
	if title == "" {
		title = "Untitled"
	}

	src := ""
	if u.URLs != nil {
		src = firstNonEmpty(u.URLs.Regular, u.URLs.Small)
	}

	author := userName
	if author == "" {
		author = "Unknown"
	}

	palette := []string{photo.DefaultColor}
	if c := strings.TrimSpace(u.Color); c != "" {
		palette = []string{c}
	}

	p := photo.Photo{
		ID:      u.ID,
		Title:   title,
		Src:     src,
		Author:  author,
		Palette: palette,
	}
	if u.Links != nil {
		p.Link = u.Links.HTML
	}
	return p
}

func normalize(records []unsplashPhoto) []photo.Photo {
	out := make([]photo.Photo, 0, len(records))
	for _, r := range records {
		p := r.Photo()
		if !p.Valid() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
