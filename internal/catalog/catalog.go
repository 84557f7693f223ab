package catalog

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"freader/internal/platform/googlebooks"
)

var (
	ErrEmptyQuery = errors.New("search query is empty")
	ErrNotFound   = errors.New("volume not found")
)

// PlaceholderImage is shown for volumes without cover art.
const PlaceholderImage = "https://images.unsplash.com/photo-1541963463532-d68292c34b19"

const (
	DefaultMaxResults = 20
	MaxResultsLimit   = 40
)

// Row is the compact search-result shape.
type Row struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"published_date,omitempty"`
	Categories    []string `json:"categories"`
	Thumbnail     string   `json:"thumbnail"`
}

// Details is a full volume plus a plain-text rendering of its description.
type Details struct {
	googlebooks.Volume
	DescriptionText string `json:"description_text"`
}

func ToRow(v googlebooks.Volume) Row {
	info := v.Info()
	thumb := info.SmallThumbnail()
	if thumb == "" {
		thumb = PlaceholderImage
	}
	return Row{
		ID:            v.ID,
		Title:         orDefault(info.Title, "Unknown Title"),
		Authors:       nonNil(info.Authors),
		PublishedDate: info.PublishedDate,
		Categories:    nonNil(info.Categories),
		Thumbnail:     thumb,
	}
}

func ToDetails(v googlebooks.Volume) Details {
	return Details{
		Volume:          v,
		DescriptionText: StripHTML(v.Info().Description),
	}
}

var (
	breakTags = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/li)\s*/?>`)
	anyTag    = regexp.MustCompile(`<[^>]*>`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// StripHTML turns the HTML-ish descriptions Google Books returns into text.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = breakTags.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
