package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
)

// ContentType is the coarse kind of a title.
type ContentType int

const (
	Anime ContentType = iota
	Movie
	OVA
)

func (t ContentType) String() string {
	switch t {
	case Movie:
		return "movie"
	case OVA:
		return "ova"
	default:
		return "anime"
	}
}

func (t ContentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ContentType) UnmarshalText(text []byte) error {
	*t = ParseContentType(string(text))
	return nil
}

// ParseContentType maps free text such as "TV", "Movie" or "Special" to a ContentType.
func ParseContentType(text string) ContentType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "ova"), strings.Contains(lower, "special"):
		return OVA
	case strings.Contains(lower, "movie"):
		return Movie
	default:
		return Anime
	}
}

// Status is the airing state of a title.
type Status int

const (
	StatusUnknown Status = iota
	Ongoing
	Completed
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ongoing":
		*s = Ongoing
	case "completed":
		*s = Completed
	default:
		*s = StatusUnknown
	}
	return nil
}

// ParseStatus recognizes "Completed" and "Ongoing", returning fallback for anything else.
func ParseStatus(text string, fallback Status) Status {
	switch strings.TrimSpace(text) {
	case "Completed":
		return Completed
	case "Ongoing":
		return Ongoing
	default:
		return fallback
	}
}

// SearchResult is a card from a listing or a search page.
type SearchResult struct {
	Title  string      `json:"title"`
	URL    string      `json:"url"`
	Poster string      `json:"poster,omitempty"`
	Type   ContentType `json:"type"`
	// LatestEpisode is the episode badge shown on "latest" listings.
	LatestEpisode mo.Option[int] `json:"latest_episode"`
	// Source is the ID of the adapter that produced the result.
	Source string `json:"source"`
}

func (r *SearchResult) String() string {
	return r.Title
}

// MediaEntry is a fully loaded detail page.
type MediaEntry struct {
	SearchResult

	Plot    string         `json:"plot,omitempty"`
	Year    mo.Option[int] `json:"year"`
	Genres  []string       `json:"genres"`
	Status  Status         `json:"status"`
	Trailer string         `json:"trailer,omitempty"`

	Episodes []*Episode `json:"episodes"`
}

// Episode is one playable entry of a MediaEntry.
type Episode struct {
	Name   string         `json:"name"`
	Number mo.Option[int] `json:"number"`
	// Data is what Streams expects: an episode page URL or an opaque player reference.
	Data    string               `json:"data"`
	AirDate mo.Option[time.Time] `json:"air_date"`
	Poster  string               `json:"poster,omitempty"`
}

// String returns the display name, falling back to the episode number.
func (e *Episode) String() string {
	if e.Name != "" {
		return e.Name
	}
	if n, ok := e.Number.Get(); ok {
		return fmt.Sprintf("Episode %d", n)
	}
	return "Episode"
}
