package source

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// StreamKind tells a player how to open a link.
type StreamKind int

const (
	// Video is a progressive file such as an mp4.
	Video StreamKind = iota
	// M3U8 is a segmented HLS manifest.
	M3U8
)

func (k StreamKind) String() string {
	if k == M3U8 {
		return "m3u8"
	}
	return "video"
}

func (k StreamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf guesses the kind from a URL.
func KindOf(url string) StreamKind {
	if strings.Contains(strings.ToLower(url), ".m3u8") {
		return M3U8
	}
	return Video
}

// Subtitle is an external subtitle track.
type Subtitle struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// StreamLink is a playable URL with everything a player needs to open it.
type StreamLink struct {
	Source    string            `json:"source"`
	Name      string            `json:"name"`
	URL       string            `json:"url"`
	Quality   Quality           `json:"quality"`
	Referer   string            `json:"referer,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	Kind      StreamKind        `json:"kind"`
	Subtitles []Subtitle        `json:"subtitles,omitempty"`
}

func (l *StreamLink) String() string {
	return l.Name + " " + l.Quality.String()
}

// RequestHeaders returns the headers a player must send, with the referer folded in.
func (l *StreamLink) RequestHeaders() map[string]string {
	headers := make(map[string]string, len(l.Headers)+1)
	for k, v := range l.Headers {
		headers[k] = v
	}
	if l.Referer != "" {
		headers["Referer"] = l.Referer
	}
	return headers
}

// MirrorOutcome records how one mirror resolved.
type MirrorOutcome struct {
	Mirror string `json:"mirror"`
	Links  int    `json:"links"`
	Err    error  `json:"-"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the mirror resolved without error.
func (o MirrorOutcome) OK() bool {
	return o.Err == nil
}

// StreamReport is the result of resolving every mirror of an episode.
type StreamReport struct {
	Links    []*StreamLink   `json:"links"`
	Outcomes []MirrorOutcome `json:"outcomes"`
}

// Record appends the outcome of one mirror together with its links.
func (r *StreamReport) Record(mirror string, links []*StreamLink, err error) {
	outcome := MirrorOutcome{Mirror: mirror, Links: len(links), Err: err}
	if err != nil {
		outcome.Error = err.Error()
	}
	r.Outcomes = append(r.Outcomes, outcome)
	r.Links = append(r.Links, links...)
}

// Failed returns the outcomes of mirrors that errored.
func (r *StreamReport) Failed() []MirrorOutcome {
	return lo.Filter(r.Outcomes, func(o MirrorOutcome, _ int) bool {
		return !o.OK()
	})
}

// SortByQuality orders links from highest to lowest quality, unknown last.
func (r *StreamReport) SortByQuality() {
	sort.SliceStable(r.Links, func(i, j int) bool {
		return r.Links[i].Quality > r.Links[j].Quality
	})
}
