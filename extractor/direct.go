package extractor

import (
	"context"
	"net/url"
	"strings"

	"github.com/anisan-cli/mirai/source"
)

// Direct passes links to media files straight through.
type Direct struct{}

func (Direct) Name() string {
	return "Direct"
}

func (Direct) Match(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	path := strings.ToLower(u.Path)
	return strings.HasSuffix(path, ".mp4") || strings.HasSuffix(path, ".m3u8")
}

func (Direct) Extract(_ context.Context, target Target) ([]*source.StreamLink, error) {
	return []*source.StreamLink{{
		Source:  target.Source,
		Name:    target.Label,
		URL:     target.URL,
		Quality: source.ParseQuality(target.Label),
		Referer: target.Referer,
		Kind:    source.KindOf(target.URL),
	}}, nil
}
