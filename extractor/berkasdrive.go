package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/go-resty/resty/v2"
)

// BerkasdriveReferer is the referer the streaming endpoint insists on.
const BerkasdriveReferer = "https://dl.berkasdrive.com/"

// Berkasdrive follows the berkasdrive streaming redirect to the final mp4.
type Berkasdrive struct {
	client *resty.Client
}

func NewBerkasdrive(client *resty.Client) *Berkasdrive {
	return &Berkasdrive{client: client}
}

func (*Berkasdrive) Name() string {
	return "Berkasdrive"
}

func (*Berkasdrive) Match(url string) bool {
	return strings.Contains(scrape.Host(url), "berkasdrive")
}

func (b *Berkasdrive) Extract(ctx context.Context, target Target) ([]*source.StreamLink, error) {
	// the final URL is the video itself, so the body is never read
	res, err := b.client.R().
		SetContext(ctx).
		SetHeader("Referer", BerkasdriveReferer).
		SetDoNotParseResponse(true).
		Get(target.URL)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target.URL, err)
	}
	if body := res.RawBody(); body != nil {
		_ = body.Close()
	}

	if err := network.Check(res); err != nil {
		return nil, err
	}

	final := network.FinalURL(res)
	if !strings.Contains(final, ".mp4") {
		return nil, fmt.Errorf("%w: %s ended at %s", ErrNoVideo, target.URL, final)
	}

	return []*source.StreamLink{{
		Source:  target.Source,
		Name:    target.Label,
		URL:     final,
		Quality: BucketQuality(target.Label),
		Referer: BerkasdriveReferer,
		Kind:    source.Video,
	}}, nil
}

// BucketQuality maps a format label onto 1080p, 720p or 480p, defaulting to 360p.
func BucketQuality(label string) source.Quality {
	switch {
	case strings.Contains(label, "1080"):
		return source.P1080
	case strings.Contains(label, "720"):
		return source.P720
	case strings.Contains(label, "480"):
		return source.P480
	default:
		return source.P360
	}
}
