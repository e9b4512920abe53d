package extractor

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var fileRegex = regexp.MustCompile(`file\s*:\s*["']([^"']+)["']`)

// Embed reads generic player pages: HTML5 video sources first, then a JWPlayer-style file entry.
type Embed struct {
	client *resty.Client
}

func NewEmbed(client *resty.Client) *Embed {
	return &Embed{client: client}
}

func (*Embed) Name() string {
	return "Embed"
}

func (*Embed) Match(url string) bool {
	return strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")
}

func (e *Embed) Extract(ctx context.Context, target Target) ([]*source.StreamLink, error) {
	res, err := network.Get(ctx, e.client, target.URL, network.WithReferer(target.Referer))
	if err != nil {
		return nil, err
	}

	doc, err := network.Parse(res)
	if err != nil {
		return nil, err
	}

	base := network.FinalURL(res)

	subtitles := scrape.Cards(doc.Find("track[src]"), func(s *goquery.Selection) mo.Option[source.Subtitle] {
		src := scrape.Resolve(base, s.AttrOr("src", ""))
		if src == "" {
			return mo.None[source.Subtitle]()
		}
		return mo.Some(source.Subtitle{
			Label: s.AttrOr("label", s.AttrOr("srclang", "")),
			URL:   src,
		})
	})

	newLink := func(url, quality string) *source.StreamLink {
		return &source.StreamLink{
			Source:    target.Source,
			Name:      target.Label,
			URL:       url,
			Quality:   source.ParseQuality(lo.CoalesceOrEmpty(quality, target.Label)),
			Referer:   target.URL,
			Kind:      source.KindOf(url),
			Subtitles: subtitles,
		}
	}

	links := scrape.Cards(doc.Find("video source[src], source[src], video[src]"), func(s *goquery.Selection) mo.Option[*source.StreamLink] {
		src := scrape.Resolve(base, s.AttrOr("src", ""))
		if src == "" {
			return mo.None[*source.StreamLink]()
		}
		return mo.Some(newLink(src, s.AttrOr("size", s.AttrOr("label", ""))))
	})

	links = lo.UniqBy(links, func(l *source.StreamLink) string {
		return l.URL
	})

	if len(links) > 0 {
		return links, nil
	}

	if match := fileRegex.FindStringSubmatch(string(res.Body())); match != nil {
		return []*source.StreamLink{newLink(scrape.Resolve(base, match[1]), "")}, nil
	}

	return nil, ErrNoVideo
}
