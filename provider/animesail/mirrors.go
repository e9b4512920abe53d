package animesail

import (
	"context"
	"fmt"
	"strings"

	"github.com/anisan-cli/mirai/extractor"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
)

const (
	redirectPrefix = "https://aghanim.xyz/tools/redirect/"
	redirectTarget = "https://rasa-cintaku-semakin-berantai.xyz/v/"
)

// rules routes decoded mirror iframes. page is the episode page, sent as referer to the site's own players.
func (s *Source) rules(page string) *scrape.Rules {
	direct := func(ctx context.Context, m scrape.Mirror) ([]*source.StreamLink, error) {
		return s.direct(ctx, page, m)
	}
	nested := func(ctx context.Context, m scrape.Mirror) ([]*source.StreamLink, error) {
		return s.nested(ctx, page, m)
	}

	return scrape.NewRules(
		s.extract,
		scrape.Rule{Prefix: s.base + "/utils/player/arch/", Resolve: direct},
		scrape.Rule{Prefix: s.base + "/utils/player/race/", Resolve: direct},
		scrape.Rule{Prefix: redirectPrefix, Resolve: s.redirect},
		scrape.Rule{Prefix: s.base + "/utils/player/framezilla/", Resolve: nested},
		scrape.Rule{Prefix: "https://uservideo.xyz", Resolve: nested},
	)
}

// direct reads the video source of the site's own arch and race players.
func (s *Source) direct(ctx context.Context, page string, m scrape.Mirror) ([]*source.StreamLink, error) {
	doc, err := s.document(ctx, m.URL, page)
	if err != nil {
		return nil, err
	}

	src, ok := scrape.Attr("source", "src")(doc.Selection).Get()
	if !ok {
		return nil, fmt.Errorf("%w: %s", extractor.ErrNoVideo, m.URL)
	}

	name := "Race"
	if strings.Contains(m.URL, "/arch/") {
		name = "Arch"
	}

	return []*source.StreamLink{{
		Source:  ID,
		Name:    name,
		URL:     scrape.Resolve(m.URL, src),
		Quality: source.ParseQuality(m.Label),
		Referer: s.base,
		Kind:    source.Video,
	}}, nil
}

// redirect rewrites the aghanim redirector to the video host it points at.
func (s *Source) redirect(ctx context.Context, m scrape.Mirror) ([]*source.StreamLink, error) {
	id := after(m.URL, "id=")
	id, _, _ = strings.Cut(id, "&token")

	return s.extract(ctx, scrape.Mirror{Label: m.Label, URL: redirectTarget + id})
}

// nested follows an intermediate player page to its inner iframe.
func (s *Source) nested(ctx context.Context, page string, m scrape.Mirror) ([]*source.StreamLink, error) {
	doc, err := s.document(ctx, m.URL, page)
	if err != nil {
		return nil, err
	}

	src, ok := scrape.Attr("iframe", "src")(doc.Selection).Get()
	if !ok {
		return nil, fmt.Errorf("%w: %s", scrape.ErrNoIframe, m.URL)
	}

	return s.extract(ctx, scrape.Mirror{Label: m.Label, URL: scrape.Resolve(s.base, src)})
}

// extract hands a mirror to the extractor registry and brands the result.
// HEVC streams lose their quality and are played as manifests.
func (s *Source) extract(ctx context.Context, m scrape.Mirror) ([]*source.StreamLink, error) {
	links, err := s.extractors.Extract(ctx, extractor.Target{
		URL:     m.URL,
		Referer: s.base,
		Label:   m.Label,
		Source:  ID,
	})
	if err != nil {
		return nil, err
	}

	quality := source.ParseQuality(m.Label)
	return lo.Map(links, func(link *source.StreamLink, _ int) *source.StreamLink {
		branded := *link
		branded.Source = ID
		branded.Name = Name
		if quality != source.QualityUnknown {
			branded.Quality = quality
		}

		if isHEVC(link.URL) {
			branded.Name = Name + " (HEVC)"
			branded.Quality = source.QualityUnknown
			branded.Kind = source.M3U8
		}
		return &branded
	}), nil
}

func isHEVC(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "h265") || strings.Contains(lower, "hevc")
}

// after returns the part of s after sep, or s itself when sep is missing.
func after(s, sep string) string {
	if _, rest, found := strings.Cut(s, sep); found {
		return rest
	}
	return s
}
