// Package samehadaku scrapes Samehadaku. Every page fetch degrades to "no page"
// on failure, so listings come back empty instead of failing.
package samehadaku

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/extractor"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
)

var categories = []source.Category{
	{ID: "anime-terbaru/page/%d", Name: "Episode Terbaru"},
}

// Source is the Samehadaku adapter.
type Source struct {
	base       string
	http       *resty.Client
	extractors *extractor.Registry
}

// New returns an adapter for the site at base with a client built from the config.
func New(base string) *Source {
	return NewWithClient(base, network.New(network.DefaultOptions()))
}

// NewWithClient returns an adapter that uses client for every request.
func NewWithClient(base string, client *resty.Client) *Source {
	return &Source{
		base:       strings.TrimSuffix(base, "/"),
		http:       client,
		extractors: extractor.Default(client),
	}
}

func (*Source) ID() string                    { return ID }
func (*Source) Name() string                  { return Name }
func (*Source) Lang() string                  { return Lang }
func (*Source) Categories() []source.Category { return categories }

// fetch returns the parsed page, or false after logging whatever went wrong.
func (s *Source) fetch(ctx context.Context, url string) (*goquery.Document, bool) {
	doc, err := network.Document(ctx, s.http, url, network.WithHeader("Accept", "text/html"))
	if err != nil {
		log.Source(ID).Warnf("fetch %s: %v", url, err)
		return nil, false
	}
	return doc, true
}

func (s *Source) Browse(ctx context.Context, category source.Category, page int) (*source.Page, error) {
	result := &source.Page{Category: category.Name}
	if page < 1 {
		page = 1
	}

	doc, ok := s.fetch(ctx, s.base+"/"+fmt.Sprintf(category.ID, page))
	if !ok {
		return result, nil
	}

	result.Results = parseLatest(doc.Find(`li[itemtype="http://schema.org/CreativeWork"]`), s.base)
	result.HasNext = true
	return result, nil
}

func (s *Source) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*source.SearchResult{}, nil
	}

	doc, ok := s.fetch(ctx, s.base+"/?s="+url.QueryEscape(query))
	if !ok {
		return []*source.SearchResult{}, nil
	}

	return parseSearch(doc.Find(`main#main article[itemtype="http://schema.org/CreativeWork"]`), s.base), nil
}

// Load accepts a series page or an episode page, which is mapped to its series first.
func (s *Source) Load(ctx context.Context, url string) (*source.MediaEntry, error) {
	series := scrape.Resolve(s.base, url)

	if !strings.Contains(series, "/anime/") {
		episode, ok := s.fetch(ctx, series)
		if !ok {
			return nil, fmt.Errorf("%s: %w", url, source.ErrNotFound)
		}

		href, ok := scrape.Attr("div.nvs.nvsc a", "href")(episode.Selection).Get()
		if !ok {
			return nil, fmt.Errorf("%s: series link: %w", url, source.ErrNotFound)
		}
		series = scrape.Resolve(s.base, href)
	}

	doc, ok := s.fetch(ctx, series)
	if !ok {
		return nil, fmt.Errorf("%s: %w", series, source.ErrNotFound)
	}

	entry, err := parseEntry(doc, s.base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", series, err)
	}
	entry.URL = series

	return entry, nil
}

func (s *Source) Streams(ctx context.Context, data string) (*source.StreamReport, error) {
	doc, ok := s.fetch(ctx, data)
	if !ok {
		return &source.StreamReport{}, nil
	}

	referer := s.base + "/"
	return scrape.FanOut(ctx, ID, parseDownloads(doc, s.base), scrape.Concurrency(), func(ctx context.Context, m scrape.Mirror) ([]*source.StreamLink, error) {
		links, err := s.extractors.Extract(ctx, extractor.Target{
			URL:     m.URL,
			Referer: referer,
			Label:   m.Label,
			Source:  ID,
		})
		if err != nil {
			return nil, err
		}

		quality := source.ParseQuality(m.Label)
		return lo.Map(links, func(link *source.StreamLink, _ int) *source.StreamLink {
			fixed := *link
			fixed.Source = ID
			fixed.Quality = quality
			return &fixed
		}), nil
	}), nil
}
