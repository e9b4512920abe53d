// Package nimegami scrapes Nimegami, whose episodes carry their download links inline.
package nimegami

import (
	"context"
	"encoding/json"
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
	"github.com/samber/mo"
)

var categories = []source.Category{
	{ID: "", Name: "Update Terbaru"},
}

// episodeSource is one format of an episode as embedded in the page.
type episodeSource struct {
	Format string   `json:"format"`
	URL    []string `json:"url"`
}

// Source is the Nimegami adapter.
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

// Browse reads the front page. The site has no pagination, so later pages are empty.
func (s *Source) Browse(ctx context.Context, category source.Category, page int) (*source.Page, error) {
	result := &source.Page{Category: category.Name}
	if page > 1 {
		return result, nil
	}

	doc, err := network.Document(ctx, s.http, s.base)
	if err != nil {
		log.Source(ID).Warnf("browse %s: %v", category.Name, err)
		return result, nil
	}

	result.Results = parseCards(doc.Find("div.post-article article"), s.base)
	return result, nil
}

func (s *Source) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*source.SearchResult{}, nil
	}

	doc, err := network.Document(ctx, s.http, s.base+"/?s="+url.QueryEscape(query))
	if err != nil {
		log.Source(ID).Warnf("search %q: %v", query, err)
		return []*source.SearchResult{}, nil
	}

	return parseCards(doc.Find("div.post-article article"), s.base), nil
}

func (s *Source) Load(ctx context.Context, url string) (*source.MediaEntry, error) {
	doc, err := network.Document(ctx, s.http, url)
	if err != nil {
		return nil, err
	}

	title, ok := scrape.Text("h1")(doc.Selection).Get()
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, source.ErrNotFound)
	}

	var episodes []*source.Episode
	doc.Find("li.select-eps").Each(func(i int, li *goquery.Selection) {
		data, ok := scrape.Attr("", "data")(li).Get()
		if !ok {
			return
		}
		episodes = append(episodes, &source.Episode{
			Name:   scrape.Clean(li.Text()),
			Number: mo.Some(i + 1),
			Data:   data,
		})
	})

	return &source.MediaEntry{
		SearchResult: source.SearchResult{
			Title:  title,
			URL:    url,
			Poster: scrape.Resolve(s.base, scrape.Attr("div.coverthumbnail img", "src")(doc.Selection).OrEmpty()),
			Type:   source.Anime,
			Source: ID,
		},
		Episodes: episodes,
	}, nil
}

// Streams decodes the episode's embedded source list and resolves every URL of every format.
func (s *Source) Streams(ctx context.Context, data string) (*source.StreamReport, error) {
	sources, err := decodeSources(data)
	if err != nil {
		return nil, err
	}

	var mirrors []scrape.Mirror
	for _, src := range sources {
		for _, u := range src.URL {
			if u = strings.TrimSpace(u); u != "" {
				mirrors = append(mirrors, scrape.Mirror{Label: src.Format, URL: u})
			}
		}
	}

	return scrape.FanOut(ctx, ID, mirrors, scrape.Concurrency(), func(ctx context.Context, m scrape.Mirror) ([]*source.StreamLink, error) {
		return s.extractors.Extract(ctx, extractor.Target{
			URL:     m.URL,
			Referer: extractor.BerkasdriveReferer,
			Label:   m.Label,
			Source:  ID,
		})
	}), nil
}

func decodeSources(data string) ([]episodeSource, error) {
	decoded, err := scrape.DecodeBase64(data)
	if err != nil {
		return nil, fmt.Errorf("episode data: %w", err)
	}

	var sources []episodeSource
	if err := json.Unmarshal(decoded, &sources); err != nil {
		return nil, fmt.Errorf("episode data: %w", err)
	}

	return sources, nil
}

func parseCards(cards *goquery.Selection, base string) []*source.SearchResult {
	return scrape.Cards(cards, func(card *goquery.Selection) mo.Option[*source.SearchResult] {
		title, hasTitle := scrape.Text("h2 a")(card).Get()
		href, hasLink := scrape.Attr("h2 a", "href")(card).Get()
		if !hasTitle || !hasLink {
			return mo.None[*source.SearchResult]()
		}

		return mo.Some(&source.SearchResult{
			Title:  title,
			URL:    scrape.Resolve(base, href),
			Poster: scrape.Resolve(base, scrape.Attr("img", "src")(card).OrEmpty()),
			Type:   source.Anime,
			Source: ID,
		})
	})
}
