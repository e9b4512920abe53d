// Package animesail scrapes AnimeSail, a WordPress site whose mirrors are base64 iframes.
package animesail

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/constant"
	"github.com/anisan-cli/mirai/extractor"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/go-resty/resty/v2"
)

const (
	attempts       = 3
	requestTimeout = 15 * time.Second
	localeCookie   = "_as_ipin_ct"
)

var categories = []source.Category{
	{ID: "page/", Name: "Episode Terbaru"},
	{ID: "movie-terbaru/page/", Name: "Movie Terbaru"},
	{ID: "genres/donghua/page/", Name: "Donghua"},
}

// Source is the AnimeSail adapter.
type Source struct {
	base       string
	http       *resty.Client
	extractors *extractor.Registry
}

// Options returns the client options the site needs on top of opts.
// Pages are retried up to three attempts in total and time out after 15 seconds.
func Options(base string, opts network.Options) network.Options {
	opts.Timeout = requestTimeout
	if opts.Retries < attempts-1 {
		opts.Retries = attempts - 1
	}
	if net.ParseIP(scrape.Host(base)) != nil {
		opts.InsecureTLS = true
	}
	return opts
}

// New returns an adapter for the site at base with a client built from the config.
func New(base string) *Source {
	return NewWithClient(base, network.New(Options(base, network.DefaultOptions())))
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

func (s *Source) document(ctx context.Context, url, referer string) (*goquery.Document, error) {
	return network.Document(
		ctx,
		s.http,
		url,
		network.WithHeader("Accept", constant.AcceptHTML),
		network.WithCookies(map[string]string{localeCookie: "ID"}),
		network.WithReferer(referer),
	)
}

func (s *Source) Browse(ctx context.Context, category source.Category, page int) (*source.Page, error) {
	result := &source.Page{Category: category.Name}
	if page < 1 {
		page = 1
	}

	doc, err := s.document(ctx, fmt.Sprintf("%s/%s%d", s.base, category.ID, page), "")
	if err != nil {
		log.Source(ID).With("page", page).Warnf("browse %s: %v", category.Name, err)
		return result, nil
	}

	result.Results = parseCards(doc.Find("article"), s.base)
	result.HasNext = len(result.Results) > 0
	return result, nil
}

func (s *Source) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*source.SearchResult{}, nil
	}

	doc, err := s.document(ctx, s.base+"/?s="+url.QueryEscape(query), "")
	if err != nil {
		log.Source(ID).Warnf("search %q: %v", query, err)
		return []*source.SearchResult{}, nil
	}

	return parseCards(doc.Find("div.listupd article"), s.base), nil
}

func (s *Source) Load(ctx context.Context, url string) (*source.MediaEntry, error) {
	doc, err := s.document(ctx, url, "")
	if err != nil {
		return nil, err
	}

	entry, err := parseEntry(doc, s.base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	entry.URL = url

	sort.SliceStable(entry.Episodes, func(i, j int) bool {
		return entry.Episodes[i].Number.OrElse(-1) < entry.Episodes[j].Number.OrElse(-1)
	})

	return entry, nil
}

func (s *Source) Streams(ctx context.Context, data string) (*source.StreamReport, error) {
	doc, err := s.document(ctx, data, "")
	if err != nil {
		return nil, err
	}

	rules := s.rules(data)

	return scrape.FanOut(ctx, ID, parseMirrors(doc), scrape.Concurrency(), func(ctx context.Context, mirror scrape.Mirror) ([]*source.StreamLink, error) {
		iframe, err := scrape.DecodeMirror(mirror.URL)
		if err != nil {
			return nil, err
		}

		return rules.Resolve(ctx, scrape.Mirror{
			Label: mirror.Label,
			URL:   scrape.Resolve(s.base, iframe),
		})
	}), nil
}
