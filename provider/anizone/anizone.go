// Package anizone scrapes anizone.to, whose listings are Livewire components.
package anizone

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/anisan-cli/mirai/livewire"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/source"
	"github.com/go-resty/resty/v2"
)

const pageSize = 12

// statusPageExpired is Laravel's answer to a stale CSRF token.
const statusPageExpired = 419

var categories = []source.Category{
	{ID: "2", Name: "Latest TV Series"},
	{ID: "4", Name: "Latest Movies"},
	{ID: "6", Name: "Latest Web"},
}

// listing is the scroll position of one category.
type listing struct {
	sess  livewire.Session
	page  int
	shown map[string]bool
}

// Source is the AniZone adapter.
type Source struct {
	base string
	http *resty.Client
	live *livewire.Client

	mu       sync.Mutex
	root     livewire.Session
	listings map[string]*listing
}

// New returns an adapter for the site at base. The client should not carry a cookie jar.
func New(base string, client *resty.Client) *Source {
	base = strings.TrimSuffix(base, "/")
	return &Source{
		base:     base,
		http:     client,
		live:     livewire.NewClient(base, client),
		listings: make(map[string]*listing),
	}
}

func (*Source) ID() string                    { return ID }
func (*Source) Name() string                  { return Name }
func (*Source) Lang() string                  { return Lang }
func (*Source) Categories() []source.Category { return categories }

// session returns the root session, opening it on first use. Callers hold s.mu.
func (s *Source) session(ctx context.Context) (livewire.Session, error) {
	if s.root.Active() {
		return s.root, nil
	}

	sess, err := s.live.Init(ctx)
	if err != nil {
		return livewire.Session{}, fmt.Errorf("open livewire session: %w", err)
	}

	s.root = sess
	return sess, nil
}

// expire drops the root session and every listing built on it once the site
// rejects the token, so the next call opens a fresh one. Callers hold s.mu.
func (s *Source) expire(err error) {
	var status *network.StatusError
	if errors.As(err, &status) && status.StatusCode == statusPageExpired {
		log.Source(ID).Infof("livewire session expired, reopening on next use")
		s.root = livewire.Session{}
		clear(s.listings)
	}
}

func (s *Source) Browse(ctx context.Context, category source.Category, page int) (*source.Page, error) {
	result := &source.Page{Category: category.Name}
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.session(ctx)
	if err != nil {
		log.Source(ID).Warnf("browse %s: %v", category.Name, err)
		return result, nil
	}

	current, ok := s.listings[category.ID]
	if !ok || current.page != page-1 {
		// start over and replay the pages before the requested one
		current = &listing{sess: root, shown: make(map[string]bool)}
		s.listings[category.ID] = current
	}

	kind := contentType(category.ID)
	for current.page < page {
		next, doc, err := s.live.Update(ctx, current.sess, livewire.Request{
			Updates: map[string]any{"type": category.ID},
			Calls:   []livewire.Call{livewire.LoadMore},
		}, true)
		if err != nil {
			delete(s.listings, category.ID)
			s.expire(err)
			log.Source(ID).With("page", current.page+1).Warnf("browse %s: %v", category.Name, err)
			return result, nil
		}

		current.sess = next
		current.page++

		cards := cardNodes(doc)
		if current.page > 1 && cards.Length() > pageSize {
			cards = cards.Slice(cards.Length()-pageSize, cards.Length())
		}

		result.Results = result.Results[:0]
		for _, card := range parseCards(cards, s.base, kind) {
			if current.shown[card.URL] {
				continue
			}
			current.shown[card.URL] = true
			result.Results = append(result.Results, card)
		}
		result.HasNext = livewire.HasMore(doc)
	}

	return result, nil
}

func (s *Source) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*source.SearchResult{}, nil
	}

	s.mu.Lock()
	root, err := s.session(ctx)
	s.mu.Unlock()
	if err != nil {
		log.Source(ID).Warnf("search %q: %v", query, err)
		return []*source.SearchResult{}, nil
	}

	_, doc, err := s.live.Update(ctx, root, livewire.Request{
		Updates: map[string]any{"search": query},
	}, false)
	if err != nil {
		s.mu.Lock()
		s.expire(err)
		s.mu.Unlock()
		log.Source(ID).Warnf("search %q: %v", query, err)
		return []*source.SearchResult{}, nil
	}

	return parseCards(cardNodes(doc), s.base, source.Anime), nil
}

func (s *Source) Load(ctx context.Context, url string) (*source.MediaEntry, error) {
	res, err := network.Get(ctx, s.http, url)
	if err != nil {
		return nil, err
	}

	doc, err := network.Parse(res)
	if err != nil {
		return nil, err
	}

	entry, err := parseMeta(doc, s.base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	entry.URL = url

	s.mu.Lock()
	root, err := s.session(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	detail := livewire.Fork(root, doc, network.Cookies(res))
	_, episodes, pages, err := s.live.ConsumeAll(ctx, detail)
	if err != nil {
		s.mu.Lock()
		s.expire(err)
		s.mu.Unlock()
		return nil, fmt.Errorf("episodes of %s: %w", url, err)
	}

	log.Source(ID).With("pages", pages).Debugf("loaded %s", url)
	entry.Episodes = parseEpisodes(episodes, s.base)
	return entry, nil
}

func (s *Source) Streams(ctx context.Context, data string) (*source.StreamReport, error) {
	doc, err := network.Document(ctx, s.http, data)
	if err != nil {
		return nil, err
	}

	report := &source.StreamReport{}
	link, ok := parsePlayer(doc, s.base)
	if !ok {
		err := fmt.Errorf("media player: %w", source.ErrNotFound)
		log.Source(ID).Warnf("streams %s: %v", data, err)
		report.Record(Name, nil, err)
		return report, nil
	}

	report.Record(Name, []*source.StreamLink{link}, nil)
	return report, nil
}

func contentType(categoryID string) source.ContentType {
	if categoryID == "4" {
		return source.Movie
	}
	return source.Anime
}
