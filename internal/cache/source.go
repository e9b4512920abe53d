package cache

import (
	"context"
	"strings"
	"time"

	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/source"
	"github.com/spf13/viper"
)

// Source reuses Search and Load answers of the wrapped source. Streams always reach the site.
type Source struct {
	source.Source

	searches *Cache[[]*source.SearchResult]
	entries  *Cache[*source.MediaEntry]
}

// Wrap caches src for lifetime.
func Wrap(src source.Source, lifetime time.Duration) *Source {
	return &Source{
		Source:   src,
		searches: New[[]*source.SearchResult](src.ID()+"_search", lifetime),
		entries:  New[*source.MediaEntry](src.ID()+"_entries", lifetime),
	}
}

// FromConfig wraps src when caching is enabled and returns it unchanged otherwise.
func FromConfig(src source.Source) source.Source {
	if !viper.GetBool(key.CacheEnabled) {
		return src
	}
	return Wrap(src, time.Duration(viper.GetInt(key.CacheTTL))*time.Minute)
}

func (s *Source) Search(ctx context.Context, query string) ([]*source.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return s.Source.Search(ctx, query)
	}

	k := Key(query)
	if cached, ok := s.searches.Get(k).Get(); ok {
		return cached, nil
	}

	results, err := s.Source.Search(ctx, query)
	if err != nil || len(results) == 0 {
		return results, err
	}

	if err := s.searches.Set(k, results); err != nil {
		log.Warnf("cache search %q: %v", query, err)
	}
	return results, nil
}

func (s *Source) Load(ctx context.Context, url string) (*source.MediaEntry, error) {
	if cached, ok := s.entries.Get(url).Get(); ok {
		return cached, nil
	}

	entry, err := s.Source.Load(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := s.entries.Set(url, entry); err != nil {
		log.Warnf("cache entry %s: %v", url, err)
	}
	return entry, nil
}
