// Package query remembers past searches and suggests them back.
package query

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Record is one remembered query.
type Record struct {
	Query    string    `json:"query"`
	Rank     int       `json:"rank"`
	Sources  []string  `json:"sources"`
	LastUsed time.Time `json:"last_used"`
}

var (
	mu     sync.Mutex
	cacher = gache.New[map[string]*Record](
		&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		},
	)
)

func load() map[string]*Record {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*Record)
	}
	return cached
}

// Remember records that q was searched on sources, raising its rank by weight.
func Remember(q string, weight int, sources ...string) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached := load()
	record, ok := cached[q]
	if !ok {
		record = &Record{Query: q}
		cached[q] = record
	}

	record.Rank += weight
	record.LastUsed = time.Now()
	record.Sources = lo.Uniq(append(record.Sources, sources...))
	sort.Strings(record.Sources)

	return cacher.Set(cached)
}

// Suggest returns the best suggestion for a partial query.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries fuzzily matching q, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	records := lo.Filter(lo.Values(load()), func(r *Record, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})
	mu.Unlock()

	slices.SortFunc(records, func(a, b *Record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	return lo.Map(records, func(r *Record, _ int) string {
		return r.Query
	})
}

// Recent returns up to n records, most recently used first.
func Recent(n int) []*Record {
	mu.Lock()
	records := lo.Values(load())
	mu.Unlock()

	slices.SortFunc(records, func(a, b *Record) int {
		return b.LastUsed.Compare(a.LastUsed)
	})

	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records
}

// Forget drops q from the history.
func Forget(q string) error {
	mu.Lock()
	defer mu.Unlock()

	cached := load()
	delete(cached, sanitize(q))
	return cacher.Set(cached)
}

func sanitize(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
