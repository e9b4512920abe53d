package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anisan-cli/mirai/source"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	// Picker chooses one search result, or nil.
	Picker func([]*source.SearchResult) *source.SearchResult
	// EpisodesFilter narrows the episodes of a loaded entry.
	EpisodesFilter func([]*source.Episode) []*source.Episode
)

type Options struct {
	Out      io.Writer
	Sources  []source.Source
	Json     bool
	Query    string
	Picker   mo.Option[Picker]
	Episodes mo.Option[EpisodesFilter]
	// Streams resolves the stream links of every selected episode.
	Streams bool
}

// ParsePicker understands "first", "last", "best" (closest title to query) and a zero-based index.
func ParsePicker(description, query string) (Picker, error) {
	switch description {
	case "first":
		return func(results []*source.SearchResult) *source.SearchResult {
			return lo.FirstOrEmpty(results)
		}, nil
	case "last":
		return func(results []*source.SearchResult) *source.SearchResult {
			return lo.LastOrEmpty(results)
		}, nil
	case "best":
		return func(results []*source.SearchResult) *source.SearchResult {
			if len(results) == 0 {
				return nil
			}
			return lo.MinBy(results, func(a, b *source.SearchResult) bool {
				return distance(a.Title, query) < distance(b.Title, query)
			})
		}, nil
	}

	idx, err := strconv.ParseUint(description, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid anime selector: %s", description)
	}

	return func(results []*source.SearchResult) *source.SearchResult {
		if uint64(len(results)) <= idx {
			return nil
		}
		return results[idx]
	}, nil
}

// ParseEpisodesFilter understands "first", "last", "all", an index, an index range "from-to",
// an episode number "#n" and a name substring "@text@".
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "first":
		return func(episodes []*source.Episode) []*source.Episode {
			return lo.Subset(episodes, 0, 1)
		}, nil
	case "last":
		return func(episodes []*source.Episode) []*source.Episode {
			return lo.Subset(episodes, -1, 1)
		}, nil
	case "all":
		return func(episodes []*source.Episode) []*source.Episode {
			return episodes
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(episodes []*source.Episode) []*source.Episode {
			return lo.Filter(episodes, func(e *source.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.String()), sub)
			})
		}, nil
	}

	if number, ok := strings.CutPrefix(description, "#"); ok {
		n, err := strconv.Atoi(number)
		if err != nil {
			return nil, fmt.Errorf("invalid episode number: %s", number)
		}
		return func(episodes []*source.Episode) []*source.Episode {
			return lo.Filter(episodes, func(e *source.Episode, _ int) bool {
				return e.Number.OrElse(-1) == n
			})
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid episode range: %s", description)
		}
		return func(episodes []*source.Episode) []*source.Episode {
			if start > end {
				return []*source.Episode{}
			}
			return lo.Subset(episodes, int(start), uint(end-start+1))
		}, nil
	}

	idx, err := strconv.ParseUint(description, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid episode filter: %s", description)
	}

	return func(episodes []*source.Episode) []*source.Episode {
		if uint64(len(episodes)) <= idx {
			return []*source.Episode{}
		}
		return []*source.Episode{episodes[idx]}
	}, nil
}

func distance(title, query string) int {
	return levenshtein.Distance(strings.ToLower(title), strings.ToLower(query))
}
