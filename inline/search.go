package inline

import (
	"context"
	"sort"

	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/query"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Search queries every source at once and merges the results.
// A failing source is logged and skipped. With search.sort set to "relevance"
// the results are ordered by title distance to q, otherwise they stay grouped by source.
func Search(ctx context.Context, sources []source.Source, q string) []*source.SearchResult {
	found := make([][]*source.SearchResult, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			results, err := src.Search(ctx, q)
			if err != nil {
				log.Source(src.ID()).Warnf("search %q: %v", q, err)
				return nil
			}
			found[i] = results
			return nil
		})
	}
	_ = g.Wait()

	merged := lo.Flatten(found)

	if len(merged) > 0 {
		ids := lo.Uniq(lo.Map(merged, func(r *source.SearchResult, _ int) string {
			return r.Source
		}))
		if err := query.Remember(q, 1, ids...); err != nil {
			log.Warnf("remember query: %v", err)
		}
	}

	if viper.GetString(key.SearchSort) == "relevance" {
		sort.SliceStable(merged, func(i, j int) bool {
			return distance(merged[i].Title, q) < distance(merged[j].Title, q)
		})
	}

	return merged
}
