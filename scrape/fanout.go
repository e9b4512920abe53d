package scrape

import (
	"context"

	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 5

// Concurrency returns the configured mirror fan-out limit.
func Concurrency() int {
	if n := viper.GetInt(key.StreamsConcurrency); n > 0 {
		return n
	}
	return defaultConcurrency
}

// FanOut resolves every mirror concurrently, at most limit at a time.
// A failing mirror never stops the others; its error lands in the report.
// Outcomes are recorded in mirror order.
func FanOut(ctx context.Context, sourceID string, mirrors []Mirror, limit int, resolve Resolver) *source.StreamReport {
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([]mo.Result[[]*source.StreamLink], len(mirrors))

	var group errgroup.Group
	group.SetLimit(limit)

	for i, mirror := range mirrors {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = mo.Err[[]*source.StreamLink](err)
				return nil
			}

			links, err := resolve(ctx, mirror)
			results[i] = mo.TupleToResult(links, err)
			return nil
		})
	}

	_ = group.Wait()

	report := &source.StreamReport{}
	for i, result := range results {
		links, err := result.Get()
		if err != nil {
			log.Source(sourceID).With("mirror", mirrors[i].Label).Warnf("mirror %s failed: %v", mirrors[i].URL, err)
			links = nil
		}
		report.Record(mirrors[i].Label, links, err)
	}

	return report
}
