// Package inline runs search, load and stream resolution without interaction, for scripts.
package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
)

// Run searches every source, loads the picked results and prints them.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	found := Search(ctx, options.Sources, options.Query)

	selected := found
	if picker, ok := options.Picker.Get(); ok {
		selected = lo.Compact([]*source.SearchResult{picker(found)})
	}

	bySource := lo.SliceToMap(options.Sources, func(s source.Source) (string, source.Source) {
		return s.ID(), s
	})

	results := make([]*Result, 0, len(selected))
	for _, sr := range selected {
		src, ok := bySource[sr.Source]
		if !ok {
			return fmt.Errorf("result %q has unknown source %q", sr.Title, sr.Source)
		}

		result, err := prepare(ctx, src, sr, options)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	if options.Json {
		return writeJson(options.Out, options.Query, results)
	}

	for _, result := range results {
		if !options.Streams {
			for _, ep := range result.Entry.Episodes {
				fmt.Fprintln(options.Out, ep.Data)
			}
			continue
		}

		for _, streams := range result.Streams {
			for _, link := range streams.Report.Links {
				fmt.Fprintln(options.Out, link.URL)
			}
		}
	}

	return nil
}

func prepare(ctx context.Context, src source.Source, sr *source.SearchResult, options *Options) (*Result, error) {
	entry, err := src.Load(ctx, sr.URL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", sr.Title, err)
	}

	if filter, ok := options.Episodes.Get(); ok {
		entry.Episodes = filter(entry.Episodes)
	}

	result := &Result{Source: src.ID(), Entry: entry}
	if !options.Streams {
		return result, nil
	}

	for _, ep := range entry.Episodes {
		report, err := src.Streams(ctx, ep.Data)
		if err != nil {
			log.Warnf("streams of %s: %v", ep, err)
			continue
		}
		report.SortByQuality()
		result.Streams = append(result.Streams, &Streams{Episode: ep.String(), Data: ep.Data, Report: report})
	}

	return result, nil
}
