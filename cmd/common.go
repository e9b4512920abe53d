package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/internal/cache"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/provider"
	"github.com/anisan-cli/mirai/source"
	"github.com/anisan-cli/mirai/style"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// openSource creates the source registered under name, cached when the config asks for it.
func openSource(name string) (source.Source, error) {
	p, ok := provider.Get(name)
	if !ok {
		return nil, fmt.Errorf("source not found: %s", name)
	}

	src, err := p.CreateSource()
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", p.ID, err)
	}

	return cache.FromConfig(src), nil
}

// defaultSources opens every source named by --source or sources.default.
func defaultSources() ([]source.Source, error) {
	names := viper.GetStringSlice(key.DefaultSources)
	if len(names) == 0 {
		return nil, errors.New("no sources set, use --source or \"mirai config set sources.default <id>\"")
	}

	sources := make([]source.Source, 0, len(names))
	for _, name := range names {
		src, err := openSource(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// interruptible returns a context cancelled on Ctrl-C.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func printJson(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func errUnknownCategory(name string, categories []source.Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("unknown category %s", style.Fg(color.Red)(name))
	}

	closest := lo.MinBy(categories, func(a, b source.Category) bool {
		return levenshtein.Distance(name, a.Name) < levenshtein.Distance(name, b.Name)
	})
	return fmt.Errorf(
		"unknown category %s, did you mean %s (%s)?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest.Name),
		closest.ID,
	)
}

func errUnknownTarget(name string) error {
	return errUnknown("schema target", name, lo.Keys(schemaTargets))
}

// errUnknown suggests the option closest to name.
func errUnknown(kind, name string, options []string) error {
	if len(options) == 0 {
		return fmt.Errorf("unknown %s %s", kind, style.Fg(color.Red)(name))
	}

	closest := lo.MinBy(options, func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	return fmt.Errorf(
		"unknown %s %s, did you mean %s?",
		kind,
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest),
	)
}
