// Package scrape holds the selector helpers shared by the site adapters.
package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
)

// Strategy extracts one value from a node, or nothing.
type Strategy[T any] func(*goquery.Selection) mo.Option[T]

// FirstOf tries each strategy in order and returns the first value found.
func FirstOf[T any](sel *goquery.Selection, strategies ...Strategy[T]) mo.Option[T] {
	for _, strategy := range strategies {
		if value := strategy(sel); value.IsPresent() {
			return value
		}
	}
	return mo.None[T]()
}

// Attr reads attribute attr of the first node matching selector.
// An empty selector reads the attribute of sel itself. Blank values count as absent.
func Attr(selector, attr string) Strategy[string] {
	return func(sel *goquery.Selection) mo.Option[string] {
		target := sel
		if selector != "" {
			target = sel.Find(selector).First()
		}

		value, ok := target.Attr(attr)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			return mo.None[string]()
		}
		return mo.Some(value)
	}
}

// Text reads the trimmed text of the first node matching selector.
func Text(selector string) Strategy[string] {
	return func(sel *goquery.Selection) mo.Option[string] {
		target := sel
		if selector != "" {
			target = sel.Find(selector).First()
		}
		if target.Length() == 0 {
			return mo.None[string]()
		}

		value := Clean(target.Text())
		if value == "" {
			return mo.None[string]()
		}
		return mo.Some(value)
	}
}

// Cards maps every node of sel, dropping the ones the mapper rejects.
func Cards[T any](sel *goquery.Selection, mapper func(*goquery.Selection) mo.Option[T]) []T {
	cards := make([]T, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if card, ok := mapper(s).Get(); ok {
			cards = append(cards, card)
		}
	})
	return cards
}

// HasAttr selects the nodes of sel carrying attr. Attribute names with a colon,
// such as wire:key, cannot be written as CSS selectors.
func HasAttr(sel *goquery.Selection, attr string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, ok := s.Attr(attr)
		return ok
	})
}
