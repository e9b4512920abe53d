package samehadaku

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

var bloatRegex = regexp.MustCompile(`(Nonton)|(Anime)|(Subtitle\sIndonesia)|(Sub\sIndo)`)

func removeBloat(title string) string {
	return scrape.Clean(bloatRegex.ReplaceAllString(title, ""))
}

func nonBlank(title string) mo.Option[string] {
	if title == "" {
		return mo.None[string]()
	}
	return mo.Some(title)
}

func parseLatest(cards *goquery.Selection, base string) []*source.SearchResult {
	return scrape.Cards(cards, func(card *goquery.Selection) mo.Option[*source.SearchResult] {
		anchor := card.Find("div.thumb a").First()
		if anchor.Length() == 0 {
			anchor = card.Find("a").First()
		}

		href, ok := scrape.Attr("", "href")(anchor).Get()
		if !ok {
			return mo.None[*source.SearchResult]()
		}

		title := scrape.FirstOf(card,
			func(s *goquery.Selection) mo.Option[string] {
				return scrape.Text("h2.entry-title a")(s).FlatMap(func(t string) mo.Option[string] {
					return nonBlank(removeBloat(t))
				})
			},
			func(*goquery.Selection) mo.Option[string] {
				return scrape.Attr("", "title")(anchor).FlatMap(func(t string) mo.Option[string] {
					return nonBlank(removeBloat(t))
				})
			},
		)
		if title.IsAbsent() {
			return mo.None[*source.SearchResult]()
		}

		return mo.Some(&source.SearchResult{
			Title:         title.MustGet(),
			URL:           scrape.Resolve(base, href),
			Poster:        scrape.Resolve(base, scrape.Attr("img", "src")(card).OrEmpty()),
			Type:          source.Anime,
			LatestEpisode: scrape.Int(card.Find("div.dtla author").First().Text()),
			Source:        ID,
		})
	})
}

func parseSearch(cards *goquery.Selection, base string) []*source.SearchResult {
	return scrape.Cards(cards, func(card *goquery.Selection) mo.Option[*source.SearchResult] {
		anchor := card.Find("div.animposx a").First()
		href, ok := scrape.Attr("", "href")(anchor).Get()
		if !ok {
			return mo.None[*source.SearchResult]()
		}

		title, ok := scrape.FirstOf(anchor, scrape.Text("h2"), scrape.Attr("", "title")).Get()
		if !ok {
			return mo.None[*source.SearchResult]()
		}

		return mo.Some(&source.SearchResult{
			Title:  title,
			URL:    scrape.Resolve(base, href),
			Poster: scrape.Resolve(base, scrape.Attr("img", "src")(anchor).OrEmpty()),
			Type:   source.Anime,
			Source: ID,
		})
	})
}

// info returns the own text of the info line labelled label, without the label itself.
func info(doc *goquery.Document, label string) string {
	return scrape.OwnText(doc.Find(`div.spe > span:contains("` + label + `")`).First())
}

func parseEntry(doc *goquery.Document, base string) (*source.MediaEntry, error) {
	heading, ok := scrape.Text("h1.entry-title")(doc.Selection).Get()
	if !ok {
		return nil, source.ErrNotFound
	}

	poster := scrape.Resolve(base, scrape.Attr("div.thumb > img", "src")(doc.Selection).OrEmpty())

	genres := lo.Compact(doc.Find("div.genre-info > a").Map(func(_ int, s *goquery.Selection) string {
		return scrape.Clean(s.Text())
	}))
	if len(genres) == 0 {
		genres = []string{"Unknown"}
	}

	episodes := scrape.Cards(doc.Find("div.lstepsiode.listeps ul li"), func(li *goquery.Selection) mo.Option[*source.Episode] {
		header := li.Find("span.lchx > a").First()
		href, ok := scrape.Attr("", "href")(header).Get()
		if !ok {
			return mo.None[*source.Episode]()
		}

		name := scrape.Clean(header.Text())
		return mo.Some(&source.Episode{
			Name:   name,
			Number: scrape.EpisodeNumber(name),
			Data:   scrape.Resolve(base, href),
			Poster: poster,
		})
	})

	paragraphs := doc.Find("div.desc p").Map(func(_ int, p *goquery.Selection) string {
		return scrape.Clean(p.Text())
	})

	// the site lists the newest episode first
	slices.Reverse(episodes)

	return &source.MediaEntry{
		SearchResult: source.SearchResult{
			Title:  removeBloat(heading),
			Poster: poster,
			Type:   source.ParseContentType(lo.CoalesceOrEmpty(info(doc, "Type"), "tv")),
			Source: ID,
		},
		Plot:     strings.Join(paragraphs, " "),
		Year:     scrape.Year(info(doc, "Rilis")),
		Status:   source.ParseStatus(info(doc, "Status"), source.Completed),
		Genres:   genres,
		Trailer:  scrape.Resolve(base, scrape.Attr("div.trailer-anime iframe", "src")(doc.Selection).OrEmpty()),
		Episodes: episodes,
	}, nil
}

// parseDownloads lists every download link, labelled with the quality of its row.
func parseDownloads(doc *goquery.Document, base string) []scrape.Mirror {
	var mirrors []scrape.Mirror
	doc.Find("div#downloadb li").Each(func(_ int, row *goquery.Selection) {
		label := scrape.Text("strong")(row).OrElse("Unknown")
		row.Find("a").Each(func(_ int, a *goquery.Selection) {
			if href := strings.TrimSpace(a.AttrOr("href", "")); href != "" {
				mirrors = append(mirrors, scrape.Mirror{Label: label, URL: scrape.Resolve(base, href)})
			}
		})
	})
	return mirrors
}
