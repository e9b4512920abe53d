package animesail

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// animeLink maps an episode or movie permalink onto its series page.
func animeLink(base, uri string) string {
	if strings.Contains(uri, "/anime/") {
		return uri
	}

	slug := after(uri, base+"/")
	switch {
	case strings.Contains(slug, "-episode") && !strings.Contains(slug, "-movie"):
		slug, _, _ = strings.Cut(slug, "-episode")
	case strings.Contains(slug, "-movie"):
		slug, _, _ = strings.Cut(slug, "-movie")
	}

	return base + "/anime/" + slug
}

func parseCards(cards *goquery.Selection, base string) []*source.SearchResult {
	return scrape.Cards(cards, func(card *goquery.Selection) mo.Option[*source.SearchResult] {
		href, hasLink := scrape.Attr("a", "href")(card).Get()
		title, hasTitle := scrape.Text(".tt > h2")(card).Get()
		if !hasLink || !hasTitle {
			return mo.None[*source.SearchResult]()
		}

		return mo.Some(&source.SearchResult{
			Title:         title,
			URL:           animeLink(base, scrape.Resolve(base, href)),
			Poster:        scrape.Resolve(base, scrape.Attr("div.limit img", "src")(card).OrEmpty()),
			Type:          source.Anime,
			LatestEpisode: scrape.EpisodeNumber(title),
			Source:        ID,
		})
	})
}

// row returns the cell next to the table header containing label.
func row(doc *goquery.Document, label string) *goquery.Selection {
	return doc.Find(`tbody th:contains("` + label + `")`).Next()
}

func parseEntry(doc *goquery.Document, base string) (*source.MediaEntry, error) {
	heading, ok := scrape.Text("h1.entry-title")(doc.Selection).Get()
	if !ok {
		return nil, source.ErrNotFound
	}

	genres := row(doc, "Genre").Find("a").Map(func(_ int, s *goquery.Selection) string {
		return scrape.Clean(s.Text())
	})

	return &source.MediaEntry{
		SearchResult: source.SearchResult{
			Title:  strings.TrimSpace(strings.ReplaceAll(heading, "Subtitle Indonesia", "")),
			Poster: scrape.Resolve(base, scrape.Attr("div.entry-content > img", "src")(doc.Selection).OrEmpty()),
			Type:   source.ParseContentType(row(doc, "Tipe").Text()),
			Source: ID,
		},
		Year:     scrape.Year(row(doc, "Dirilis").Text()),
		Status:   source.ParseStatus(row(doc, "Status").Text(), source.Completed),
		Plot:     scrape.Text("div.entry-content > p")(doc.Selection).OrEmpty(),
		Genres:   lo.Compact(genres),
		Episodes: parseEpisodes(doc.Find("ul.daftar > li"), base),
	}, nil
}

func parseEpisodes(items *goquery.Selection, base string) []*source.Episode {
	return scrape.Cards(items, func(li *goquery.Selection) mo.Option[*source.Episode] {
		anchor := li.Find("a").First()
		href, ok := scrape.Attr("", "href")(anchor).Get()
		if !ok {
			return mo.None[*source.Episode]()
		}

		name := scrape.Clean(anchor.Text())
		return mo.Some(&source.Episode{
			Name:   name,
			Number: scrape.EpisodeNumber(name),
			Data:   scrape.Resolve(base, href),
		})
	})
}

func parseMirrors(doc *goquery.Document) []scrape.Mirror {
	return scrape.Cards(doc.Find(".mobius > .mirror > option"), func(option *goquery.Selection) mo.Option[scrape.Mirror] {
		data, ok := scrape.Attr("", "data-em")(option).Get()
		if !ok {
			return mo.None[scrape.Mirror]()
		}
		return mo.Some(scrape.Mirror{Label: scrape.Clean(option.Text()), URL: data})
	})
}
