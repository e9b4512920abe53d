package anizone

import (
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/scrape"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const airDateLayout = "2006-01-02"

func cardNodes(doc *goquery.Document) *goquery.Selection {
	return scrape.HasAttr(doc.Find("div"), "wire:key")
}

func parseCards(cards *goquery.Selection, base string, kind source.ContentType) []*source.SearchResult {
	return scrape.Cards(cards, func(card *goquery.Selection) mo.Option[*source.SearchResult] {
		title, hasTitle := scrape.Attr("img", "alt")(card).Get()
		href, hasLink := scrape.Attr("a", "href")(card).Get()
		if !hasTitle || !hasLink {
			return mo.None[*source.SearchResult]()
		}

		return mo.Some(&source.SearchResult{
			Title:  title,
			URL:    scrape.Resolve(base, href),
			Poster: scrape.Resolve(base, scrape.Attr("img", "src")(card).OrEmpty()),
			Type:   kind,
			Source: ID,
		})
	})
}

func parseMeta(doc *goquery.Document, base string) (*source.MediaEntry, error) {
	title, ok := scrape.Text("h1")(doc.Selection).Get()
	if !ok {
		return nil, source.ErrNotFound
	}

	info := doc.Find("span.inline-block").Map(func(_ int, s *goquery.Selection) string {
		return scrape.Clean(s.Text())
	})
	at := func(i int) string {
		if i < len(info) {
			return info[i]
		}
		return ""
	}

	genres := scrape.HasAttr(scrape.HasAttr(doc.Find("a"), "wire:navigate"), "wire:key").Map(func(_ int, s *goquery.Selection) string {
		return scrape.Clean(s.Text())
	})

	return &source.MediaEntry{
		SearchResult: source.SearchResult{
			Title:  title,
			Poster: scrape.Resolve(base, scrape.Attr("main img", "src")(doc.Selection).OrEmpty()),
			Type:   source.Anime,
			Source: ID,
		},
		Plot:   scrape.Text(".sr-only + div")(doc.Selection).OrEmpty(),
		Year:   scrape.Int(at(3)),
		Status: source.ParseStatus(at(1), source.StatusUnknown),
		Genres: lo.Compact(genres),
	}, nil
}

func parseEpisodes(doc *goquery.Document, base string) []*source.Episode {
	var index int
	return scrape.Cards(doc.Find("li[x-data]"), func(li *goquery.Selection) mo.Option[*source.Episode] {
		href, ok := scrape.Attr("a", "href")(li).Get()
		if !ok {
			return mo.None[*source.Episode]()
		}
		index++

		heading := scrape.Text("h3")(li).OrEmpty()
		number := scrape.EpisodeNumber(heading)
		if number.IsAbsent() {
			number = mo.Some(index)
		}

		episode := &source.Episode{
			Name:   scrape.After(heading, ":"),
			Number: number,
			Data:   scrape.Resolve(base, href),
			Poster: scrape.Resolve(base, scrape.Attr("img", "src")(li).OrEmpty()),
		}

		if date := li.Find("span.line-clamp-1").Eq(1); date.Length() > 0 {
			if t, err := time.Parse(airDateLayout, scrape.Clean(date.Text())); err == nil {
				episode.AirDate = mo.Some(t)
			}
		}

		return mo.Some(episode)
	})
}

func parsePlayer(doc *goquery.Document, base string) (*source.StreamLink, bool) {
	player := doc.Find("media-player").First()
	src, ok := scrape.Attr("", "src")(player).Get()
	if !ok {
		return nil, false
	}

	subtitles := scrape.Cards(player.Find("track"), func(track *goquery.Selection) mo.Option[source.Subtitle] {
		url, ok := scrape.Attr("", "src")(track).Get()
		if !ok {
			return mo.None[source.Subtitle]()
		}
		return mo.Some(source.Subtitle{
			Label: track.AttrOr("label", ""),
			URL:   scrape.Resolve(base, url),
		})
	})

	return &source.StreamLink{
		Source:    ID,
		Name:      scrape.Text("span.truncate")(doc.Selection).OrElse(Name),
		URL:       scrape.Resolve(base, src),
		Quality:   source.QualityUnknown,
		Referer:   base + "/",
		Kind:      source.M3U8,
		Subtitles: subtitles,
	}, true
}
