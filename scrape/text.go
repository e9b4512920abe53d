package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
	"golang.org/x/net/html"
)

var (
	episodeRegex = regexp.MustCompile(`Episode\s?(\d+)`)
	yearRegex    = regexp.MustCompile(`\d{4}`)
)

// EpisodeNumber reads the number out of text such as "Episode 12".
func EpisodeNumber(text string) mo.Option[int] {
	match := episodeRegex.FindStringSubmatch(text)
	if match == nil {
		return mo.None[int]()
	}
	return atoi(match[1])
}

// Year returns the first four-digit group of text.
func Year(text string) mo.Option[int] {
	return atoi(yearRegex.FindString(text))
}

// Int parses text after trimming it.
func Int(text string) mo.Option[int] {
	return atoi(strings.TrimSpace(text))
}

func atoi(s string) mo.Option[int] {
	n, err := strconv.Atoi(s)
	if err != nil {
		return mo.None[int]()
	}
	return mo.Some(n)
}

// Clean collapses runs of whitespace and trims the result.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// OwnText returns the text of the first node's direct text children, ignoring descendants.
func OwnText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	var b strings.Builder
	for child := sel.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return Clean(b.String())
}

// After returns the trimmed part of text after the first sep, or text itself when sep is absent.
func After(text, sep string) string {
	if _, rest, found := strings.Cut(text, sep); found {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}
