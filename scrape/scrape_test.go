package scrape

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func doc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestCards(t *testing.T) {
	Convey("Given a listing with an incomplete card", t, func() {
		d := doc(t, `
			<div class="card"><a href="/a">A</a></div>
			<div class="card"><span>no link</span></div>
			<div class="card"><a href="/c">C</a></div>`)

		cards := Cards(d.Find("div.card"), func(s *goquery.Selection) mo.Option[string] {
			return Attr("a", "href")(s)
		})

		Convey("Only complete cards survive, in document order", func() {
			So(cards, ShouldResemble, []string{"/a", "/c"})
		})
	})
}

func TestFirstOf(t *testing.T) {
	Convey("FirstOf falls through to later strategies", t, func() {
		d := doc(t, `<li><a title=" Frieren ">x</a></li>`)
		title := FirstOf(d.Find("li"), Text("h2.entry-title a"), Attr("a", "title"))

		So(title.OrEmpty(), ShouldEqual, "Frieren")
	})

	Convey("FirstOf yields nothing when every strategy misses", t, func() {
		d := doc(t, `<li></li>`)
		So(FirstOf(d.Find("li"), Text("h2"), Attr("a", "href")).IsAbsent(), ShouldBeTrue)
	})
}

func TestHasAttr(t *testing.T) {
	Convey("HasAttr matches names CSS cannot express", t, func() {
		d := doc(t, `<div wire:key="1">a</div><div>b</div><div wire:key="2">c</div>`)
		So(HasAttr(d.Find("div"), "wire:key").Length(), ShouldEqual, 2)
	})
}

func TestEpisodeNumber(t *testing.T) {
	Convey("EpisodeNumber", t, func() {
		So(EpisodeNumber("Episode 12").MustGet(), ShouldEqual, 12)
		So(EpisodeNumber("One Piece Episode1100 Sub Indo").MustGet(), ShouldEqual, 1100)
		So(EpisodeNumber("Episode").IsAbsent(), ShouldBeTrue)
		So(EpisodeNumber("episode 3").IsAbsent(), ShouldBeTrue)
	})
}

func TestYear(t *testing.T) {
	Convey("Year takes the first four-digit group", t, func() {
		So(Year("Oct 6, 2023 to Mar 22, 2024").MustGet(), ShouldEqual, 2023)
		So(Year("unknown").IsAbsent(), ShouldBeTrue)
	})
}

func TestOwnText(t *testing.T) {
	Convey("OwnText skips descendant elements", t, func() {
		d := doc(t, `<span><b>Rilis:</b> Oct 6, 2023 </span>`)
		So(OwnText(d.Find("span")), ShouldEqual, "Oct 6, 2023")
		So(OwnText(d.Find("nothing")), ShouldEqual, "")
	})
}

func TestResolve(t *testing.T) {
	Convey("Resolve", t, func() {
		So(Resolve("https://site.to/anime/x", "/ep/1"), ShouldEqual, "https://site.to/ep/1")
		So(Resolve("https://site.to", "//cdn.site.to/p.jpg"), ShouldEqual, "https://cdn.site.to/p.jpg")
		So(Resolve("https://site.to", "https://other/x"), ShouldEqual, "https://other/x")
		So(Resolve("https://site.to", "  "), ShouldEqual, "")
	})
}

func TestDecodeMirror(t *testing.T) {
	iframe := `<div><iframe src="https://host/embed/1" allowfullscreen></iframe></div>`

	Convey("DecodeMirror", t, func() {
		Convey("Reads padded standard base64", func() {
			src, err := DecodeMirror(base64.StdEncoding.EncodeToString([]byte(iframe)))
			So(err, ShouldBeNil)
			So(src, ShouldEqual, "https://host/embed/1")
		})

		Convey("Reads unpadded URL-safe base64", func() {
			src, err := DecodeMirror(base64.RawURLEncoding.EncodeToString([]byte(iframe)))
			So(err, ShouldBeNil)
			So(src, ShouldEqual, "https://host/embed/1")
		})

		Convey("Rejects garbage", func() {
			_, err := DecodeMirror("%%%")
			So(errors.Is(err, ErrBadEncoding), ShouldBeTrue)
		})

		Convey("Rejects snippets without an iframe", func() {
			_, err := DecodeMirror(base64.StdEncoding.EncodeToString([]byte("<p>nope</p>")))
			So(errors.Is(err, ErrNoIframe), ShouldBeTrue)
		})
	})
}

func TestRules(t *testing.T) {
	named := func(name string) Resolver {
		return func(context.Context, Mirror) ([]*source.StreamLink, error) {
			return []*source.StreamLink{{Name: name}}, nil
		}
	}

	Convey("Given a prefix table with a fallback", t, func() {
		rules := NewRules(
			named("extractor"),
			Rule{Prefix: "https://site/utils/player/arch/", Resolve: named("arch")},
			Rule{Prefix: "https://site/utils/player/", Resolve: named("player")},
		)

		resolve := func(url string) string {
			links, err := rules.Resolve(context.Background(), Mirror{URL: url})
			So(err, ShouldBeNil)
			return links[0].Name
		}

		Convey("The first matching prefix wins", func() {
			So(resolve("https://site/utils/player/arch/?id=1"), ShouldEqual, "arch")
			So(resolve("https://site/utils/player/race/?id=1"), ShouldEqual, "player")
		})

		Convey("Unmatched URLs go to the fallback", func() {
			So(resolve("https://elsewhere/v/1"), ShouldEqual, "extractor")
		})
	})
}

func TestFanOut(t *testing.T) {
	Convey("Given three mirrors where the second fails", t, func() {
		mirrors := []Mirror{
			{Label: "480p", URL: "https://a"},
			{Label: "720p", URL: "https://b"},
			{Label: "1080p", URL: "https://c"},
		}

		report := FanOut(context.Background(), "test", mirrors, 2, func(_ context.Context, m Mirror) ([]*source.StreamLink, error) {
			if m.URL == "https://b" {
				return nil, errors.New("boom")
			}
			return []*source.StreamLink{{Name: m.Label, URL: m.URL}}, nil
		})

		Convey("The others still resolve", func() {
			So(report.Links, ShouldHaveLength, 2)
		})

		Convey("Every mirror has an outcome in order", func() {
			So(report.Outcomes, ShouldHaveLength, 3)
			So(report.Outcomes[0].Mirror, ShouldEqual, "480p")
			So(report.Outcomes[1].Error, ShouldEqual, "boom")
			So(report.Outcomes[2].Links, ShouldEqual, 1)
		})
	})

	Convey("FanOut never runs more than limit resolvers at once", t, func() {
		var running, peak int32
		mirrors := make([]Mirror, 10)

		FanOut(context.Background(), "test", mirrors, 3, func(context.Context, Mirror) ([]*source.StreamLink, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil, nil
		})

		So(atomic.LoadInt32(&peak), ShouldBeLessThanOrEqualTo, int32(3))
	})

	Convey("A cancelled context fails every mirror without resolving", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls int32
		report := FanOut(ctx, "test", []Mirror{{Label: "a"}, {Label: "b"}}, 0, func(context.Context, Mirror) ([]*source.StreamLink, error) {
			atomic.AddInt32(&calls, 1)
			return nil, nil
		})

		So(atomic.LoadInt32(&calls), ShouldEqual, int32(0))
		So(report.Failed(), ShouldHaveLength, 2)
	})
}
