package animesail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func mirror(label, iframe string) string {
	html := fmt.Sprintf(`<iframe src="%s" frameborder="0"></iframe>`, iframe)
	return fmt.Sprintf(`<option data-em="%s">%s</option>`, base64.StdEncoding.EncodeToString([]byte(html)), label)
}

type fixture struct {
	server   *httptest.Server
	failures int32
	cookie   string
}

func (f *fixture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	base := f.server.URL

	switch r.URL.Path {
	case "/page/1":
		if c, err := r.Cookie(localeCookie); err == nil {
			f.cookie = c.Value
		}
		if atomic.AddInt32(&f.failures, -1) >= 0 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, `<main>
<article><a href="%[1]s/one-piece-episode-1100-subtitle-indonesia/"><div class="limit"><img src="/p/op.jpg"></div><div class="tt"><h2> One Piece Episode 1100 </h2></div></a></article>
<article><a href="%[1]s/nameless/"></a></article>
<article><a href="/kimi-no-na-wa-movie-subtitle-indonesia/"><div class="tt"><h2>Kimi no Na wa Movie</h2></div></a></article>
</main>`, base)
	case "/":
		if r.URL.Query().Get("s") == "" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<div class="listupd"><article><a href="%s/anime/frieren/"><div class="tt"><h2>Frieren</h2></div></a></article></div>`, base)
	case "/anime/frieren/":
		_, _ = w.Write([]byte(`<h1 class="entry-title">Sousou no Frieren Subtitle Indonesia</h1>
<div class="entry-content"><img src="/p/frieren.jpg"><p>An elf mage outlives her party.</p></div>
<table><tbody>
<tr><th>Tipe</th><td>TV</td></tr>
<tr><th>Dirilis</th><td>2023</td></tr>
<tr><th>Status</th><td>Finished Airing</td></tr>
<tr><th>Genre</th><td><a href="#">Adventure</a>, <a href="#">Fantasy</a></td></tr>
</tbody></table>
<ul class="daftar">
<li><a href="/frieren-episode-3/">Frieren Episode 3</a></li>
<li><a href="/frieren-episode-1/">Frieren Episode 1</a></li>
<li><a href="/frieren-episode-2/">Frieren Episode 2</a></li>
</ul>`))
	case "/frieren-episode-1/":
		fmt.Fprintf(w, `<div class="mobius"><select class="mirror">
<option value="">Pilih Mirror</option>
%s
%s
%s
%s
</select></div>`,
			mirror("Arch 720p", "/utils/player/arch/?id=1"),
			mirror("Race 480p", "/utils/player/race/?id=404"),
			mirror("Kodik 1080p", "/utils/player/framezilla/?id=9"),
			mirror("Pixel", base+"/files/frieren-hevc/master.m3u8"),
		)
	case "/utils/player/arch/", "/utils/player/race/":
		if r.URL.Query().Get("id") == "404" || r.Header.Get("Referer") == "" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<video><source src="/files/arch.mp4" type="video/mp4"></video>`))
	case "/utils/player/framezilla/":
		_, _ = w.Write([]byte(`<iframe src="/files/frieren-01.mp4"></iframe>`))
	default:
		http.NotFound(w, r)
	}
}

func newFixture(failures int32) (*fixture, *Source) {
	f := &fixture{failures: failures}
	f.server = httptest.NewServer(f)

	opts := Options(f.server.URL, network.Options{RetryWait: 10 * time.Millisecond})
	return f, NewWithClient(f.server.URL, network.New(opts))
}

func TestAnimeLink(t *testing.T) {
	Convey("animeLink maps permalinks to the series page", t, func() {
		base := "https://sail"
		So(animeLink(base, base+"/one-piece-episode-1100-subtitle-indonesia/"), ShouldEqual, base+"/anime/one-piece")
		So(animeLink(base, base+"/kimi-no-na-wa-movie-subtitle-indonesia/"), ShouldEqual, base+"/anime/kimi-no-na-wa")
		So(animeLink(base, base+"/anime/frieren/"), ShouldEqual, base+"/anime/frieren/")
	})
}

func TestOptions(t *testing.T) {
	Convey("Options enforce three attempts and trust bare IPs", t, func() {
		opts := Options("https://154.26.137.28", network.Options{})
		So(opts.Retries, ShouldEqual, 2)
		So(opts.Timeout, ShouldEqual, requestTimeout)
		So(opts.InsecureTLS, ShouldBeTrue)

		So(Options("https://animesail.example", network.Options{Retries: 5}).Retries, ShouldEqual, 5)
	})
}

func TestBrowse(t *testing.T) {
	Convey("Given a listing that fails twice before answering", t, func() {
		f, src := newFixture(2)
		defer f.server.Close()

		page, err := src.Browse(context.Background(), categories[0], 1)

		Convey("The third attempt succeeds", func() {
			So(err, ShouldBeNil)
			So(page.Results, ShouldHaveLength, 2)
			So(f.cookie, ShouldEqual, "ID")
		})

		Convey("Cards map to series pages with the episode badge", func() {
			op := page.Results[0]
			So(op.Title, ShouldEqual, "One Piece Episode 1100")
			So(op.URL, ShouldEqual, f.server.URL+"/anime/one-piece")
			So(op.Poster, ShouldEqual, f.server.URL+"/p/op.jpg")
			So(op.LatestEpisode.OrEmpty(), ShouldEqual, 1100)

			So(page.Results[1].URL, ShouldEqual, f.server.URL+"/anime/kimi-no-na-wa")
			So(page.Results[1].LatestEpisode.IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("A listing failing every attempt degrades to an empty page", t, func() {
		f, src := newFixture(3)
		defer f.server.Close()

		page, err := src.Browse(context.Background(), categories[0], 1)
		So(err, ShouldBeNil)
		So(page.Results, ShouldBeEmpty)
	})
}

func TestSearch(t *testing.T) {
	Convey("Search reads the result list", t, func() {
		f, src := newFixture(0)
		defer f.server.Close()

		results, err := src.Search(context.Background(), "frieren")
		So(err, ShouldBeNil)
		So(results, ShouldHaveLength, 1)
		So(results[0].URL, ShouldEqual, f.server.URL+"/anime/frieren/")
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a series page", t, func() {
		f, src := newFixture(0)
		defer f.server.Close()

		entry, err := src.Load(context.Background(), f.server.URL+"/anime/frieren/")
		So(err, ShouldBeNil)

		Convey("The table rows are read", func() {
			So(entry.Title, ShouldEqual, "Sousou no Frieren")
			So(entry.Type, ShouldEqual, source.Anime)
			So(entry.Year.OrEmpty(), ShouldEqual, 2023)
			So(entry.Status, ShouldEqual, source.Completed)
			So(entry.Genres, ShouldResemble, []string{"Adventure", "Fantasy"})
			So(entry.Plot, ShouldEqual, "An elf mage outlives her party.")
		})

		Convey("Episodes are sorted by number", func() {
			numbers := lo.Map(entry.Episodes, func(e *source.Episode, _ int) int {
				return e.Number.OrEmpty()
			})
			So(numbers, ShouldResemble, []int{1, 2, 3})
		})
	})

	Convey("A page without a title is not found", t, func() {
		f, src := newFixture(0)
		defer f.server.Close()

		_, err := src.Load(context.Background(), f.server.URL+"/utils/player/framezilla/")
		So(errors.Is(err, source.ErrNotFound), ShouldBeTrue)
	})
}

func TestStreams(t *testing.T) {
	Convey("Given an episode with four mirrors", t, func() {
		f, src := newFixture(0)
		defer f.server.Close()

		page := f.server.URL + "/frieren-episode-1/"
		report, err := src.Streams(context.Background(), page)
		So(err, ShouldBeNil)

		byName := lo.KeyBy(report.Links, func(l *source.StreamLink) string {
			return l.Name
		})

		Convey("Every mirror has an outcome and the broken one does not stop the rest", func() {
			So(report.Outcomes, ShouldHaveLength, 4)
			So(report.Links, ShouldHaveLength, 3)
			So(report.Failed(), ShouldHaveLength, 1)
			So(report.Failed()[0].Mirror, ShouldEqual, "Race 480p")
		})

		Convey("The site's own player yields a direct video", func() {
			arch := byName["Arch"]
			So(arch, ShouldNotBeNil)
			So(arch.URL, ShouldEqual, f.server.URL+"/files/arch.mp4")
			So(arch.Quality, ShouldEqual, source.P720)
			So(arch.Kind, ShouldEqual, source.Video)
		})

		Convey("Nested players reach the extractor", func() {
			nested := byName[Name]
			So(nested, ShouldNotBeNil)
			So(nested.URL, ShouldEqual, f.server.URL+"/files/frieren-01.mp4")
			So(nested.Quality, ShouldEqual, source.P1080)
		})

		Convey("HEVC streams are renamed and lose their quality", func() {
			hevc := byName[Name+" (HEVC)"]
			So(hevc, ShouldNotBeNil)
			So(hevc.Quality, ShouldEqual, source.QualityUnknown)
			So(hevc.Kind, ShouldEqual, source.M3U8)
		})
	})
}
