package samehadaku

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const latestPage = `<ul>
<li itemtype="http://schema.org/CreativeWork">
  <div class="thumb"><a href="/frieren-episode-5/"><img src="/p/frieren.jpg"></a></div>
  <h2 class="entry-title"><a href="/frieren-episode-5/">Nonton Anime Frieren Episode 5 Sub Indo</a></h2>
  <div class="dtla"><author>5</author></div>
</li>
<li itemtype="http://schema.org/CreativeWork">
  <a href="/dandadan-episode-1/" title="Anime Dandadan Subtitle Indonesia"><img src="/p/dan.jpg"></a>
</li>
<li itemtype="http://schema.org/CreativeWork"><span>ad slot</span></li>
</ul>`

const searchPage = `<main id="main">
<article itemtype="http://schema.org/CreativeWork">
  <div class="animposx"><a href="/anime/frieren/" title="Frieren"><img src="/p/frieren.jpg"><h2>Sousou no Frieren</h2></a></div>
</article>
<article itemtype="http://schema.org/CreativeWork"><div class="animposx"><a>no link</a></div></article>
</main>`

const seriesPage = `<h1 class="entry-title">Nonton Anime Sousou no Frieren Sub Indo</h1>
<div class="thumb"><img src="/p/frieren-big.jpg"></div>
<div class="spe">
  <span><b>Type</b> TV</span>
  <span><b>Status</b> Ongoing</span>
  <span><b>Rilis:</b> Sep 29, 2023 to ?</span>
</div>
<div class="desc"><p>An elf mage</p><p>outlives her party.</p></div>
<div class="trailer-anime"><iframe src="https://www.youtube.com/embed/qgQqSUVaF8c"></iframe></div>
<div class="lstepsiode listeps"><ul>
  <li><span class="lchx"><a href="/frieren-episode-2/">Frieren Episode 2</a></span></li>
  <li><span class="lchx"><a href="/frieren-episode-1/">Frieren Episode 1</a></span></li>
  <li><span class="lchx"></span></li>
</ul></div>`

const episodePage = `<div class="nvs nvsc"><a href="/anime/frieren/">All Episodes</a></div>
<div id="downloadb"><ul>
  <li><strong>MP4HD</strong> <a href="/files/frieren-720.mp4">Pixeldrain</a> <a href="/gone">Mega</a></li>
  <li><strong>FULLHD</strong> <a href="/files/frieren-1080.mp4">Pixeldrain</a></li>
</ul></div>`

func newFixture() (*httptest.Server, *Source) {
	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}
	}

	mux.HandleFunc("/anime-terbaru/page/1", page(latestPage))
	mux.HandleFunc("/anime/frieren/", page(seriesPage))
	mux.HandleFunc("/frieren-episode-5/", page(episodePage))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.URL.Query().Get("s") != "" {
			_, _ = w.Write([]byte(searchPage))
			return
		}
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)
	return server, NewWithClient(server.URL, network.New(network.Options{Timeout: 5 * time.Second}))
}

func TestRemoveBloat(t *testing.T) {
	Convey("removeBloat strips site boilerplate", t, func() {
		So(removeBloat("Nonton Anime Frieren Episode 5 Sub Indo"), ShouldEqual, "Frieren Episode 5")
		So(removeBloat("Dandadan Subtitle Indonesia"), ShouldEqual, "Dandadan")
	})
}

func TestBrowse(t *testing.T) {
	Convey("Given the latest episodes page", t, func() {
		server, src := newFixture()
		defer server.Close()

		page, err := src.Browse(context.Background(), categories[0], 1)
		So(err, ShouldBeNil)

		Convey("Cards without a link are skipped", func() {
			So(page.Results, ShouldHaveLength, 2)
		})

		Convey("The heading is preferred and the badge is read", func() {
			first := page.Results[0]
			So(first.Title, ShouldEqual, "Frieren Episode 5")
			So(first.URL, ShouldEqual, server.URL+"/frieren-episode-5/")
			So(first.LatestEpisode.OrEmpty(), ShouldEqual, 5)
		})

		Convey("The anchor title is the fallback", func() {
			So(page.Results[1].Title, ShouldEqual, "Dandadan")
			So(page.Results[1].LatestEpisode.IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("A failing page degrades to an empty listing", t, func() {
		server, src := newFixture()
		defer server.Close()

		page, err := src.Browse(context.Background(), categories[0], 9)
		So(err, ShouldBeNil)
		So(page.Results, ShouldBeEmpty)
	})
}

func TestSearch(t *testing.T) {
	Convey("Search reads the article grid", t, func() {
		server, src := newFixture()
		defer server.Close()

		results, err := src.Search(context.Background(), "frieren")
		So(err, ShouldBeNil)
		So(results, ShouldHaveLength, 1)
		So(results[0].Title, ShouldEqual, "Sousou no Frieren")
		So(results[0].URL, ShouldEqual, server.URL+"/anime/frieren/")
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a series page", t, func() {
		server, src := newFixture()
		defer server.Close()

		Convey("Metadata and episodes are read oldest first", func() {
			entry, err := src.Load(context.Background(), server.URL+"/anime/frieren/")
			So(err, ShouldBeNil)

			So(entry.Title, ShouldEqual, "Sousou no Frieren")
			So(entry.Year.OrEmpty(), ShouldEqual, 2023)
			So(entry.Status, ShouldEqual, source.Ongoing)
			So(entry.Type, ShouldEqual, source.Anime)
			So(entry.Genres, ShouldResemble, []string{"Unknown"})
			So(entry.Plot, ShouldEqual, "An elf mage outlives her party.")
			So(entry.Trailer, ShouldEqual, "https://www.youtube.com/embed/qgQqSUVaF8c")

			numbers := lo.Map(entry.Episodes, func(e *source.Episode, _ int) int {
				return e.Number.OrEmpty()
			})
			So(numbers, ShouldResemble, []int{1, 2})
			So(entry.Episodes[0].Poster, ShouldEqual, server.URL+"/p/frieren-big.jpg")
		})

		Convey("Episode pages are mapped to their series", func() {
			entry, err := src.Load(context.Background(), server.URL+"/frieren-episode-5/")
			So(err, ShouldBeNil)
			So(entry.URL, ShouldEqual, server.URL+"/anime/frieren/")
			So(entry.Episodes, ShouldHaveLength, 2)
		})

		Convey("Unreachable pages are not found", func() {
			_, err := src.Load(context.Background(), server.URL+"/anime/missing/")
			So(errors.Is(err, source.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestStreams(t *testing.T) {
	Convey("Given an episode with three download links", t, func() {
		server, src := newFixture()
		defer server.Close()

		report, err := src.Streams(context.Background(), server.URL+"/frieren-episode-5/")
		So(err, ShouldBeNil)

		Convey("Each link is a mirror labelled by its row", func() {
			So(report.Outcomes, ShouldHaveLength, 3)
			So(report.Outcomes[0].Mirror, ShouldEqual, "MP4HD")
			So(report.Outcomes[2].Mirror, ShouldEqual, "FULLHD")
		})

		Convey("Qualities come from the row label", func() {
			report.SortByQuality()
			So(report.Links, ShouldHaveLength, 2)
			So(report.Links[0].Quality, ShouldEqual, source.P1080)
			So(report.Links[1].Quality, ShouldEqual, source.P720)
		})

		Convey("The dead link is reported", func() {
			So(report.Failed(), ShouldHaveLength, 1)
		})
	})

	Convey("An unreachable episode yields an empty report", t, func() {
		server, src := newFixture()
		defer server.Close()

		report, err := src.Streams(context.Background(), server.URL+"/missing-episode/")
		So(err, ShouldBeNil)
		So(report.Links, ShouldBeEmpty)
	})
}
