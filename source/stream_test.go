package source

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStreamReport(t *testing.T) {
	Convey("Given a report with one good and one broken mirror", t, func() {
		report := &StreamReport{}
		report.Record("arch", []*StreamLink{
			{Name: "Arch", URL: "https://a/480.mp4", Quality: P480},
			{Name: "Arch", URL: "https://a/1080.mp4", Quality: P1080},
		}, nil)
		report.Record("pixel", nil, errors.New("HTTP 500"))

		Convey("Both outcomes are kept", func() {
			So(report.Outcomes, ShouldHaveLength, 2)
			So(report.Links, ShouldHaveLength, 2)
		})

		Convey("Failed lists only the broken mirror", func() {
			failed := report.Failed()
			So(failed, ShouldHaveLength, 1)
			So(failed[0].Mirror, ShouldEqual, "pixel")
			So(failed[0].Error, ShouldEqual, "HTTP 500")
		})

		Convey("SortByQuality puts the best link first", func() {
			report.SortByQuality()
			So(report.Links[0].Quality, ShouldEqual, P1080)
		})
	})
}

func TestStreamLink(t *testing.T) {
	Convey("RequestHeaders folds the referer in without touching Headers", t, func() {
		link := &StreamLink{Referer: "https://site/", Headers: map[string]string{"Origin": "https://site"}}
		headers := link.RequestHeaders()

		So(headers["Referer"], ShouldEqual, "https://site/")
		So(headers["Origin"], ShouldEqual, "https://site")
		So(link.Headers, ShouldHaveLength, 1)
	})

	Convey("KindOf recognizes manifests", t, func() {
		So(KindOf("https://cdn/x/master.M3U8?t=1"), ShouldEqual, M3U8)
		So(KindOf("https://cdn/x/video.mp4"), ShouldEqual, Video)
	})
}
