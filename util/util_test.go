package util

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/anisan-cli/mirai/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "episode", "episodes"), ShouldEqual, "1 episode")
		So(Quantify(0, "episode", "episodes"), ShouldEqual, "0 episodes")
		So(Quantify(12, "episode", "episodes"), ShouldEqual, "12 episodes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("cached results"), ShouldEqual, "Cached results")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		api := filesystem.API()

		So(api.MkdirAll("/cache/results", 0o755), ShouldBeNil)
		So(api.WriteFile("/cache/results/anizone_search.json", []byte("{}"), 0o644), ShouldBeNil)
		So(api.WriteFile("/cache/queries.json", []byte("{}"), 0o644), ShouldBeNil)

		Convey("Files are removed", func() {
			So(Delete("/cache/queries.json"), ShouldBeNil)
			exists, _ := api.Exists("/cache/queries.json")
			So(exists, ShouldBeFalse)
		})

		Convey("Directories are removed with their contents", func() {
			So(Delete("/cache/results"), ShouldBeNil)
			exists, _ := api.Exists("/cache/results/anizone_search.json")
			So(exists, ShouldBeFalse)
		})

		Convey("Missing paths report not exist", func() {
			So(errors.Is(Delete("/nowhere"), fs.ErrNotExist), ShouldBeTrue)
		})
	})
}
