package query

import (
	"testing"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given remembered queries", t, func() {
		So(Remember("frieren", 1, "anizone"), ShouldBeNil)
		So(Remember("  FRIEREN  beyond ", 10, "animesail", "anizone"), ShouldBeNil)

		Convey("Suggestions are ordered by rank", func() {
			suggestions := SuggestMany("frie")
			So(len(suggestions), ShouldBeGreaterThanOrEqualTo, 2)
			So(suggestions[0], ShouldEqual, "frieren beyond")
		})

		Convey("Sources are merged without duplicates", func() {
			record := Recent(1)[0]
			So(record.Query, ShouldEqual, "frieren beyond")
			So(record.Sources, ShouldResemble, []string{"animesail", "anizone"})
		})

		Convey("Forgotten queries are no longer suggested", func() {
			So(Forget("Frieren Beyond"), ShouldBeNil)
			So(SuggestMany("beyond"), ShouldBeEmpty)
		})

		Convey("Suggestions can be switched off", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(Suggest("frie").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Blank queries are ignored", t, func() {
		So(Remember("   ", 1), ShouldBeNil)
		So(SuggestMany(""), ShouldNotContain, "")
	})
}
