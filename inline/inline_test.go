package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeSource struct {
	id      string
	titles  []string
	failing bool
}

func (f *fakeSource) ID() string                    { return f.id }
func (f *fakeSource) Name() string                  { return strings.ToUpper(f.id) }
func (f *fakeSource) Lang() string                  { return "en" }
func (f *fakeSource) Categories() []source.Category { return nil }

func (f *fakeSource) Browse(context.Context, source.Category, int) (*source.Page, error) {
	return &source.Page{}, nil
}

func (f *fakeSource) Search(_ context.Context, q string) ([]*source.SearchResult, error) {
	if f.failing {
		return nil, errors.New("site down")
	}
	return lo.Map(f.titles, func(title string, _ int) *source.SearchResult {
		return &source.SearchResult{Title: title, URL: f.id + "/" + title, Source: f.id}
	}), nil
}

func (f *fakeSource) Load(_ context.Context, url string) (*source.MediaEntry, error) {
	return &source.MediaEntry{
		SearchResult: source.SearchResult{Title: url, URL: url, Source: f.id},
		Episodes: []*source.Episode{
			{Number: mo.Some(1), Data: url + "#1"},
			{Number: mo.Some(2), Name: "The Journey", Data: url + "#2"},
			{Number: mo.Some(3), Data: url + "#3"},
		},
	}, nil
}

func (f *fakeSource) Streams(_ context.Context, data string) (*source.StreamReport, error) {
	report := &source.StreamReport{}
	report.Record("low", []*source.StreamLink{{URL: data + ".480.mp4", Quality: source.P480}}, nil)
	report.Record("high", []*source.StreamLink{{URL: data + ".1080.mp4", Quality: source.P1080}}, nil)
	return report, nil
}

func episodes(n int) []*source.Episode {
	return lo.Times(n, func(i int) *source.Episode {
		return &source.Episode{Number: mo.Some(i + 1), Data: string(rune('a' + i))}
	})
}

func TestParsePicker(t *testing.T) {
	results := []*source.SearchResult{{Title: "Frieren Movie"}, {Title: "Frieren"}, {Title: "Dandadan"}}

	Convey("Pickers", t, func() {
		first, err := ParsePicker("first", "")
		So(err, ShouldBeNil)
		So(first(results).Title, ShouldEqual, "Frieren Movie")

		last, _ := ParsePicker("last", "")
		So(last(results).Title, ShouldEqual, "Dandadan")

		best, _ := ParsePicker("best", "frieren")
		So(best(results).Title, ShouldEqual, "Frieren")

		index, _ := ParsePicker("1", "")
		So(index(results).Title, ShouldEqual, "Frieren")
		So(index(nil), ShouldBeNil)

		_, err = ParsePicker("someday", "")
		So(err, ShouldNotBeNil)
	})
}

func TestParseEpisodesFilter(t *testing.T) {
	Convey("Episode filters", t, func() {
		list := episodes(5)
		data := func(eps []*source.Episode) []string {
			return lo.Map(eps, func(e *source.Episode, _ int) string { return e.Data })
		}

		for _, tc := range []struct {
			description string
			want        []string
		}{
			{"first", []string{"a"}},
			{"last", []string{"e"}},
			{"all", []string{"a", "b", "c", "d", "e"}},
			{"2", []string{"c"}},
			{"9", []string{}},
			{"1-3", []string{"b", "c", "d"}},
			{"3-10", []string{"d", "e"}},
			{"#4", []string{"d"}},
			{"@episode 5@", []string{"e"}},
		} {
			filter, err := ParseEpisodesFilter(tc.description)
			So(err, ShouldBeNil)
			So(data(filter(list)), ShouldResemble, tc.want)
		}

		_, err := ParseEpisodesFilter("1-x")
		So(err, ShouldNotBeNil)
		_, err = ParseEpisodesFilter("#x")
		So(err, ShouldNotBeNil)
	})
}

func TestSearch(t *testing.T) {
	Convey("Given two sources and a broken one", t, func() {
		sources := []source.Source{
			&fakeSource{id: "a", titles: []string{"Frieren Beyond Journey's End", "Frieren"}},
			&fakeSource{id: "broken", failing: true},
			&fakeSource{id: "b", titles: []string{"Frieren 2"}},
		}

		Convey("Relevance puts the closest titles first", func() {
			viper.Set(key.SearchSort, "relevance")
			results := Search(context.Background(), sources, "frieren")
			So(lo.Map(results, func(r *source.SearchResult, _ int) string { return r.Title }), ShouldResemble,
				[]string{"Frieren", "Frieren 2", "Frieren Beyond Journey's End"})
		})

		Convey("Source order keeps results grouped", func() {
			viper.Set(key.SearchSort, "source")
			defer viper.Set(key.SearchSort, "relevance")
			results := Search(context.Background(), sources, "frieren")
			So(lo.Map(results, func(r *source.SearchResult, _ int) string { return r.Source }), ShouldResemble,
				[]string{"a", "a", "b"})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a source", t, func() {
		viper.Set(key.SearchSort, "relevance")
		src := &fakeSource{id: "a", titles: []string{"Frieren", "Frieren Movie"}}
		var out bytes.Buffer

		Convey("JSON output carries the picked entry and its streams", func() {
			picker, _ := ParsePicker("first", "frieren")
			filter, _ := ParseEpisodesFilter("#2")

			err := Run(context.Background(), &Options{
				Out:      &out,
				Sources:  []source.Source{src},
				Json:     true,
				Query:    "frieren",
				Picker:   mo.Some(picker),
				Episodes: mo.Some(filter),
				Streams:  true,
			})
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(out.Bytes(), &decoded), ShouldBeNil)
			So(decoded["query"], ShouldEqual, "frieren")

			result := decoded["result"].([]any)
			So(result, ShouldHaveLength, 1)

			streams := result[0].(map[string]any)["streams"].([]any)
			So(streams, ShouldHaveLength, 1)
			So(streams[0].(map[string]any)["episode"], ShouldEqual, "The Journey")

			links := streams[0].(map[string]any)["report"].(map[string]any)["links"].([]any)
			So(links[0].(map[string]any)["quality"], ShouldEqual, "1080p")
		})

		Convey("Plain output lists episode data", func() {
			picker, _ := ParsePicker("0", "")
			err := Run(context.Background(), &Options{
				Out:     &out,
				Sources: []source.Source{src},
				Query:   "frieren",
				Picker:  mo.Some(picker),
			})
			So(err, ShouldBeNil)
			So(strings.Fields(out.String()), ShouldResemble, []string{"a/Frieren#1", "a/Frieren#2", "a/Frieren#3"})
		})

		Convey("No results still produce a JSON document", func() {
			err := Run(context.Background(), &Options{
				Out:     &out,
				Sources: []source.Source{&fakeSource{id: "empty"}},
				Json:    true,
				Query:   "nothing",
			})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, `"result": []`)
		})
	})
}
