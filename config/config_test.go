package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.StreamsConcurrency), ShouldEqual, 5)
			So(viper.GetString(key.AniZoneURL), ShouldEqual, "https://anizone.to")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("network.retry_wait")
			So(result, ShouldEqual, "network_retry_wait")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.NetworkTimeout]

		Convey("Env should be prefixed with the app name", func() {
			So(field.Env(), ShouldEqual, "MIRAI_NETWORK_TIMEOUT")
		})

		Convey("typeName should follow the default value", func() {
			So(field.typeName(), ShouldEqual, "int")

			sources := Default[key.DefaultSources]
			So(sources.typeName(), ShouldEqual, "[]string")
		})

		Convey("MarshalJSON should include the default", func() {
			data, err := json.Marshal(&field)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded["key"], ShouldEqual, key.NetworkTimeout)
			So(decoded["default"], ShouldEqual, float64(20))
			So(decoded["type"], ShouldEqual, "int")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Field.Parse converts to the default's type", t, func() {
		timeout := Default[key.NetworkTimeout]
		v, err := timeout.Parse([]string{"30"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 30)

		_, err = timeout.Parse([]string{"-1"})
		So(err, ShouldNotBeNil)

		cache := Default[key.CacheEnabled]
		v, err = cache.Parse([]string{"true"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, true)

		sources := Default[key.DefaultSources]
		v, err = sources.Parse([]string{"anizone", "nimegami"})
		So(err, ShouldBeNil)
		So(v, ShouldResemble, []string{"anizone", "nimegami"})

		_, err = sources.Parse(nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Restricted fields reject unknown options", t, func() {
		sort := Default[key.SearchSort]
		_, err := sort.Parse([]string{"alphabetical"})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "relevance, source")

		player := Default[key.Player]
		v, err := player.Parse([]string{"vlc"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "vlc")
	})
}

func TestPath(t *testing.T) {
	Convey("The config file is mirai.toml in the config directory", t, func() {
		So(filepath.Base(Path()), ShouldEqual, "mirai.toml")
	})
}
