package log

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Calls are silently dropped", func() {
			So(func() { Source("anizone").Warnf("dropped %d", 1) }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("Source entries are written with their fields", func() {
			Source("animesail").With("mirror", "arch").Warnf("mirror failed")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			content := string(lo.Must(filesystem.API().ReadFile(path)))
			So(content, ShouldContainSubstring, "mirror failed")
			So(strings.Contains(content, "source=animesail"), ShouldBeTrue)
			So(content, ShouldContainSubstring, "mirror=arch")
		})
	})
}

func TestEntryWith(t *testing.T) {
	Convey("With does not mutate the parent entry", t, func() {
		parent := Source("nimegami")
		child := parent.With("episode", 3)

		So(parent.fields, ShouldHaveLength, 1)
		So(child.fields, ShouldHaveLength, 2)
		So(child.fields["source"], ShouldEqual, "nimegami")
	})
}
