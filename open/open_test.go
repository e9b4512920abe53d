package open

import (
	"testing"

	"github.com/anisan-cli/mirai/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	const page = "https://anizone.to/anime/frieren?x=1&y=2"

	Convey("The default handler depends on the platform", t, func() {
		cmd, ok := command(constant.Darwin, page)
		So(ok, ShouldBeTrue)
		So(cmd.Args, ShouldResemble, []string{"open", page})

		cmd, ok = command(constant.Linux, page)
		So(ok, ShouldBeTrue)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", page})

		_, ok = command("plan9", page)
		So(ok, ShouldBeFalse)
	})

	Convey("A chosen application is passed through", t, func() {
		cmd, ok := commandWith(constant.Darwin, page, "Firefox")
		So(ok, ShouldBeTrue)
		So(cmd.Args, ShouldResemble, []string{"open", "-a", "Firefox", page})

		cmd, ok = commandWith(constant.Windows, page, "firefox")
		So(ok, ShouldBeTrue)
		So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://anizone.to/anime/frieren?x=1^&y=2")
	})
}
