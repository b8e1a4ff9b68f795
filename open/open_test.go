package open

import (
	"testing"

	"github.com/playshell/playshell/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("The handler depends on the platform", t, func() {
		cmd, ok := command(constant.Linux, "http://localhost/?ytid=abc")
		So(ok, ShouldBeTrue)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "http://localhost/?ytid=abc"})

		cmd, ok = command(constant.Darwin, "http://localhost/")
		So(ok, ShouldBeTrue)
		So(cmd.Args[0], ShouldEqual, "open")

		_, ok = command("plan9", "http://localhost/")
		So(ok, ShouldBeFalse)
	})
}
