package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions are compared component by component", t, func() {
		c, err := Compare("0.38.0", "0.33.1")
		So(err, ShouldBeNil)
		So(c, ShouldEqual, 1)

		c, err = Compare("v1.2", "1.2.0")
		So(err, ShouldBeNil)
		So(c, ShouldEqual, 0)

		c, err = Compare("2024.08.06", "2025.1.1")
		So(err, ShouldBeNil)
		So(c, ShouldEqual, -1)

		_, err = Compare("nightly", "1.0.0")
		So(err, ShouldNotBeNil)
	})

	Convey("AtLeast accepts equal and newer versions only", t, func() {
		So(AtLeast("0.33.0", "0.33.0"), ShouldBeTrue)
		So(AtLeast("0.32.9", "0.33.0"), ShouldBeFalse)
		So(AtLeast("garbage", "0.33.0"), ShouldBeFalse)
	})

	Convey("Extract finds the version in tool banners", t, func() {
		v, ok := Extract("mpv 0.38.0 Copyright © 2000-2024 mpv/MPlayer/mplayer2 projects")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, "0.38.0")

		v, ok = Extract("2024.08.06\n")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, "2024.08.06")

		_, ok = Extract("no version here")
		So(ok, ShouldBeFalse)
	})
}
