package recent

import (
	"testing"

	"github.com/playshell/playshell/filesystem"
	"github.com/playshell/playshell/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestRegistry(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.RecentRemember, true)
		viper.Set(key.RecentLimit, 10)

		registry := At("/cache/recent.json")

		Convey("Nothing is suggested", func() {
			So(registry.SuggestMany(""), ShouldBeEmpty)
			So(registry.Suggest("tar").IsPresent(), ShouldBeFalse)
		})

		Convey("When media is loaded several times", func() {
			So(registry.Remember("local", "high street tarantella.mp3"), ShouldBeNil)
			So(registry.Remember("local", "tarot.ogg"), ShouldBeNil)
			So(registry.Remember("local", "tarot.ogg"), ShouldBeNil)
			So(registry.Remember("embedded", "dQw4w9WgXcQ"), ShouldBeNil)

			Convey("Then matches come back most loaded first", func() {
				suggestions := registry.SuggestMany("TAR")
				So(suggestions, ShouldHaveLength, 2)
				So(suggestions[0], ShouldResemble, Entry{Kind: "local", Ref: "tarot.ogg", Rank: 2})
				So(suggestions[1].Ref, ShouldEqual, "high street tarantella.mp3")
			})

			Convey("Then entries survive reopening", func() {
				best := At("/cache/recent.json").Suggest("dq")
				So(best.IsPresent(), ShouldBeTrue)
				So(best.MustGet().Kind, ShouldEqual, "embedded")
			})

			Convey("Then the limit is applied", func() {
				viper.Set(key.RecentLimit, 1)
				So(registry.SuggestMany(""), ShouldHaveLength, 1)
			})

			Convey("Then clearing forgets everything", func() {
				So(registry.Clear(), ShouldBeNil)
				So(At("/cache/recent.json").SuggestMany(""), ShouldBeEmpty)
				So(registry.Clear(), ShouldBeNil)
			})
		})

		Convey("When remembering is disabled", func() {
			viper.Set(key.RecentRemember, false)
			So(registry.Remember("local", "a.mp3"), ShouldBeNil)
			viper.Set(key.RecentRemember, true)

			So(registry.SuggestMany(""), ShouldBeEmpty)
		})
	})
}
