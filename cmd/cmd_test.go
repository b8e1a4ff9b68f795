package cmd

import (
	"testing"

	"github.com/playshell/playshell/config"
	"github.com/playshell/playshell/controller"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestParseValue(t *testing.T) {
	Convey("Raw values are converted to the type of the default", t, func() {
		v, err := parseValue(config.Default[key.PlayerProgressInterval], []string{"250"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 250)

		v, err = parseValue(config.Default[key.RecentRemember], []string{"false"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = parseValue(config.Default[key.PlayerQueue], []string{"a.mp3", "b.mp3"})
		So(err, ShouldBeNil)
		So(v, ShouldResemble, []string{"a.mp3", "b.mp3"})

		v, err = parseValue(config.Default[key.PlayerBackend], []string{"virtual"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "virtual")
	})

	Convey("Malformed values are rejected", t, func() {
		_, err := parseValue(config.Default[key.PlayerProgressInterval], []string{"fast"})
		So(err, ShouldNotBeNil)

		_, err = parseValue(config.Default[key.RecentRemember], nil)
		So(err, ShouldNotBeNil)
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Unknown keys suggest the closest known key", t, func() {
		err := errUnknownKey("player.backnd")
		So(err.Error(), ShouldContainSubstring, key.PlayerBackend)
	})
}

func TestSelectionFromFlags(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "test"}
		addSelectionFlags(c)
		c.Flags().String("link", "", "")
		return c
	}

	Convey("Given a default media", t, func() {
		viper.Set(key.PlayerDefaultMedia, "high street tarantella.mp3")

		Convey("No flags select the default", func() {
			sel, err := selectionFromFlags(newCmd())
			So(err, ShouldBeNil)
			So(sel, ShouldResemble, controller.Selection{Type: controller.MediaLocal, Ref: "high street tarantella.mp3"})
		})

		Convey("--embed selects a video", func() {
			c := newCmd()
			So(c.Flags().Set("embed", "dQw4w9WgXcQ"), ShouldBeNil)

			sel, err := selectionFromFlags(c)
			So(err, ShouldBeNil)
			So(sel, ShouldResemble, controller.Selection{Type: controller.MediaEmbedded, Ref: "dQw4w9WgXcQ"})
		})

		Convey("--link is parsed with ytid first", func() {
			c := newCmd()
			So(c.Flags().Set("link", "http://localhost/?mediasrc=a.mp3&ytid=abc"), ShouldBeNil)

			sel, err := selectionFromFlags(c)
			So(err, ShouldBeNil)
			So(sel, ShouldResemble, controller.Selection{Type: controller.MediaEmbedded, Ref: "abc"})
		})
	})
}

func TestEnvVariables(t *testing.T) {
	Convey("Every setting has a prefixed variable", t, func() {
		vars := envVariables()
		So(vars, ShouldContain, "PLAYSHELL_PLAYER_BACKEND")
		So(vars, ShouldContain, "PLAYSHELL_TUI_SEEK_STEP")
		So(vars, ShouldContain, where.EnvConfigPath)
	})
}
