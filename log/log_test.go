package log

import (
	"bytes"
	"testing"

	"github.com/playshell/playshell/filesystem"
	"github.com/playshell/playshell/key"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup succeeds and nothing is written", func() {
			So(Setup(), ShouldBeNil)
			So(func() { Info("dropped") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "not-a-level")
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup falls back to the info level", func() {
			So(Setup(), ShouldBeNil)
			So(logger.GetLevel(), ShouldEqual, logrus.InfoLevel)
		})
	})
}

func TestSetOutput(t *testing.T) {
	Convey("Given a captured output", t, func() {
		var buf bytes.Buffer
		SetOutput(&buf, logrus.DebugLevel)

		Convey("Structured fields are rendered", func() {
			With(Fields{"action": "play"}).Warn("command dropped")
			So(buf.String(), ShouldContainSubstring, "action=play")
			So(buf.String(), ShouldContainSubstring, "command dropped")
		})

		Convey("Levels below the threshold are filtered", func() {
			SetOutput(&buf, logrus.WarnLevel)
			Debugf("hidden %d", 1)
			So(buf.String(), ShouldNotContainSubstring, "hidden")
		})
	})
}
