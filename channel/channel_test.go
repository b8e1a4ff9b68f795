package channel

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/playshell/playshell/protocol"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPipe(t *testing.T) {
	Convey("Given a pipe", t, func() {
		pipe := New(2)
		engine, controller := pipe.Engine(), pipe.Controller()

		Convey("When the controller sends before the engine listens", func() {
			err := controller.Send(protocol.Play())

			Convey("Then the command is dropped as not ready", func() {
				So(errors.Is(err, protocol.ErrNotReady), ShouldBeTrue)

				commands := engine.Listen()
				So(len(commands), ShouldEqual, 0)
			})
		})

		Convey("When the engine listens", func() {
			commands := engine.Listen()

			Convey("Then commands arrive in order", func() {
				So(controller.Send(protocol.LoadMedia("a.mp3")), ShouldBeNil)
				So(controller.Send(protocol.Play()), ShouldBeNil)
				So(<-commands, ShouldResemble, protocol.LoadMedia("a.mp3"))
				So(<-commands, ShouldResemble, protocol.Play())
			})

			Convey("Then a full queue drops without blocking", func() {
				So(controller.Send(protocol.Play()), ShouldBeNil)
				So(controller.Send(protocol.Pause()), ShouldBeNil)
				So(errors.Is(controller.Send(protocol.Play()), ErrFull), ShouldBeTrue)
			})
		})

		Convey("When the engine emits statuses", func() {
			So(engine.Emit(protocol.EngineReady()), ShouldBeNil)
			So(engine.Emit(protocol.Loaded("a.mp3")), ShouldBeNil)

			Convey("Then the controller receives them in order", func() {
				So(<-controller.Statuses(), ShouldResemble, protocol.EngineReady())
				So(<-controller.Statuses(), ShouldResemble, protocol.Loaded("a.mp3"))
			})

			Convey("Then overflow is dropped", func() {
				So(errors.Is(engine.Emit(protocol.Paused()), ErrFull), ShouldBeTrue)
			})
		})
	})
}

func TestServeLines(t *testing.T) {
	Convey("Given a listening engine and queued statuses", t, func() {
		pipe := New(8)
		engine := pipe.Engine()
		commands := engine.Listen()
		So(engine.Emit(protocol.EngineReady()), ShouldBeNil)
		So(engine.Emit(protocol.Seeked(10, 200)), ShouldBeNil)

		input := strings.Join([]string{
			`{"action":"loadMedia","src":"a.mp3"}`,
			`not json`,
			``,
			`{"action":"rewind"}`,
			`{"action":"seek","time":10}`,
		}, "\n")

		var output bytes.Buffer

		Convey("When the lines are served", func() {
			err := ServeLines(context.Background(), pipe.Controller(), strings.NewReader(input), &output)

			Convey("Then valid commands reach the engine", func() {
				So(err, ShouldBeNil)
				So(len(commands), ShouldEqual, 2)
				So(<-commands, ShouldResemble, protocol.LoadMedia("a.mp3"))
				So(<-commands, ShouldResemble, protocol.Seek(10))
			})

			Convey("Then statuses are written as lines", func() {
				var got []protocol.Status
				So(ReadStatuses(&output, func(s protocol.Status) {
					got = append(got, s)
				}), ShouldBeNil)
				So(got, ShouldResemble, []protocol.Status{
					protocol.EngineReady(),
					protocol.Seeked(10, 200),
				})
			})
		})
	})
}
