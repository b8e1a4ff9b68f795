package controller

import (
	"errors"
	"testing"

	"github.com/playshell/playshell/protocol"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingSender struct {
	sent []protocol.Command
}

func (r *recordingSender) Send(cmd protocol.Command) error {
	r.sent = append(r.sent, cmd)
	return nil
}

func TestControllerReadiness(t *testing.T) {
	Convey("Given a controller whose engine is not ready", t, func() {
		sender := &recordingSender{}
		c := New(sender, Options{
			Initial: Selection{Type: MediaLocal, Ref: "high street tarantella.mp3"},
		})

		Convey("Gestures are refused without sending", func() {
			So(errors.Is(c.TogglePlay(), protocol.ErrNotReady), ShouldBeTrue)
			So(errors.Is(c.RateUp(), protocol.ErrNotReady), ShouldBeTrue)
			So(c.View().PlaybackRate, ShouldEqual, 1.0)
			So(sender.sent, ShouldBeEmpty)
		})

		Convey("The initial load is sent once the engine is ready", func() {
			c.HandleStatus(protocol.EngineReady())
			So(sender.sent, ShouldResemble, []protocol.Command{protocol.LoadMedia("high street tarantella.mp3")})
			So(c.View().EngineReady, ShouldBeTrue)
		})

		Convey("Only the latest load is kept while waiting", func() {
			So(c.LoadMedia("a.mp3"), ShouldBeNil)
			So(c.LoadEmbed("dQw4w9WgXcQ"), ShouldBeNil)
			So(sender.sent, ShouldBeEmpty)

			c.HandleStatus(protocol.EngineReady())
			So(sender.sent, ShouldResemble, []protocol.Command{protocol.LoadEmbed("dQw4w9WgXcQ")})

			Convey("And a second ready sends nothing more", func() {
				c.HandleStatus(protocol.EngineReady())
				So(sender.sent, ShouldHaveLength, 1)
			})
		})
	})
}

func TestControllerReconciliation(t *testing.T) {
	Convey("Given a ready controller", t, func() {
		sender := &recordingSender{}
		var selected []Selection
		c := New(sender, Options{
			LinkBase: "http://localhost/?theme=dark",
			OnSelect: func(s Selection) { selected = append(selected, s) },
		})
		c.HandleStatus(protocol.EngineReady())

		Convey("Loading media sends it and rewrites the link", func() {
			So(c.LoadMedia("high street tarantella.mp3"), ShouldBeNil)
			So(sender.sent, ShouldResemble, []protocol.Command{protocol.LoadMedia("high street tarantella.mp3")})
			So(c.Link(), ShouldEqual, "http://localhost/?mediasrc=high+street+tarantella.mp3&theme=dark")
			So(selected, ShouldResemble, []Selection{{Type: MediaLocal, Ref: "high street tarantella.mp3"}})

			Convey("And the view takes the selection once loaded", func() {
				So(c.View().CurrentMediaType, ShouldEqual, MediaNone)

				c.HandleStatus(protocol.Loaded("high street tarantella.mp3"))
				So(c.View().CurrentMediaType, ShouldEqual, MediaLocal)
				So(c.View().CurrentMediaRef, ShouldEqual, "high street tarantella.mp3")
				So(c.View().Title, ShouldEqual, "high street tarantella.mp3")
			})

			Convey("And switching to an embed replaces the link parameter", func() {
				So(c.LoadEmbed("dQw4w9WgXcQ"), ShouldBeNil)
				So(c.Link(), ShouldEqual, "http://localhost/?theme=dark&ytid=dQw4w9WgXcQ")
			})
		})

		Convey("Empty selections are refused", func() {
			So(c.LoadMedia(""), ShouldNotBeNil)
			So(sender.sent, ShouldBeEmpty)
		})

		Convey("The play control follows statuses only", func() {
			So(c.TogglePlay(), ShouldBeNil)
			So(sender.sent, ShouldResemble, []protocol.Command{protocol.Play()})
			So(c.View().PlayLabel(), ShouldEqual, "Play")

			c.HandleStatus(protocol.Playing("a.mp3"))
			So(c.View().PlayLabel(), ShouldEqual, "Pause")

			So(c.TogglePlay(), ShouldBeNil)
			So(sender.sent[1], ShouldResemble, protocol.Pause())

			c.HandleStatus(protocol.Ended())
			So(c.View().IsPlaying, ShouldBeFalse)

			c.HandleStatus(protocol.Playing(""))
			c.HandleStatus(protocol.Loaded("b.mp3"))
			So(c.View().IsPlaying, ShouldBeFalse)
		})

		Convey("Rate gestures display optimistically", func() {
			So(c.RateUp(), ShouldBeNil)
			So(c.View().PlaybackRate, ShouldEqual, 1.1)
			So(sender.sent, ShouldResemble, []protocol.Command{protocol.SetRate(1.1)})

			Convey("And settle on the rate the engine reports", func() {
				c.HandleStatus(protocol.RateChanged(1.0))
				So(c.View().RateLabel(), ShouldEqual, "1.0x")
			})

			Convey("And keep climbing past a rate the backend coerces", func() {
				c.HandleStatus(protocol.RateChanged(1.0))
				So(c.RateUp(), ShouldBeNil)
				So(sender.sent[1], ShouldResemble, protocol.SetRate(1.2))

				c.HandleStatus(protocol.RateChanged(1.25))
				So(c.View().PlaybackRate, ShouldEqual, 1.25)
				So(c.RateUp(), ShouldBeNil)
				So(sender.sent[2], ShouldResemble, protocol.SetRate(1.3))
			})

			Convey("And step down from the applied rate when it is far off", func() {
				c.HandleStatus(protocol.RateChanged(2.0))
				So(c.RateDown(), ShouldBeNil)
				So(sender.sent[1], ShouldResemble, protocol.SetRate(1.9))
			})

			Convey("And stay within bounds", func() {
				c.HandleStatus(protocol.RateChanged(3.0))
				So(c.RateUp(), ShouldBeNil)
				So(c.View().RateLabel(), ShouldEqual, "3.0x")
				So(sender.sent[1], ShouldResemble, protocol.SetRate(3.0))
			})
		})

		Convey("The seek slider", func() {
			c.HandleStatus(protocol.DurationKnown(200))
			So(c.View().DurationLabel(), ShouldEqual, "3:20")
			So(c.View().TimeLabel(), ShouldEqual, "0:00")

			c.HandleStatus(protocol.Progress(50, 200))
			So(c.View().SliderPercent, ShouldEqual, 25)
			So(c.View().TimeLabel(), ShouldEqual, "0:50")

			Convey("Ignores progress while dragged", func() {
				c.BeginSeek()
				c.DragSeek(75)
				c.HandleStatus(protocol.Progress(60, 200))

				So(c.View().SliderPercent, ShouldEqual, 75)
				So(c.View().TimeLabel(), ShouldEqual, "2:30")

				Convey("And seeks where it was dropped", func() {
					So(c.EndSeek(), ShouldBeNil)
					So(sender.sent, ShouldResemble, []protocol.Command{protocol.Seek(150)})
					So(c.View().IsUserSeeking, ShouldBeFalse)
					So(c.View().TimeLabel(), ShouldEqual, "1:00")

					c.HandleStatus(protocol.Seeked(150, 200))
					So(c.View().SliderPercent, ShouldEqual, 75)
				})
			})

			Convey("Resets when a new duration arrives", func() {
				c.HandleStatus(protocol.DurationKnown(90))
				So(c.View().SliderPercent, ShouldEqual, 0)
				So(c.View().MediaDuration, ShouldEqual, 90)
			})

			Convey("Keeps the last known duration when none is reported", func() {
				c.HandleStatus(protocol.Progress(70, 0))
				So(c.View().MediaDuration, ShouldEqual, 200)
				So(c.View().TimeLabel(), ShouldEqual, "1:10")
			})
		})
	})
}

func TestControllerQueueAdvance(t *testing.T) {
	Convey("Given a controller playing the head of a queue", t, func() {
		sender := &recordingSender{}
		c := New(sender, Options{
			LinkBase: "http://localhost/",
			Queue:    []string{"music/a.mp3", "music/b.mp3"},
		})
		c.HandleStatus(protocol.EngineReady())

		So(c.LoadMedia("music/a.mp3"), ShouldBeNil)
		c.HandleStatus(protocol.Loaded("a.mp3"))
		So(c.View().CurrentMediaRef, ShouldEqual, "music/a.mp3")

		Convey("When the engine advances to the next item", func() {
			c.HandleStatus(protocol.Ended())
			c.HandleStatus(protocol.Loaded("b.mp3"))

			Convey("Then the view and the link follow it", func() {
				So(c.View().Title, ShouldEqual, "b.mp3")
				So(c.View().CurrentMediaType, ShouldEqual, MediaLocal)
				So(c.View().CurrentMediaRef, ShouldEqual, "music/b.mp3")
				So(c.Selected(), ShouldResemble, Selection{Type: MediaLocal, Ref: "music/b.mp3"})
				So(c.Link(), ShouldEqual, "http://localhost/?mediasrc=music%2Fb.mp3")
				So(sender.sent, ShouldHaveLength, 1)
			})
		})

		Convey("When an embed is loaded", func() {
			So(c.LoadEmbed("dQw4w9WgXcQ"), ShouldBeNil)
			c.HandleStatus(protocol.Loaded("dQw4w9WgXcQ"))

			Convey("Then it is confirmed as requested", func() {
				So(c.View().CurrentMediaType, ShouldEqual, MediaEmbedded)
				So(c.View().CurrentMediaRef, ShouldEqual, "dQw4w9WgXcQ")
			})
		})
	})
}

func TestLink(t *testing.T) {
	Convey("Given deep links", t, func() {
		Convey("The embed parameter wins", func() {
			sel, err := ParseLink("http://localhost/?mediasrc=a.mp3&ytid=abc", "default.mp3")
			So(err, ShouldBeNil)
			So(sel, ShouldResemble, Selection{Type: MediaEmbedded, Ref: "abc"})
		})

		Convey("The media parameter selects local media", func() {
			sel, err := ParseLink("http://localhost/?mediasrc=music%2Fa.mp3", "default.mp3")
			So(err, ShouldBeNil)
			So(sel, ShouldResemble, Selection{Type: MediaLocal, Ref: "music/a.mp3"})
		})

		Convey("No parameter selects the fallback", func() {
			sel, err := ParseLink("http://localhost/", "default.mp3")
			So(err, ShouldBeNil)
			So(sel, ShouldResemble, Selection{Type: MediaLocal, Ref: "default.mp3"})

			sel, err = ParseLink("http://localhost/", "")
			So(err, ShouldBeNil)
			So(sel.Type, ShouldEqual, MediaNone)
		})

		Convey("Building replaces both parameters", func() {
			link, err := BuildLink("http://localhost/?ytid=old&mediasrc=old.mp3", Selection{Type: MediaLocal, Ref: "new.mp3"})
			So(err, ShouldBeNil)
			So(link, ShouldEqual, "http://localhost/?mediasrc=new.mp3")
		})

		Convey("Malformed links are reported", func() {
			_, err := ParseLink("http://[::1", "")
			So(err, ShouldNotBeNil)
		})
	})
}
