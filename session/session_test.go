package session

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/player"
	"github.com/playshell/playshell/protocol"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func next(statuses <-chan protocol.Status) protocol.Status {
	select {
	case status := <-statuses:
		return status
	case <-time.After(2 * time.Second):
		return protocol.Status{Kind: "timeout"}
	}
}

func TestSession(t *testing.T) {
	Convey("Given a session on the virtual backend", t, func() {
		viper.Set(key.PlayerBackend, player.BackendVirtual)
		viper.Set(key.PlayerVirtualDuration, 180)
		viper.Set(key.PlayerProgressInterval, 1000)
		viper.Set(key.PlayerQueue, []string{})
		viper.Set(key.ChannelBuffer, 16)

		clock := clockwork.NewFakeClock()
		s, err := Start(context.Background(), Options{Clock: clock})
		So(err, ShouldBeNil)
		defer func() { So(s.Close(), ShouldBeNil) }()

		end := s.Controller()
		So(next(end.Statuses()), ShouldResemble, protocol.EngineReady())

		Convey("Loading and playing local media reports progress", func() {
			So(end.Send(protocol.LoadMedia("track.mp3")), ShouldBeNil)
			So(next(end.Statuses()), ShouldResemble, protocol.Loaded("track.mp3"))
			So(next(end.Statuses()), ShouldResemble, protocol.DurationKnown(180))

			So(end.Send(protocol.Play()), ShouldBeNil)
			So(next(end.Statuses()), ShouldResemble, protocol.Playing("track.mp3"))

			clock.Advance(time.Second)
			So(next(end.Statuses()), ShouldResemble, protocol.Progress(1, 180))
		})
	})

	Convey("An unknown backend is rejected", t, func() {
		viper.Set(key.PlayerBackend, "vlc")
		_, err := Start(context.Background(), Options{})
		So(err, ShouldNotBeNil)
	})
}
