package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/filesystem"
	"github.com/playshell/playshell/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// recorder collects events raised through its sink.
type recorder chan Event

func newRecorder() recorder {
	return make(recorder, 32)
}

func (r recorder) sink() Sink {
	return func(ev Event) { r <- ev }
}

func (r recorder) next() Event {
	select {
	case ev := <-r:
		return ev
	case <-time.After(time.Second):
		return Event{Kind: -1}
	}
}

func (r recorder) kinds() []EventKind {
	var kinds []EventKind
	for {
		select {
		case ev := <-r:
			kinds = append(kinds, ev.Kind)
		default:
			return kinds
		}
	}
}

func TestVirtual(t *testing.T) {
	Convey("Given a virtual element with a 200 second duration", t, func() {
		clock := clockwork.NewFakeClock()
		events := newRecorder()
		v := NewVirtual(clock, 200*time.Second)

		Convey("Operations before opening fail", func() {
			So(errors.Is(v.Play(), ErrNothingOpen), ShouldBeTrue)
			So(v.Duration(), ShouldEqual, 0)
		})

		Convey("When a target is opened", func() {
			So(v.Open("track.mp3", events.sink()), ShouldBeNil)

			Convey("Then the duration is reported", func() {
				ev := events.next()
				So(ev.Kind, ShouldEqual, EventDuration)
				So(ev.Duration, ShouldEqual, 200)
			})

			Convey("Then playback advances with the clock", func() {
				So(v.Play(), ShouldBeNil)
				So(events.kinds(), ShouldResemble, []EventKind{EventDuration, EventPlaying})

				clock.Advance(10 * time.Second)
				So(v.Position(), ShouldAlmostEqual, 10)
				So(v.AtEnd(), ShouldBeFalse)

				So(v.SetRate(2), ShouldBeNil)
				clock.Advance(5 * time.Second)
				So(v.Position(), ShouldAlmostEqual, 20)

				So(v.Pause(), ShouldBeNil)
				So(events.next().Kind, ShouldEqual, EventPaused)

				clock.Advance(time.Minute)
				So(v.Position(), ShouldAlmostEqual, 20)
			})

			Convey("Then pausing while paused raises nothing", func() {
				events.kinds()
				So(v.Pause(), ShouldBeNil)
				So(events.kinds(), ShouldBeEmpty)
			})

			Convey("Then reaching the end pauses and ends", func() {
				So(v.Seek(195), ShouldBeNil)
				So(v.Play(), ShouldBeNil)
				events.kinds()

				clock.Advance(5 * time.Second)
				So(events.next().Kind, ShouldEqual, EventPaused)
				So(events.next().Kind, ShouldEqual, EventEnded)
				So(v.Position(), ShouldEqual, 200)
				So(v.AtEnd(), ShouldBeTrue)

				Convey("And playing again restarts from zero", func() {
					So(v.Play(), ShouldBeNil)
					So(v.Position(), ShouldEqual, 0)
				})
			})

			Convey("Then closing silences pending timers", func() {
				So(v.Play(), ShouldBeNil)
				So(v.Close(), ShouldBeNil)
				events.kinds()

				clock.Advance(time.Hour)
				So(events.kinds(), ShouldBeEmpty)
			})
		})
	})
}

func TestLocal(t *testing.T) {
	Convey("Given a local backend probing file contents", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.WriteFile("/music/track.mp3", append([]byte("ID3"), make([]byte, 64)...), 0o644), ShouldBeNil)
		So(fs.WriteFile("/music/notes.txt", []byte("just some text"), 0o644), ShouldBeNil)

		events := newRecorder()
		local := NewLocal(NewVirtual(clockwork.NewFakeClock(), time.Minute), ProbeFile, events.sink())
		So(local.Kind(), ShouldEqual, KindLocal)

		Convey("Audio files load and take their file name as title", func() {
			So(local.Load("/music/track.mp3"), ShouldBeNil)
			So(local.Title(), ShouldEqual, "track.mp3")
			So(local.Source(), ShouldEqual, "/music/track.mp3")
			So(local.Duration(), ShouldEqual, 60)
		})

		Convey("Missing files fail to load", func() {
			So(local.Load("/music/missing.mp3"), ShouldNotBeNil)
			So(local.Source(), ShouldBeEmpty)
		})

		Convey("Files that are not media fail to load", func() {
			So(errors.Is(local.Load("/music/notes.txt"), ErrNotMedia), ShouldBeTrue)
		})

		Convey("Rates report what the element applied", func() {
			So(local.Load("/music/track.mp3"), ShouldBeNil)
			rate, err := local.SetRate(1.5)
			So(err, ShouldBeNil)
			So(rate, ShouldEqual, 1.5)
		})
	})
}

func TestFactoryCheck(t *testing.T) {
	Convey("Given a factory for virtual elements", t, func() {
		viper.Set(key.PlayerBackend, BackendVirtual)
		factory, err := NewFactory(clockwork.NewFakeClock())
		So(err, ShouldBeNil)

		Convey("Local sources are checked by name", func() {
			So(factory.Check(KindLocal, "track.mp3"), ShouldBeNil)
			So(errors.Is(factory.Check(KindLocal, "notes.txt"), ErrNotMedia), ShouldBeTrue)
		})

		Convey("Embed ids must not be blank", func() {
			So(factory.Check(KindEmbedded, "dQw4w9WgXcQ"), ShouldBeNil)
			So(errors.Is(factory.Check(KindEmbedded, "  "), ErrEmptyVideoID), ShouldBeTrue)
		})

		Convey("Unknown kinds are refused", func() {
			So(factory.Check(Kind("stream"), "x"), ShouldNotBeNil)
		})
	})
}

func TestProbeName(t *testing.T) {
	Convey("Given source names", t, func() {
		So(ProbeName("high street tarantella.mp3"), ShouldBeNil)
		So(ProbeName("clip.MP4"), ShouldBeNil)
		So(ProbeName("https://example.com/a/song.flac?x=1"), ShouldBeNil)
		So(errors.Is(ProbeName("readme.txt"), ErrNotMedia), ShouldBeTrue)
		So(errors.Is(ProbeName("noext"), ErrNotMedia), ShouldBeTrue)
	})
}

func TestMediaTitle(t *testing.T) {
	Convey("Titles are the file name of the source", t, func() {
		So(MediaTitle("music/track.mp3"), ShouldEqual, "track.mp3")
		So(MediaTitle("https://example.com/media/song.ogg"), ShouldEqual, "song.ogg")
		So(MediaTitle("https://example.com/"), ShouldEqual, "example.com")
	})
}

func TestNearestRate(t *testing.T) {
	Convey("Given the embed rates", t, func() {
		So(NearestRate(1.3, constant.EmbedRates), ShouldEqual, 1.25)
		So(NearestRate(3.0, constant.EmbedRates), ShouldEqual, 2.0)
		So(NearestRate(0.25, constant.EmbedRates), ShouldEqual, 0.25)
		So(NearestRate(0.6, constant.EmbedRates), ShouldEqual, 0.5)
		So(NearestRate(1.1, nil), ShouldEqual, 1.1)
	})
}

type gatedResolver struct {
	release chan struct{}
	err     error
}

func (g gatedResolver) Resolve(ctx context.Context, videoID string) (Media, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return Media{}, ctx.Err()
	}

	if g.err != nil {
		return Media{}, g.err
	}
	return Media{URL: "stub://" + videoID, Title: videoID}, nil
}

func TestEmbedded(t *testing.T) {
	Convey("Given an embedded backend whose resolver is held back", t, func() {
		clock := clockwork.NewFakeClock()
		events := newRecorder()
		resolver := gatedResolver{release: make(chan struct{})}
		elem := NewVirtual(clock, 90*time.Second)
		embed := NewEmbedded(resolver, elem, constant.EmbedRates, events.sink())

		So(embed.Kind(), ShouldEqual, KindEmbedded)
		So(embed.Load("dQw4w9WgXcQ"), ShouldBeNil)
		So(embed.Title(), ShouldEqual, "dQw4w9WgXcQ")

		Convey("Play before ready is deferred until the video is cued", func() {
			So(embed.Play(), ShouldBeNil)
			So(embed.Duration(), ShouldEqual, 0)
			So(events.kinds(), ShouldBeEmpty)

			close(resolver.release)
			<-embed.Ready()

			So(events.next().Kind, ShouldEqual, EventDuration)
			So(events.next().Kind, ShouldEqual, EventPlaying)
			So(embed.Duration(), ShouldEqual, 90)
		})

		Convey("A seek before ready is applied once cued", func() {
			So(embed.Seek(30), ShouldBeNil)
			So(embed.CurrentTime(), ShouldEqual, 30)

			close(resolver.release)
			<-embed.Ready()
			So(embed.CurrentTime(), ShouldEqual, 30)
		})

		Convey("Rates are coerced to the supported set", func() {
			rate, err := embed.SetRate(1.3)
			So(err, ShouldBeNil)
			So(rate, ShouldEqual, 1.25)

			close(resolver.release)
			<-embed.Ready()
			So(elem.Rate(), ShouldEqual, 1.25)

			rate, err = embed.SetRate(3.0)
			So(err, ShouldBeNil)
			So(rate, ShouldEqual, 2.0)
		})

		Convey("Closing abandons the pending cue", func() {
			So(embed.Close(), ShouldBeNil)
			<-embed.Ready()
			So(embed.Duration(), ShouldEqual, 0)
			So(events.kinds(), ShouldBeEmpty)
		})
	})

	Convey("Given a resolver that fails", t, func() {
		events := newRecorder()
		resolver := gatedResolver{release: make(chan struct{}), err: errors.New("video unavailable")}
		close(resolver.release)
		embed := NewEmbedded(resolver, NewVirtual(clockwork.NewFakeClock(), time.Minute), constant.EmbedRates, events.sink())

		So(embed.Load("gone"), ShouldBeNil)
		<-embed.Ready()

		ev := events.next()
		So(ev.Kind, ShouldEqual, EventError)
		So(ev.Err, ShouldNotBeNil)
	})
}

func TestPassthrough(t *testing.T) {
	Convey("Passthrough resolves ids to watch pages", t, func() {
		media, err := Passthrough{}.Resolve(context.Background(), "abc")
		So(err, ShouldBeNil)
		So(media.URL, ShouldEqual, "https://www.youtube.com/watch?v=abc")
	})
}

type countingResolver struct {
	calls *int
}

func (c countingResolver) Resolve(_ context.Context, videoID string) (Media, error) {
	*c.calls++
	return Media{URL: "https://cdn.example/" + videoID, Title: "Video " + videoID, Duration: 212}, nil
}

func TestCachedResolver(t *testing.T) {
	Convey("Given a cached resolver", t, func() {
		filesystem.SetMemMapFs()

		var calls int
		resolver := Cached{Resolver: countingResolver{calls: &calls}, Namespace: "yt-dlp"}

		Convey("The second resolution of an id is served from the cache", func() {
			first, err := resolver.Resolve(context.Background(), "dQw4w9WgXcQ")
			So(err, ShouldBeNil)

			second, err := resolver.Resolve(context.Background(), "dQw4w9WgXcQ")
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
			So(calls, ShouldEqual, 1)

			_, err = resolver.Resolve(context.Background(), "jNQXAC9IVRw")
			So(err, ShouldBeNil)
			So(calls, ShouldEqual, 2)
		})
	})
}
