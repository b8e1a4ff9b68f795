package player

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/key"
	"github.com/spf13/viper"
)

const (
	BackendMPV     = "mpv"
	BackendVirtual = "virtual"
)

// Factory builds backends for the configured element implementation.
// The mpv process is shared by every backend it builds.
type Factory struct {
	clock    clockwork.Clock
	backend  string
	resolver Resolver
	mpv      *MPV
}

// NewFactory reads the backend configuration. The clock drives virtual elements.
func NewFactory(clock clockwork.Clock) (*Factory, error) {
	f := &Factory{
		clock:   clock,
		backend: viper.GetString(key.PlayerBackend),
	}

	switch f.backend {
	case BackendMPV:
		f.mpv = NewMPV(viper.GetString(key.PlayerMPV))
		if resolver := viper.GetString(key.EmbedResolver); resolver != "" {
			f.resolver = Cached{Resolver: YTDLP{Executable: resolver}, Namespace: resolver}
		} else {
			f.resolver = Passthrough{}
		}
	case BackendVirtual:
		f.resolver = Passthrough{}
	default:
		return nil, fmt.Errorf("unknown player backend %q, expected %s or %s", f.backend, BackendMPV, BackendVirtual)
	}

	return f, nil
}

// New returns a fresh backend of the given kind reporting to sink.
func (f *Factory) New(kind Kind, sink Sink) (Backend, error) {
	switch kind {
	case KindLocal:
		if f.mpv != nil {
			return NewLocal(f.mpv, ProbeFile, sink), nil
		}
		return NewLocal(f.virtual(), ProbeName, sink), nil
	case KindEmbedded:
		if f.mpv != nil {
			return NewEmbedded(f.resolver, f.mpv, constant.EmbedRates, sink), nil
		}
		return NewEmbedded(f.resolver, f.virtual(), constant.EmbedRates, sink), nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", kind)
	}
}

// Check reports whether ref could be loaded by a backend of the given kind
// without building one.
func (f *Factory) Check(kind Kind, ref string) error {
	switch kind {
	case KindLocal:
		if f.mpv != nil {
			return ProbeFile(ref)
		}
		return ProbeName(ref)
	case KindEmbedded:
		return CheckVideoID(ref)
	default:
		return fmt.Errorf("unknown backend kind %q", kind)
	}
}

// Close stops the shared mpv process, if any.
func (f *Factory) Close() error {
	if f.mpv != nil {
		return f.mpv.Shutdown()
	}
	return nil
}

func (f *Factory) virtual() *Virtual {
	seconds := viper.GetInt(key.PlayerVirtualDuration)
	return NewVirtual(f.clock, time.Duration(seconds)*time.Second)
}
