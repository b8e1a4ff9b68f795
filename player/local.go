package player

// Probe checks a local source before it is handed to the element.
type Probe func(src string) error

// Local plays local media sources through an Element.
type Local struct {
	elem  Element
	probe Probe
	sink  Sink
	src   string
}

// NewLocal returns a local media backend. A nil probe accepts every source.
func NewLocal(elem Element, probe Probe, sink Sink) *Local {
	return &Local{
		elem:  elem,
		probe: probe,
		sink:  sink,
	}
}

func (l *Local) Kind() Kind {
	return KindLocal
}

func (l *Local) Source() string {
	return l.src
}

func (l *Local) Title() string {
	return MediaTitle(l.src)
}

func (l *Local) Check(src string) error {
	if l.probe == nil {
		return nil
	}
	return l.probe(src)
}

func (l *Local) Load(src string) error {
	if err := l.Check(src); err != nil {
		return err
	}

	if err := l.elem.Open(src, l.sink); err != nil {
		return err
	}

	l.src = src
	return nil
}

func (l *Local) Play() error {
	return l.elem.Play()
}

func (l *Local) Pause() error {
	return l.elem.Pause()
}

func (l *Local) Seek(seconds float64) error {
	return l.elem.Seek(seconds)
}

func (l *Local) SetRate(rate float64) (float64, error) {
	if err := l.elem.SetRate(rate); err != nil {
		return l.elem.Rate(), err
	}

	return l.elem.Rate(), nil
}

func (l *Local) Duration() float64 {
	return l.elem.Duration()
}

func (l *Local) AtEnd() bool {
	return l.elem.AtEnd()
}

func (l *Local) CurrentTime() float64 {
	return l.elem.Position()
}

// Close unloads the element. A backend that never loaded leaves it alone.
func (l *Local) Close() error {
	if l.src == "" {
		return nil
	}

	l.src = ""
	return l.elem.Close()
}
