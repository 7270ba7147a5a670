package clock

import "time"

// Clock abstracts the current time so every time-driven transition in the
// engine stays deterministic under test. The engine never reads the system
// clock directly.
type Clock interface {
	Now() time.Time
}

// System is the real clock used by the composition root.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fake is a manually controlled clock for tests
type Fake struct {
	current time.Time
}

func NewFake(start time.Time) *Fake {
	return &Fake{current: start}
}

func (f *Fake) Now() time.Time { return f.current }

func (f *Fake) Set(t time.Time) { f.current = t }

func (f *Fake) Advance(d time.Duration) { f.current = f.current.Add(d) }
