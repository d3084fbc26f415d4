package game

import "time"

// Pacer spaces frames. In fixed mode it sleeps Target after every frame;
// in adaptive mode it sleeps only what remains of Target since Begin.
type Pacer struct {
	Target   time.Duration
	Adaptive bool

	Now   func() time.Time
	Sleep func(time.Duration)

	start time.Time
}

// NewPacer returns a pacer on the wall clock.
func NewPacer(target time.Duration, adaptive bool) *Pacer {
	return &Pacer{
		Target:   target,
		Adaptive: adaptive,
		Now:      time.Now,
		Sleep:    time.Sleep,
	}
}

// Begin marks the start of a frame.
func (p *Pacer) Begin() {
	p.start = p.Now()
}

// Wait sleeps until the frame's time is used up and returns how long it slept.
func (p *Pacer) Wait() time.Duration {
	d := p.Target
	if p.Adaptive {
		d -= p.Now().Sub(p.start)
	}
	if d <= 0 {
		return 0
	}
	p.Sleep(d)
	return d
}
