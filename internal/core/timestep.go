package core

import "time"

// maxStepsPerAdvance bounds catch-up after a long stall so the simulation
// never spirals trying to replay minutes of backlog.
const maxStepsPerAdvance = 5

// Stepper is a fixed-timestep accumulator. The presentation layer feeds it
// wall-clock time; it answers how many simulation ticks are due.
type Stepper struct {
	step  time.Duration
	acc   time.Duration
	last  time.Time
	begun bool
}

// NewStepper creates a stepper that runs tickRate simulation ticks per second.
func NewStepper(tickRate int) *Stepper {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Stepper{step: time.Second / time.Duration(tickRate)}
}

// Step returns the fixed simulation step duration.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Advance records the current time and returns the number of ticks to run.
// The first call primes the clock and returns one tick.
func (s *Stepper) Advance(now time.Time) int {
	if !s.begun {
		s.begun = true
		s.last = now
		return 1
	}

	elapsed := now.Sub(s.last)
	s.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	s.acc += elapsed

	n := int(s.acc / s.step)
	s.acc -= time.Duration(n) * s.step
	if n > maxStepsPerAdvance {
		n = maxStepsPerAdvance
		s.acc = 0
	}
	return n
}

// Reset forgets accumulated time; the next Advance primes the clock again.
func (s *Stepper) Reset() {
	s.acc = 0
	s.begun = false
}
