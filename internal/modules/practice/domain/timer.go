package domain

import "time"

// Timer measures how long the learner spends on one problem. Every Start
// bumps the generation so ticks scheduled for an earlier run can be told
// apart from live ones.
type Timer struct {
	startedAt  time.Time
	stoppedAt  time.Time
	running    bool
	generation uint64
}

func (t *Timer) Start(now time.Time) uint64 {
	t.generation++
	t.startedAt = now
	t.stoppedAt = time.Time{}
	t.running = true
	return t.generation
}

// Stop freezes the elapsed time. It reports false when the timer was not
// running.
func (t *Timer) Stop(now time.Time) bool {
	if !t.running {
		return false
	}
	t.running = false
	t.stoppedAt = now
	return true
}

func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) Generation() uint64 {
	return t.generation
}

// Live reports whether a tick scheduled under generation should still fire.
func (t *Timer) Live(generation uint64) bool {
	return t.running && generation == t.generation
}

func (t *Timer) Elapsed(now time.Time) time.Duration {
	if t.startedAt.IsZero() {
		return 0
	}
	end := now
	if !t.running {
		end = t.stoppedAt
	}
	d := end.Sub(t.startedAt)
	if d < 0 {
		return 0
	}
	return d
}
