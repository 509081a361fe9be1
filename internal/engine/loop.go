package engine

import (
	"log/slog"
	"sync"
	"time"
)

// Loop drives the simulation in real time: each iteration measures elapsed
// wall time, scales it by Speed, and feeds the result to Advance. The
// simulation itself never reads the clock.
type Loop struct {
	State    *GameState
	Speed    float64       // multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // base tick interval
	Running  bool

	// OnDay fires after a day rollover (daily report, autosave). Runs
	// with the state lock held.
	OnDay func(s *GameState)

	// mu guards State against readers on other goroutines; the tick
	// holds it across Advance so a reader never sees a mid-tick state.
	mu sync.Mutex
}

// NewLoop wraps a state in a real-time driver with default pacing.
func NewLoop(s *GameState) *Loop {
	return &Loop{
		State:    s,
		Speed:    1.0,
		Interval: 250 * time.Millisecond,
	}
}

// Run blocks until Stop is called.
func (l *Loop) Run() {
	l.Running = true
	slog.Info("simulation loop started", "day", l.State.Day, "speed", l.Speed)

	last := time.Now()
	for l.Running {
		if l.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			last = time.Now()
			continue
		}

		now := time.Now()
		elapsed := int64(float64(now.Sub(last).Milliseconds()) * l.Speed)
		last = now

		l.mu.Lock()
		dayBefore := l.State.Day
		l.State.Advance(elapsed)
		if l.State.Day > dayBefore && l.OnDay != nil {
			l.OnDay(l.State)
		}
		l.mu.Unlock()

		spent := time.Since(now)
		if spent < l.Interval {
			time.Sleep(l.Interval - spent)
		}
	}

	slog.Info("simulation loop stopped", "day", l.State.Day)
}

// Stop halts the loop after the current iteration.
func (l *Loop) Stop() {
	l.Running = false
}

// WithState runs fn with the tick held off. HTTP handlers use this to read
// or snapshot the state without racing Advance; keep fn short, the
// simulation stalls while it runs.
func (l *Loop) WithState(fn func(s *GameState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.State)
}
