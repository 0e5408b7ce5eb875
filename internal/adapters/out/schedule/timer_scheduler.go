// Package schedule implements the one-shot response-window timers. Each job
// gets at most one pending timer; arming a job again replaces the previous
// timer, and Cancel disarms it without firing.
package schedule

import (
	"log/slog"
	"sync"
	"time"

	"jetbond/internal/core/domain/model/kernel"
)

// TimerScheduler implements ports.WindowScheduler over time.AfterFunc.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[kernel.UUID]*time.Timer
	logger *slog.Logger
}

// NewTimerScheduler creates an empty scheduler.
func NewTimerScheduler(logger *slog.Logger) *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[kernel.UUID]*time.Timer),
		logger: logger.With("component", "window_scheduler"),
	}
}

// Schedule arms the close timer for a job, replacing any existing one. fn
// runs on the timer goroutine exactly once unless Cancel wins the race.
func (s *TimerScheduler) Schedule(jobID kernel.UUID, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[jobID]; ok {
		timer.Stop()
	}

	s.timers[jobID] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, jobID)
		s.mu.Unlock()

		s.logger.Info("response window timer fired", "jobId", jobID.String())
		fn()
	})
}

// Cancel disarms the job's timer if one is pending. Cancelling a job with no
// timer is a no-op, so callers do not have to track whether the window ever
// opened.
func (s *TimerScheduler) Cancel(jobID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[jobID]; ok {
		timer.Stop()
		delete(s.timers, jobID)
	}
}

// Stop disarms every pending timer, typically on shutdown.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for jobID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, jobID)
	}
}
