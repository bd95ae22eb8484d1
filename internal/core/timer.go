package core

import "time"

// Limiter caps how often an expensive action (regeneration) may run when it is
// requested from a per-frame loop. Requests arriving faster than the rate are
// coalesced: the pending flag stays set until Ready lets one through.
type Limiter struct {
	interval time.Duration
	last     time.Time
	pending  bool
	now      func() time.Time
}

// NewLimiter constructs a Limiter allowing at most perSecond actions.
func NewLimiter(perSecond int) *Limiter {
	l := &Limiter{now: time.Now}
	l.SetRate(perSecond)
	return l
}

// SetRate changes the allowed rate. It is safe to call from the main loop.
func (l *Limiter) SetRate(perSecond int) {
	if perSecond <= 0 {
		perSecond = 4
	}
	l.interval = time.Second / time.Duration(perSecond)
}

// Request marks the action as wanted.
func (l *Limiter) Request() { l.pending = true }

// Pending reports whether a request is waiting.
func (l *Limiter) Pending() bool { return l.pending }

// Ready reports whether a pending request may run now. A true result consumes
// the request.
func (l *Limiter) Ready() bool {
	if !l.pending {
		return false
	}
	now := l.now()
	if !l.last.IsZero() && now.Sub(l.last) < l.interval {
		return false
	}
	l.last = now
	l.pending = false
	return true
}
